package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// getEnv parses the variable with parse, falling back to defaultVal when it
// is unset or unparsable
func getEnv[T any](key string, defaultVal T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	value, err := parse(raw)
	if err != nil {
		return defaultVal
	}
	return value
}

func getEnvAsString(key string, defaultVal string) string {
	return getEnv(key, defaultVal, func(s string) (string, error) { return s, nil })
}

func getEnvAsInt(key string, defaultVal int) int {
	return getEnv(key, defaultVal, strconv.Atoi)
}

func getEnvAsBool(key string, defaultVal bool) bool {
	return getEnv(key, defaultVal, strconv.ParseBool)
}

// getEnvAsTimeDuration accepts Go durations ("15s", "1h") or a bare number of seconds
func getEnvAsTimeDuration(key string, defaultVal time.Duration) time.Duration {
	return getEnv(key, defaultVal, func(s string) (time.Duration, error) {
		if d, err := time.ParseDuration(s); err == nil {
			return d, nil
		}
		secs, err := strconv.Atoi(s)
		return time.Duration(secs) * time.Second, err
	})
}

// getEnvAsSlice splits a comma separated list, dropping blank entries
func getEnvAsSlice(key string, defaultVal []string) []string {
	return getEnv(key, defaultVal, func(s string) ([]string, error) {
		parts := lo.Map(strings.Split(s, ","), func(p string, _ int) string { return strings.TrimSpace(p) })
		return lo.Compact(parts), nil
	})
}
