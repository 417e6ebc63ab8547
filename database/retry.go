package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/lo"
	"github.com/uptrace/bun/driver/pgdriver"
)

// RetryConfig controls how often a failed statement is re-run
type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	EnableRetry  bool
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2.0,
		EnableRetry:  true,
	}
}

// SQLSTATE classes whose errors are transient: connection exceptions and
// insufficient resources
var retryableStateClasses = []string{"08", "53"}

// individual transient states outside those classes
var retryableStates = []string{
	"40001", // serialization_failure
	"40P01", // deadlock_detected
	"57P03", // cannot_connect_now
}

// message fragments of network failures that reach us without a SQLSTATE
var transientMessages = []string{
	"connection refused",
	"connection reset",
	"connection closed",
	"bad connection",
	"broken pipe",
	"no such host",
	"network is unreachable",
	"i/o timeout",
	"eof",
	"too many clients",
	"server is not accepting",
	"temporary failure",
}

// isRetryableError reports whether err is worth running the statement again.
// Integrity, syntax and other SQLSTATE classes are final.
func isRetryableError(err error) bool {
	switch {
	case err == nil,
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.Is(err, sql.ErrNoRows):
		return false
	}

	if code := SQLState(err); code != "" {
		return lo.Contains(retryableStates, code) ||
			(len(code) == 5 && lo.Contains(retryableStateClasses, code[:2]))
	}

	msg := strings.ToLower(err.Error())
	return lo.SomeBy(transientMessages, func(fragment string) bool {
		return strings.Contains(msg, fragment)
	})
}

// SQLState returns the SQLSTATE code carried by a pgdriver or pgx error, or ""
func SQLState(err error) string {
	var pgdErr pgdriver.Error
	if errors.As(err, &pgdErr) {
		return pgdErr.Field('C')
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// RetryWithBackoff runs operation until it succeeds, fails permanently or
// runs out of attempts. The delay grows by Multiplier up to MaxDelay.
func RetryWithBackoff(ctx context.Context, config RetryConfig, operation func() error) error {
	if !config.EnableRetry {
		return operation()
	}

	delay := config.InitialDelay
	var err error
	for attempt := 1; ; attempt++ {
		if err = operation(); err == nil || !isRetryableError(err) || attempt >= config.MaxAttempts {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay = min(time.Duration(float64(delay)*config.Multiplier), config.MaxDelay)
	}
}

// WithRetry runs fn with the default retry policy
func WithRetry(ctx context.Context, fn func() error) error {
	return RetryWithBackoff(ctx, DefaultRetryConfig(), fn)
}
