package config

import (
	"github.com/MonkyMars/gecho"
)

var logger *gecho.Logger

// InitializeLogger builds the process-wide logger at the configured level
func InitializeLogger() *gecho.Logger {
	logger = NewLogger(true)
	return logger
}

// NewLogger creates a logger at the configured level; the request logging
// middleware uses one without caller information
func NewLogger(showCaller bool) *gecho.Logger {
	level := gecho.ParseLogLevel(GetLogLevel())
	return gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(showCaller), gecho.WithLogLevel(level)))
}

func GetLogger() *gecho.Logger {
	if logger == nil {
		return InitializeLogger()
	}
	return logger
}
