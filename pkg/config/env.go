// Package config provides small helpers for reading configuration values
// from environment variables with defaults and validation.
package config

import (
	"log/slog"
	"os"
	"time"
)

// GetEnvString returns the value of an environment variable, or the
// default when unset or empty. No validation is performed.
func GetEnvString(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvDuration returns an environment variable parsed with
// time.ParseDuration (e.g. "30s", "1h30m"). Unset, empty or unparsable
// values fall back to the default; a bad value logs a warning.
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		slog.Warn("invalid duration value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", valueStr),
			slog.String("default", defaultValue.String()),
			slog.String("error", err.Error()))
		return defaultValue
	}

	return value
}
