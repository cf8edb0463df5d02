// Package logger wraps log/slog for the mailroom service: JSON output at Info
// level in production, human-readable text at Debug everywhere else. Handlers
// and services take the logger as a dependency; the package-level accessor
// exists for code that runs before wiring (cobra commands, lazy handlers).
package logger

import (
	"log/slog"
	"os"
)

var defaultLogger *slog.Logger

// Init builds the process logger for the given environment and installs it as
// the slog default so stray slog.Info calls land in the same stream.
func Init(env string) {
	var handler slog.Handler

	if env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// LoggerWrapper returns the process logger, initializing a development one on
// first use so callers never get nil.
func LoggerWrapper() *slog.Logger {
	if defaultLogger == nil {
		Init("development")
	}
	return defaultLogger
}
