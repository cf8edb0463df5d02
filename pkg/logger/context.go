package logger

import (
	"context"
	"log/slog"
)

type ctxKey string

const loggerKey ctxKey = "logger"

// With attaches fields to the request-scoped logger and stores the enriched
// logger back in the context. The request-id middleware uses this to stamp the
// trace id once so every log line downstream carries it.
func With(ctx context.Context, fields ...any) context.Context {
	l := From(ctx).With(fields...)
	return context.WithValue(ctx, loggerKey, l)
}

// From pulls the request-scoped logger out of the context, falling back to the
// process logger when no middleware ran (tests, cobra commands).
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return LoggerWrapper()
}
