package internal

import (
	"context"
	"time"
)

const defaultOperationTimeout = 5 * time.Second

// WithTimeout bounds a blocking call such as a readiness ping. A zero or
// negative duration falls back to the default so a missing config value never
// produces an already-expired context.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = defaultOperationTimeout
	}
	return context.WithTimeout(ctx, duration)
}
