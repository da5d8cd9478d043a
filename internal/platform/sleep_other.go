//go:build !linux

package platform

import (
	"context"
	"log/slog"
)

// WatchWake has no suspend signal source outside Linux. It blocks until ctx
// is cancelled; foreground events still resynchronise the timer.
func WatchWake(ctx context.Context, _ *slog.Logger, _ func()) error {
	<-ctx.Done()
	return nil
}
