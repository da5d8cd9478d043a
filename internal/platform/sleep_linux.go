//go:build linux

package platform

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"
)

// WatchWake calls onWake every time logind reports the system resumed from
// suspend. It blocks until ctx is cancelled.
func WatchWake(ctx context.Context, logger *slog.Logger, onWake func()) error {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return fmt.Errorf("connect system bus: %w", err)
	}
	defer conn.Close()

	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath("/org/freedesktop/login1"),
		dbus.WithMatchInterface("org.freedesktop.login1.Manager"),
		dbus.WithMatchMember("PrepareForSleep"),
	); err != nil {
		return fmt.Errorf("add match failed: %w", err)
	}

	signals := make(chan *dbus.Signal, 4)
	conn.Signal(signals)
	defer conn.RemoveSignal(signals)

	for {
		select {
		case <-ctx.Done():
			return nil
		case sig, ok := <-signals:
			if !ok {
				return nil
			}
			if sig.Name != "org.freedesktop.login1.Manager.PrepareForSleep" || len(sig.Body) == 0 {
				continue
			}
			sleeping, _ := sig.Body[0].(bool)
			if sleeping {
				logger.Debug("system is going to sleep")
				continue
			}
			logger.Info("system woke up, resynchronising timer")
			onWake()
		}
	}
}
