//go:build !linux

package platform

import (
	"log/slog"

	"focustimer/internal/core/timekeeper"
)

// ScreenSaverLock is unavailable outside Linux desktops.
type ScreenSaverLock struct{}

// NewWakeLock returns a wake-lock that always reports ErrWakeLockUnsupported.
func NewWakeLock(string, *slog.Logger) *ScreenSaverLock {
	return &ScreenSaverLock{}
}

func (*ScreenSaverLock) Acquire() (timekeeper.WakeLockHandle, error) {
	return nil, ErrWakeLockUnsupported
}

func (*ScreenSaverLock) Close() error {
	return nil
}
