//go:build linux

package platform

import (
	"fmt"
	"log/slog"
	"sync"

	"focustimer/internal/core/timekeeper"

	"github.com/godbus/dbus/v5"
)

const (
	screenSaverService = "org.freedesktop.ScreenSaver"
	screenSaverPath    = "/org/freedesktop/ScreenSaver"
)

// ScreenSaverLock inhibits the screen saver over the session bus.
type ScreenSaverLock struct {
	appName string
	logger  *slog.Logger

	mu   sync.Mutex
	conn *dbus.Conn
}

// NewWakeLock returns a wake-lock backed by org.freedesktop.ScreenSaver.
// The bus is connected on first use.
func NewWakeLock(appName string, logger *slog.Logger) *ScreenSaverLock {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScreenSaverLock{appName: appName, logger: logger}
}

// Acquire inhibits the screen saver until the handle is released.
func (lock *ScreenSaverLock) Acquire() (timekeeper.WakeLockHandle, error) {
	conn, err := lock.connection()
	if err != nil {
		return nil, err
	}

	var cookie uint32
	obj := conn.Object(screenSaverService, screenSaverPath)
	if err := obj.Call(screenSaverService+".Inhibit", 0, lock.appName, inhibitReason).Store(&cookie); err != nil {
		return nil, fmt.Errorf("%w: inhibit: %v", ErrWakeLockUnsupported, err)
	}
	lock.logger.Debug("screen saver inhibited", "cookie", cookie)
	return &screenSaverHandle{obj: obj, cookie: cookie, logger: lock.logger}, nil
}

// Close disconnects from the session bus.
func (lock *ScreenSaverLock) Close() error {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if lock.conn == nil {
		return nil
	}
	err := lock.conn.Close()
	lock.conn = nil
	return err
}

func (lock *ScreenSaverLock) connection() (*dbus.Conn, error) {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if lock.conn != nil {
		return lock.conn, nil
	}
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("%w: connect session bus: %v", ErrWakeLockUnsupported, err)
	}
	lock.conn = conn
	return conn, nil
}

type screenSaverHandle struct {
	once   sync.Once
	obj    dbus.BusObject
	cookie uint32
	logger *slog.Logger
}

func (handle *screenSaverHandle) Release() error {
	var err error
	handle.once.Do(func() {
		if callErr := handle.obj.Call(screenSaverService+".UnInhibit", 0, handle.cookie).Err; callErr != nil {
			err = fmt.Errorf("uninhibit: %w", callErr)
			return
		}
		handle.logger.Debug("screen saver released", "cookie", handle.cookie)
	})
	return err
}
