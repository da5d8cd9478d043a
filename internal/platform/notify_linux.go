//go:build linux

package platform

import (
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsService = "org.freedesktop.Notifications"
	notificationsPath    = "/org/freedesktop/Notifications"
)

// DBusNotifier sends org.freedesktop.Notifications messages on the session
// bus. Each new message replaces the previous one.
type DBusNotifier struct {
	appName string

	mu     sync.Mutex
	conn   *dbus.Conn
	lastID uint32
}

// NewDBusNotifier connects to the session bus.
func NewDBusNotifier(appName string) (*DBusNotifier, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("%w: connect session bus: %v", ErrNotificationsUnsupported, err)
	}
	return &DBusNotifier{appName: appName, conn: conn}, nil
}

// Notify shows a desktop notification.
func (notifier *DBusNotifier) Notify(title, body string) error {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()

	obj := notifier.conn.Object(notificationsService, notificationsPath)
	call := obj.Call(notificationsService+".Notify", 0,
		notifier.appName,
		notifier.lastID,
		"alarm-symbolic",
		title,
		body,
		[]string{},
		map[string]dbus.Variant{
			"urgency": dbus.MakeVariant(byte(1)),
		},
		int32(10000),
	)
	if call.Err != nil {
		return fmt.Errorf("send notification: %w", call.Err)
	}

	var id uint32
	if err := call.Store(&id); err == nil {
		notifier.lastID = id
	}
	return nil
}

// Close disconnects from the session bus.
func (notifier *DBusNotifier) Close() error {
	return notifier.conn.Close()
}
