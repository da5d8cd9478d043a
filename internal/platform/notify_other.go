//go:build !linux

package platform

// DBusNotifier is unavailable outside Linux desktops.
type DBusNotifier struct{}

// NewDBusNotifier always fails with ErrNotificationsUnsupported.
func NewDBusNotifier(string) (*DBusNotifier, error) {
	return nil, ErrNotificationsUnsupported
}

func (*DBusNotifier) Notify(string, string) error {
	return ErrNotificationsUnsupported
}

func (*DBusNotifier) Close() error {
	return nil
}
