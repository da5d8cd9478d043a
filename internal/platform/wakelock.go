package platform

import "errors"

// ErrWakeLockUnsupported indicates the desktop offers no screen inhibitor.
var ErrWakeLockUnsupported = errors.New("wake lock unsupported")

// ErrNotificationsUnsupported indicates no desktop notification service.
var ErrNotificationsUnsupported = errors.New("desktop notifications unsupported")

const inhibitReason = "Focus session in progress"
