package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
)

// ErrAlreadyRunning indicates another process already owns the timer.
var ErrAlreadyRunning = errors.New("focus timer already running")

// InstanceGuard keeps two processes from driving the same progress store.
// It holds a listener on a loopback port derived from the application ID.
type InstanceGuard struct {
	listener net.Listener
}

// AcquireInstance claims the loopback port for appID.
func AcquireInstance(appID string) (*InstanceGuard, error) {
	listener, err := net.Listen("tcp", instanceAddress(appID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAlreadyRunning, err)
	}
	return &InstanceGuard{listener: listener}, nil
}

// Address returns the claimed address.
func (guard *InstanceGuard) Address() string {
	if guard == nil || guard.listener == nil {
		return ""
	}
	return guard.listener.Addr().String()
}

// Release gives up the claim. It is safe to call on a nil guard.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	guard.listener = nil
	return err
}

func instanceAddress(appID string) string {
	const (
		firstPort = 20000
		portCount = 20000
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appID))
	return fmt.Sprintf("127.0.0.1:%d", firstPort+int(hash.Sum32()%portCount))
}
