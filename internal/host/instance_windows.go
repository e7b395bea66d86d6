//go:build windows

package host

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// MutexName is the session-global guard name.
const MutexName = `Global\QuickPaths_Singleton`

// AcquireInstance takes the named mutex. An abandoned mutex (previous
// instance crashed) counts as acquired. dataDir is unused on Windows.
func AcquireInstance(string) (*Instance, error) {
	name, err := windows.UTF16PtrFromString(MutexName)
	if err != nil {
		return nil, err
	}
	h, err := windows.CreateMutex(nil, false, name)
	if h == 0 {
		return nil, fmt.Errorf("create mutex: %w", err)
	}
	event, err := windows.WaitForSingleObject(h, 0)
	switch event {
	case windows.WAIT_OBJECT_0, windows.WAIT_ABANDONED:
	case uint32(windows.WAIT_TIMEOUT):
		windows.CloseHandle(h)
		return nil, ErrAlreadyRunning
	default:
		windows.CloseHandle(h)
		return nil, fmt.Errorf("wait for mutex: %w", err)
	}
	return &Instance{release: func() error {
		// Ownership is per OS thread; closing the handle is enough when the
		// release happens elsewhere.
		_ = windows.ReleaseMutex(h)
		return windows.CloseHandle(h)
	}}, nil
}
