package host

import "errors"

// ErrAlreadyRunning means another instance holds the guard.
var ErrAlreadyRunning = errors.New("another instance is already running")

// LockFile is the guard file used where named mutexes are unavailable.
const LockFile = "quickpaths.lock"

// Instance is a held single-instance guard.
type Instance struct {
	release func() error
}

// Release gives up the guard. It is safe to call more than once.
func (i *Instance) Release() error {
	if i == nil || i.release == nil {
		return nil
	}
	fn := i.release
	i.release = nil
	return fn()
}
