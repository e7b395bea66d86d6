// Package host binds the widget to operating-system services: clipboard,
// folder picker, tool launcher, autostart, the single-instance guard and
// native window placement.
package host

import (
	"errors"
	"os"
)

// ErrUnsupported is returned for services the current platform lacks.
var ErrUnsupported = errors.New("not supported on this platform")

// DirExists reports whether path names an existing directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
