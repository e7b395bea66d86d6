package host

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/oukeidos/quickpaths/internal/logger"
)

// AppName names the autostart entries.
const AppName = "QuickPaths"

// legacyFiles are helper files older releases left next to the executable.
var legacyFiles = []string{"watchdog.ps1", "watchdog.vbs", "wrapper.lock"}

// Autostart registers the executable to start with the user session.
type Autostart struct {
	Exe string
}

// NewAutostart targets the running executable.
func NewAutostart() (*Autostart, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return &Autostart{Exe: exe}, nil
}

// Dir is the install location.
func (a *Autostart) Dir() string {
	return filepath.Dir(a.Exe)
}

// Install stops older instances, removes leftovers from older releases and
// registers autostart.
func (a *Autostart) Install() error {
	stopOtherInstances(a.Exe)
	a.removeLegacy()
	return installAutostart(a.Exe)
}

// Uninstall stops other instances and removes every autostart entry.
func (a *Autostart) Uninstall() error {
	stopOtherInstances(a.Exe)
	a.removeLegacy()
	return uninstallAutostart()
}

// Description summarizes what Install registers.
func (a *Autostart) Description() string {
	return autostartDescription
}

// Start launches a detached copy of the executable.
func (a *Autostart) Start() error {
	return startDetached(exec.Command(a.Exe))
}

func (a *Autostart) removeLegacy() {
	removeLegacyTasks()
	for _, name := range legacyFiles {
		removeIfExists(filepath.Join(a.Dir(), name))
	}
}

func removeIfExists(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("Failed to remove file", "path", path, "error", err)
	}
}
