//go:build linux

package host

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oukeidos/quickpaths/internal/files"
)

const autostartDescription = "XDG autostart entry"

const desktopEntry = `[Desktop Entry]
Type=Application
Name=QuickPaths
Comment=Floating favorite-folder launcher
Exec=%s
X-GNOME-Autostart-enabled=true
NoDisplay=true
`

// autostartDir is $XDG_CONFIG_HOME/autostart.
func autostartDir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "autostart"), nil
}

func autostartEntryPath() (string, error) {
	dir, err := autostartDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, strings.ToLower(AppName)+".desktop"), nil
}

// execQuote quotes a path for a desktop entry Exec key.
func execQuote(path string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", "$", `\$`)
	return `"` + r.Replace(path) + `"`
}

func installAutostart(exe string) error {
	path, err := autostartEntryPath()
	if err != nil {
		return fmt.Errorf("locate autostart dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create autostart dir: %w", err)
	}
	dir, err := files.ResolveDir(filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("resolve autostart dir: %w", err)
	}
	path = filepath.Join(dir, filepath.Base(path))
	body := fmt.Sprintf(desktopEntry, execQuote(exe))
	if err := files.AtomicWrite(path, []byte(body), 0644); err != nil {
		return fmt.Errorf("write autostart entry: %w", err)
	}
	return nil
}

func uninstallAutostart() error {
	path, err := autostartEntryPath()
	if err != nil {
		return fmt.Errorf("locate autostart dir: %w", err)
	}
	removeIfExists(path)
	return nil
}

func removeLegacyTasks() {}

func stopOtherInstances(string) {}
