//go:build windows

package host

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/windows/registry"
)

const shellFoldersKey = `Software\Microsoft\Windows\CurrentVersion\Explorer\User Shell Folders`

// shellFolder reads a per-user shell folder (for example "Desktop"),
// expanding environment references.
func shellFolder(name string) (string, bool) {
	k, err := registry.OpenKey(registry.CURRENT_USER, shellFoldersKey, registry.QUERY_VALUE)
	if err != nil {
		return "", false
	}
	defer k.Close()
	v, _, err := k.GetStringValue(name)
	if err != nil || v == "" {
		return "", false
	}
	if expanded, err := registry.ExpandString(v); err == nil {
		v = expanded
	}
	return filepath.Clean(v), true
}

// HomeFolder is the pinned folder: the user's Desktop.
func HomeFolder() string {
	if dir, ok := shellFolder("Desktop"); ok {
		return dir
	}
	return filepath.Join(os.Getenv("USERPROFILE"), "Desktop")
}

func startupFolder() string {
	if dir, ok := shellFolder("Startup"); ok {
		return dir
	}
	return filepath.Join(os.Getenv("APPDATA"), `Microsoft\Windows\Start Menu\Programs\Startup`)
}
