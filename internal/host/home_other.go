//go:build !windows

package host

import (
	"os"
	"path/filepath"
)

// HomeFolder is the pinned folder: $HOME/Desktop. It is empty when the home
// directory is unknown.
func HomeFolder() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "Desktop")
}
