package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RejectSymlinkPath returns an error if path itself is a symlink or reparse
// point. Renaming over such a file would replace the link rather than the
// file it points at. Symlinked ancestor directories are allowed; callers
// resolve their directories with ResolveDir.
func RejectSymlinkPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path is empty")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	info, err := os.Lstat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to access path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("refusing to replace symlink: %s", abs)
	}
	if isReparse, err := isReparsePoint(abs); err != nil {
		return fmt.Errorf("failed to check reparse point: %w", err)
	} else if isReparse {
		return fmt.Errorf("refusing to replace reparse point: %s", abs)
	}
	return nil
}

// ResolveDir returns the absolute, symlink-free form of an existing directory.
func ResolveDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", abs, err)
	}
	return resolved, nil
}
