package store

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/oukeidos/quickpaths/internal/debounce"
	"github.com/oukeidos/quickpaths/internal/favorites"
	"github.com/oukeidos/quickpaths/internal/logger"
)

// WatchDebounce is the quiet window before an external edit is reported.
const WatchDebounce = 300 * time.Millisecond

// Watch reports edits to the favorites file made by other processes. The
// directory is watched rather than the file so atomic replacements (which
// swap the inode) keep being seen. onChange receives the re-read list and
// runs on a watcher goroutine. A missing, unreadable or malformed file is
// logged and skipped, never reported as an empty list. Watch blocks until
// ctx is done.
func (s *Store) Watch(ctx context.Context, onChange func([]favorites.Entry)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(s.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", s.Dir, err)
	}
	logger.Debug("Watching favorites file", "path", s.FavoritesPath())

	d := debounce.New(WatchDebounce, func() {
		if entries, ok := s.reload(); ok {
			onChange(entries)
		}
	})
	defer d.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !s.isFavoritesEvent(event) {
				continue
			}
			logger.Debug("Favorites file event", "op", event.Op.String())
			d.Trigger()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", "error", err)
		}
	}
}

// reload re-reads the favorites file for the watcher. Unlike Load it reports
// failure, so a half-written or deleted file cannot replace the live list.
func (s *Store) reload() ([]favorites.Entry, bool) {
	path := s.FavoritesPath()
	data, err := readJSON(path)
	if err != nil {
		logger.Warn("Ignoring favorites edit", "path", path, "error", err)
		return nil, false
	}
	// Missing or blank: deleted, renamed away or mid-save.
	if len(bytes.TrimSpace(data)) == 0 {
		logger.Debug("Favorites file missing or blank, keeping current list", "path", path)
		return nil, false
	}
	entries, err := parseFavorites(data)
	if err != nil {
		logger.Warn("Ignoring favorites edit", "path", path, "error", err)
		return nil, false
	}
	logger.Info("Reloaded favorites", "count", len(entries))
	return entries, true
}

func (s *Store) isFavoritesEvent(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	return strings.EqualFold(filepath.Base(event.Name), FavoritesFile)
}
