// Package store persists the favorites list and the window configuration as
// two small JSON files in the data directory.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/oukeidos/quickpaths/internal/apperrors"
	"github.com/oukeidos/quickpaths/internal/display"
	"github.com/oukeidos/quickpaths/internal/favorites"
	"github.com/oukeidos/quickpaths/internal/files"
	"github.com/oukeidos/quickpaths/internal/logger"
)

const (
	FavoritesFile = "paths.json"
	ConfigFile    = "config.json"
	LogFile       = "quickpaths.log"
)

const (
	MinScale     = 0.5
	MaxScale     = 3.0
	ScaleStep    = 0.1
	DefaultScale = 1.0
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WindowConfig is the persisted widget placement and mode.
type WindowConfig struct {
	Left      int     `json:"left"`
	Top       int     `json:"top"`
	Alternate bool    `json:"claudeMode"`
	Scale     float64 `json:"scale"`
}

// ClampScale rounds s to one decimal and clamps it to [MinScale, MaxScale].
func ClampScale(s float64) float64 {
	s = math.Round(s*10) / 10
	return math.Max(MinScale, math.Min(MaxScale, s))
}

// Store reads and writes the data files in Dir. It holds no model state;
// every call works on copies.
type Store struct {
	Dir string
}

// New returns a store rooted at dir.
func New(dir string) *Store {
	return &Store{Dir: dir}
}

func (s *Store) FavoritesPath() string { return filepath.Join(s.Dir, FavoritesFile) }
func (s *Store) ConfigPath() string    { return filepath.Join(s.Dir, ConfigFile) }
func (s *Store) LogPath() string       { return filepath.Join(s.Dir, LogFile) }

// readJSON returns the file body with any BOM stripped. A missing file yields
// (nil, nil).
func readJSON(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.IO(err)
	}
	return bytes.TrimPrefix(data, utf8BOM), nil
}

// Load returns the saved favorites. Missing, empty or unreadable files give
// an empty list; the failure is logged, never returned.
func (s *Store) Load() []favorites.Entry {
	entries, err := s.load()
	if err != nil {
		logger.Warn("Failed to load favorites", "path", s.FavoritesPath(), "error", err)
		return []favorites.Entry{}
	}
	logger.Info("Loaded favorites", "count", len(entries))
	return entries
}

func (s *Store) load() ([]favorites.Entry, error) {
	data, err := readJSON(s.FavoritesPath())
	if err != nil {
		return nil, err
	}
	return parseFavorites(data)
}

func parseFavorites(data []byte) ([]favorites.Entry, error) {
	if len(bytes.TrimSpace(data)) <= 2 {
		return []favorites.Entry{}, nil
	}
	var entries []favorites.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, apperrors.Malformed(fmt.Errorf("parse %s: %w", FavoritesFile, err))
	}
	if entries == nil {
		entries = []favorites.Entry{}
	}
	return entries, nil
}

func encodeFavorites(entries []favorites.Entry) ([]byte, error) {
	if entries == nil {
		entries = []favorites.Entry{}
	}
	return json.MarshalIndent(entries, "", "  ")
}

// Save writes the favorites through a temp file and an atomic rename. If that
// fails it falls back to overwriting the file directly, then removes any
// leftover temp file.
func (s *Store) Save(entries []favorites.Entry) error {
	data, err := encodeFavorites(entries)
	if err != nil {
		return fmt.Errorf("encode favorites: %w", err)
	}
	path := s.FavoritesPath()

	err = files.AtomicWrite(path, data, 0644)
	if err == nil {
		return nil
	}
	logger.Warn("Atomic favorites save failed, overwriting in place", "path", path, "error", err)

	var fallbackErr error
	if werr := os.WriteFile(path, data, 0644); werr != nil {
		fallbackErr = apperrors.IO(fmt.Errorf("write %s: %w", FavoritesFile, werr))
	}
	if rerr := files.RemoveStrayTemp(path); rerr != nil {
		logger.Warn("Failed to remove temp file", "path", files.TempPath(path), "error", rerr)
	}
	return fallbackErr
}

// LoadConfig returns the saved window configuration, validated against geom.
// A missing or corrupt file, or a position that is off every monitor, yields
// the default position and scale. The mode flag survives a position reset.
func (s *Store) LoadConfig(geom display.Geometry) WindowConfig {
	cfg, err := s.loadConfig()
	if err != nil {
		logger.Warn("Failed to load config", "path", s.ConfigPath(), "error", err)
	}
	return normalizeConfig(cfg, geom)
}

func (s *Store) loadConfig() (*WindowConfig, error) {
	data, err := readJSON(s.ConfigPath())
	if err != nil || data == nil {
		return nil, err
	}
	var cfg WindowConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, apperrors.Malformed(fmt.Errorf("parse %s: %w", ConfigFile, err))
	}
	return &cfg, nil
}

func normalizeConfig(saved *WindowConfig, geom display.Geometry) WindowConfig {
	var cfg WindowConfig
	if saved != nil {
		cfg = *saved
	}
	if saved == nil || !geom.OnScreen(cfg.Left, cfg.Top) {
		left, top := geom.DefaultPosition()
		if saved != nil {
			logger.Info("Saved position off-screen, using default",
				"saved_left", saved.Left, "saved_top", saved.Top,
				"virtual", geom.Virtual.String(), "left", left, "top", top)
		}
		cfg.Left, cfg.Top = left, top
		cfg.Scale = DefaultScale
	}
	if cfg.Scale <= 0 || math.IsNaN(cfg.Scale) {
		cfg.Scale = DefaultScale
	}
	cfg.Scale = ClampScale(cfg.Scale)
	return cfg
}

// SaveConfig overwrites the config file directly.
func (s *Store) SaveConfig(cfg WindowConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(s.ConfigPath(), data, 0644); err != nil {
		return apperrors.IO(fmt.Errorf("write %s: %w", ConfigFile, err))
	}
	return nil
}

// Purge deletes both data files. Missing files are not an error.
func (s *Store) Purge() error {
	var errs []error
	for _, p := range s.DataFiles() {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// DataFiles lists the user data files Purge removes.
func (s *Store) DataFiles() []string {
	return []string{s.FavoritesPath(), s.ConfigPath()}
}
