package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/oukeidos/quickpaths/internal/cleanup"
	"github.com/oukeidos/quickpaths/internal/crash"
	"github.com/oukeidos/quickpaths/internal/files"
	"github.com/oukeidos/quickpaths/internal/host"
	"github.com/oukeidos/quickpaths/internal/logger"
	"github.com/oukeidos/quickpaths/internal/store"
)

// appContext owns the process-wide resources of a widget run. Everything it
// acquires is released by shutdown, in reverse order.
type appContext struct {
	dataDir string
	store   *store.Store
	session *crash.Session
	guard   *host.Instance
	hooks   cleanup.Stack

	shutdownOnce sync.Once
}

// Replaced in tests.
var acquireInstance = host.AcquireInstance

// resolveDataDir returns flagValue, or the executable's directory when it is
// empty, makes sure the directory exists and resolves it through symlinks.
func resolveDataDir(flagValue string) (string, error) {
	dir := flagValue
	if dir == "" {
		exe, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("failed to locate executable: %w", err)
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		dir = filepath.Dir(exe)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("invalid data directory %q: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return files.ResolveDir(abs)
}

func newAppContext(opts *rootOptions) (*appContext, error) {
	dir, err := resolveDataDir(opts.dataDir)
	if err != nil {
		return nil, err
	}
	a := &appContext{
		dataDir: dir,
		store:   store.New(dir),
		session: crash.NewSession(opts.restartCount),
	}

	level := logger.LevelInfo
	if opts.debug {
		level = logger.LevelDebug
	}
	logFile, err := logger.OpenRotatingFile(a.store.LogPath(), logger.DefaultMaxLogSize)
	if err != nil {
		// Keep running with console logging only.
		logger.Init(level, nil)
		logger.Warn("Log file unavailable", "error", err)
	} else {
		logger.Init(level, logFile)
		a.hooks.Register("log.close", func() error {
			logger.Init(level, nil)
			return logFile.Close()
		})
	}

	guard, err := acquireInstance(dir)
	if err != nil {
		a.shutdown()
		return nil, err
	}
	a.guard = guard
	a.hooks.Register("instance.release", guard.Release)

	logger.Info("QuickPaths started",
		"session", a.session.ID,
		"pid", os.Getpid(),
		"restart_count", opts.restartCount,
		"data_dir", dir,
	)
	return a, nil
}

// onShutdown registers fn to run during shutdown, before anything registered
// earlier.
func (a *appContext) onShutdown(name string, fn func() error) {
	a.hooks.Register(name, fn)
}

// shutdown runs every registered hook once.
func (a *appContext) shutdown() {
	a.shutdownOnce.Do(func() {
		if err := a.hooks.RunAll(); err != nil {
			logger.Error("Shutdown incomplete", "error", err)
		}
	})
}
