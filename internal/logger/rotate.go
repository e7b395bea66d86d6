package logger

import (
	"fmt"
	"os"
	"sync"
)

// DefaultMaxLogSize is the size past which the log file is renamed aside.
const DefaultMaxLogSize = 512 * 1024

// RotatingFile is an append-only log file that is renamed to "<path>.old"
// once it grows past MaxSize. Exactly one backup is kept.
type RotatingFile struct {
	Path    string
	MaxSize int64

	mu   sync.Mutex
	f    *os.File
	size int64
}

// OpenRotatingFile opens (or creates) path for appending.
func OpenRotatingFile(path string, maxSize int64) (*RotatingFile, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxLogSize
	}
	r := &RotatingFile{Path: path, MaxSize: maxSize}
	if err := r.open(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RotatingFile) open() error {
	f, err := os.OpenFile(r.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to stat log file: %w", err)
	}
	r.f = f
	r.size = info.Size()
	return nil
}

// Write appends p, rotating first when the current file is already past MaxSize.
func (r *RotatingFile) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.f == nil {
		return 0, os.ErrClosed
	}
	if r.size > r.MaxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := r.f.Write(p)
	r.size += int64(n)
	return n, err
}

func (r *RotatingFile) rotate() error {
	if err := r.f.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	r.f = nil
	backup := r.Path + ".old"
	// On failure keep appending to the oversized file rather than dropping records.
	if err := os.Remove(backup); err == nil || os.IsNotExist(err) {
		_ = os.Rename(r.Path, backup)
	}
	return r.open()
}

// Close closes the underlying file.
func (r *RotatingFile) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.f == nil {
		return nil
	}
	err := r.f.Close()
	r.f = nil
	return err
}
