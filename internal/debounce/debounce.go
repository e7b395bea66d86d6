// Package debounce coalesces bursts of events into a single callback that
// fires once the burst has been quiet for a fixed window.
package debounce

import (
	"sync"
	"time"
)

// Timer is the subset of *time.Timer the debouncer needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. It matches time.AfterFunc.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer keeps at most one pending callback. Each Trigger resets it.
type Debouncer struct {
	window time.Duration
	fire   func()
	after  AfterFunc

	mu         sync.Mutex
	pending    Timer
	generation uint64
	stopped    bool
}

// New returns a debouncer that calls fire once window has passed without a
// new Trigger. fire runs on the timer goroutine.
func New(window time.Duration, fire func()) *Debouncer {
	return NewWithClock(window, fire, realAfterFunc)
}

// NewWithClock is New with an injectable scheduler for tests.
func NewWithClock(window time.Duration, fire func(), after AfterFunc) *Debouncer {
	return &Debouncer{window: window, fire: fire, after: after}
}

// Trigger (re)starts the quiet window.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.pending != nil {
		d.pending.Stop()
	}
	d.generation++
	gen := d.generation
	d.pending = d.after(d.window, func() {
		d.mu.Lock()
		if d.stopped || gen != d.generation {
			d.mu.Unlock()
			return
		}
		d.pending = nil
		d.mu.Unlock()
		d.fire()
	})
}

// Pending reports whether a callback is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Stop cancels any pending callback and ignores later triggers.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
}
