// Package display reports screen geometry used to keep the widget visible.
package display

import (
	"context"
	"fmt"
	"time"
)

// Rect is a screen rectangle in physical pixels. Right and Bottom are
// exclusive.
type Rect struct {
	Left, Top, Right, Bottom int
}

func (r Rect) Width() int  { return r.Right - r.Left }
func (r Rect) Height() int { return r.Bottom - r.Top }

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", r.Left, r.Top, r.Width(), r.Height())
}

// Geometry is the virtual desktop (all monitors) plus the primary monitor's
// work area (excluding the taskbar).
type Geometry struct {
	Virtual  Rect
	WorkArea Rect
}

// edgeMargin is how much of the widget must remain inside the virtual screen
// for a saved position to be accepted.
const edgeMargin = 30

// Fallback is used where the platform cannot report monitors.
var Fallback = Geometry{
	Virtual:  Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080},
	WorkArea: Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1040},
}

// Current returns the live geometry, or Fallback when unavailable.
func Current() Geometry {
	g, err := current()
	if err != nil || g.Virtual.Width() <= 0 || g.Virtual.Height() <= 0 {
		return Fallback
	}
	if g.WorkArea.Width() <= 0 || g.WorkArea.Height() <= 0 {
		g.WorkArea = g.Virtual
	}
	return g
}

// OnScreen reports whether a window whose top-left corner is at (left, top)
// stays reachable on the virtual screen.
func (g Geometry) OnScreen(left, top int) bool {
	vs := g.Virtual
	return left >= vs.Left && left <= vs.Right-edgeMargin &&
		top >= vs.Top && top <= vs.Bottom-edgeMargin
}

// DefaultPosition is the right edge of the primary work area, 40% down.
func (g Geometry) DefaultPosition() (left, top int) {
	wa := g.WorkArea
	return wa.Right - 60, wa.Top + int(float64(wa.Height())*0.4)
}

// Poll calls onChange whenever Current differs from the previous reading. It
// blocks until ctx is done.
func Poll(ctx context.Context, interval time.Duration, onChange func(Geometry)) {
	pollWith(ctx, interval, Current, onChange)
}

func pollWith(ctx context.Context, interval time.Duration, read func() Geometry, onChange func(Geometry)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	last := read()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g := read()
			if g != last {
				last = g
				onChange(g)
			}
		}
	}
}
