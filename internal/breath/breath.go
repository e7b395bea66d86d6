// Package breath drives the ECG-style trace drawn inside the collapsed dot.
//
// One breath cycle is Period ticks long, split into inhale, hold, exhale and
// rest. The waveform is a pure function of the tick counter so renderers can
// query the current value at any time.
package breath

import (
	"math"
	"time"
)

const (
	// Period is the number of ticks in one breath cycle.
	Period = 360
	// Samples is the length of the trace ring buffer.
	Samples = 360
	// TickInterval is the cadence of Driver.Tick (one cycle is 18s).
	TickInterval = 50 * time.Millisecond

	inhaleEnd = 80
	holdEnd   = 160
	exhaleEnd = 320
)

// Dot geometry in unscaled pixels.
const (
	DotWidth  = 88
	DotHeight = 38
	PadX      = 12
	PadY      = 8
	WaveW     = 60
	WaveH     = 22
)

// Value returns the breath intensity in [0, 1] for a tick. Ticks outside
// [0, Period) are wrapped.
func Value(tick int) float64 {
	k := tick % Period
	if k < 0 {
		k += Period
	}
	switch {
	case k < inhaleEnd:
		return (1 - math.Cos(float64(k)/inhaleEnd*math.Pi)) / 2
	case k < holdEnd:
		return 1
	case k < exhaleEnd:
		return (1 + math.Cos(float64(k-holdEnd)/(exhaleEnd-holdEnd)*math.Pi)) / 2
	default:
		return 0
	}
}

// SampleY maps a breath value to the trace y coordinate (unscaled). A full
// breath sits at the top of the wave box, rest at the bottom.
func SampleY(v float64) float64 {
	return PadY + WaveH*(1-v)
}

// Glow holds the alpha of the three layers drawn around the pen head.
type Glow struct {
	Shadow float64
	Inner  float64
	Outer  float64
}

// GlowFor derives glow alphas from a breath value.
func GlowFor(v float64) Glow {
	return Glow{
		Shadow: 0.4 + 0.55*v,
		Inner:  0.18 + 0.50*v,
		Outer:  0.08 + 0.30*v,
	}
}

// Driver owns the tick counter and the trace ring buffer.
// It is not safe for concurrent use.
type Driver struct {
	tick    int
	ring    [Samples]float64
	next    int
	palette paletteState
}

// NewDriver returns a driver at tick 0 with a flat trace resting at the
// bottom of the wave box.
func NewDriver() *Driver {
	d := &Driver{}
	bottom := SampleY(0)
	for i := range d.ring {
		d.ring[i] = bottom
	}
	d.palette.current = PaletteFor(false)
	return d
}

// Tick advances one step and appends a new sample. It returns the new value.
func (d *Driver) Tick() float64 {
	d.tick = (d.tick + 1) % Period
	v := Value(d.tick)
	d.ring[d.next] = SampleY(v)
	d.next = (d.next + 1) % Samples
	return v
}

// TickCount returns the current phase counter.
func (d *Driver) TickCount() int { return d.tick }

// Value returns the breath value at the current tick.
func (d *Driver) Value() float64 { return Value(d.tick) }

// Glow returns the glow alphas at the current tick.
func (d *Driver) Glow() Glow { return GlowFor(d.Value()) }

// Trace returns the samples oldest first.
func (d *Driver) Trace() []float64 {
	out := make([]float64, Samples)
	n := copy(out, d.ring[d.next:])
	copy(out[n:], d.ring[:d.next])
	return out
}

// Head returns the newest sample, where the pen head is drawn.
func (d *Driver) Head() float64 {
	return d.ring[(d.next+Samples-1)%Samples]
}
