package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeTimer struct {
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeClock struct {
	timers []*fakeTimer
}

func (c *fakeClock) after(_ time.Duration, f func()) Timer {
	t := &fakeTimer{f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) fireAll() {
	for _, t := range c.timers {
		if !t.stopped {
			t.f()
		}
	}
}

func TestDebouncer_BurstFiresOnce(t *testing.T) {
	clock := &fakeClock{}
	fired := 0
	d := NewWithClock(1500*time.Millisecond, func() { fired++ }, clock.after)

	d.Trigger()
	d.Trigger()
	d.Trigger()
	assert.True(t, d.Pending())
	assert.Len(t, clock.timers, 3)
	assert.True(t, clock.timers[0].stopped)
	assert.True(t, clock.timers[1].stopped)

	clock.fireAll()
	assert.Equal(t, 1, fired)
	assert.False(t, d.Pending())
}

func TestDebouncer_StaleCallbackIgnored(t *testing.T) {
	clock := &fakeClock{}
	fired := 0
	d := NewWithClock(time.Second, func() { fired++ }, clock.after)

	d.Trigger()
	d.Trigger()
	// A timer that fired concurrently with Stop still runs its func.
	clock.timers[0].f()
	assert.Zero(t, fired)
	clock.timers[1].f()
	assert.Equal(t, 1, fired)
}

func TestDebouncer_Stop(t *testing.T) {
	clock := &fakeClock{}
	fired := 0
	d := NewWithClock(time.Second, func() { fired++ }, clock.after)

	d.Trigger()
	d.Stop()
	clock.timers[0].f()
	d.Trigger()
	assert.Zero(t, fired)
	assert.Len(t, clock.timers, 1)
	assert.False(t, d.Pending())
}

func TestDebouncer_RealClock(t *testing.T) {
	var fired atomic.Int32
	d := New(20*time.Millisecond, func() { fired.Add(1) })
	d.Trigger()
	d.Trigger()

	assert.Eventually(t, func() bool { return fired.Load() == 1 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}
