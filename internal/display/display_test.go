package display

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var dualMonitor = Geometry{
	Virtual:  Rect{Left: -1920, Top: 0, Right: 1920, Bottom: 1080},
	WorkArea: Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1040},
}

func TestOnScreen(t *testing.T) {
	tests := []struct {
		name      string
		left, top int
		want      bool
	}{
		{name: "primary", left: 100, top: 100, want: true},
		{name: "secondary left monitor", left: -1800, top: 500, want: true},
		{name: "right edge margin", left: 1890, top: 500, want: true},
		{name: "past right edge", left: 1891, top: 500, want: false},
		{name: "past bottom edge", left: 100, top: 1051, want: false},
		{name: "above top", left: 100, top: -1, want: false},
		{name: "left of virtual screen", left: -1921, top: 10, want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, dualMonitor.OnScreen(tc.left, tc.top))
		})
	}
}

func TestDefaultPosition(t *testing.T) {
	left, top := dualMonitor.DefaultPosition()
	assert.Equal(t, 1860, left)
	assert.Equal(t, 416, top)
	assert.True(t, dualMonitor.OnScreen(left, top))
}

func TestCurrent_NeverDegenerate(t *testing.T) {
	g := Current()
	assert.Positive(t, g.Virtual.Width())
	assert.Positive(t, g.WorkArea.Height())
}

func TestRectString(t *testing.T) {
	assert.Equal(t, "(-1920,0,3840,1080)", dualMonitor.Virtual.String())
}

func TestPollWith_ReportsChangesOnly(t *testing.T) {
	var reads atomic.Int32
	read := func() Geometry {
		n := reads.Add(1)
		if n >= 3 {
			return dualMonitor
		}
		return Fallback
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := make(chan Geometry, 4)
	go pollWith(ctx, time.Millisecond, read, func(g Geometry) { changes <- g })

	select {
	case g := <-changes:
		assert.Equal(t, dualMonitor, g)
	case <-time.After(2 * time.Second):
		t.Fatal("change not reported")
	}
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, changes, "unchanged readings must not be reported")
}
