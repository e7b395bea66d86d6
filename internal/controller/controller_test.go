package controller

import (
	"testing"

	"github.com/oukeidos/quickpaths/internal/display"
	"github.com/oukeidos/quickpaths/internal/favorites"
	"github.com/oukeidos/quickpaths/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDrag(t *testing.T) {
	tests := []struct {
		dx, dy int
		want   bool
	}{
		{dx: 0, dy: 0, want: false},
		{dx: 4, dy: 0, want: false},
		{dx: 5, dy: -5, want: false},
		{dx: 6, dy: 0, want: true},
		{dx: 0, dy: -6, want: true},
		{dx: -4, dy: 4, want: false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, IsDrag(tc.dx, tc.dy), "dx=%d dy=%d", tc.dx, tc.dy)
	}
}

func TestStart_PushesInitialState(t *testing.T) {
	h := newHarness(store.WindowConfig{Left: 40, Top: 50, Alternate: true, Scale: 1.5})
	assert.Equal(t, Point{X: 40, Y: 50}, h.view.pos)
	assert.True(t, h.view.alternate)
	assert.InDelta(t, 1.5, h.view.collapsedScale, 1e-9)
	assert.Equal(t, Collapsed, h.c.State())
}

func TestClick_Expands(t *testing.T) {
	h := newHarness(defaultConfig(), "/a")
	h.c.Press(Point{X: 100, Y: 100})
	h.c.Move(Point{X: 104, Y: 97})
	h.c.Release()

	assert.Equal(t, Expanded, h.c.State())
	assert.Equal(t, []string{"/a"}, rowPaths(h.view.panel))
	assert.Equal(t, Point{X: 500, Y: 300}, h.c.Position())
	assert.Empty(t, h.store.configs)
}

func TestDrag_MovesAndPersistsOnRelease(t *testing.T) {
	h := newHarness(defaultConfig())
	h.c.Press(Point{X: 10, Y: 10})

	h.c.Move(Point{X: 14, Y: 10})
	assert.Equal(t, Point{X: 500, Y: 300}, h.c.Position(), "below threshold")

	h.c.Move(Point{X: 20, Y: 10})
	assert.Equal(t, Point{X: 510, Y: 300}, h.view.pos)

	// Once dragging, small offsets still move the window.
	h.c.Move(Point{X: 11, Y: 12})
	assert.Equal(t, Point{X: 501, Y: 302}, h.view.pos)
	assert.Empty(t, h.store.configs, "no save before release")

	h.c.Release()
	assert.Equal(t, Collapsed, h.c.State(), "a drag is not a click")
	require.Len(t, h.store.configs, 1)
	assert.Equal(t, 501, h.store.lastConfig().Left)
	assert.Equal(t, 302, h.store.lastConfig().Top)
}

func TestRelease_WithoutPressIgnored(t *testing.T) {
	h := newHarness(defaultConfig())
	h.c.Move(Point{X: 300, Y: 300})
	h.c.Release()
	assert.Equal(t, Collapsed, h.c.State())
	assert.Equal(t, 1, h.view.moves, "only the initial placement")
}

func TestWheel_StepsAndSaturates(t *testing.T) {
	h := newHarness(defaultConfig())

	h.c.Wheel(120)
	assert.InDelta(t, 1.1, h.c.Scale(), 1e-9)
	assert.InDelta(t, 1.1, h.view.scale, 1e-9)
	require.Len(t, h.store.configs, 1)
	assert.InDelta(t, 1.1, h.store.lastConfig().Scale, 1e-9)

	for i := 0; i < 40; i++ {
		h.c.Wheel(-1)
	}
	assert.InDelta(t, 0.5, h.c.Scale(), 1e-9)
	saves := len(h.store.configs)
	h.c.Wheel(-1)
	assert.Len(t, h.store.configs, saves, "no save at the floor")

	for i := 0; i < 40; i++ {
		h.c.Wheel(1)
	}
	assert.InDelta(t, 3.0, h.c.Scale(), 1e-9)
}

func TestWheel_IgnoredWhenExpanded(t *testing.T) {
	h := newHarness(defaultConfig())
	h.click()
	h.c.Wheel(1)
	assert.InDelta(t, 1.0, h.c.Scale(), 1e-9)
	assert.Empty(t, h.store.configs)
}

func TestSecondaryClick(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		h := newHarness(defaultConfig())
		h.view.confirm = true
		h.c.SecondaryClick()
		assert.True(t, h.view.quit)
	})
	t.Run("declined", func(t *testing.T) {
		h := newHarness(defaultConfig())
		h.c.SecondaryClick()
		assert.Equal(t, 1, h.view.confirmAsked)
		assert.False(t, h.view.quit)
	})
	t.Run("expanded", func(t *testing.T) {
		h := newHarness(defaultConfig())
		h.view.confirm = true
		h.click()
		h.c.SecondaryClick()
		assert.Zero(t, h.view.confirmAsked)
		assert.False(t, h.view.quit)
	})
}

func TestDeactivate(t *testing.T) {
	h := newHarness(defaultConfig(), "/a")
	h.c.Deactivate()
	assert.Equal(t, Collapsed, h.c.State())

	h.click()
	h.c.Deactivate()
	assert.Equal(t, Collapsed, h.c.State())
}

func TestDeactivate_SuppressedWhileDialogOpen(t *testing.T) {
	h := newHarness(defaultConfig())
	h.click()
	h.picker.onPick = func() {
		assert.True(t, h.c.DialogOpen())
		h.c.Deactivate()
		assert.Equal(t, Expanded, h.c.State())
	}
	h.pick("/new")
	assert.False(t, h.c.DialogOpen())
	assert.Equal(t, Expanded, h.c.State())
	assert.Equal(t, []bool{false, true}, h.view.topmost)
}

func TestClickEntry_CopyMode(t *testing.T) {
	h := newHarness(defaultConfig(), "/a", "/b")
	h.click()
	h.c.ClickEntry("/b")

	assert.Equal(t, []string{"/b"}, h.clip.texts)
	assert.Empty(t, h.launch.dirs)
	assert.Equal(t, []string{"/b", "/a"}, pathsOf(h.c.Entries()))
	assert.Equal(t, []string{"/b", "/a"}, h.store.lastSave())
	assert.Equal(t, Collapsed, h.c.State())
	assert.Equal(t, 1, h.view.flashes)
}

func TestClickEntry_ClipboardFailureAborts(t *testing.T) {
	h := newHarness(defaultConfig(), "/a", "/b")
	h.clip.err = errBoom
	h.click()
	h.c.ClickEntry("/b")

	assert.Equal(t, []string{"/a", "/b"}, pathsOf(h.c.Entries()))
	assert.Equal(t, Expanded, h.c.State())
	assert.Zero(t, h.view.flashes)
	assert.Empty(t, h.store.saves)
}

func TestClickEntry_LaunchMode(t *testing.T) {
	h := newHarness(store.WindowConfig{Left: 1, Top: 1, Alternate: true, Scale: 1}, "/a", "/b")
	h.launch.err = errBoom
	h.click()
	h.c.ClickEntry("/b")

	assert.Equal(t, []string{"/b"}, h.launch.dirs)
	assert.Empty(t, h.clip.texts)
	assert.Equal(t, []string{"/b", "/a"}, pathsOf(h.c.Entries()), "launch failure still promotes")
	assert.Equal(t, Collapsed, h.c.State())
	assert.Equal(t, 1, h.view.flashes)
}

func TestClickEntry_HomeKeepsSlot(t *testing.T) {
	h := newHarness(defaultConfig(), home, "/a", "/b")
	h.click()
	h.c.ClickEntry("/b")
	assert.Equal(t, []string{home, "/b", "/a"}, pathsOf(h.c.Entries()))

	saves := len(h.store.saves)
	h.click()
	h.c.ClickEntry(home)
	assert.Equal(t, []string{home, "/b", "/a"}, pathsOf(h.c.Entries()))
	assert.Len(t, h.store.saves, saves)
	assert.Equal(t, []string{"/b", home}, h.clip.texts)
}

func TestToggleMode(t *testing.T) {
	h := newHarness(defaultConfig(), "/a")
	h.click()
	h.c.ToggleMode()

	assert.True(t, h.c.Alternate())
	assert.True(t, h.view.alternate)
	assert.True(t, h.store.lastConfig().Alternate)
	assert.True(t, h.view.panel.Alternate)
	assert.Equal(t, Expanded, h.c.State())

	h.c.ToggleMode()
	assert.False(t, h.store.lastConfig().Alternate)
}

func TestAdd(t *testing.T) {
	t.Run("inserts each at the top", func(t *testing.T) {
		h := newHarness(defaultConfig(), "/x")
		h.click()
		h.pick("/a", "/b", "/x")
		assert.Equal(t, []string{"/b", "/a", "/x"}, pathsOf(h.c.Entries()))
		require.Len(t, h.store.saves, 1)
		assert.Equal(t, []string{"/b", "/a", "/x"}, rowPaths(h.view.panel))
	})
	t.Run("cancelled", func(t *testing.T) {
		h := newHarness(defaultConfig(), "/x")
		h.click()
		h.pick()
		assert.Empty(t, h.store.saves)
		assert.False(t, h.c.DialogOpen())
	})
	t.Run("duplicates only", func(t *testing.T) {
		h := newHarness(defaultConfig(), "/x")
		h.pick("/X")
		assert.Empty(t, h.store.saves)
	})
	t.Run("picker error", func(t *testing.T) {
		h := newHarness(defaultConfig(), "/x")
		h.click()
		h.picker.err = errBoom
		h.pick("/a")
		assert.Equal(t, []string{"/x"}, pathsOf(h.c.Entries()))
		assert.False(t, h.c.DialogOpen())
		assert.Equal(t, Expanded, h.c.State())
	})
}

func TestScenario_AddThenUse(t *testing.T) {
	h := newHarness(defaultConfig())
	h.click()
	h.pick("/a")
	h.pick("/b")
	assert.Equal(t, []string{"/b", "/a"}, pathsOf(h.c.Entries()))

	h.c.ClickEntry("/a")
	assert.Equal(t, []string{"/a"}, h.clip.texts)
	assert.Equal(t, []string{"/a", "/b"}, h.store.lastSave())
	assert.Equal(t, Collapsed, h.c.State())
	assert.Equal(t, 1, h.view.flashes)
}

func TestScenario_AddThenUseWithHome(t *testing.T) {
	h := newHarness(defaultConfig(), home)
	h.click()
	h.pick("/a")
	h.pick("/b")
	assert.Equal(t, []string{home, "/b", "/a"}, pathsOf(h.c.Entries()))

	h.c.ClickEntry("/a")
	assert.Equal(t, []string{home, "/a", "/b"}, h.store.lastSave())
}

func TestExpand_PrunesMissing(t *testing.T) {
	h := newHarness(defaultConfig(), "/a", "/gone", "/b")
	h.gone["/gone"] = true
	h.click()
	assert.Equal(t, []string{"/a", "/b"}, rowPaths(h.view.panel))
	require.Len(t, h.store.saves, 1)
	assert.Equal(t, []string{"/a", "/b"}, h.store.lastSave())
}

func TestExpand_NothingMissingDoesNotSave(t *testing.T) {
	h := newHarness(defaultConfig(), "/a", "/b")
	h.click()
	assert.Empty(t, h.store.saves)
}

func TestExpand_HomeFirst(t *testing.T) {
	h := newHarness(defaultConfig(), "/a", home)
	h.click()
	assert.Equal(t, []string{home, "/a"}, rowPaths(h.view.panel))
	assert.True(t, h.view.panel.Rows[0].Home)
	assert.Len(t, h.store.saves, 1)

	h.c.Deactivate()
	h.click()
	assert.Len(t, h.store.saves, 1, "already first")
}

func TestDeleteAndMoveUp_RebuildInPlace(t *testing.T) {
	h := newHarness(defaultConfig(), "/a", "/b", "/c")
	h.click()
	shows := h.view.expandedShows

	h.c.MoveUp("/c")
	assert.Equal(t, []string{"/a", "/c", "/b"}, rowPaths(h.view.panel))
	h.c.Delete("/a")
	assert.Equal(t, []string{"/c", "/b"}, rowPaths(h.view.panel))
	assert.Equal(t, shows+2, h.view.expandedShows)
	assert.Equal(t, Expanded, h.c.State())
	assert.Equal(t, []string{"/c", "/b"}, h.store.lastSave())

	h.c.MoveUp("/c")
	assert.Len(t, h.store.saves, 2, "no-op move does not save")
}

func TestExpand_KeepsPanelOnScreen(t *testing.T) {
	h := newHarness(store.WindowConfig{Left: 1880, Top: 1020, Scale: 1}, "/a")
	h.click()
	p := h.view.panel
	assert.Equal(t, Point{X: 1920 - p.Width, Y: 1040 - p.Height}, h.c.Position())
	assert.Equal(t, h.c.Position(), h.view.pos)
}

func TestExpand_KeepsScaledPanelOnScreen(t *testing.T) {
	h := newHarness(store.WindowConfig{Left: 1700, Top: 900, Scale: 1}, "/a")
	h.c.pxScale = func() float64 { return 2 }
	h.click()
	p := h.view.panel
	assert.Equal(t, Point{X: 1920 - 2*p.Width, Y: 1040 - 2*p.Height}, h.c.Position())
}

func TestDisplaySettled(t *testing.T) {
	h := newHarness(defaultConfig())
	h.c.DisplaySettled(testGeom)
	assert.Empty(t, h.store.configs)
	assert.Equal(t, []bool{true}, h.view.topmost)

	// The right-hand monitor went away.
	h.c.pos = Point{X: 2500, Y: 200}
	h.c.DisplaySettled(testGeom)
	left, top := testGeom.DefaultPosition()
	assert.Equal(t, Point{X: left, Y: top}, h.view.pos)
	require.Len(t, h.store.configs, 1)
	assert.Equal(t, left, h.store.lastConfig().Left)
}

func TestDisplaySettled_UsesNewGeometry(t *testing.T) {
	h := newHarness(store.WindowConfig{Left: 2500, Top: 200, Scale: 1})
	wide := display.Geometry{
		Virtual:  display.Rect{Left: 0, Top: 0, Right: 3840, Bottom: 1080},
		WorkArea: testGeom.WorkArea,
	}
	h.c.DisplaySettled(wide)
	assert.Equal(t, Point{X: 2500, Y: 200}, h.c.Position())
	assert.Empty(t, h.store.configs)
}

func TestReloadFavorites(t *testing.T) {
	h := newHarness(defaultConfig(), "/a")
	h.click()

	h.c.ReloadFavorites(entriesOf("/a"))
	shows := h.view.expandedShows

	h.c.ReloadFavorites(entriesOf("/z", "/a"))
	assert.Equal(t, []string{"/z", "/a"}, rowPaths(h.view.panel))
	assert.Equal(t, shows+1, h.view.expandedShows)
	assert.Empty(t, h.store.saves, "a clean external edit is not rewritten")
}

func TestReloadFavorites_NormalisesAndSaves(t *testing.T) {
	h := newHarness(defaultConfig(), home)
	h.c.ReloadFavorites([]favorites.Entry{
		{Name: "a", Path: "/a"},
		{Name: "Desktop", Path: home},
		{Name: "A", Path: "/A"},
	})
	assert.Equal(t, []string{home, "/a"}, pathsOf(h.c.Entries()))
	assert.Equal(t, []string{home, "/a"}, h.store.lastSave())
}

func TestAdd_IgnoredWhilePickerOpen(t *testing.T) {
	h := newHarness(defaultConfig())
	nested := 0
	h.picker.paths = []string{"/a"}
	h.picker.onPick = func() {
		nested++
		if nested == 1 {
			h.c.Add()
		}
	}
	h.c.Add()
	assert.Equal(t, 1, nested)
	assert.Equal(t, []string{"/a"}, pathsOf(h.c.Entries()))
}

func TestReloadFavorites_IgnoredWhileDialogOpen(t *testing.T) {
	h := newHarness(defaultConfig(), "/a")
	h.picker.onPick = func() {
		h.c.ReloadFavorites(entriesOf("/z"))
	}
	h.pick()
	assert.Equal(t, []string{"/a"}, pathsOf(h.c.Entries()))
}

func TestConfig(t *testing.T) {
	h := newHarness(store.WindowConfig{Left: 7, Top: 8, Alternate: true, Scale: 2.04})
	assert.Equal(t, store.WindowConfig{Left: 7, Top: 8, Alternate: true, Scale: 2.0}, h.c.Config())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "collapsed", Collapsed.String())
	assert.Equal(t, "expanded", Expanded.String())
}
