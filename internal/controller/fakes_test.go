package controller

import (
	"errors"

	"github.com/oukeidos/quickpaths/internal/display"
	"github.com/oukeidos/quickpaths/internal/favorites"
	"github.com/oukeidos/quickpaths/internal/store"
)

const home = `C:\Users\me\Desktop`

var testGeom = display.Geometry{
	Virtual:  display.Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080},
	WorkArea: display.Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1040},
}

var errBoom = errors.New("boom")

type fakeStore struct {
	saves   [][]favorites.Entry
	configs []store.WindowConfig
}

func (s *fakeStore) Save(entries []favorites.Entry) error {
	s.saves = append(s.saves, entries)
	return nil
}

func (s *fakeStore) SaveConfig(cfg store.WindowConfig) error {
	s.configs = append(s.configs, cfg)
	return nil
}

func (s *fakeStore) lastConfig() store.WindowConfig {
	return s.configs[len(s.configs)-1]
}

func (s *fakeStore) lastSave() []string {
	return pathsOf(s.saves[len(s.saves)-1])
}

type fakeClipboard struct {
	texts []string
	err   error
}

func (c *fakeClipboard) WriteText(text string) error {
	if c.err != nil {
		return c.err
	}
	c.texts = append(c.texts, text)
	return nil
}

type fakeLauncher struct {
	dirs []string
	err  error
}

func (l *fakeLauncher) Launch(dir string) error {
	l.dirs = append(l.dirs, dir)
	return l.err
}

type fakePicker struct {
	paths  []string
	err    error
	onPick func()
}

func (p *fakePicker) PickFolders(done func([]string, error)) {
	if p.onPick != nil {
		p.onPick()
	}
	done(p.paths, p.err)
}

type fakeView struct {
	collapsedScale float64
	scale          float64
	panel          Panel
	expandedShows  int
	pos            Point
	moves          int
	alternate      bool
	topmost        []bool
	flashes        int
	confirm        bool
	confirmAsked   int
	quit           bool
}

func (v *fakeView) ShowCollapsed(scale float64) { v.collapsedScale = scale }
func (v *fakeView) ShowExpanded(p Panel)        { v.panel = p; v.expandedShows++ }
func (v *fakeView) ApplyScale(scale float64)    { v.scale = scale }
func (v *fakeView) MoveTo(pos Point)            { v.pos = pos; v.moves++ }
func (v *fakeView) SetAlternate(on bool)        { v.alternate = on }
func (v *fakeView) SetTopmost(on bool)          { v.topmost = append(v.topmost, on) }
func (v *fakeView) Flash()                      { v.flashes++ }
func (v *fakeView) Quit()                       { v.quit = true }

func (v *fakeView) ConfirmQuit(onYes func()) {
	v.confirmAsked++
	if v.confirm {
		onYes()
	}
}

type harness struct {
	c      *Controller
	view   *fakeView
	store  *fakeStore
	clip   *fakeClipboard
	launch *fakeLauncher
	picker *fakePicker
	gone   map[string]bool
}

func newHarness(cfg store.WindowConfig, paths ...string) *harness {
	h := &harness{
		view:   &fakeView{},
		store:  &fakeStore{},
		clip:   &fakeClipboard{},
		launch: &fakeLauncher{},
		picker: &fakePicker{},
		gone:   map[string]bool{},
	}
	h.c = New(h.view, Services{
		Store:     h.store,
		Clipboard: h.clip,
		Launcher:  h.launch,
		Picker:    h.picker,
		Exists:    func(p string) bool { return !h.gone[p] },
	}, Options{
		Home:     home,
		Entries:  entriesOf(paths...),
		Config:   cfg,
		Geometry: testGeom,
	})
	h.c.Start()
	return h
}

func defaultConfig() store.WindowConfig {
	return store.WindowConfig{Left: 500, Top: 300, Scale: 1.0}
}

// click performs a press and release without movement.
func (h *harness) click() {
	h.c.Press(Point{X: 10, Y: 10})
	h.c.Release()
}

func (h *harness) pick(paths ...string) {
	h.picker.paths = paths
	h.c.Add()
}

func entriesOf(paths ...string) []favorites.Entry {
	out := make([]favorites.Entry, 0, len(paths))
	for _, p := range paths {
		out = append(out, favorites.Entry{Name: favorites.NameFor(p), Path: p})
	}
	return out
}

func pathsOf(entries []favorites.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Path)
	}
	return out
}

func rowPaths(p Panel) []string {
	out := make([]string, 0, len(p.Rows))
	for _, r := range p.Rows {
		out = append(out, r.Path)
	}
	return out
}
