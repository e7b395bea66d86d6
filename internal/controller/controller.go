// Package controller is the widget state machine. It consumes normalized
// input events, owns the favorites list and window configuration, and drives
// a View. It is not safe for concurrent use; every method must be called from
// the UI goroutine.
package controller

import (
	"github.com/oukeidos/quickpaths/internal/display"
	"github.com/oukeidos/quickpaths/internal/favorites"
	"github.com/oukeidos/quickpaths/internal/logger"
	"github.com/oukeidos/quickpaths/internal/store"
)

// State is the widget's visible mode.
type State int

const (
	Collapsed State = iota
	Expanded
)

func (s State) String() string {
	if s == Expanded {
		return "expanded"
	}
	return "collapsed"
}

// DragThreshold is how far (in pixels, either axis) the pointer must travel
// before a press becomes a drag.
const DragThreshold = 5

// IsDrag reports whether a pointer offset exceeds the drag threshold.
func IsDrag(dx, dy int) bool {
	return abs(dx) > DragThreshold || abs(dy) > DragThreshold
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Point is a position in screen pixels.
type Point struct {
	X, Y int
}

// Persister saves the two data documents.
type Persister interface {
	Save(entries []favorites.Entry) error
	SaveConfig(cfg store.WindowConfig) error
}

// Clipboard receives copied paths.
type Clipboard interface {
	WriteText(text string) error
}

// Launcher starts the alternate-mode tool in a folder.
type Launcher interface {
	Launch(dir string) error
}

// Picker asks the user for folders without blocking the caller. done runs
// exactly once on the UI goroutine; a cancelled dialog yields no paths and no
// error.
type Picker interface {
	PickFolders(done func(paths []string, err error))
}

// Services are the host collaborators the controller calls out to.
type Services struct {
	Store     Persister
	Clipboard Clipboard
	Launcher  Launcher
	Picker    Picker
	Exists    func(path string) bool
}

// View renders controller decisions.
type View interface {
	ShowCollapsed(scale float64)
	ShowExpanded(panel Panel)
	ApplyScale(scale float64)
	MoveTo(pos Point)
	SetAlternate(alternate bool)
	SetTopmost(on bool)
	Flash()
	ConfirmQuit(onYes func())
	Quit()
}

// Options seed a controller.
type Options struct {
	Home     string
	Entries  []favorites.Entry
	Config   store.WindowConfig
	Geometry display.Geometry
	Measure  Measure

	// PixelScale converts panel units to screen pixels. Nil means 1.
	PixelScale func() float64
}

type gesture struct {
	down        bool
	dragged     bool
	pressScreen Point
	origin      Point
}

// Controller implements the collapsed/expanded widget behavior.
type Controller struct {
	view    View
	svc     Services
	list    *favorites.List
	geom    display.Geometry
	measure Measure
	pxScale func() float64

	state      State
	pos        Point
	alternate  bool
	scale      float64
	dialogOpen bool
	drag       gesture
}

// New builds a collapsed controller. List mutations are persisted through
// svc.Store as they happen.
func New(view View, svc Services, opts Options) *Controller {
	c := &Controller{
		view:      view,
		svc:       svc,
		list:      favorites.New(opts.Home, opts.Entries),
		geom:      opts.Geometry,
		measure:   opts.Measure,
		pxScale:   opts.PixelScale,
		pos:       Point{X: opts.Config.Left, Y: opts.Config.Top},
		alternate: opts.Config.Alternate,
		scale:     store.ClampScale(opts.Config.Scale),
	}
	if c.measure == nil {
		c.measure = EstimateWidth
	}
	if c.pxScale == nil {
		c.pxScale = func() float64 { return 1 }
	}
	if c.svc.Exists == nil {
		c.svc.Exists = func(string) bool { return true }
	}
	c.list.OnChange = c.saveList
	return c
}

// Start pushes the initial state to the view.
func (c *Controller) Start() {
	c.view.SetAlternate(c.alternate)
	c.view.MoveTo(c.pos)
	c.view.ShowCollapsed(c.scale)
}

func (c *Controller) State() State               { return c.state }
func (c *Controller) DialogOpen() bool           { return c.dialogOpen }
func (c *Controller) Position() Point            { return c.pos }
func (c *Controller) Scale() float64             { return c.scale }
func (c *Controller) Alternate() bool            { return c.alternate }
func (c *Controller) Entries() []favorites.Entry { return c.list.Entries() }

// Config is the current window configuration.
func (c *Controller) Config() store.WindowConfig {
	return store.WindowConfig{
		Left:      c.pos.X,
		Top:       c.pos.Y,
		Alternate: c.alternate,
		Scale:     c.scale,
	}
}

func (c *Controller) saveList(entries []favorites.Entry) {
	if err := c.svc.Store.Save(entries); err != nil {
		logger.Warn("Failed to save favorites", "error", err)
	}
}

// SaveConfig persists the window configuration. Failures are logged.
func (c *Controller) SaveConfig() {
	cfg := c.Config()
	logger.Debug("Saving config", "left", cfg.Left, "top", cfg.Top, "scale", cfg.Scale)
	if err := c.svc.Store.SaveConfig(cfg); err != nil {
		logger.Warn("Failed to save config", "error", err)
	}
}

// Press starts a primary-button gesture at a screen position.
func (c *Controller) Press(screen Point) {
	c.drag = gesture{down: true, pressScreen: screen, origin: c.pos}
}

// Move tracks the pointer during a gesture. Once the threshold is crossed the
// window follows the pointer until release.
func (c *Controller) Move(screen Point) {
	if !c.drag.down {
		return
	}
	dx := screen.X - c.drag.pressScreen.X
	dy := screen.Y - c.drag.pressScreen.Y
	if !c.drag.dragged && IsDrag(dx, dy) {
		c.drag.dragged = true
	}
	if !c.drag.dragged {
		return
	}
	next := Point{X: c.drag.origin.X + dx, Y: c.drag.origin.Y + dy}
	if next == c.pos {
		return
	}
	c.pos = next
	c.view.MoveTo(c.pos)
}

// Release ends a gesture. A gesture that never became a drag is a click;
// a drag persists the final position. Release without a press is ignored.
func (c *Controller) Release() {
	if !c.drag.down {
		return
	}
	dragged := c.drag.dragged
	c.drag = gesture{}
	if dragged {
		c.SaveConfig()
		return
	}
	c.click()
}

func (c *Controller) click() {
	if c.state == Collapsed {
		c.expand()
	}
}

// Wheel resizes the collapsed dot by one step per event in the direction of
// delta.
func (c *Controller) Wheel(delta float64) {
	if c.state != Collapsed || delta == 0 {
		return
	}
	step := store.ScaleStep
	if delta < 0 {
		step = -step
	}
	next := store.ClampScale(c.scale + step)
	if next == c.scale {
		return
	}
	c.scale = next
	c.view.ApplyScale(c.scale)
	c.SaveConfig()
}

// SecondaryClick asks to quit when the dot is collapsed.
func (c *Controller) SecondaryClick() {
	if c.state != Collapsed {
		return
	}
	c.view.ConfirmQuit(func() {
		logger.Info("Quit confirmed")
		c.view.Quit()
	})
}

// Deactivate handles focus moving to another window.
func (c *Controller) Deactivate() {
	if c.state == Expanded && !c.dialogOpen {
		c.collapse()
	}
}

// ClickEntry uses a favorite: copy its path (normal mode) or launch the tool
// in it (alternate mode), then promote it, collapse and flash.
func (c *Controller) ClickEntry(path string) {
	if c.alternate {
		if err := c.svc.Launcher.Launch(path); err != nil {
			logger.Warn("Failed to launch tool", "path", path, "error", err)
		}
	} else {
		if err := c.svc.Clipboard.WriteText(path); err != nil {
			logger.Warn("Failed to copy path", "path", path, "error", err)
			return
		}
	}
	c.list.PromoteRecent(path)
	c.collapse()
	c.view.Flash()
}

// Delete removes a favorite.
func (c *Controller) Delete(path string) {
	c.list.Remove(path)
	c.rebuildIfExpanded()
}

// MoveUp moves a favorite one slot toward the top.
func (c *Controller) MoveUp(path string) {
	c.list.MoveUp(path)
	c.rebuildIfExpanded()
}

// ToggleMode flips between copy and launch mode.
func (c *Controller) ToggleMode() {
	c.alternate = !c.alternate
	logger.Info("Mode toggled", "alternate", c.alternate)
	c.SaveConfig()
	c.view.SetAlternate(c.alternate)
	c.rebuildIfExpanded()
}

// Add opens the folder picker. Every newly chosen folder is inserted at the
// top once it closes. Outside-click collapse is suppressed while it is open.
func (c *Controller) Add() {
	if c.dialogOpen {
		return
	}
	c.dialogOpen = true
	c.view.SetTopmost(false)
	c.svc.Picker.PickFolders(c.finishAdd)
}

func (c *Controller) finishAdd(picked []string, err error) {
	defer func() {
		c.dialogOpen = false
		c.view.SetTopmost(true)
		c.rebuildIfExpanded()
	}()

	if err != nil {
		logger.Warn("Folder picker failed", "error", err)
		return
	}
	if n := c.list.AddAll(picked); n > 0 {
		logger.Info("Added folders", "count", n)
	}
}

// DisplaySettled re-validates the window position after the monitor layout
// changed and stopped changing.
func (c *Controller) DisplaySettled(geom display.Geometry) {
	c.geom = geom
	logger.Info("Display change settled",
		"left", c.pos.X, "top", c.pos.Y, "virtual", geom.Virtual.String())
	if !geom.OnScreen(c.pos.X, c.pos.Y) {
		left, top := geom.DefaultPosition()
		logger.Info("Window off-screen, resetting", "left", left, "top", top)
		c.pos = Point{X: left, Y: top}
		c.view.MoveTo(c.pos)
		c.SaveConfig()
	}
	c.view.SetTopmost(true)
}

// ReloadFavorites adopts a list edited outside the app. It is ignored while
// the picker is open or when nothing differs.
func (c *Controller) ReloadFavorites(entries []favorites.Entry) {
	if c.dialogOpen || favorites.Equal(entries, c.list.Entries()) {
		return
	}
	if c.list.Replace(entries) {
		logger.Info("Favorites reloaded", "count", c.list.Len())
		c.rebuildIfExpanded()
	}
}

func (c *Controller) expand() {
	c.state = Expanded
	c.rebuild()
}

func (c *Controller) collapse() {
	c.state = Collapsed
	c.view.ShowCollapsed(c.scale)
}

func (c *Controller) rebuildIfExpanded() {
	if c.state == Expanded {
		c.rebuild()
	}
}

func (c *Controller) rebuild() {
	if n := c.list.PruneMissing(c.svc.Exists); n > 0 {
		logger.Info("Pruned missing folders", "count", n)
	}
	c.list.EnsureHomeFirst()

	panel := Layout(c.list.Entries(), c.list.Home(), c.alternate, c.measure)
	c.view.ShowExpanded(panel)

	px := c.pxScale()
	w, h := int(float64(panel.Width)*px), int(float64(panel.Height)*px)
	if next := keepInside(c.pos, w, h, c.geom); next != c.pos {
		c.pos = next
		c.view.MoveTo(c.pos)
	}
}

// keepInside shifts a panel of size w×h at pos so it stays inside the work
// area when it starts there, or inside the virtual screen otherwise.
func keepInside(pos Point, w, h int, geom display.Geometry) Point {
	area := geom.Virtual
	wa := geom.WorkArea
	if pos.X >= wa.Left && pos.X < wa.Right && pos.Y >= wa.Top && pos.Y < wa.Bottom {
		area = wa
	}
	if pos.X+w > area.Right {
		pos.X = area.Right - w
	}
	if pos.Y+h > area.Bottom {
		pos.Y = area.Bottom - h
	}
	if pos.X < area.Left {
		pos.X = area.Left
	}
	if pos.Y < area.Top {
		pos.Y = area.Top
	}
	return pos
}
