package main

import (
	"context"
	"errors"
	"image/color"
	"math"
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"

	"github.com/oukeidos/quickpaths/internal/breath"
	"github.com/oukeidos/quickpaths/internal/controller"
	"github.com/oukeidos/quickpaths/internal/crash"
	"github.com/oukeidos/quickpaths/internal/debounce"
	"github.com/oukeidos/quickpaths/internal/display"
	"github.com/oukeidos/quickpaths/internal/favorites"
	"github.com/oukeidos/quickpaths/internal/host"
	"github.com/oukeidos/quickpaths/internal/logger"
)

const (
	appID = "com.oukeidos.quickpaths"

	topmostInterval     = 5 * time.Minute
	displayPollInterval = 2 * time.Second
	displaySettleDelay  = 1500 * time.Millisecond
)

// widgetTheme keeps the dark variant regardless of the OS setting and uses
// the panel's item text size.
type widgetTheme struct{ fyne.Theme }

func (t widgetTheme) Color(n fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(n, theme.VariantDark)
}

func (t widgetTheme) Size(n fyne.ThemeSizeName) float32 {
	if n == theme.SizeNameText {
		return itemTextSize
	}
	return t.Theme.Size(n)
}

// widgetApp is the Fyne side of the widget. It implements controller.View and
// feeds pointer input and timer events into the controller, always on the UI
// goroutine.
type widgetApp struct {
	ctx     *appContext
	session *crash.Session

	app        fyne.App
	window     fyne.Window
	placement  *host.Placement
	ctrl       *controller.Controller
	breath     *breath.Driver
	dot        *dotWidget
	confirmWin fyne.Window

	expanded bool
	anchor   controller.Point
	exitCode int

	snapshot  atomic.Pointer[crash.State]
	fatalOnce sync.Once
}

func runApp(opts *rootOptions) (code int) {
	if opts.restartCount < 0 {
		opts.restartCount = 0
	}
	if d := crash.StartupDelay(opts.restartCount); d > 0 {
		time.Sleep(d)
	}

	actx, err := newAppContext(opts)
	if errors.Is(err, host.ErrAlreadyRunning) {
		logger.Info("Another instance is running, exiting")
		return crash.ExitClean
	}
	if err != nil {
		logger.Error("Startup failed", "error", err)
		return crash.ExitRunFailure
	}

	defer func() {
		if r := recover(); r != nil {
			actx.session.Report("main", r, debug.Stack())
			code = crash.ExitProcessPanic
		}
		logger.Info("QuickPaths exiting",
			"exit_code", code,
			"uptime", actx.session.Uptime().Round(time.Second),
		)
		crash.Relaunch(executablePath(), os.Args[1:], code, opts.restartCount)
		actx.shutdown()
	}()

	return newWidgetApp(actx).run()
}

func newWidgetApp(actx *appContext) *widgetApp {
	return &widgetApp{
		ctx:      actx,
		session:  actx.session,
		breath:   breath.NewDriver(),
		exitCode: crash.ExitRunFailure,
	}
}

// run builds the window and blocks in the Fyne event loop. The exit code is
// ExitClean only after a confirmed quit; any other end of the loop counts as
// a failure.
func (a *widgetApp) run() int {
	a.app = app.NewWithID(appID)
	a.app.Settings().SetTheme(widgetTheme{Theme: theme.DefaultTheme()})
	a.window = newBorderlessWindow(a.app)
	a.window.SetPadded(false)
	a.window.SetFixedSize(true)
	a.window.SetMaster()
	a.placement = host.NewPlacement(a.window)

	st := a.ctx.store
	geom := display.Current()
	cfg := st.LoadConfig(geom)

	a.dot = newDotWidget(a.breath, a)
	a.ctrl = controller.New(a, controller.Services{
		Store:     st,
		Clipboard: host.NewClipboard(),
		Launcher:  host.NewLauncher(),
		Picker:    host.NewPicker(a.safeGo, a.safeDo),
		Exists:    host.DirExists,
	}, controller.Options{
		Home:       host.HomeFolder(),
		Entries:    st.Load(),
		Config:     cfg,
		Geometry:   geom,
		Measure:    measureLabel,
		PixelScale: a.pixelScale,
	})
	a.anchor = a.ctrl.Position()
	a.session.SetState(a.crashState)
	a.ctx.onShutdown("config.save", func() error {
		return st.SaveConfig(a.ctrl.Config())
	})

	timers, stopTimers := context.WithCancel(context.Background())
	a.ctx.onShutdown("timers.stop", func() error {
		stopTimers()
		return nil
	})

	a.window.SetContent(a.dot)
	a.window.Resize(dotSize(cfg.Scale))

	lc := a.app.Lifecycle()
	lc.SetOnStarted(func() {
		a.guard("app.started", func() {
			a.placement.HideFromTaskbar()
			a.ctrl.Start()
			a.SetTopmost(true)
			a.startTimers(timers)
		})
	})
	lc.SetOnExitedForeground(func() {
		a.guard("app.deactivate", a.ctrl.Deactivate)
	})

	a.window.ShowAndRun()
	return a.exitCode
}

func newBorderlessWindow(fa fyne.App) fyne.Window {
	if drv, ok := fa.(desktop.App); ok {
		return drv.NewSplashWindow()
	}
	return fa.NewWindow("QuickPaths")
}

func (a *widgetApp) startTimers(ctx context.Context) {
	a.safeGo("breath.ticker", func() {
		tickEvery(ctx, breath.TickInterval, func() { a.safeDo("breath.tick", a.breathTick) })
	})
	a.safeGo("topmost.ticker", func() {
		tickEvery(ctx, topmostInterval, func() { a.safeDo("topmost.reassert", a.reassertTopmost) })
	})

	settled := debounce.New(displaySettleDelay, func() {
		a.safeDo("display.settled", func() {
			a.ctrl.DisplaySettled(display.Current())
		})
	})
	a.ctx.onShutdown("display.debounce", func() error {
		settled.Stop()
		return nil
	})
	a.safeGo("display.poll", func() {
		display.Poll(ctx, displayPollInterval, func(g display.Geometry) {
			logger.Debug("Display change detected", "virtual", g.Virtual.String())
			settled.Trigger()
		})
	})

	a.safeGo("favorites.watch", func() {
		err := a.ctx.store.Watch(ctx, func(entries []favorites.Entry) {
			a.safeDo("favorites.reload", func() { a.ctrl.ReloadFavorites(entries) })
		})
		if err != nil {
			logger.Warn("Favorites watcher stopped", "error", err)
		}
	})
}

func tickEvery(ctx context.Context, every time.Duration, fn func()) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			fn()
		}
	}
}

func (a *widgetApp) breathTick() {
	a.breath.Tick()
	if !a.expanded {
		a.dot.Refresh()
	}
}

func (a *widgetApp) reassertTopmost() {
	if a.ctrl.DialogOpen() {
		return
	}
	a.placement.SetTopmost(false)
	a.placement.SetTopmost(true)
}

func measureLabel(text string) int {
	size := fyne.MeasureText(text, itemTextSize, fyne.TextStyle{})
	return int(math.Ceil(float64(size.Width)))
}

func (a *widgetApp) pixelScale() float64 {
	if s := a.window.Canvas().Scale(); s > 0 {
		return float64(s)
	}
	return 1
}

// screenPoint converts a pointer position inside the dot to screen pixels.
// Without a native cursor query the window never moves, so its initial
// position stays a valid origin.
func (a *widgetApp) screenPoint(local fyne.Position) controller.Point {
	if x, y, ok := a.placement.Cursor(); ok {
		return controller.Point{X: x, Y: y}
	}
	s := a.pixelScale()
	return controller.Point{
		X: a.anchor.X + int(float64(local.X)*s),
		Y: a.anchor.Y + int(float64(local.Y)*s),
	}
}

func (a *widgetApp) crashState() crash.State {
	if s := a.snapshot.Load(); s != nil {
		return *s
	}
	return crash.State{}
}

// syncState publishes the controller state for crash reports, which may be
// written from any goroutine.
func (a *widgetApp) syncState() {
	if a.ctrl == nil {
		return
	}
	pos := a.ctrl.Position()
	a.snapshot.Store(&crash.State{
		Expanded:   a.ctrl.State() == controller.Expanded,
		DialogOpen: a.ctrl.DialogOpen(),
		Left:       pos.X,
		Top:        pos.Y,
		Virtual:    display.Current().Virtual,
	})
}

// dotEvents

func (a *widgetApp) DotPressed(local fyne.Position) {
	a.guard("dot.press", func() { a.ctrl.Press(a.screenPoint(local)) })
}

func (a *widgetApp) DotMoved(local fyne.Position) {
	if !a.placement.Supported() {
		return
	}
	a.guard("dot.move", func() { a.ctrl.Move(a.screenPoint(local)) })
}

func (a *widgetApp) DotReleased() {
	a.guard("dot.release", a.ctrl.Release)
}

func (a *widgetApp) DotScrolled(dy float32) {
	if dy == 0 {
		return
	}
	a.guard("dot.wheel", func() { a.ctrl.Wheel(float64(dy)) })
}

func (a *widgetApp) DotSecondary() {
	a.guard("dot.secondary", a.ctrl.SecondaryClick)
}

// panelActions

func (a *widgetApp) ToggleMode() { a.guard("panel.toggle", a.ctrl.ToggleMode) }
func (a *widgetApp) Add()        { a.guard("panel.add", a.ctrl.Add) }

func (a *widgetApp) ClickEntry(path string) {
	a.guard("panel.entry", func() { a.ctrl.ClickEntry(path) })
}

func (a *widgetApp) Delete(path string) {
	a.guard("panel.delete", func() { a.ctrl.Delete(path) })
}

func (a *widgetApp) MoveUp(path string) {
	a.guard("panel.move_up", func() { a.ctrl.MoveUp(path) })
}

// controller.View

func (a *widgetApp) ShowCollapsed(scale float64) {
	a.expanded = false
	a.dot.SetScale(scale)
	a.window.SetContent(a.dot)
	a.window.Resize(dotSize(scale))
	a.syncState()
}

func (a *widgetApp) ShowExpanded(p controller.Panel) {
	a.expanded = true
	a.window.SetContent(newPanelView(p, a))
	a.window.Resize(fyne.NewSize(float32(p.Width), float32(p.Height)))
	a.window.RequestFocus()
	a.syncState()
}

func (a *widgetApp) ApplyScale(scale float64) {
	a.dot.SetScale(scale)
	a.window.Resize(dotSize(scale))
}

func (a *widgetApp) MoveTo(p controller.Point) {
	a.placement.Move(p.X, p.Y)
	a.syncState()
}

func (a *widgetApp) SetAlternate(on bool) {
	a.breath.SetAlternate(on)
	a.dot.Refresh()
}

func (a *widgetApp) SetTopmost(on bool) {
	a.placement.SetTopmost(on)
	a.syncState()
}

func (a *widgetApp) Flash() {
	gen := a.breath.Flash()
	a.dot.Refresh()
	time.AfterFunc(breath.FlashDuration, func() {
		a.safeDo("flash.end", func() {
			if a.breath.EndFlash(gen) {
				a.dot.Refresh()
			}
		})
	})
}

func (a *widgetApp) ConfirmQuit(onYes func()) {
	a.showConfirmWindow("QuickPaths", "Quit QuickPaths?", onYes)
}

func (a *widgetApp) Quit() {
	a.exitCode = crash.ExitClean
	a.app.Quit()
}
