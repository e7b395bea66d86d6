package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/quickpaths/internal/breath"
)

// traceSegments is how many line segments approximate the trace.
const traceSegments = 90

var (
	dotBg      = color.NRGBA{R: 18, G: 20, B: 26, A: 255}
	dotBgHover = color.NRGBA{R: 28, G: 30, B: 38, A: 255}
)

// dotEvents receives pointer input from the dot in widget coordinates.
type dotEvents interface {
	DotPressed(local fyne.Position)
	DotMoved(local fyne.Position)
	DotReleased()
	DotScrolled(dy float32)
	DotSecondary()
}

// dotWidget draws the breathing trace and forwards pointer input.
type dotWidget struct {
	widget.BaseWidget
	driver  *breath.Driver
	events  dotEvents
	scale   float32
	hovered bool
}

var (
	_ desktop.Mouseable = (*dotWidget)(nil)
	_ desktop.Hoverable = (*dotWidget)(nil)
	_ fyne.Draggable    = (*dotWidget)(nil)
	_ fyne.Scrollable   = (*dotWidget)(nil)
)

func newDotWidget(d *breath.Driver, events dotEvents) *dotWidget {
	w := &dotWidget{driver: d, events: events, scale: 1}
	w.ExtendBaseWidget(w)
	return w
}

func dotSize(scale float64) fyne.Size {
	return fyne.NewSize(float32(breath.DotWidth*scale), float32(breath.DotHeight*scale))
}

func (w *dotWidget) SetScale(scale float64) {
	w.scale = float32(scale)
	w.Refresh()
}

func (w *dotWidget) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button == desktop.MouseButtonPrimary {
		w.events.DotPressed(ev.Position)
	}
}

func (w *dotWidget) MouseUp(ev *desktop.MouseEvent) {
	switch ev.Button {
	case desktop.MouseButtonPrimary:
		w.events.DotReleased()
	case desktop.MouseButtonSecondary:
		w.events.DotSecondary()
	}
}

func (w *dotWidget) MouseIn(_ *desktop.MouseEvent) {
	w.hovered = true
	w.Refresh()
}

func (w *dotWidget) MouseMoved(ev *desktop.MouseEvent) {
	w.events.DotMoved(ev.Position)
}

func (w *dotWidget) MouseOut() {
	w.hovered = false
	w.Refresh()
}

func (w *dotWidget) Dragged(ev *fyne.DragEvent) {
	w.events.DotMoved(ev.Position)
}

// DragEnd may follow MouseUp for the same gesture; the controller ignores the
// second release.
func (w *dotWidget) DragEnd() {
	w.events.DotReleased()
}

func (w *dotWidget) Scrolled(ev *fyne.ScrollEvent) {
	w.events.DotScrolled(ev.Scrolled.DY)
}

func (w *dotWidget) Cursor() desktop.Cursor {
	return desktop.PointerCursor
}

func (w *dotWidget) MinSize() fyne.Size {
	return dotSize(float64(w.scale))
}

func (w *dotWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &dotRenderer{
		w:      w,
		bg:     canvas.NewRectangle(dotBg),
		outer:  canvas.NewRadialGradient(color.Transparent, color.Transparent),
		inner:  canvas.NewRadialGradient(color.Transparent, color.Transparent),
		shadow: canvas.NewCircle(color.Transparent),
		head:   canvas.NewCircle(color.Transparent),
	}
	r.bg.StrokeWidth = 1
	r.segments = make([]*canvas.Line, traceSegments)
	for i := range r.segments {
		r.segments[i] = canvas.NewLine(color.Transparent)
	}
	r.objects = []fyne.CanvasObject{r.bg}
	for _, s := range r.segments {
		r.objects = append(r.objects, s)
	}
	r.objects = append(r.objects, r.outer, r.inner, r.shadow, r.head)
	r.Refresh()
	return r
}

type dotRenderer struct {
	w        *dotWidget
	bg       *canvas.Rectangle
	segments []*canvas.Line
	outer    *canvas.RadialGradient
	inner    *canvas.RadialGradient
	shadow   *canvas.Circle
	head     *canvas.Circle
	objects  []fyne.CanvasObject
}

func (r *dotRenderer) Layout(s fyne.Size) {
	r.bg.Resize(s)
	r.bg.Move(fyne.NewPos(0, 0))
}

func (r *dotRenderer) MinSize() fyne.Size { return r.w.MinSize() }

func (r *dotRenderer) Refresh() {
	s := r.w.scale
	pal := r.w.driver.Palette()
	glow := r.w.driver.Glow()

	if r.w.hovered {
		r.bg.FillColor = dotBgHover
	} else {
		r.bg.FillColor = dotBg
	}
	r.bg.StrokeColor = pal.Border
	r.bg.CornerRadius = 6 * s
	r.bg.Resize(dotSize(float64(s)))
	r.bg.Refresh()

	trace := r.w.driver.Trace()
	last := len(trace) - 1
	x := func(i int) float32 {
		return (breath.PadX + float32(i)*breath.WaveW/float32(last)) * s
	}
	for n, line := range r.segments {
		i0, i1 := n*last/traceSegments, (n+1)*last/traceSegments
		line.StrokeColor = pal.Wave
		line.StrokeWidth = 1.5 * s
		line.Position1 = fyne.NewPos(x(i0), float32(trace[i0])*s)
		line.Position2 = fyne.NewPos(x(i1), float32(trace[i1])*s)
		line.Refresh()
	}

	head := fyne.NewPos((breath.PadX+breath.WaveW)*s, float32(r.w.driver.Head())*s)
	placeCircle(r.outer, head, 9*s)
	r.outer.StartColor = withAlpha(pal.Glow, glow.Outer)
	r.outer.EndColor = withAlpha(pal.Glow, 0)
	placeCircle(r.inner, head, 5*s)
	r.inner.StartColor = withAlpha(pal.Glow, glow.Inner)
	r.inner.EndColor = withAlpha(pal.Glow, 0)
	placeCircle(r.shadow, head, 4*s)
	r.shadow.FillColor = withAlpha(pal.Glow, glow.Shadow*120/255)
	placeCircle(r.head, head, 3*s)
	r.head.FillColor = pal.Pen
	for _, o := range []fyne.CanvasObject{r.outer, r.inner, r.shadow, r.head} {
		o.Refresh()
	}
}

func (r *dotRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *dotRenderer) Destroy() {}

func placeCircle(o fyne.CanvasObject, center fyne.Position, radius float32) {
	o.Move(fyne.NewPos(center.X-radius, center.Y-radius))
	o.Resize(fyne.NewSquareSize(2 * radius))
}

func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	c.A = uint8(a * 255)
	return c
}
