package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/quickpaths/internal/controller"
)

const (
	itemTextSize = 13
	addTextSize  = 16
	hintTextSize = 12
	hintText     = "Click + to add a folder"
	modeLabel    = "Claude"
)

// blend mixes an rgb colour with alpha a over bg and returns an opaque result.
func blend(bg color.NRGBA, a uint8, r, g, b uint8) color.NRGBA {
	alpha := float64(a) / 255
	mix := func(fg, back uint8) uint8 {
		return uint8(float64(fg)*alpha + float64(back)*(1-alpha))
	}
	return color.NRGBA{R: mix(r, bg.R), G: mix(g, bg.G), B: mix(b, bg.B), A: 255}
}

var (
	panelBg = color.NRGBA{R: 32, G: 34, B: 38, A: 255}

	itemNormal = blend(panelBg, 22, 255, 255, 255)
	itemHover  = blend(panelBg, 50, 255, 255, 255)
	itemText   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	upHover    = blend(panelBg, 35, 255, 255, 255)
	upText     = blend(panelBg, 100, 180, 180, 180)
	delHover   = blend(panelBg, 40, 255, 80, 80)
	delText    = blend(panelBg, 120, 255, 100, 100)
	addHover   = blend(panelBg, 22, 255, 255, 255)
	addText    = blend(panelBg, 110, 180, 180, 180)
	sepColor   = blend(panelBg, 18, 255, 255, 255)
	hintColor  = color.NRGBA{R: 140, G: 140, B: 140, A: 255}

	modeOff      = blend(panelBg, 15, 250, 249, 245)
	modeOn       = blend(panelBg, 130, 217, 119, 87)
	modeHoverOff = blend(panelBg, 28, 250, 249, 245)
	modeHoverOn  = blend(panelBg, 150, 217, 119, 87)
	modeTextOff  = blend(panelBg, 75, 176, 174, 165)
	modeTextOn   = color.NRGBA{R: 250, G: 249, B: 245, A: 255}
)

// panelActions are the controller operations reachable from the panel.
type panelActions interface {
	ToggleMode()
	ClickEntry(path string)
	Delete(path string)
	MoveUp(path string)
	Add()
}

// panelButton is a flat label with a hover colour, sized by its parent.
type panelButton struct {
	widget.BaseWidget
	text   *canvas.Text
	bg     *canvas.Rectangle
	normal color.Color
	hover  color.Color
	inset  float32
	action func()
}

func newPanelButton(label string, size float32, fg, normal, hover color.Color, action func()) *panelButton {
	t := canvas.NewText(label, fg)
	t.TextSize = size
	t.Alignment = fyne.TextAlignCenter

	b := &panelButton{
		text:   t,
		bg:     canvas.NewRectangle(normal),
		normal: normal,
		hover:  hover,
		action: action,
	}
	b.ExtendBaseWidget(b)
	return b
}

// alignLeading left-aligns the label inside inset pixels of padding.
func (b *panelButton) alignLeading(inset float32) *panelButton {
	b.text.Alignment = fyne.TextAlignLeading
	b.inset = inset
	return b
}

func (b *panelButton) Tapped(_ *fyne.PointEvent) {
	if b.action != nil {
		b.action()
	}
}

func (b *panelButton) MouseIn(_ *desktop.MouseEvent) { b.setHover(true) }

func (b *panelButton) MouseMoved(_ *desktop.MouseEvent) {}

func (b *panelButton) MouseOut() { b.setHover(false) }

func (b *panelButton) setHover(on bool) {
	if on {
		b.bg.FillColor = b.hover
	} else {
		b.bg.FillColor = b.normal
	}
	b.bg.Refresh()
}

func (b *panelButton) Cursor() desktop.Cursor {
	return desktop.PointerCursor
}

func (b *panelButton) CreateRenderer() fyne.WidgetRenderer {
	return &panelButtonRenderer{b: b}
}

type panelButtonRenderer struct {
	b *panelButton
}

func (r *panelButtonRenderer) Layout(s fyne.Size) {
	r.b.bg.Resize(s)
	r.b.text.Move(fyne.NewPos(r.b.inset, 0))
	r.b.text.Resize(fyne.NewSize(s.Width-2*r.b.inset, s.Height))
}
func (r *panelButtonRenderer) MinSize() fyne.Size { return fyne.NewSize(1, 1) }
func (r *panelButtonRenderer) Refresh()           { r.b.bg.Refresh(); r.b.text.Refresh() }
func (r *panelButtonRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.b.bg, r.b.text}
}
func (r *panelButtonRenderer) Destroy() {}

// newPanelView lays out p at fixed pixel positions: mode toggle, optional
// hint, one row per favorite, separator and the add button.
func newPanelView(p controller.Panel, act panelActions) fyne.CanvasObject {
	bg := canvas.NewRectangle(panelBg)
	bg.Resize(fyne.NewSize(float32(p.Width), float32(p.Height)))
	objects := []fyne.CanvasObject{bg}
	place := func(o fyne.CanvasObject, x, y, w, h int) {
		o.Move(fyne.NewPos(float32(x), float32(y)))
		o.Resize(fyne.NewSize(float32(w), float32(h)))
		objects = append(objects, o)
	}

	contentW := p.ContentWidth()
	y := controller.PanelPadV

	normal, hover, fg := modeOff, modeHoverOff, modeTextOff
	if p.Alternate {
		normal, hover, fg = modeOn, modeHoverOn, modeTextOn
	}
	place(newPanelButton(modeLabel, itemTextSize, fg, normal, hover, act.ToggleMode),
		controller.PanelPad, y, contentW, controller.ToggleHeight)
	y += controller.ToggleHeight + controller.ItemGap

	if p.ShowHint {
		hint := canvas.NewText(hintText, hintColor)
		hint.TextSize = hintTextSize
		hint.Alignment = fyne.TextAlignCenter
		place(hint, controller.PanelPad, y, contentW, controller.HintHeight)
		y += controller.HintHeight + controller.ItemGap
	}

	rightEdge := controller.PanelPad + contentW
	for _, row := range p.Rows {
		path := row.Path
		btnY := y + (controller.ItemHeight-controller.ButtonSize)/2

		place(newPanelButton("−", itemTextSize, delText, panelBg, delHover, func() { act.Delete(path) }),
			rightEdge-controller.ButtonSize, btnY, controller.ButtonSize, controller.ButtonSize)
		nameRight := rightEdge - controller.ButtonSize - controller.ButtonGap

		if row.CanMoveUp {
			place(newPanelButton("↑", itemTextSize, upText, panelBg, upHover, func() { act.MoveUp(path) }),
				nameRight-controller.ButtonSize, btnY, controller.ButtonSize, controller.ButtonSize)
			nameRight -= controller.ButtonSize + controller.ButtonGap
		}

		name := newPanelButton(row.Label, itemTextSize, itemText, itemNormal, itemHover, func() { act.ClickEntry(path) })
		place(name.alignLeading(controller.PanelPad), controller.PanelPad, y, nameRight-controller.PanelPad, controller.ItemHeight)
		y += controller.ItemHeight + controller.ItemGap
	}

	if len(p.Rows) > 0 {
		y += controller.SepTop - controller.ItemGap
		place(canvas.NewRectangle(sepColor), controller.PanelPad+4, y, contentW-8, 1)
		y += 1 + controller.SepBottom
	}

	place(newPanelButton("+", addTextSize, addText, panelBg, addHover, act.Add),
		controller.PanelPad, y, contentW, controller.AddHeight)

	c := container.NewWithoutLayout(objects...)
	c.Resize(fyne.NewSize(float32(p.Width), float32(p.Height)))
	return c
}
