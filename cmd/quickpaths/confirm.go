package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

const confirmTextSize = 15

var (
	confirmYes      = blend(panelBg, 130, 217, 119, 87)
	confirmYesHover = blend(panelBg, 160, 217, 119, 87)
	confirmNo       = blend(panelBg, 22, 255, 255, 255)
	confirmNoHover  = blend(panelBg, 50, 255, 255, 255)
)

// showConfirmWindow asks a yes/no question in a small window of its own. A
// second request while one is open focuses the existing window. onYes runs
// after the window has closed; closing it any other way counts as no.
func (a *widgetApp) showConfirmWindow(title, message string, onYes func()) {
	if a.confirmWin != nil {
		a.confirmWin.RequestFocus()
		return
	}

	win := a.app.NewWindow(title)
	a.confirmWin = win
	win.SetOnClosed(func() {
		a.confirmWin = nil
	})

	msg := canvas.NewText(message, color.White)
	msg.TextSize = confirmTextSize
	msg.TextStyle = fyne.TextStyle{Bold: true}
	msg.Alignment = fyne.TextAlignCenter

	yesBtn := newPanelButton("YES", confirmTextSize, modeTextOn, confirmYes, confirmYesHover, func() {
		win.Close()
		a.guard("confirm.yes", onYes)
	})
	noBtn := newPanelButton("NO", confirmTextSize, itemText, confirmNo, confirmNoHover, func() {
		win.Close()
	})

	btns := container.NewGridWithColumns(2, yesBtn, noBtn)
	bg := canvas.NewRectangle(panelBg)
	card := container.NewVBox(
		container.NewPadded(container.NewCenter(msg)),
		container.NewPadded(container.NewGridWrap(fyne.NewSize(220, 36), btns)),
	)

	win.SetContent(container.NewStack(bg, container.NewCenter(container.NewPadded(card))))
	win.Resize(fyne.NewSize(300, 130))
	win.SetFixedSize(true)
	win.CenterOnScreen()
	win.Show()
}
