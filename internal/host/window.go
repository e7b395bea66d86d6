package host

import "fyne.io/fyne/v2"

// Placement moves a borderless Fyne window in screen pixels and keeps it
// above other windows. Fyne has no API for either, so the native handle is
// used where the platform allows it.
type Placement struct {
	win    fyne.Window
	handle uintptr
}

// NewPlacement wraps w. The native handle is resolved lazily, after the
// window has been shown.
func NewPlacement(w fyne.Window) *Placement {
	return &Placement{win: w}
}
