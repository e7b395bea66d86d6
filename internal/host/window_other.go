//go:build !windows

package host

// Supported is false; the window manager owns placement here.
func (p *Placement) Supported() bool { return false }

func (p *Placement) Move(x, y int)      {}
func (p *Placement) SetTopmost(on bool) {}
func (p *Placement) HideFromTaskbar()   {}

// Cursor is unavailable without a native handle.
func (p *Placement) Cursor() (x, y int, ok bool) { return 0, 0, false }
