//go:build windows

package host

import (
	"unsafe"

	"fyne.io/fyne/v2/driver"
	"golang.org/x/sys/windows"
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procSetWindowPos     = user32.NewProc("SetWindowPos")
	procGetCursorPos     = user32.NewProc("GetCursorPos")
	procGetWindowLongPtr = user32.NewProc("GetWindowLongPtrW")
	procSetWindowLongPtr = user32.NewProc("SetWindowLongPtrW")
)

const (
	swpNoSize     = 0x0001
	swpNoMove     = 0x0002
	swpNoZOrder   = 0x0004
	swpNoActivate = 0x0010

	gwlExStyle     = ^uintptr(19) // -20
	wsExToolWindow = 0x00000080
	wsExAppWindow  = 0x00040000
	hwndTopmost    = ^uintptr(0) // -1
	hwndNoTopmost  = ^uintptr(1) // -2
)

type point struct {
	X, Y int32
}

func (p *Placement) hwnd() uintptr {
	if p.handle != 0 {
		return p.handle
	}
	nw, ok := p.win.(driver.NativeWindow)
	if !ok {
		return 0
	}
	nw.RunNative(func(ctx any) {
		if wc, ok := ctx.(driver.WindowsWindowContext); ok {
			p.handle = wc.HWND
		}
	})
	return p.handle
}

// Supported reports whether the window can be moved.
func (p *Placement) Supported() bool {
	return p.hwnd() != 0
}

// Move places the window's top-left corner at (x, y).
func (p *Placement) Move(x, y int) {
	h := p.hwnd()
	if h == 0 {
		return
	}
	procSetWindowPos.Call(h, 0, uintptr(int32(x)), uintptr(int32(y)), 0, 0,
		swpNoSize|swpNoZOrder|swpNoActivate)
}

// SetTopmost toggles always-on-top.
func (p *Placement) SetTopmost(on bool) {
	h := p.hwnd()
	if h == 0 {
		return
	}
	after := hwndNoTopmost
	if on {
		after = hwndTopmost
	}
	procSetWindowPos.Call(h, after, 0, 0, 0, 0, swpNoMove|swpNoSize|swpNoActivate)
}

// HideFromTaskbar turns the window into a tool window.
func (p *Placement) HideFromTaskbar() {
	h := p.hwnd()
	if h == 0 {
		return
	}
	style, _, _ := procGetWindowLongPtr.Call(h, gwlExStyle)
	style = (style | wsExToolWindow) &^ wsExAppWindow
	procSetWindowLongPtr.Call(h, gwlExStyle, style)
}

// Cursor returns the pointer position in screen pixels.
func (p *Placement) Cursor() (x, y int, ok bool) {
	var pt point
	r, _, _ := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if r == 0 {
		return 0, 0, false
	}
	return int(pt.X), int(pt.Y), true
}
