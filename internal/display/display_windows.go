//go:build windows

package display

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                   = windows.NewLazySystemDLL("user32.dll")
	procGetSystemMetrics     = user32.NewProc("GetSystemMetrics")
	procSystemParametersInfo = user32.NewProc("SystemParametersInfoW")
)

const (
	smXVirtualScreen  = 76
	smYVirtualScreen  = 77
	smCXVirtualScreen = 78
	smCYVirtualScreen = 79
	spiGetWorkArea    = 0x0030
)

type winRect struct {
	Left, Top, Right, Bottom int32
}

func metric(index uintptr) int {
	r, _, _ := procGetSystemMetrics.Call(index)
	return int(int32(r))
}

func current() (Geometry, error) {
	if err := procGetSystemMetrics.Find(); err != nil {
		return Geometry{}, err
	}
	x := metric(smXVirtualScreen)
	y := metric(smYVirtualScreen)
	g := Geometry{
		Virtual: Rect{Left: x, Top: y, Right: x + metric(smCXVirtualScreen), Bottom: y + metric(smCYVirtualScreen)},
	}

	var wa winRect
	ok, _, callErr := procSystemParametersInfo.Call(spiGetWorkArea, 0, uintptr(unsafe.Pointer(&wa)), 0)
	if ok == 0 {
		return g, fmt.Errorf("SystemParametersInfo(SPI_GETWORKAREA): %w", callErr)
	}
	g.WorkArea = Rect{Left: int(wa.Left), Top: int(wa.Top), Right: int(wa.Right), Bottom: int(wa.Bottom)}
	return g, nil
}
