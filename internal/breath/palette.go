package breath

import (
	"image/color"
	"time"
)

// FlashDuration is how long the success palette stays up after an action.
const FlashDuration = 700 * time.Millisecond

// Palette is the set of colours used to draw the dot.
type Palette struct {
	Border color.NRGBA
	Wave   color.NRGBA
	Pen    color.NRGBA
	Glow   color.NRGBA
}

var (
	bluePalette = Palette{
		Border: color.NRGBA{R: 106, G: 155, B: 204, A: 80},
		Wave:   color.NRGBA{R: 106, G: 155, B: 204, A: 190},
		Pen:    color.NRGBA{R: 155, G: 200, B: 240, A: 255},
		Glow:   color.NRGBA{R: 106, G: 155, B: 204, A: 255},
	}
	orangePalette = Palette{
		Border: color.NRGBA{R: 217, G: 119, B: 87, A: 80},
		Wave:   color.NRGBA{R: 217, G: 119, B: 87, A: 190},
		Pen:    color.NRGBA{R: 245, G: 160, B: 125, A: 255},
		Glow:   color.NRGBA{R: 217, G: 119, B: 87, A: 255},
	}
	// The success flash recolours only the trace and pen.
	flashWave = color.NRGBA{R: 120, G: 140, B: 93, A: 210}
	flashPen  = color.NRGBA{R: 165, G: 190, B: 140, A: 255}
)

// PaletteFor returns the normal (blue) or alternate-mode (orange) palette.
func PaletteFor(alternate bool) Palette {
	if alternate {
		return orangePalette
	}
	return bluePalette
}

// FlashPalette returns the success palette shown over the given mode.
func FlashPalette(alternate bool) Palette {
	p := PaletteFor(alternate)
	p.Wave = flashWave
	p.Pen = flashPen
	return p
}

type paletteState struct {
	alternate  bool
	flashing   bool
	generation uint64
	current    Palette
}

// Palette returns the colours to draw with right now.
func (d *Driver) Palette() Palette { return d.palette.current }

// Flashing reports whether the success palette is up.
func (d *Driver) Flashing() bool { return d.palette.flashing }

// SetAlternate records the mode. While a flash is active the palette is left
// alone and picks up the mode when the flash ends.
func (d *Driver) SetAlternate(alternate bool) {
	d.palette.alternate = alternate
	if d.palette.flashing {
		return
	}
	d.palette.current = PaletteFor(alternate)
}

// Flash switches to the success palette and returns a generation to pass to
// EndFlash once FlashDuration has elapsed. A new flash supersedes any
// pending one.
func (d *Driver) Flash() uint64 {
	d.palette.generation++
	d.palette.flashing = true
	d.palette.current = FlashPalette(d.palette.alternate)
	return d.palette.generation
}

// EndFlash reverts to the mode palette. Stale generations are ignored. It
// reports whether the palette changed.
func (d *Driver) EndFlash(generation uint64) bool {
	if !d.palette.flashing || generation != d.palette.generation {
		return false
	}
	d.palette.flashing = false
	d.palette.current = PaletteFor(d.palette.alternate)
	return true
}
