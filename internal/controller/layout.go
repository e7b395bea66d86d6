package controller

import (
	"strings"

	"github.com/oukeidos/quickpaths/internal/favorites"
	"github.com/rivo/uniseg"
)

// Panel geometry, in unscaled pixels.
const (
	PanelPad      = 10
	PanelPadV     = 8
	ItemHeight    = 32
	ItemGap       = 4
	ButtonSize    = 24
	ButtonGap     = 3
	ToggleHeight  = 30
	AddHeight     = 30
	HintHeight    = 20
	SepTop        = 6
	SepBottom     = 4
	MinPanelWidth = 160
	MaxPanelWidth = 280

	// labelPadding is the horizontal padding inside an entry button.
	labelPadding = 20
)

const ellipsis = "…"

// Measure returns the rendered width of text in pixels.
type Measure func(text string) int

// EstimateWidth approximates rendered width from terminal cell width.
func EstimateWidth(text string) int {
	return uniseg.StringWidth(text) * 7
}

// Row is one favorite in the expanded panel.
type Row struct {
	Label     string
	Path      string
	Home      bool
	CanMoveUp bool
}

// Panel describes the expanded panel to render.
type Panel struct {
	Width     int
	Height    int
	Alternate bool
	ShowHint  bool
	Rows      []Row
}

// ContentWidth is the width available inside the horizontal padding.
func (p Panel) ContentWidth() int {
	return p.Width - 2*PanelPad
}

// Layout sizes the panel to the widest label within [MinPanelWidth,
// MaxPanelWidth] and truncates labels that still do not fit.
func Layout(entries []favorites.Entry, home string, alternate bool, measure Measure) Panel {
	if measure == nil {
		measure = EstimateWidth
	}
	width := MinPanelWidth
	for _, e := range entries {
		rowW := PanelPad + measure(e.Name) + labelPadding + ButtonGap + ButtonSize + ButtonGap + ButtonSize + PanelPad
		width = max(width, rowW)
	}
	width = min(width, MaxPanelWidth)

	p := Panel{
		Width:     width,
		Alternate: alternate,
		ShowHint:  len(entries) == 0,
		Rows:      make([]Row, 0, len(entries)),
	}
	for i, e := range entries {
		nameRight := PanelPad + p.ContentWidth() - ButtonSize - ButtonGap
		if i > 0 {
			nameRight -= ButtonSize + ButtonGap
		}
		p.Rows = append(p.Rows, Row{
			Label:     Truncate(e.Name, nameRight-PanelPad-labelPadding, measure),
			Path:      e.Path,
			Home:      home != "" && favorites.SamePath(e.Path, home),
			CanMoveUp: i > 0,
		})
	}
	p.Height = panelHeight(len(entries))
	return p
}

func panelHeight(n int) int {
	h := PanelPadV + ToggleHeight + ItemGap
	if n == 0 {
		h += HintHeight + ItemGap
	}
	h += n * (ItemHeight + ItemGap)
	if n > 0 {
		h += SepTop - ItemGap + 1 + SepBottom
	}
	return h + AddHeight + PanelPadV
}

// Truncate shortens text to fit maxWidth, cutting on grapheme cluster
// boundaries and appending an ellipsis.
func Truncate(text string, maxWidth int, measure Measure) string {
	if measure(text) <= maxWidth {
		return text
	}
	var b strings.Builder
	fit := ""
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		b.WriteString(g.Str())
		if measure(b.String()+ellipsis) > maxWidth {
			break
		}
		fit = b.String()
	}
	return fit + ellipsis
}
