// Package gutter provides the area left of the text: line numbers and the
// sign column that carries the current-match indicator.
package gutter

import (
	"strconv"
	"strings"
	"sync"

	"github.com/dshills/quickfind/internal/config"
	"github.com/dshills/quickfind/internal/engine/span"
	"github.com/dshills/quickfind/internal/host"
	"github.com/dshills/quickfind/internal/renderer/backend"
	"github.com/dshills/quickfind/internal/renderer/core"
)

// Icon names carried by host.Mark.
const (
	IconCircle = "circle"
	IconDot    = "dot"
)

// Indicator returns the mark for the current match s.
//
//	             selected           not selected
//	icon         circle, hidden     dot, drawn
//	superimpose  no icon, drawn     no icon, drawn
//	none         no icon, hidden    no icon, drawn
func Indicator(style config.Indicator, s span.Span, selected bool) host.Mark {
	m := host.Mark{Span: s}
	switch style {
	case config.IndicatorIcon:
		if selected {
			m.Icon = IconCircle
			m.Hidden = true
		} else {
			m.Icon = IconDot
		}
	case config.IndicatorNone:
		m.Hidden = selected
	}
	return m
}

// Glyph returns the sign-column rune for an icon name, or 0 for none.
func Glyph(icon string) rune {
	switch icon {
	case IconCircle:
		return '●'
	case IconDot:
		return '·'
	default:
		return 0
	}
}

// Config holds gutter configuration.
type Config struct {
	// ShowLineNumbers enables line number display.
	ShowLineNumbers bool

	// MinLineNumberWidth is the minimum width for line numbers.
	MinLineNumberWidth int

	// ShowSigns enables the sign column.
	ShowSigns bool
}

// DefaultConfig returns the default gutter configuration.
func DefaultConfig() Config {
	return Config{
		ShowLineNumbers:    true,
		MinLineNumberWidth: 3,
		ShowSigns:          true,
	}
}

// Gutter manages the gutter area rendering.
type Gutter struct {
	mu sync.RWMutex

	config    Config
	width     int
	lineCount int

	numberStyle  core.Style
	currentStyle core.Style
	signStyle    core.Style
}

// New creates a new gutter with the given configuration.
func New(config Config) *Gutter {
	g := &Gutter{
		config:       config,
		lineCount:    1,
		numberStyle:  core.DefaultStyle().WithForeground(core.ColorGray),
		currentStyle: core.DefaultStyle().WithForeground(core.ColorYellow).Bold(),
		signStyle:    core.DefaultStyle().WithForeground(core.ColorCyan).Bold(),
	}
	g.width = g.calculateWidth()
	return g
}

// Width returns the current gutter width.
func (g *Gutter) Width() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.width
}

// SetLineCount updates the number of lines and recalculates the width.
func (g *Gutter) SetLineCount(n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lineCount = max(n, 1)
	g.width = g.calculateWidth()
}

// calculateWidth returns sign column + digits + one space of padding.
func (g *Gutter) calculateWidth() int {
	w := 0
	if g.config.ShowSigns {
		w += 2
	}
	if g.config.ShowLineNumbers {
		w += max(len(strconv.Itoa(g.lineCount)), g.config.MinLineNumberWidth) + 1
	}
	return w
}

// Render draws height rows starting at screen row top for the lines from
// firstLine. currentLine is highlighted, and the mark's icon is drawn on
// markLine when mark is not nil.
func (g *Gutter) Render(b backend.Backend, top, height, firstLine, currentLine int, mark *host.Mark, markLine int) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.width == 0 {
		return
	}
	b.Fill(core.RectFromSize(top, 0, height, g.width), core.EmptyCell())

	digits := g.width - 1
	if g.config.ShowSigns {
		digits -= 2
	}
	for y := 0; y < height; y++ {
		line := firstLine + y
		if line >= g.lineCount {
			break
		}
		col := 0
		if g.config.ShowSigns {
			if mark != nil && line == markLine {
				if r := Glyph(mark.Icon); r != 0 {
					b.SetCell(0, top+y, core.NewStyledCell(r, g.signStyle))
				}
			}
			col = 2
		}
		if !g.config.ShowLineNumbers {
			continue
		}
		style := g.numberStyle
		if line == currentLine {
			style = g.currentStyle
		}
		for _, r := range padLeft(strconv.Itoa(line+1), digits) {
			b.SetCell(col, top+y, core.NewStyledCell(r, style))
			col++
		}
	}
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
