// Package statusline composes the find status text and draws the bottom
// status line.
package statusline

import (
	"strings"
	"sync"

	"github.com/dshills/quickfind/internal/config"
	"github.com/dshills/quickfind/internal/renderer/backend"
	"github.com/dshills/quickfind/internal/renderer/core"
)

// Separators between the parts of the status text.
const (
	AlertSeparator  = " ! "
	RulerSeparator  = " @ "
	NoticeSeparator = " : "
)

// Flags returns the bracketed flag glyphs, such as "[C][W][R]". An enabled
// flag is upper case. A disabled flag is lower case, prefixed with "~" when
// ShowTilde is set. WrapScanFlagPosition 1 or 2 moves the wrap glyph to the
// front or the middle; any other value keeps it last.
func Flags(f config.Flags, s config.Settings) string {
	tilde := ""
	if s.ShowTilde {
		tilde = "~"
	}
	c := tilde + "c"
	if f.CaseSensitive {
		c = "C"
	}
	w := tilde + "w"
	if f.WholeWord {
		w = "W"
	}
	x := tilde + strings.ToLower(s.WrapScanFlagChar)
	if f.WrapScan {
		x = strings.ToUpper(s.WrapScanFlagChar)
	}

	switch s.WrapScanFlagPosition {
	case 1:
		return "[" + x + "][" + c + "][" + w + "]"
	case 2:
		return "[" + c + "][" + x + "][" + w + "]"
	default:
		return "[" + c + "][" + w + "][" + x + "]"
	}
}

// Compose builds the status text "alert ! flags @ ruler : notice". Empty
// parts are left out along with their separators, and the alert and notice
// are dropped when ShowAlert or ShowNotice is off.
func Compose(f config.Flags, s config.Settings, alert, notice, ruler string) string {
	var b strings.Builder
	if s.ShowAlert && alert != "" {
		b.WriteString(alert)
		b.WriteString(AlertSeparator)
	}
	b.WriteString(Flags(f, s))
	if ruler != "" {
		b.WriteString(RulerSeparator)
		b.WriteString(ruler)
	}
	if s.ShowNotice && notice != "" {
		b.WriteString(NoticeSeparator)
		b.WriteString(notice)
	}
	return b.String()
}

// StatusLine renders the document name and the find status on one row.
type StatusLine struct {
	mu sync.Mutex

	name     string
	modified bool
	status   string

	barStyle   core.Style
	nameStyle  core.Style
	alertStyle core.Style
}

// New creates a status line with the default styles.
func New() *StatusLine {
	bar := core.DefaultStyle().WithBackground(core.ColorGray).WithForeground(core.ColorWhite)
	return &StatusLine{
		barStyle:   bar,
		nameStyle:  bar.WithBackground(core.ColorBlue).Bold(),
		alertStyle: bar.WithForeground(core.ColorRed).Bold(),
	}
}

// SetDocument updates the displayed document name and modified marker.
func (s *StatusLine) SetDocument(name string, modified bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
	s.modified = modified
}

// SetStatus updates the find status text.
func (s *StatusLine) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// Status returns the find status text.
func (s *StatusLine) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Render draws the status line on row, clipped to the backend width. An
// alert at the front of the status is drawn in the alert style.
func (s *StatusLine) Render(b backend.Backend, row int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	width, _ := b.Size()
	b.Fill(core.RectFromSize(row, 0, 1, width), core.NewStyledCell(' ', s.barStyle))

	name := s.name
	if name == "" {
		name = "[No Name]"
	}
	if s.modified {
		name += " [+]"
	}
	col := drawText(b, 0, row, width, " "+name+" ", s.nameStyle)
	col++

	alert, rest, found := strings.Cut(s.status, AlertSeparator)
	if !found {
		alert, rest = "", s.status
	} else {
		alert += AlertSeparator
	}
	col = drawText(b, col, row, width, alert, s.alertStyle)
	drawText(b, col, row, width, rest, s.barStyle)
}

// drawText writes text from col and returns the column after it.
func drawText(b backend.Backend, col, row, width int, text string, style core.Style) int {
	for _, r := range text {
		cell := core.NewStyledCell(r, style)
		if col+cell.Width > width {
			break
		}
		b.SetCell(col, row, cell)
		col += cell.Width
	}
	return col
}
