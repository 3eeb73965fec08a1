package app

import (
	"time"

	"github.com/dshills/quickfind/internal/engine/span"
	"github.com/dshills/quickfind/internal/host"
	"github.com/dshills/quickfind/internal/renderer/core"
)

const tabWidth = 4

var (
	textStyle      = core.DefaultStyle()
	selectionStyle = core.DefaultStyle().Reverse()
)

// render draws the active document, its gutter and the status line.
// mu must be held.
func (app *Application) render() {
	b := app.backend
	if b == nil {
		return
	}
	width, height := b.Size()
	b.Clear()

	doc := app.documents.Active()
	if doc == nil || height < 2 {
		app.status.SetDocument("", false)
		app.status.SetStatus("")
		app.status.Render(b, height-1)
		b.HideCursor()
		b.Show()
		return
	}

	textHeight := height - 1
	doc.SetViewHeight(textHeight)
	lines := doc.Lines()
	top := doc.TopLine()

	head := lastHead(doc)
	curLine, curCol := doc.LineCol(head)

	var mark *host.Mark
	markLine := -1
	if m, ok := doc.Mark(); ok {
		mark = &m
		markLine, _ = doc.LineCol(m.Span.Start)
	}

	app.gutter.SetLineCount(len(lines))
	gw := app.gutter.Width()
	app.gutter.Render(b, 0, textHeight, top, curLine, mark, markLine)

	sels := doc.Selections()
	cursorX, cursorY := -1, -1
	for y := 0; y < textHeight; y++ {
		line := top + y
		if line >= len(lines) {
			break
		}
		start := doc.Offset(line, 0)
		x := gw
		for i, r := range lines[line] {
			offset := start + i
			if line == curLine && i == curCol {
				cursorX, cursorY = x, y
			}
			style := cellStyle(offset, sels, mark)
			if r == '\t' {
				for n := tabWidth - (x-gw)%tabWidth; n > 0; n-- {
					b.SetCell(x, y, core.NewStyledCell(' ', style))
					x++
				}
				continue
			}
			cell := core.NewStyledCell(r, style)
			b.SetCell(x, y, cell)
			x += cell.Width
			if x >= width {
				break
			}
		}
		if line == curLine && cursorX < 0 {
			cursorX, cursorY = min(x, width-1), y
		}
	}

	if cursorX >= 0 {
		b.ShowCursor(cursorX, cursorY)
	} else {
		b.HideCursor()
	}

	app.status.SetDocument(doc.Name, doc.IsModified())
	app.status.SetStatus(doc.Status())
	app.status.Render(b, height-1)
	b.Show()
}

// cellStyle returns the style of the byte at offset: reversed inside a
// selection, underlined inside a visible mark.
func cellStyle(offset int, sels []span.Span, mark *host.Mark) core.Style {
	style := textStyle
	for _, s := range sels {
		if offset >= s.Start && offset < s.End {
			style = selectionStyle
			break
		}
	}
	if mark != nil && !mark.Hidden && offset >= mark.Span.Start && offset < mark.Span.End {
		style = style.Underline()
	}
	return style
}

// lastHead returns the head of the last native selection.
func lastHead(doc *host.Document) int {
	cursors := doc.Cursors()
	if len(cursors) == 0 {
		return 0
	}
	return cursors[len(cursors)-1].Head
}

// revealCursor scrolls doc to the head of its last selection.
func revealCursor(doc *host.Document) {
	doc.Show(span.Point(lastHead(doc)))
}

// Redraw renders the active document on the backend.
func (app *Application) Redraw() {
	app.mu.Lock()
	defer app.mu.Unlock()
	start := time.Now()
	app.render()
	app.metrics.RecordRender(time.Since(start))
}
