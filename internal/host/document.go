package host

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dshills/quickfind/internal/engine/cursor"
	"github.com/dshills/quickfind/internal/engine/span"
	"github.com/dshills/quickfind/internal/event"
	"github.com/dshills/quickfind/internal/event/events"
)

const eventSource = "host"

// Mark is the gutter marker drawn beside the current match.
type Mark struct {
	Span span.Span

	// Icon is "circle", "dot" or empty for no icon.
	Icon string

	// Hidden suppresses the outline around Span.
	Hidden bool
}

// Document represents an open text with its editor state.
type Document struct {
	id string

	// Path is the absolute file path (empty for scratch documents).
	Path string

	// Name is the display name (filename or "Untitled").
	Name string

	text     string
	sel      *cursor.CursorSet
	modified bool

	status string
	mark   *Mark

	top    int
	height int

	bus *event.Bus
}

// NewDocument creates a document with a cursor at offset 0.
func NewDocument(path, text string) *Document {
	name := filepath.Base(path)
	if path == "" {
		name = "Untitled"
	}
	return &Document{
		id:     uuid.NewString(),
		Path:   path,
		Name:   name,
		text:   text,
		sel:    cursor.NewCursorSet(cursor.NewCursorSelection(0)),
		height: 1,
	}
}

// ID returns the document identity.
func (d *Document) ID() string {
	return d.id
}

// Text returns the full document text.
func (d *Document) Text() string {
	return d.text
}

// Len returns the text length in bytes.
func (d *Document) Len() int {
	return len(d.text)
}

// IsModified returns true if the document has unsaved changes.
func (d *Document) IsModified() bool {
	return d.modified
}

// IsScratch returns true for documents without a file path.
func (d *Document) IsScratch() bool {
	return d.Path == ""
}

// Substr returns the text covered by s, clamped to the document.
func (d *Document) Substr(s span.Span) string {
	start, end := clamp(s.Start, len(d.text)), clamp(s.End, len(d.text))
	return d.text[start:end]
}

// Selection access.

// Selections returns the native selection spans in document order.
func (d *Document) Selections() []span.Span {
	return d.sel.Spans()
}

// Cursors returns the native selections with their direction.
func (d *Document) Cursors() []cursor.Selection {
	return d.sel.All()
}

// SelectionCount returns the number of native selections.
func (d *Document) SelectionCount() int {
	return d.sel.Count()
}

// ClearSelections empties the native selection.
func (d *Document) ClearSelections() {
	d.sel.Clear()
}

// AddSelection adds s to the native selection.
func (d *Document) AddSelection(s span.Span) {
	d.sel.Add(cursor.FromSpan(d.clampSpan(s)))
}

// AddSelections adds every span to the native selection.
func (d *Document) AddSelections(spans []span.Span) {
	sels := make([]cursor.Selection, len(spans))
	for i, s := range spans {
		sels[i] = cursor.FromSpan(d.clampSpan(s))
	}
	d.sel.AddAll(sels)
}

// SubtractSelection removes s from the native selection.
func (d *Document) SubtractSelection(s span.Span) {
	d.sel.Subtract(s)
}

// SetSelections replaces the native selection.
func (d *Document) SetSelections(spans []span.Span) error {
	sels := make([]cursor.Selection, len(spans))
	for i, s := range spans {
		if s.Start < 0 || s.End > len(d.text) {
			return fmt.Errorf("%w: %v", ErrInvalidRange, s)
		}
		sels[i] = cursor.FromSpan(s)
	}
	d.sel.SetAll(sels)
	return nil
}

func (d *Document) clampSpan(s span.Span) span.Span {
	return span.New(clamp(s.Start, len(d.text)), clamp(s.End, len(d.text)))
}

// Presentation.

// Status returns the status line text.
func (d *Document) Status() string {
	return d.status
}

// SetStatus sets the status line text.
func (d *Document) SetStatus(s string) {
	d.status = s
}

// Mark returns the gutter mark, if any.
func (d *Document) Mark() (Mark, bool) {
	if d.mark == nil {
		return Mark{}, false
	}
	return *d.mark, true
}

// SetMark replaces the gutter mark.
func (d *Document) SetMark(m Mark) {
	d.mark = &m
}

// ClearMark removes the gutter mark.
func (d *Document) ClearMark() {
	d.mark = nil
}

// SetViewHeight sets the number of visible lines.
func (d *Document) SetViewHeight(h int) {
	if h < 1 {
		h = 1
	}
	d.height = h
}

// TopLine returns the first visible line.
func (d *Document) TopLine() int {
	return d.top
}

// Show scrolls the viewport so the line holding s.Start is visible.
// A line already on screen does not scroll; otherwise it is centered.
func (d *Document) Show(s span.Span) {
	line, _ := d.LineCol(s.Start)
	if line >= d.top && line < d.top+d.height {
		return
	}
	d.top = max(line-d.height/2, 0)
}

// LineCol converts a byte offset to a zero-based line and column.
func (d *Document) LineCol(offset int) (line, col int) {
	offset = clamp(offset, len(d.text))
	before := d.text[:offset]
	line = strings.Count(before, "\n")
	col = offset - (strings.LastIndexByte(before, '\n') + 1)
	return line, col
}

// Offset converts a zero-based line and column to a byte offset, clamping
// the column to the line length.
func (d *Document) Offset(line, col int) int {
	if line < 0 {
		return 0
	}
	start := 0
	for i := 0; i < line; i++ {
		next := strings.IndexByte(d.text[start:], '\n')
		if next < 0 {
			return len(d.text)
		}
		start += next + 1
	}
	end := strings.IndexByte(d.text[start:], '\n')
	if end < 0 {
		end = len(d.text)
	} else {
		end += start
	}
	return start + clamp(col, end-start)
}

// Lines returns the text split into lines without terminators.
func (d *Document) Lines() []string {
	return strings.Split(d.text, "\n")
}

// Editing.

// Edit replaces the bytes in s with newText, shifts selections and
// publishes document.modified.
func (d *Document) Edit(ctx context.Context, s span.Span, newText string) error {
	if s.Start < 0 || s.End > len(d.text) || s.Start > s.End {
		return fmt.Errorf("%w: %v", ErrInvalidRange, s)
	}
	d.text = d.text[:s.Start] + newText + d.text[s.End:]
	d.modified = true
	cursor.TransformCursorSet(d.sel, cursor.Edit{Span: s, NewText: newText})
	d.sel.Clamp(len(d.text))
	return d.publish(ctx, event.NewEvent(events.TopicDocumentModified, events.DocumentModified{
		DocumentID: d.id,
		Start:      s.Start,
		End:        s.End,
		NewText:    newText,
	}, eventSource))
}

// InsertAtSelections replaces every selection with text, last first so
// earlier offsets stay valid.
func (d *Document) InsertAtSelections(ctx context.Context, text string) error {
	spans := d.sel.Spans()
	for i := len(spans) - 1; i >= 0; i-- {
		if err := d.Edit(ctx, spans[i], text); err != nil {
			return err
		}
	}
	return nil
}

// DeleteBackward deletes every non-empty selection and the character
// before every cursor.
func (d *Document) DeleteBackward(ctx context.Context) error {
	spans := d.sel.Spans()
	for i := len(spans) - 1; i >= 0; i-- {
		s := spans[i]
		if s.IsEmpty() {
			if s.Start == 0 {
				continue
			}
			_, size := utf8.DecodeLastRuneInString(d.text[:s.Start])
			s = span.New(s.Start-size, s.Start)
		}
		if err := d.Edit(ctx, s, ""); err != nil {
			return err
		}
	}
	return nil
}

// MoveSelections moves every selection head by delta characters. With
// extend the anchors stay put; otherwise each selection collapses to a
// cursor.
func (d *Document) MoveSelections(delta int, extend bool) {
	d.sel.MapInPlace(func(sel cursor.Selection) cursor.Selection {
		head := d.stepRunes(sel.Head, delta)
		if extend {
			return sel.Extend(head)
		}
		return sel.MoveTo(head)
	})
}

// MoveSelectionLines moves every selection head by delta lines, keeping
// the column where the target line allows it.
func (d *Document) MoveSelectionLines(delta int, extend bool) {
	d.sel.MapInPlace(func(sel cursor.Selection) cursor.Selection {
		line, col := d.LineCol(sel.Head)
		head := d.Offset(max(line+delta, 0), col)
		if extend {
			return sel.Extend(head)
		}
		return sel.MoveTo(head)
	})
}

// Save writes the text to Path, announcing document.saving first.
func (d *Document) Save(ctx context.Context) error {
	if d.Path == "" {
		return ErrNoPath
	}
	if err := d.publish(ctx, event.NewEvent(events.TopicDocumentSaving, events.DocumentSaving{
		DocumentID: d.id,
		Path:       d.Path,
	}, eventSource)); err != nil {
		return err
	}
	if err := os.WriteFile(d.Path, []byte(d.text), 0o644); err != nil {
		return fmt.Errorf("saving %s: %w", d.Path, err)
	}
	d.modified = false
	return nil
}

// stepRunes moves offset by delta runes, stopping at either end.
func (d *Document) stepRunes(offset, delta int) int {
	offset = clamp(offset, len(d.text))
	for ; delta > 0 && offset < len(d.text); delta-- {
		_, size := utf8.DecodeRuneInString(d.text[offset:])
		offset += size
	}
	for ; delta < 0 && offset > 0; delta++ {
		_, size := utf8.DecodeLastRuneInString(d.text[:offset])
		offset -= size
	}
	return offset
}

func (d *Document) publish(ctx context.Context, ev any) error {
	if d.bus == nil {
		return nil
	}
	return d.bus.Publish(ctx, ev)
}

func clamp(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}
