package cursor

import "github.com/dshills/quickfind/internal/engine/span"

// Edit describes a replacement of Span with NewText.
type Edit struct {
	Span    span.Span
	NewText string
}

// Delta returns the change in document length caused by the edit.
func (e Edit) Delta() int {
	return len(e.NewText) - e.Span.Len()
}

// TransformOffset updates an offset after an edit.
//
// Transformation rules:
//   - If edit is entirely before offset: adjust offset by the edit's delta
//   - If edit starts at or after offset: offset unchanged
//   - If edit spans offset: move offset to end of new text
func TransformOffset(offset int, edit Edit) int {
	if edit.Span.End <= offset {
		return offset + edit.Delta()
	}
	if edit.Span.Start >= offset {
		return offset
	}
	return edit.Span.Start + len(edit.NewText)
}

// TransformSelection updates a selection after an edit.
// Both anchor and head are transformed independently.
func TransformSelection(sel Selection, edit Edit) Selection {
	return Selection{
		Anchor: TransformOffset(sel.Anchor, edit),
		Head:   TransformOffset(sel.Head, edit),
	}
}

// TransformCursorSet updates all selections in a cursor set after an edit.
func TransformCursorSet(cs *CursorSet, edit Edit) {
	for i := range cs.selections {
		cs.selections[i] = TransformSelection(cs.selections[i], edit)
	}
	cs.normalize()
}
