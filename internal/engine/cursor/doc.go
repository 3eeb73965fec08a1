// Package cursor provides the native multi-selection container used by the
// in-process host editor.
//
// The cursor package handles:
//
//   - Text selections with an anchor/head model via Selection
//   - An ordered set of selections via CursorSet
//   - Selection transformation after document edits
//
// Selection Model:
//
// Selections use an anchor/head model where:
//   - Anchor: The position where the selection started
//   - Head: The current cursor position
//
// When Anchor == Head the selection is a bare cursor (a point). The
// selection can extend forward (head > anchor) or backward (head < anchor).
//
// Multi-Selection:
//
// CursorSet keeps selections sorted by position. Overlapping selections are
// merged when added, and a point touching a range is absorbed by it.
// Adjacent ranges that only share a boundary stay separate, so two
// back-to-back matches remain two selections. Unlike the editor cursor set
// this container may be emptied by Clear or Subtract; callers that must
// never present an empty selection guard against it themselves.
//
// Basic usage:
//
//	cs := cursor.NewCursorSet(cursor.NewCursorSelection(10))
//	cs.Add(cursor.NewSelection(20, 23))
//	cs.Subtract(span.New(20, 23))
//
// Thread Safety:
//
// Selection is an immutable value type. CursorSet is not thread-safe.
package cursor
