package cursor

import (
	"sort"

	"github.com/dshills/quickfind/internal/engine/span"
)

// CursorSet manages multiple cursors/selections.
// Selections are kept sorted by position and non-overlapping.
type CursorSet struct {
	selections []Selection
}

// NewCursorSet creates a cursor set with a single selection.
func NewCursorSet(initial Selection) *CursorSet {
	return &CursorSet{
		selections: []Selection{initial},
	}
}

// NewCursorSetFromSlice creates a cursor set from a slice of selections.
// The selections will be normalized (sorted and merged).
func NewCursorSetFromSlice(selections []Selection) *CursorSet {
	cs := &CursorSet{
		selections: make([]Selection, len(selections)),
	}
	copy(cs.selections, selections)
	cs.normalize()
	return cs
}

// Primary returns the first selection, or a cursor at 0 if the set is empty.
func (cs *CursorSet) Primary() Selection {
	if len(cs.selections) == 0 {
		return Selection{}
	}
	return cs.selections[0]
}

// Last returns the last selection in document order.
func (cs *CursorSet) Last() (Selection, bool) {
	if len(cs.selections) == 0 {
		return Selection{}, false
	}
	return cs.selections[len(cs.selections)-1], true
}

// All returns a copy of all selections.
// The returned slice is safe to modify without affecting the CursorSet.
func (cs *CursorSet) All() []Selection {
	result := make([]Selection, len(cs.selections))
	copy(result, cs.selections)
	return result
}

// Spans returns all selections as spans in document order.
func (cs *CursorSet) Spans() []span.Span {
	result := make([]span.Span, len(cs.selections))
	for i, sel := range cs.selections {
		result[i] = sel.Span()
	}
	return result
}

// Count returns the number of cursors/selections.
func (cs *CursorSet) Count() int {
	return len(cs.selections)
}

// IsMulti returns true if there are multiple selections.
func (cs *CursorSet) IsMulti() bool {
	return len(cs.selections) > 1
}

// Get returns the selection at the given index.
// Returns an empty selection if index is out of range.
func (cs *CursorSet) Get(index int) Selection {
	if index < 0 || index >= len(cs.selections) {
		return Selection{}
	}
	return cs.selections[index]
}

// Add adds a new selection, merging with overlapping ones.
func (cs *CursorSet) Add(sel Selection) {
	cs.selections = append(cs.selections, sel)
	cs.normalize()
}

// AddAll adds multiple selections.
func (cs *CursorSet) AddAll(sels []Selection) {
	cs.selections = append(cs.selections, sels...)
	cs.normalize()
}

// Set replaces all selections with a single selection.
func (cs *CursorSet) Set(sel Selection) {
	cs.selections = []Selection{sel}
}

// SetAll replaces all selections.
func (cs *CursorSet) SetAll(sels []Selection) {
	cs.selections = make([]Selection, len(sels))
	copy(cs.selections, sels)
	cs.normalize()
}

// Clear removes every selection, leaving the set empty.
func (cs *CursorSet) Clear() {
	cs.selections = cs.selections[:0]
}

// Subtract removes the given span from the set.
//
// Ranges overlapping s are trimmed, and split in two if s lies strictly
// inside them. A cursor is removed when s is the same point or when the
// cursor lies strictly inside s.
func (cs *CursorSet) Subtract(s span.Span) {
	kept := make([]Selection, 0, len(cs.selections)+1)
	for _, sel := range cs.selections {
		if sel.IsEmpty() {
			pos := sel.Head
			if s.IsEmpty() && pos == s.Start {
				continue
			}
			if !s.IsEmpty() && pos > s.Start && pos < s.End {
				continue
			}
			kept = append(kept, sel)
			continue
		}
		if s.IsEmpty() || !sel.Span().Overlaps(s) {
			kept = append(kept, sel)
			continue
		}
		if sel.Start() < s.Start {
			kept = append(kept, NewSelection(sel.Start(), s.Start))
		}
		if s.End < sel.End() {
			kept = append(kept, NewSelection(s.End, sel.End()))
		}
	}
	cs.selections = kept
	cs.normalize()
}

// Contains reports whether a selection covering exactly s is present.
func (cs *CursorSet) Contains(s span.Span) bool {
	for _, sel := range cs.selections {
		if sel.Start() == s.Start && sel.End() == s.End {
			return true
		}
	}
	return false
}

// ForEach calls f for each selection with its index.
func (cs *CursorSet) ForEach(f func(index int, sel Selection)) {
	for i, sel := range cs.selections {
		f(i, sel)
	}
}

// MapInPlace applies f to each selection in place.
func (cs *CursorSet) MapInPlace(f func(sel Selection) Selection) {
	for i, sel := range cs.selections {
		cs.selections[i] = f(sel)
	}
	cs.normalize()
}

// HasSelection returns true if any selection is non-empty (has extent).
func (cs *CursorSet) HasSelection() bool {
	for _, sel := range cs.selections {
		if !sel.IsEmpty() {
			return true
		}
	}
	return false
}

// Clamp clamps all selections to the valid range [0, maxOffset].
func (cs *CursorSet) Clamp(maxOffset int) {
	for i, sel := range cs.selections {
		cs.selections[i] = sel.Clamp(maxOffset)
	}
	cs.normalize()
}

// Clone returns a deep copy of the cursor set.
func (cs *CursorSet) Clone() *CursorSet {
	clone := &CursorSet{
		selections: make([]Selection, len(cs.selections)),
	}
	copy(clone.selections, cs.selections)
	return clone
}

// normalize sorts selections and merges overlapping ones.
func (cs *CursorSet) normalize() {
	if len(cs.selections) <= 1 {
		return
	}

	// Sort by start position
	sort.SliceStable(cs.selections, func(i, j int) bool {
		si, sj := cs.selections[i].Start(), cs.selections[j].Start()
		if si != sj {
			return si < sj
		}
		// If same start, sort by end (larger ranges first)
		return cs.selections[i].End() > cs.selections[j].End()
	})

	merged := cs.selections[:1]
	for _, sel := range cs.selections[1:] {
		last := &merged[len(merged)-1]
		if last.Overlaps(sel) {
			if last.IsEmpty() || sel.IsEmpty() {
				// A cursor is absorbed; keep the range's direction.
				if last.IsEmpty() {
					*last = sel
				}
				continue
			}
			*last = last.Merge(sel)
		} else {
			merged = append(merged, sel)
		}
	}
	cs.selections = merged
}

// Equals returns true if two cursor sets have the same selections.
func (cs *CursorSet) Equals(other *CursorSet) bool {
	if other == nil {
		return false
	}
	if cs.Count() != other.Count() {
		return false
	}
	for i, sel := range cs.selections {
		if sel != other.selections[i] {
			return false
		}
	}
	return true
}
