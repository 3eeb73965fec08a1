// Package span provides the immutable, sorted sequence of match spans that
// a quick-find ring navigates over.
//
// A Span is a half-open byte range [Start, End) into a document. Spans are
// ordered by (Start, End). A sequence produced by Build is sorted and
// non-overlapping, and is never mutated afterwards; a new query produces a
// new sequence.
//
// The lookup helpers FindFirstAtOrAfter and FindFirstAfter are used to
// re-locate a selection inside a freshly built sequence. Falling off the end
// of the sequence degrades to index 0 instead of failing, so callers always
// get a usable ring position.
package span

import (
	"fmt"
	"sort"
)

// Span is a half-open byte range into a document.
type Span struct {
	Start int // Inclusive start offset
	End   int // Exclusive end offset
}

// New creates a span, swapping the bounds if they are reversed.
func New(start, end int) Span {
	if end < start {
		start, end = end, start
	}
	return Span{Start: start, End: end}
}

// Point creates a zero-length span at offset.
func Point(offset int) Span {
	return Span{Start: offset, End: offset}
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("[%d:%d)", s.Start, s.End)
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty returns true if the span has zero length.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Contains returns true if offset lies within [Start, End).
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Overlaps returns true if the two spans share at least one byte.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// Compare orders spans by start, then by end.
// Returns -1 if s < other, 0 if equal, 1 if s > other.
func (s Span) Compare(other Span) int {
	switch {
	case s.Start < other.Start:
		return -1
	case s.Start > other.Start:
		return 1
	case s.End < other.End:
		return -1
	case s.End > other.End:
		return 1
	}
	return 0
}

// Less reports whether s sorts before other.
func (s Span) Less(other Span) bool {
	return s.Compare(other) < 0
}

// Build materializes raw match offsets into a span sequence.
//
// Each match is a [start, end] pair as produced by regexp FindAllIndex.
// The host guarantees the matches arrive sorted and non-overlapping.
// Returns nil when there are no matches.
func Build(matches [][]int) []Span {
	if len(matches) == 0 {
		return nil
	}
	spans := make([]Span, 0, len(matches))
	for _, m := range matches {
		if len(m) < 2 {
			continue
		}
		spans = append(spans, Span{Start: m[0], End: m[1]})
	}
	if len(spans) == 0 {
		return nil
	}
	return spans
}

// Clone returns a copy of spans that shares no backing storage.
func Clone(spans []Span) []Span {
	if spans == nil {
		return nil
	}
	out := make([]Span, len(spans))
	copy(out, spans)
	return out
}

// FindFirstAtOrAfter returns the leftmost index whose span is >= target.
// If every span sorts before target, it returns 0.
func FindFirstAtOrAfter(spans []Span, target Span) int {
	i := sort.Search(len(spans), func(i int) bool {
		return spans[i].Compare(target) >= 0
	})
	if i < len(spans) {
		return i
	}
	return 0
}

// FindFirstAfter returns the leftmost index whose span is > target.
// If no span sorts after target, it returns 0.
func FindFirstAfter(spans []Span, target Span) int {
	i := sort.Search(len(spans), func(i int) bool {
		return spans[i].Compare(target) > 0
	})
	if i < len(spans) {
		return i
	}
	return 0
}

// IsSorted reports whether spans are in ascending order with no overlaps.
func IsSorted(spans []Span) bool {
	for i := 1; i < len(spans); i++ {
		if !spans[i-1].Less(spans[i]) || spans[i-1].Overlaps(spans[i]) {
			return false
		}
	}
	return true
}
