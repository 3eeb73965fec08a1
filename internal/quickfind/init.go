package quickfind

import (
	"fmt"

	"github.com/dshills/quickfind/internal/engine/ring"
	"github.com/dshills/quickfind/internal/engine/span"
)

// basicInit searches for the word under the last native selection and
// builds the ring, applying the pending code's initial effect.
func (s *Session) basicInit() bool {
	if s.state == Extended {
		s.resetKeepingCode()
	}
	sels := s.host.Selections()
	if len(sels) == 0 {
		return s.fail("No Selections")
	}
	s.clearRing()

	region := sels[len(sels)-1]
	s.orig = region
	point := region.IsEmpty()

	switch {
	case point && s.code == PeekNextSelected:
		return s.fail("No Other Selections")
	case point && s.code == SubtractThis:
		return s.fail("Can't Subtract")
	case s.code == GoBack:
		return s.fail("Can't Go Back")
	}

	if point {
		region = s.host.ExpandToWord(region)
		if region.IsEmpty() {
			return false
		}
	}
	s.text = s.host.Substr(region)

	if !s.establishMatches() {
		return s.fail(fmt.Sprintf("No Matches Found For \"%s\"", abridge(s.text)))
	}
	if !s.establishIndex(region, point) {
		return false
	}
	s.establishRegions()
	if s.code == PeekNext {
		s.host.AddSelection(s.orig)
	}
	s.pushZero()
	s.state = Basic
	return true
}

// extendedInit turns the existing native selections into the ring, all
// selected.
func (s *Session) extendedInit() bool {
	sels := s.host.Selections()
	if len(sels) == 0 {
		return s.fail("No Selections")
	}
	n := len(sels)
	s.spans = sels
	s.selected = make([]bool, n)
	for i := range s.selected {
		s.selected[i] = true
	}
	// Start one step before the first region so the dispatch that follows
	// lands on it.
	if s.reverse {
		s.this, s.initIndex = 0, n-1
	} else {
		s.this, s.initIndex = n-1, 0
	}
	s.state = Extended
	return true
}

// establishMatches compiles the query and searches the document.
func (s *Session) establishMatches() bool {
	s.pattern = s.text
	spans, err := s.host.FindAll(s.pattern, true, s.flags.WholeWord, !s.flags.CaseSensitive)
	if err != nil {
		s.log.Debug("[%s] search %q failed: %v", s.id, s.pattern, err)
		return false
	}
	if len(spans) == 0 {
		return false
	}
	s.spans = spans
	s.selected = make([]bool, len(spans))
	return true
}

// establishIndex places the current index on the match for region and marks
// the spans the pending code selects on entry.
//
//	          GN(s)    AN(s) AA(s) PN       PS(s) AT(s) ST(-) SS(s) IV(-)  GF(s)
//	point     ge       ge    ge    ge       -     ge    -     ge    ge[v]  ge [0]
//	selected  ge(-)+gt ge+gt ge    ge(c)+gt ge    ge    ge    ge    ge[v]  ge [-1]
//
// ge and gt locate the first match at or after, and strictly after, the
// source selection. (s) selects the match found, (c) selects it only when it
// equals the source, [v] inverts the subset and [0]/[-1] jump to a ring end.
func (s *Session) establishIndex(region span.Span, point bool) bool {
	gn := s.code == GotoNext
	an := s.code == AddNext
	aa := s.code == AddAll
	pn := s.code == PeekNext
	ps := s.code == PeekNextSelected
	at := s.code == AddThis
	ss := s.code == SingleSelectThis
	iv := s.code == InvertSelectThis
	gf := s.code == GoFirst

	// The at-or-after pass runs first so the home position is recorded
	// before a strictly-after pass moves past the source.
	s.setIndex(region, span.FindFirstAtOrAfter,
		(point && gn) || an || aa || ps || at || ss || iv,
		!point && pn)
	if !point && (gn || an || pn) {
		s.setIndex(region, span.FindFirstAfter, gn || an, false)
	}

	switch {
	case aa:
		for i := range s.selected {
			s.selected[i] = true
		}
	case ss:
		if region != s.spans[s.this] {
			s.checkInvariant(s.flags.WholeWord, "single select outside a whole word without whole word matching")
			return s.fail(fmt.Sprintf("Selection \"%s\" Not In A Whole Word", abridge(s.text)))
		}
	case iv:
		for i := range s.selected {
			s.selected[i] = !s.selected[i]
		}
		if s.NumSelected() == 0 {
			return s.fail("No Other Matches")
		}
	case gf:
		s.this = ring.Extreme(len(s.spans), s.reverse)
		s.selected[s.this] = true
	}
	return true
}

func (s *Session) setIndex(target span.Span, find func([]span.Span, span.Span) int, sel, selIfSame bool) {
	index := find(s.spans, target)
	s.this = index
	if sel || (selIfSame && target == s.spans[index]) {
		s.selected[index] = true
	}
	if s.initIndex < 0 {
		s.initIndex = index
		s.log.Trace("[%s] init index %d", s.id, index)
	}
}

// establishRegions replaces the native selection with the selected subset,
// keeping every selection but the last one.
func (s *Session) establishRegions() {
	sels := s.host.Selections()
	stashed := sels[:len(sels)-1]
	s.host.ClearSelections()
	s.addSelectedRegions()
	s.host.AddSelections(stashed)
}
