package quickfind

import (
	"fmt"

	"github.com/dshills/quickfind/internal/engine/ring"
)

// dispatch applies the current code to an initialized ring.
func (s *Session) dispatch() {
	switch s.code {
	case NoCode:
	case GotoNext:
		s.subtractThis()
		s.moveToNext()
		s.addThis()
	case AddNext:
		s.moveToNextToAdd()
		s.addThis()
	case AddAll:
		s.addAll()
	case PeekNext:
		s.moveToNext()
	case PeekNextSelected:
		s.moveToNextSelected()
	case AddThis:
		if s.selected[s.this] {
			s.raise("Already Added")
			return
		}
		s.addThis()
	case SubtractThis:
		if !s.selected[s.this] {
			s.raise("Already Subtracted")
			return
		}
		s.subtractThisAvoidZero()
	case SingleSelectThis:
		s.singleSelect()
	case InvertSelectThis:
		s.invertSelect()
	case GoFirst:
		name := "First"
		if s.reverse {
			name = "Last"
		}
		s.contextAwareGo(ring.Extreme(len(s.spans), s.reverse), name)
	case GoBack:
		s.contextAwareGo(s.initIndex, "Back")
	default:
		s.log.Debug("[%s] unknown code %s", s.id, s.code)
	}
}

func (s *Session) step() {
	s.this = ring.Next(s.this, len(s.spans), s.reverse, s.wrap)
}

// moveToNext steps the current index one match, raising an alert when the
// ring has one match or a bounded step hits an end.
func (s *Session) moveToNext() {
	prev := s.this
	s.step()
	n := len(s.spans)
	if n == 1 {
		s.raise("No Other Matches")
		return
	}
	if s.wrap || !ring.AtBoundary(prev, n, s.reverse) {
		return
	}
	if s.reverse {
		s.raise("First Match")
	} else {
		s.raise("Last Match")
	}
}

// moveToNextToAdd steps to the next unselected match.
func (s *Session) moveToNextToAdd() {
	if s.NumSelected() == len(s.spans) {
		s.raise(alreadyAddedAll(len(s.spans)))
		return
	}
	if !s.wrap {
		if s.reverse && allTrue(s.selected[:s.this]) {
			s.raise("No Matches Above")
			return
		}
		if !s.reverse && allTrue(s.selected[s.this+1:]) {
			s.raise("No Matches Below")
			return
		}
	}
	for {
		s.step()
		if !s.selected[s.this] {
			return
		}
	}
}

// moveToNextSelected steps to the next selected match.
func (s *Session) moveToNextSelected() {
	if s.NumSelected() == 0 {
		s.raise("No Selections")
		return
	}
	if !s.wrap {
		if s.reverse && !anyTrue(s.selected[:s.this]) {
			s.raise("No Selections Above")
			return
		}
		if !s.reverse && !anyTrue(s.selected[s.this+1:]) {
			s.raise("No Selections Below")
			return
		}
	}
	prev := s.this
	for {
		s.step()
		if s.selected[s.this] {
			break
		}
	}
	if s.this == prev {
		s.raise("No Other Selections")
	}
}

func (s *Session) addAll() {
	if s.NumSelected() == len(s.spans) {
		s.raise(alreadyAddedAll(len(s.spans)))
		return
	}
	s.popZero()
	for i := range s.selected {
		s.selected[i] = true
	}
	s.addSelectedRegions()
}

// singleSelect clears the whole native selection, including selections
// outside the ring, and selects only the current match.
func (s *Session) singleSelect() {
	if s.selected[s.this] && s.NumSelected() == 1 {
		s.raise("Already Single Selected")
		return
	}
	s.host.ClearSelections()
	s.zero = nil
	for i := range s.selected {
		s.selected[i] = false
	}
	s.addThis()
}

// invertSelect selects every match except the current one.
func (s *Session) invertSelect() {
	n := len(s.spans)
	if n == 1 {
		s.raise("No Other Selections")
		return
	}
	if !s.selected[s.this] && s.NumSelected() == n-1 {
		s.raise("Already Invert Selected")
		return
	}
	s.popZero()
	s.subtractThis()
	for i := range s.selected {
		s.selected[i] = i != s.this
	}
	s.addSelectedRegions()
}

// contextAwareGo jumps to dest. Whether the old match is deselected and
// the new one selected depends on the code before the jump:
//
//	last code                          old match    new match
//	NO_CODE, GOTO_NEXT                 deselected   selected
//	ADD_NEXT, ADD_ALL, ADD_THIS,
//	SUBTRACT_THIS                      kept         selected
//	PEEK_NEXT, PEEK_NEXT_SELECTED,
//	SINGLE_SELECT_THIS,
//	INVERT_SELECT_THIS                 kept         untouched
func (s *Session) contextAwareGo(dest int, name string) {
	if s.this == dest {
		s.raise("Already " + name)
		return
	}
	switch s.lastCode {
	case NoCode, GotoNext:
		s.subtractThis()
	}
	s.this = dest
	switch s.lastCode {
	case NoCode, GotoNext, AddNext, AddAll, AddThis, SubtractThis:
		s.addThis()
	}
}

func alreadyAddedAll(n int) string {
	plural := ""
	if n > 1 {
		plural = "es"
	}
	return fmt.Sprintf("Already Added All %d Match%s", n, plural)
}

func allTrue(bs []bool) bool {
	for _, b := range bs {
		if !b {
			return false
		}
	}
	return true
}

func anyTrue(bs []bool) bool {
	for _, b := range bs {
		if b {
			return true
		}
	}
	return false
}
