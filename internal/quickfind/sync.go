package quickfind

import "github.com/dshills/quickfind/internal/engine/span"

// The native selection mirrors the selected subset. When the subset is
// empty the current match is pushed as a zero region so the native
// selection is never left empty; it is popped before any real span is
// added.

func (s *Session) pushZero() {
	for _, sel := range s.selected {
		if sel {
			return
		}
	}
	this, ok := s.ThisSpan()
	if !ok {
		return
	}
	s.zero = &this
	s.host.AddSelection(this)
	s.log.Debug("[%s] pushed zero region %v", s.id, this)
}

func (s *Session) popZero() {
	if s.zero == nil {
		return
	}
	zr := *s.zero
	s.host.SubtractSelection(zr)
	s.zero = nil
	s.log.Debug("[%s] popped zero region %v", s.id, zr)
}

func (s *Session) addThis() {
	s.popZero()
	s.host.AddSelection(s.spans[s.this])
	s.selected[s.this] = true
}

func (s *Session) subtractThis() {
	s.host.SubtractSelection(s.spans[s.this])
	s.selected[s.this] = false
}

func (s *Session) subtractThisAvoidZero() {
	s.subtractThis()
	s.pushZero()
}

func (s *Session) addSelectedRegions() {
	var spans []span.Span
	for i, sel := range s.selected {
		if sel {
			spans = append(spans, s.spans[i])
		}
	}
	s.host.AddSelections(spans)
}
