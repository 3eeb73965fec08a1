package quickfind

import (
	"errors"
	"fmt"
)

// ErrInvariant is wrapped by every InvariantError.
var ErrInvariant = errors.New("session invariant violated")

// InvariantError reports an internal inconsistency in a session.
type InvariantError struct {
	Session string
	Message string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("session %s: %s", e.Session, e.Message)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}

// checkInvariant panics when checks are enabled and ok is false. Otherwise
// the violation is only logged and the caller's alert path handles it.
func (s *Session) checkInvariant(ok bool, msg string) {
	if ok {
		return
	}
	if s.checks {
		panic(&InvariantError{Session: s.id, Message: msg})
	}
	s.log.Debug("[%s] invariant: %s", s.id, msg)
}

// verify checks the ring bookkeeping after a command.
func (s *Session) verify() {
	if !s.checks {
		return
	}
	s.checkInvariant(len(s.selected) == len(s.spans),
		fmt.Sprintf("%d selection flags for %d spans", len(s.selected), len(s.spans)))
	if s.state == NotInit {
		return
	}
	s.checkInvariant(len(s.spans) > 0, "initialized with an empty ring")
	s.checkInvariant(s.this >= 0 && s.this < len(s.spans),
		fmt.Sprintf("index %d outside ring of %d", s.this, len(s.spans)))
	s.checkInvariant(s.initIndex >= 0 && s.initIndex < len(s.spans),
		fmt.Sprintf("init index %d outside ring of %d", s.initIndex, len(s.spans)))
	s.checkInvariant(s.zero == nil || s.NumSelected() == 0,
		"zero region pushed while spans are selected")
}
