package quickfind

import (
	"fmt"
	"strings"

	"github.com/dshills/quickfind/internal/config"
	"github.com/dshills/quickfind/internal/engine/span"
)

// Host is the document a session navigates: its native multi-selection,
// its search and word expansion primitives and its viewport.
type Host interface {
	// Selections returns the native selection in document order.
	Selections() []span.Span
	// SelectionCount returns the number of native selections.
	SelectionCount() int
	ClearSelections()
	AddSelection(s span.Span)
	AddSelections(spans []span.Span)
	SubtractSelection(s span.Span)

	// ExpandToWord returns the word enclosing the point s, or s unchanged.
	ExpandToWord(s span.Span) span.Span
	// Substr returns the text covered by s.
	Substr(s span.Span) string
	// FindAll returns every match of pattern in document order. With
	// wholeWord a match must not touch a letter, digit or underscore on
	// either side.
	FindAll(pattern string, literal, wholeWord, ignoreCase bool) ([]span.Span, error)

	// Show scrolls the viewport to s.
	Show(s span.Span)
}

// Outcome reports what a command did.
type Outcome struct {
	// Alert is set when the command hit a boundary or could not proceed.
	Alert string

	// Notice is the label of the command that ran.
	Notice string

	// Applied is true when the session is initialized after the command
	// and the current match was brought into view.
	Applied bool
}

// Session is the match ring for one document.
type Session struct {
	id     string
	host   Host
	log    Logger
	checks bool

	state    InitState
	lastCode Code
	code     Code
	reverse  bool
	wrap     bool
	flags    config.Flags

	text      string
	pattern   string
	spans     []span.Span
	selected  []bool
	initIndex int // -1 until the home position is recorded
	this      int
	orig      span.Span
	zero      *span.Span

	ruler  string
	alert  string
	notice string

	lastCommand string
}

// NewSession creates an uninitialized session for the document id.
func NewSession(id string, h Host, opts ...Option) *Session {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	s := &Session{
		id:     id,
		host:   h,
		log:    o.logger,
		checks: o.checks,
	}
	s.Reset()
	return s
}

// Execute runs a navigation command with the given flags.
//
// Codes that grow or move the ring from the word under the cursor always
// take the basic path. Other codes take the basic path while the session
// is basic, or uninitialized with a single native selection, and the
// extended path otherwise. The command's notice is recorded even when the
// command raised an alert.
func (s *Session) Execute(cmd Command, flags config.Flags) Outcome {
	var applied bool
	if cmd.Code.alwaysBasic() || s.state == Basic ||
		(s.state == NotInit && s.host.SelectionCount() == 1) {
		applied = s.RunBasic(cmd.Code, cmd.Reverse, flags)
	} else {
		applied = s.RunExtended(cmd.Code, cmd.Reverse, flags)
	}
	if cmd.Notice != "" {
		s.notice = cmd.Notice
	}
	s.verify()
	return Outcome{Alert: s.alert, Notice: s.notice, Applied: applied}
}

// RunBasic runs code on the basic path: initialize from the word under the
// last selection if the session is not basic yet, otherwise dispatch.
// Returns false when initialization failed.
func (s *Session) RunBasic(code Code, reverse bool, flags config.Flags) bool {
	if s.code != GoFirst && s.code != GoBack {
		s.lastCode = s.code
	}
	s.code = code
	s.reverse = reverse
	s.wrap = flags.WrapScan
	if s.state != Basic {
		s.flags = flags
		if !s.basicInit() {
			return false
		}
	} else {
		s.dispatch()
	}
	s.finalize()
	return true
}

// RunExtended runs code on the extended path: the existing native
// selections become the ring when the session is uninitialized.
// Returns false when initialization failed.
func (s *Session) RunExtended(code Code, reverse bool, flags config.Flags) bool {
	s.lastCode = s.code
	s.code = code
	s.reverse = reverse
	s.wrap = flags.WrapScan
	if s.state == NotInit {
		s.flags = flags
		if !s.extendedInit() {
			return false
		}
	}
	s.dispatch()
	s.finalize()
	return true
}

// Restart discards the active ring and searches again from the word under
// the last selection, running code as the first command.
func (s *Session) Restart(code Code, reverse bool, flags config.Flags) Outcome {
	s.Reset()
	applied := s.RunBasic(code, reverse, flags)
	s.verify()
	return Outcome{Alert: s.alert, Notice: s.notice, Applied: applied}
}

// Reset returns the session to the uninitialized state. The name of the
// last host command is kept.
func (s *Session) Reset() {
	s.state = NotInit
	s.lastCode = NoCode
	s.code = NoCode
	s.reverse = false
	s.clearRing()
	s.alert = ""
	s.notice = ""
}

// resetKeepingCode resets the session but keeps the pending code and
// direction.
func (s *Session) resetKeepingCode() {
	code, reverse := s.code, s.reverse
	s.Reset()
	s.code, s.reverse = code, reverse
}

// clearRing drops the query, the ring and the ruler.
func (s *Session) clearRing() {
	s.text = ""
	s.pattern = ""
	s.spans = nil
	s.selected = nil
	s.initIndex = -1
	s.this = 0
	s.orig = span.Span{}
	s.zero = nil
	s.ruler = ""
}

// ID returns the document id the session belongs to.
func (s *Session) ID() string { return s.id }

// State returns the lifecycle state.
func (s *Session) State() InitState { return s.state }

// Code returns the code of the latest command.
func (s *Session) Code() Code { return s.code }

// LastCode returns the code go-first, go-last and go-back consult.
func (s *Session) LastCode() Code { return s.lastCode }

// Reverse reports the direction of the latest command.
func (s *Session) Reverse() bool { return s.reverse }

// Text returns the query text of a basic session.
func (s *Session) Text() string { return s.text }

// Pattern returns the compiled search pattern of a basic session.
func (s *Session) Pattern() string { return s.pattern }

// Size returns the number of spans in the ring.
func (s *Session) Size() int { return len(s.spans) }

// Spans returns a copy of the ring.
func (s *Session) Spans() []span.Span { return span.Clone(s.spans) }

// Selected returns a copy of the selected subset.
func (s *Session) Selected() []bool {
	if s.selected == nil {
		return nil
	}
	out := make([]bool, len(s.selected))
	copy(out, s.selected)
	return out
}

// NumSelected returns the number of selected spans.
func (s *Session) NumSelected() int {
	n := 0
	for _, sel := range s.selected {
		if sel {
			n++
		}
	}
	return n
}

// Index returns the current ring index.
func (s *Session) Index() int { return s.this }

// InitIndex returns the home position go-back returns to, or -1.
func (s *Session) InitIndex() int { return s.initIndex }

// ThisSpan returns the current match.
func (s *Session) ThisSpan() (span.Span, bool) {
	if len(s.spans) == 0 {
		return span.Span{}, false
	}
	return s.spans[s.this], true
}

// ThisSelected reports whether the current match is in the selected subset.
func (s *Session) ThisSelected() bool {
	if len(s.spans) == 0 {
		return false
	}
	return s.selected[s.this]
}

// ZeroRegion returns the placeholder selection, if one is pushed.
func (s *Session) ZeroRegion() (span.Span, bool) {
	if s.zero == nil {
		return span.Span{}, false
	}
	return *s.zero, true
}

// Alert returns the pending alert.
func (s *Session) Alert() string { return s.alert }

// Notice returns the pending notice.
func (s *Session) Notice() string { return s.notice }

// SetNotice records a notice for the next status update.
func (s *Session) SetNotice(notice string) { s.notice = notice }

// Ruler returns the position text, such as "Region 2/5 (Selection 1/3)".
func (s *Session) Ruler() string { return s.ruler }

// ClearMessages drops the alert and notice once they have been shown.
func (s *Session) ClearMessages() {
	s.alert = ""
	s.notice = ""
}

// ClearRuler drops the ruler.
func (s *Session) ClearRuler() { s.ruler = "" }

// LastCommand returns the name of the latest host command.
func (s *Session) LastCommand() string { return s.lastCommand }

// SetLastCommand records the name of the latest host command.
func (s *Session) SetLastCommand(name string) { s.lastCommand = name }

// Describe returns a multi-line dump of the session state.
func (s *Session) Describe() string {
	var b strings.Builder
	field := func(name string, value any) {
		fmt.Fprintf(&b, "%s = %v\n", name, value)
	}
	field("id", s.id)
	field("last_command", s.lastCommand)
	field("init", s.state)
	field("last_code", s.lastCode)
	field("code", s.code)
	field("reverse", s.reverse)
	field("text", fmt.Sprintf("%q", s.text))
	field("pattern", fmt.Sprintf("%q", s.pattern))
	field("size", s.Size())
	field("spans", s.spans)
	field("selected", s.selected)
	field("num_selected", s.NumSelected())
	field("host_selections", s.host.SelectionCount())
	field("init_index", s.initIndex)
	field("this_index", s.this)
	field("orig_region", s.orig)
	if this, ok := s.ThisSpan(); ok {
		field("this_region", this)
	} else {
		field("this_region", "none")
	}
	if s.zero != nil {
		field("zero_region", *s.zero)
	} else {
		field("zero_region", "none")
	}
	field("ruler", fmt.Sprintf("%q", s.ruler))
	field("notice", fmt.Sprintf("%q", s.notice))
	field("alert", fmt.Sprintf("%q", s.alert))
	return b.String()
}

// fail records an alert and reports failure.
func (s *Session) fail(msg string) bool {
	s.raise(msg)
	return false
}

// raise records an alert.
func (s *Session) raise(msg string) {
	s.alert = msg
	s.log.Debug("[%s] %s", s.id, msg)
}

// finalize brings the current match into view and recomputes the ruler.
func (s *Session) finalize() {
	this, ok := s.ThisSpan()
	if !ok {
		return
	}
	s.host.Show(this)
	s.ruler = fmt.Sprintf("Region %d/%d", s.this+1, len(s.spans))
	if s.selected[s.this] {
		before, total := s.selectedRank()
		if total > 1 {
			s.ruler += fmt.Sprintf(" (Selection %d/%d)", before+1, total)
		}
	}
	s.log.Trace("[%s] after %s:\n%s", s.id, s.code, s.Describe())
}

// selectedRank returns the number of selected spans before the current
// one and the total number selected.
func (s *Session) selectedRank() (before, total int) {
	for i, sel := range s.selected {
		if !sel {
			continue
		}
		if i < s.this {
			before++
		}
		total++
	}
	return before, total
}
