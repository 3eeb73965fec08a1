package quickfind

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/quickfind/internal/config"
	"github.com/dshills/quickfind/internal/engine/span"
	"github.com/dshills/quickfind/internal/host"
)

var (
	wrapFlags    = config.Flags{CaseSensitive: false, WholeWord: true, WrapScan: true}
	boundedFlags = config.Flags{CaseSensitive: false, WholeWord: true, WrapScan: false}
)

type fixture struct {
	t    *testing.T
	doc  *host.Document
	sess *Session
}

func newFixture(t *testing.T, text string, sels ...span.Span) *fixture {
	t.Helper()
	doc := host.NewDocument("", text)
	if len(sels) > 0 {
		require.NoError(t, doc.SetSelections(sels))
	}
	return &fixture{t: t, doc: doc, sess: NewSession("doc", doc, WithChecks(true))}
}

func (f *fixture) run(name string, flags config.Flags) Outcome {
	f.t.Helper()
	cmd, ok := LookupCommand(name)
	require.True(f.t, ok, "unknown command %s", name)
	out := f.sess.Execute(cmd, flags)
	f.sess.ClearMessages()
	return out
}

func (f *fixture) requireRing(index int, selected ...bool) {
	f.t.Helper()
	require.Equal(f.t, index, f.sess.Index(), "index")
	require.Equal(f.t, selected, f.sess.Selected(), "selected")
}

func (f *fixture) requireHost(spans ...span.Span) {
	f.t.Helper()
	if len(spans) == 0 {
		spans = []span.Span{}
	}
	require.Equal(f.t, spans, f.doc.Selections(), "host selections")
}

const cats = "cat dog cat bird cat"

var (
	cat0 = span.New(0, 3)
	cat1 = span.New(8, 11)
	cat2 = span.New(17, 20)
)

func TestBasicInit_FromPoint(t *testing.T) {
	f := newFixture(t, cats, span.Point(1))

	out := f.run("goto_next", wrapFlags)
	require.Empty(t, out.Alert)
	require.Equal(t, "Move", out.Notice)
	require.True(t, out.Applied)

	require.Equal(t, Basic, f.sess.State())
	require.Equal(t, []span.Span{cat0, cat1, cat2}, f.sess.Spans())
	require.Equal(t, "cat", f.sess.Text())
	require.Equal(t, "cat", f.sess.Pattern())
	require.Equal(t, 0, f.sess.InitIndex())
	f.requireRing(0, true, false, false)
	f.requireHost(cat0)
	require.Equal(t, "Region 1/3", f.sess.Ruler())
}

func TestBasicInit_FromRangeSkipsSource(t *testing.T) {
	f := newFixture(t, cats, cat0)

	f.run("goto_next", wrapFlags)
	require.Equal(t, 0, f.sess.InitIndex())
	f.requireRing(1, false, true, false)
	f.requireHost(cat1)
}

func TestBasicInit_KeepsOtherSelections(t *testing.T) {
	dog := span.New(4, 7)
	f := newFixture(t, cats, dog, span.Point(17))

	f.run("goto_next", wrapFlags)
	f.requireRing(2, false, false, true)
	f.requireHost(dog, cat2)

	f.run("add_next", wrapFlags)
	f.requireRing(0, true, false, true)
	f.requireHost(cat0, dog, cat2)

	f.run("single_select_this", wrapFlags)
	f.requireRing(0, true, false, false)
	f.requireHost(cat0)
}

func TestBasicInit_PreChecks(t *testing.T) {
	tests := []struct {
		command string
		alert   string
	}{
		{"peek_next_selected", "No Other Selections"},
		{"subtract_this", "Can't Subtract"},
		{"go_back", "Can't Go Back"},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			f := newFixture(t, cats, span.Point(0))
			out := f.run(tt.command, wrapFlags)
			require.Equal(t, tt.alert, out.Alert)
			require.False(t, out.Applied)
			require.Equal(t, NotInit, f.sess.State())
			f.requireHost(span.Point(0))
		})
	}
}

func TestBasicInit_NoSelections(t *testing.T) {
	f := newFixture(t, cats)
	f.doc.ClearSelections()

	out := f.run("goto_next", wrapFlags)
	require.Equal(t, "No Selections", out.Alert)
	require.False(t, out.Applied)
}

func TestBasicInit_NotOnAWord(t *testing.T) {
	f := newFixture(t, "a   b", span.Point(2))

	out := f.run("goto_next", wrapFlags)
	require.Empty(t, out.Alert)
	require.Equal(t, "Move", out.Notice)
	require.False(t, out.Applied)
	require.Equal(t, NotInit, f.sess.State())
}

func TestBasicInit_NoMatchesAbridged(t *testing.T) {
	text := "the quick brown fox jumps over"
	f := newFixture(t, text, span.New(1, len(text)))

	out := f.run("add_all", wrapFlags)
	require.Equal(t, `No Matches Found For "he quick .. mps over"`, out.Alert)
	require.False(t, out.Applied)
}

func TestBasicInit_Flags(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		at    int
		flags config.Flags
		want  []span.Span
	}{
		{"case insensitive", "Cat cat", 4, config.Flags{WholeWord: true}, []span.Span{span.New(0, 3), span.New(4, 7)}},
		{"case sensitive", "Cat cat", 4, config.Flags{CaseSensitive: true, WholeWord: true}, []span.Span{span.New(4, 7)}},
		{"whole word", "concat cat", 8, config.Flags{WholeWord: true}, []span.Span{span.New(7, 10)}},
		{"substring", "concat cat", 8, config.Flags{}, []span.Span{span.New(3, 6), span.New(7, 10)}},
		{"whole word accented", "café bar café", 1, config.Flags{WholeWord: true}, []span.Span{span.New(0, 5), span.New(10, 15)}},
		{"whole word after accented letter", "écat cat", 6, config.Flags{WholeWord: true}, []span.Span{span.New(6, 9)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.text, span.Point(tt.at))
			f.run("add_all", tt.flags)
			require.Equal(t, tt.want, f.sess.Spans())
			f.requireHost(tt.want...)
		})
	}
}

func TestGotoNext_Wraps(t *testing.T) {
	f := newFixture(t, cats, span.Point(0))
	f.run("goto_next", wrapFlags)
	f.run("goto_next", wrapFlags)
	f.run("goto_next", wrapFlags)
	f.requireRing(2, false, false, true)

	out := f.run("goto_next", wrapFlags)
	require.Empty(t, out.Alert)
	f.requireRing(0, true, false, false)
	f.requireHost(cat0)
}

func TestGotoNext_Bounded(t *testing.T) {
	f := newFixture(t, cats, span.Point(17))
	f.run("goto_next", boundedFlags)
	f.requireRing(2, false, false, true)

	out := f.run("goto_next", boundedFlags)
	require.Equal(t, "Last Match", out.Alert)
	require.Equal(t, "Move", out.Notice)
	f.requireRing(2, false, false, true)
	f.requireHost(cat2)

	f.run("goto_prev", boundedFlags)
	f.run("goto_prev", boundedFlags)
	out = f.run("goto_prev", boundedFlags)
	require.Equal(t, "First Match", out.Alert)
	f.requireRing(0, true, false, false)
}

func TestGotoNext_RingOfOne(t *testing.T) {
	f := newFixture(t, "cat dog", span.Point(0))
	f.run("goto_next", wrapFlags)

	out := f.run("goto_next", wrapFlags)
	require.Equal(t, "No Other Matches", out.Alert)
	f.requireRing(0, true)
	f.requireHost(cat0)
}

func TestAddNext(t *testing.T) {
	f := newFixture(t, cats, span.Point(0))

	f.run("add_next", wrapFlags)
	f.requireRing(0, true, false, false)

	f.run("add_next", wrapFlags)
	f.requireRing(1, true, true, false)
	f.requireHost(cat0, cat1)
	require.Equal(t, "Region 2/3 (Selection 2/2)", f.sess.Ruler())

	f.run("add_next", wrapFlags)
	f.requireRing(2, true, true, true)

	out := f.run("add_next", wrapFlags)
	require.Equal(t, "Already Added All 3 Matches", out.Alert)
	f.requireRing(2, true, true, true)
	f.requireHost(cat0, cat1, cat2)
}

func TestAddNext_SkipsSelected(t *testing.T) {
	f := newFixture(t, cats, span.Point(0))
	f.run("add_all", wrapFlags)
	f.run("subtract_this", wrapFlags)
	f.requireRing(0, false, true, true)

	f.run("add_next", wrapFlags)
	f.requireRing(0, true, true, true)
}

func TestAddNext_BoundedNoMatchesBelow(t *testing.T) {
	f := newFixture(t, cats, span.Point(17))
	f.run("add_next", boundedFlags)

	out := f.run("add_next", boundedFlags)
	require.Equal(t, "No Matches Below", out.Alert)
	f.requireRing(2, false, false, true)

	f.run("add_prev", boundedFlags)
	f.requireRing(1, false, true, true)
	f.run("add_prev", boundedFlags)
	f.requireRing(0, true, true, true)
	out = f.run("add_prev", boundedFlags)
	require.Equal(t, "Already Added All 3 Matches", out.Alert)
}

func TestAddNext_BoundedNoMatchesAbove(t *testing.T) {
	f := newFixture(t, cats, span.Point(0))
	f.run("add_prev", boundedFlags)

	out := f.run("add_prev", boundedFlags)
	require.Equal(t, "No Matches Above", out.Alert)
	f.requireRing(0, true, false, false)
}

func TestAddAll_Twice(t *testing.T) {
	f := newFixture(t, "x y x z x w x", span.Point(0))

	out := f.run("add_all", wrapFlags)
	require.Empty(t, out.Alert)
	require.Equal(t, "Add All", out.Notice)
	f.requireRing(0, true, true, true, true)
	require.Equal(t, "Region 1/4 (Selection 1/4)", f.sess.Ruler())

	out = f.run("add_all", wrapFlags)
	require.Equal(t, "Already Added All 4 Matches", out.Alert)
	f.requireRing(0, true, true, true, true)
}

func TestAddAll_SingleMatchWording(t *testing.T) {
	f := newFixture(t, "cat dog", span.Point(0))
	f.run("add_all", wrapFlags)
	out := f.run("add_all", wrapFlags)
	require.Equal(t, "Already Added All 1 Match", out.Alert)
}

func TestSubtractThis_ZeroRegion(t *testing.T) {
	f := newFixture(t, "foo bar foo", span.Point(0))
	foo0, foo1 := span.New(0, 3), span.New(8, 11)

	f.run("add_all", wrapFlags)
	f.requireHost(foo0, foo1)

	out := f.run("subtract_this", wrapFlags)
	require.Equal(t, "Subtract", out.Notice)
	f.requireRing(0, false, true)
	f.requireHost(foo1)

	f.run("peek_next", wrapFlags)
	f.run("subtract_this", wrapFlags)
	f.requireRing(1, false, false)
	f.requireHost(foo1)
	zr, ok := f.sess.ZeroRegion()
	require.True(t, ok)
	require.Equal(t, foo1, zr)

	out = f.run("subtract_this", wrapFlags)
	require.Equal(t, "Already Subtracted", out.Alert)

	f.run("add_this", wrapFlags)
	f.requireRing(1, false, true)
	f.requireHost(foo1)
	_, ok = f.sess.ZeroRegion()
	require.False(t, ok)
}

func TestAddThis_Idempotent(t *testing.T) {
	f := newFixture(t, cats, span.Point(0))
	f.run("add_this", wrapFlags)
	f.requireRing(0, true, false, false)

	out := f.run("add_this", wrapFlags)
	require.Equal(t, "Already Added", out.Alert)
	f.requireRing(0, true, false, false)
	f.requireHost(cat0)
}

func TestPeekNext_FromPoint(t *testing.T) {
	f := newFixture(t, cats, span.Point(1))

	f.run("peek_next", wrapFlags)
	f.requireRing(0, false, false, false)
	f.requireHost(cat0)
	zr, ok := f.sess.ZeroRegion()
	require.True(t, ok)
	require.Equal(t, cat0, zr)

	out := f.run("peek_next", wrapFlags)
	require.Equal(t, "Peek", out.Notice)
	f.requireRing(1, false, false, false)
	f.requireHost(cat0)
	require.Equal(t, "Region 2/3", f.sess.Ruler())

	f.run("add_this", wrapFlags)
	f.requireRing(1, false, true, false)
	f.requireHost(cat1)
}

func TestPeekNext_FromMatchingRange(t *testing.T) {
	f := newFixture(t, cats, cat1)

	f.run("peek_next", wrapFlags)
	require.Equal(t, 1, f.sess.InitIndex())
	f.requireRing(2, false, true, false)
	f.requireHost(cat1)
}

func TestPeekNextSelected(t *testing.T) {
	f := newFixture(t, cats, span.Point(0))
	f.run("add_all", wrapFlags)

	out := f.run("peek_next_selected", wrapFlags)
	require.Equal(t, "Review", out.Notice)
	f.requireRing(1, true, true, true)
	require.Equal(t, "Region 2/3 (Selection 2/3)", f.sess.Ruler())

	f.run("peek_next_selected", boundedFlags)
	out = f.run("peek_next_selected", boundedFlags)
	require.Equal(t, "No Selections Below", out.Alert)
	require.Equal(t, 2, f.sess.Index())
}

func TestPeekNextSelected_NoOther(t *testing.T) {
	f := newFixture(t, cats, span.Point(0))
	f.run("add_this", wrapFlags)

	out := f.run("peek_next_selected", wrapFlags)
	require.Equal(t, "No Other Selections", out.Alert)
	require.Equal(t, 0, f.sess.Index())

	out = f.run("peek_prev_selected", boundedFlags)
	require.Equal(t, "No Selections Above", out.Alert)
}

func TestPeekNextSelected_NoneSelected(t *testing.T) {
	f := newFixture(t, cats, span.Point(0))
	f.run("add_this", wrapFlags)
	f.run("subtract_this", wrapFlags)

	out := f.run("peek_next_selected", wrapFlags)
	require.Equal(t, "No Selections", out.Alert)
}

func TestSingleSelect(t *testing.T) {
	f := newFixture(t, cats, span.Point(8))
	f.run("add_all", wrapFlags)

	f.run("single_select_this", wrapFlags)
	f.requireRing(1, false, true, false)
	f.requireHost(cat1)

	out := f.run("single_select_this", wrapFlags)
	require.Equal(t, "Already Single Selected", out.Alert)
}

func TestSingleSelect_NotInWholeWord(t *testing.T) {
	f := newFixture(t, "concat cat", span.New(3, 6))

	out := f.run("single_select_this", wrapFlags)
	require.Equal(t, `Selection "cat" Not In A Whole Word`, out.Alert)
	require.False(t, out.Applied)
	require.Equal(t, NotInit, f.sess.State())
}

// skewedHost reports matches that do not include the searched text.
type skewedHost struct {
	*host.Document
	matches []span.Span
}

func (h *skewedHost) FindAll(string, bool, bool, bool) ([]span.Span, error) {
	return h.matches, nil
}

func TestSingleSelect_InvariantChecked(t *testing.T) {
	doc := host.NewDocument("", "concat cat")
	require.NoError(t, doc.SetSelections([]span.Span{span.New(3, 6)}))
	h := &skewedHost{Document: doc, matches: []span.Span{span.New(7, 10)}}
	cmd, _ := LookupCommand("single_select_this")

	sess := NewSession("doc", h, WithChecks(true))
	err := catchPanic(func() { sess.Execute(cmd, config.Flags{}) })
	require.ErrorIs(t, err, ErrInvariant)
	var ierr *InvariantError
	require.ErrorAs(t, err, &ierr)
	require.Equal(t, "doc", ierr.Session)

	sess = NewSession("doc", h)
	out := sess.Execute(cmd, config.Flags{})
	require.Equal(t, `Selection "cat" Not In A Whole Word`, out.Alert)
}

func catchPanic(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	fn()
	return nil
}

func TestInvertSelect_AtInit(t *testing.T) {
	f := newFixture(t, cats, span.Point(0))

	f.run("invert_select_this", wrapFlags)
	f.requireRing(0, false, true, true)
	f.requireHost(cat1, cat2)
	require.Equal(t, "Region 1/3", f.sess.Ruler())

	out := f.run("invert_select_this", wrapFlags)
	require.Equal(t, "Already Invert Selected", out.Alert)
}

func TestInvertSelect_SingleMatch(t *testing.T) {
	f := newFixture(t, "cat dog", span.Point(0))

	out := f.run("invert_select_this", wrapFlags)
	require.Equal(t, "No Other Matches", out.Alert)
	require.False(t, out.Applied)

	f.run("add_this", wrapFlags)
	out = f.run("invert_select_this", wrapFlags)
	require.Equal(t, "No Other Selections", out.Alert)
}

func TestInvertSelect_AfterAddAll(t *testing.T) {
	f := newFixture(t, cats, span.Point(8))
	f.run("add_all", wrapFlags)

	out := f.run("invert_select_this", wrapFlags)
	require.Equal(t, "Invert Select", out.Notice)
	f.requireRing(1, true, false, true)
	f.requireHost(cat0, cat2)
}

func TestInvertSelect_PopsZeroRegion(t *testing.T) {
	f := newFixture(t, cats, span.Point(0))
	f.run("peek_next", wrapFlags)
	_, ok := f.sess.ZeroRegion()
	require.True(t, ok)

	f.run("invert_select_this", wrapFlags)
	f.requireRing(0, false, true, true)
	f.requireHost(cat1, cat2)
	_, ok = f.sess.ZeroRegion()
	require.False(t, ok)
}

func TestGoFirstLastBack_AfterGoto(t *testing.T) {
	f := newFixture(t, "x y x y x", span.Point(4))
	x0, x1, x2 := span.New(0, 1), span.New(4, 5), span.New(8, 9)

	f.run("goto_next", wrapFlags)
	f.requireRing(1, false, true, false)
	require.Equal(t, 1, f.sess.InitIndex())

	out := f.run("go_last", wrapFlags)
	require.Equal(t, "Last", out.Notice)
	f.requireRing(2, false, false, true)
	f.requireHost(x2)

	f.run("go_first", wrapFlags)
	require.Equal(t, GotoNext, f.sess.LastCode())
	f.requireRing(0, true, false, false)
	f.requireHost(x0)

	f.run("go_back", wrapFlags)
	f.requireRing(1, false, true, false)
	f.requireHost(x1)

	out = f.run("go_back", wrapFlags)
	require.Equal(t, "Already Back", out.Alert)
}

func TestGoFirst_AfterAdd(t *testing.T) {
	f := newFixture(t, "x y x y x", span.Point(4))
	f.run("add_next", wrapFlags)

	f.run("go_first", wrapFlags)
	f.requireRing(0, true, true, false)

	out := f.run("go_first", wrapFlags)
	require.Equal(t, "Already First", out.Alert)
}

func TestGoFirst_AfterPeekLeavesSelection(t *testing.T) {
	f := newFixture(t, "x y x y x", span.Point(4))
	f.run("add_this", wrapFlags)
	f.run("peek_next", wrapFlags)

	f.run("go_first", wrapFlags)
	require.Equal(t, PeekNext, f.sess.LastCode())
	f.requireRing(0, false, true, false)
	f.requireHost(span.New(4, 5))
}

func TestGoFirst_AsFirstCommand(t *testing.T) {
	f := newFixture(t, "x y x y x", span.Point(4))

	f.run("go_first", wrapFlags)
	require.Equal(t, 1, f.sess.InitIndex())
	f.requireRing(0, true, false, false)

	f.run("go_back", wrapFlags)
	f.requireRing(1, false, true, false)
}

func TestGoLast_AsFirstCommand(t *testing.T) {
	f := newFixture(t, "x y x y x", span.Point(0))
	f.run("go_last", wrapFlags)
	f.requireRing(2, false, false, true)
}

func TestExtended(t *testing.T) {
	one, two, three := span.New(0, 3), span.New(4, 7), span.New(8, 13)
	f := newFixture(t, "one two three", one, two, three)

	out := f.run("peek_next", wrapFlags)
	require.True(t, out.Applied)
	require.Equal(t, Extended, f.sess.State())
	require.Equal(t, 0, f.sess.InitIndex())
	f.requireRing(0, true, true, true)
	require.Equal(t, "Region 1/3 (Selection 1/3)", f.sess.Ruler())

	f.run("subtract_this", wrapFlags)
	f.requireRing(0, false, true, true)
	f.requireHost(two, three)

	f.run("peek_next", wrapFlags)
	f.run("go_back", wrapFlags)
	f.requireRing(0, false, true, true)
	f.requireHost(two, three)
}

func TestExtended_ReverseStartsAtFirst(t *testing.T) {
	f := newFixture(t, "one two three", span.New(0, 3), span.New(4, 7), span.New(8, 13))

	f.run("peek_prev", wrapFlags)
	require.Equal(t, 2, f.sess.InitIndex())
	require.Equal(t, 2, f.sess.Index())
}

func TestExtended_BoundedStartsAtEnd(t *testing.T) {
	f := newFixture(t, "one two three", span.New(0, 3), span.New(4, 7), span.New(8, 13))

	out := f.run("peek_next", boundedFlags)
	require.Equal(t, "Last Match", out.Alert)
	require.Equal(t, 2, f.sess.Index())
}

func TestExtended_NoSelections(t *testing.T) {
	f := newFixture(t, "one")
	f.doc.ClearSelections()

	out := f.run("add_this", wrapFlags)
	require.Equal(t, "No Selections", out.Alert)
	require.Equal(t, NotInit, f.sess.State())
}

func TestExtended_ThenBasicRestartsSearch(t *testing.T) {
	two, three := span.New(4, 7), span.New(8, 13)
	f := newFixture(t, "one two three", span.New(0, 3), two, three)
	f.run("peek_next", wrapFlags)
	f.run("subtract_this", wrapFlags)

	f.run("goto_next", wrapFlags)
	require.Equal(t, Basic, f.sess.State())
	require.Equal(t, "three", f.sess.Text())
	f.requireRing(0, true)
	f.requireHost(two, three)
	require.Equal(t, NoCode, f.sess.LastCode())
}

func TestReset(t *testing.T) {
	f := newFixture(t, cats, span.Point(0))
	f.run("add_all", wrapFlags)
	f.sess.SetLastCommand("move_right")

	f.sess.Reset()
	require.Equal(t, NotInit, f.sess.State())
	require.Zero(t, f.sess.Size())
	require.Empty(t, f.sess.Ruler())
	require.Equal(t, NoCode, f.sess.Code())
	require.Equal(t, "move_right", f.sess.LastCommand())
	_, ok := f.sess.ThisSpan()
	require.False(t, ok)

	f.doc.ClearSelections()
	f.doc.AddSelection(span.Point(9))
	f.run("goto_next", wrapFlags)
	f.requireRing(1, false, true, false)
}

func TestRestart(t *testing.T) {
	f := newFixture(t, "cat dog cat dog", span.Point(0))
	f.run("goto_next", wrapFlags)
	f.doc.ClearSelections()
	f.doc.AddSelection(span.Point(5))

	out := f.sess.Restart(AddAll, false, wrapFlags)
	require.True(t, out.Applied)
	require.Equal(t, "dog", f.sess.Text())
	f.requireRing(0, true, true)
	f.requireHost(span.New(4, 7), span.New(12, 15))
}

func TestRestart_ForgetsPreviousCode(t *testing.T) {
	fresh := newFixture(t, "x y x y x", span.Point(0))
	fresh.run("go_last", wrapFlags)
	fresh.run("go_back", wrapFlags)
	fresh.requireRing(0, true, false, false)

	f := newFixture(t, "x y x y x", span.Point(0))
	f.run("peek_next", wrapFlags)
	f.doc.ClearSelections()
	f.doc.AddSelection(span.Point(0))

	out := f.sess.Restart(GoFirst, true, wrapFlags)
	require.True(t, out.Applied)
	require.Equal(t, NoCode, f.sess.LastCode())
	f.requireRing(2, false, false, true)

	f.run("go_back", wrapFlags)
	f.requireRing(0, true, false, false)
	require.Equal(t, fresh.doc.Selections(), f.doc.Selections())
}

func TestWrapFlagReadPerCommand(t *testing.T) {
	f := newFixture(t, cats, span.Point(17))
	f.run("goto_next", boundedFlags)

	out := f.run("goto_next", boundedFlags)
	require.Equal(t, "Last Match", out.Alert)

	out = f.run("goto_next", wrapFlags)
	require.Empty(t, out.Alert)
	require.Equal(t, 0, f.sess.Index())
}

func TestMessagesAreOneShot(t *testing.T) {
	f := newFixture(t, cats, span.Point(17))
	cmd, _ := LookupCommand("goto_next")
	f.sess.Execute(cmd, boundedFlags)
	f.sess.Execute(cmd, boundedFlags)
	require.Equal(t, "Last Match", f.sess.Alert())
	require.Equal(t, "Move", f.sess.Notice())

	f.sess.ClearMessages()
	require.Empty(t, f.sess.Alert())
	require.Empty(t, f.sess.Notice())
	require.Equal(t, "Region 3/3", f.sess.Ruler())

	f.sess.ClearRuler()
	require.Empty(t, f.sess.Ruler())
}

func TestDescribe(t *testing.T) {
	f := newFixture(t, cats, span.Point(0))
	f.run("add_next", wrapFlags)

	desc := f.sess.Describe()
	require.Contains(t, desc, "init = BASIC")
	require.Contains(t, desc, "code = ADD_NEXT")
	require.Contains(t, desc, `text = "cat"`)
	require.Contains(t, desc, "this_region = [0:3)")
	require.Contains(t, desc, "zero_region = none")
}

type recordingLogger struct {
	debug []string
	trace int
}

func (l *recordingLogger) Debug(msg string, args ...any) {
	l.debug = append(l.debug, fmt.Sprintf(msg, args...))
}

func (l *recordingLogger) Trace(string, ...any) {
	l.trace++
}

func TestAlertsAreLogged(t *testing.T) {
	log := &recordingLogger{}
	doc := host.NewDocument("", "cat dog")
	sess := NewSession("doc-1", doc, WithLogger(log))
	cmd, _ := LookupCommand("goto_next")

	sess.Execute(cmd, wrapFlags)
	sess.Execute(cmd, wrapFlags)
	require.Contains(t, log.debug, "[doc-1] No Other Matches")
	require.Positive(t, log.trace)
}

func TestInvariantErrorMessage(t *testing.T) {
	err := error(&InvariantError{Session: "d", Message: "bad"})
	require.True(t, errors.Is(err, ErrInvariant))
	require.True(t, strings.Contains(err.Error(), "bad"))
}
