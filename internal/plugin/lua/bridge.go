package lua

import (
	"github.com/dshills/quickfind/internal/config"
	"github.com/dshills/quickfind/internal/engine/span"
	lua "github.com/yuin/gopher-lua"
)

// spansToTable converts spans to an array of {start, end} pairs.
func spansToTable(L *lua.LState, spans []span.Span) *lua.LTable {
	t := L.CreateTable(len(spans), 0)
	for i, s := range spans {
		pair := L.CreateTable(2, 0)
		pair.RawSetInt(1, lua.LNumber(s.Start))
		pair.RawSetInt(2, lua.LNumber(s.End))
		t.RawSetInt(i+1, pair)
	}
	return t
}

// checkSpans reads (start, end) argument pairs beginning at index first.
func checkSpans(L *lua.LState, first int) []span.Span {
	n := L.GetTop() - first + 1
	if n < 0 {
		n = 0
	}
	if n%2 != 0 {
		L.ArgError(L.GetTop(), "expected start and end pairs")
	}
	spans := make([]span.Span, 0, n/2)
	for i := first; i < first+n; i += 2 {
		spans = append(spans, span.New(L.CheckInt(i), L.CheckInt(i+1)))
	}
	return spans
}

// flagsToTable converts find flags to a table keyed by setting name.
func flagsToTable(L *lua.LState, f config.Flags) *lua.LTable {
	t := L.CreateTable(0, 3)
	t.RawSetString("case_sensitive", lua.LBool(f.CaseSensitive))
	t.RawSetString("whole_word", lua.LBool(f.WholeWord))
	t.RawSetString("wrap_scan", lua.LBool(f.WrapScan))
	return t
}

// stringsToTable converts a string slice to an array.
func stringsToTable(L *lua.LState, ss []string) *lua.LTable {
	t := L.CreateTable(len(ss), 0)
	for i, s := range ss {
		t.RawSetInt(i+1, lua.LString(s))
	}
	return t
}
