package quickfind

import "fmt"

// Code identifies a dispatcher operation.
type Code int

const (
	NoCode Code = iota
	GotoNext
	AddNext
	AddAll
	PeekNext
	PeekNextSelected
	AddThis
	SubtractThis
	SingleSelectThis
	InvertSelectThis
	GoFirst
	GoBack
)

var codeNames = [...]string{
	NoCode:           "NO_CODE",
	GotoNext:         "GOTO_NEXT",
	AddNext:          "ADD_NEXT",
	AddAll:           "ADD_ALL",
	PeekNext:         "PEEK_NEXT",
	PeekNextSelected: "PEEK_NEXT_SELECTED",
	AddThis:          "ADD_THIS",
	SubtractThis:     "SUBTRACT_THIS",
	SingleSelectThis: "SINGLE_SELECT_THIS",
	InvertSelectThis: "INVERT_SELECT_THIS",
	GoFirst:          "GO_FIRST",
	GoBack:           "GO_BACK",
}

// String returns the code name.
func (c Code) String() string {
	if c < 0 || int(c) >= len(codeNames) {
		return fmt.Sprintf("Code(%d)", int(c))
	}
	return codeNames[c]
}

// IsValid reports whether c is a known code.
func (c Code) IsValid() bool {
	return c >= NoCode && c <= GoBack
}

// alwaysBasic reports whether the code always searches for the word under
// the last selection, even when several selections exist.
func (c Code) alwaysBasic() bool {
	return c == GotoNext || c == AddNext || c == AddAll
}

// InitState is the session lifecycle state.
type InitState int

const (
	NotInit InitState = iota
	Basic
	Extended
)

// String returns the state name.
func (s InitState) String() string {
	switch s {
	case NotInit:
		return "NOT_INIT"
	case Basic:
		return "BASIC"
	case Extended:
		return "EXTENDED"
	default:
		return fmt.Sprintf("InitState(%d)", int(s))
	}
}
