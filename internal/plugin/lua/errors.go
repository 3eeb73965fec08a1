package lua

import (
	"errors"
	"fmt"
)

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a script outlives the state timeout.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrNoActiveDocument is raised by selection functions with no active document.
	ErrNoActiveDocument = errors.New("no active document")
)

// ScriptError reports a failed script.
type ScriptError struct {
	Script string
	Err    error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("script %s: %v", e.Script, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}
