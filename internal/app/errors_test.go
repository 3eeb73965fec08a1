package app

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/quickfind/internal/quickfind"
)

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *OperationError
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "op only",
			err:      &OperationError{Op: "save"},
			expected: "save",
		},
		{
			name:     "op and target",
			err:      &OperationError{Op: "open", Target: "/path/file.txt"},
			expected: "open /path/file.txt",
		},
		{
			name:     "full error chain",
			err:      &OperationError{Op: "open", Target: "/path/file.txt", Err: errors.New("io error")},
			expected: "open /path/file.txt: io error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			if result != tt.expected {
				t.Errorf("Error() = '%s', expected '%s'", result, tt.expected)
			}
		})
	}
}

func TestOperationError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	err := NewOperationError("save", "notes.txt", inner)
	if !errors.Is(err, inner) {
		t.Error("expected errors.Is to find the wrapped error")
	}

	var nilErr *OperationError
	if nilErr.Unwrap() != nil {
		t.Error("expected nil unwrap for nil receiver")
	}
}

func TestRecoveredPanicError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *RecoveredPanicError
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "value only",
			err:      &RecoveredPanicError{Value: "panic message"},
			expected: "panic: panic message",
		},
		{
			name:     "value with stack",
			err:      &RecoveredPanicError{Value: "panic", Stack: "goroutine 1..."},
			expected: "panic: panic\ngoroutine 1...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			if result != tt.expected {
				t.Errorf("Error() = '%s', expected '%s'", result, tt.expected)
			}
		})
	}
}

func TestRecoveredPanicError_UnwrapsErrorValues(t *testing.T) {
	inv := &quickfind.InvariantError{Session: "doc", Message: "broken"}
	err := NewRecoveredPanicError(inv, "")
	if !errors.Is(err, quickfind.ErrInvariant) {
		t.Error("expected a panicked invariant error to unwrap")
	}

	if NewRecoveredPanicError("text", "").Unwrap() != nil {
		t.Error("expected a non-error panic value to unwrap to nil")
	}
}

func TestRecoverInto(t *testing.T) {
	run := func() (err error) {
		defer recoverInto(&err)
		panic("boom")
	}

	err := run()
	var panicErr *RecoveredPanicError
	if !errors.As(err, &panicErr) {
		t.Fatalf("expected RecoveredPanicError, got %v", err)
	}
	if panicErr.Value != "boom" || !strings.Contains(panicErr.Stack, "goroutine") {
		t.Errorf("unexpected panic error %+v", panicErr)
	}
}

func TestErrorList(t *testing.T) {
	el := NewErrorList()
	if el.HasErrors() || el.AsError() != nil {
		t.Error("expected no errors initially")
	}

	first := errors.New("error 1")
	el.Add(first)
	el.Add(nil)
	if el.Len() != 1 || el.Error() != "error 1" {
		t.Errorf("unexpected list %d %q", el.Len(), el.Error())
	}

	el.Add(ErrUnknownCommand)
	if el.Error() != "2 errors: first: error 1" {
		t.Errorf("Error() = %q", el.Error())
	}
	err := el.AsError()
	if !errors.Is(err, first) || !errors.Is(err, ErrUnknownCommand) {
		t.Error("expected errors.Is to see every collected error")
	}
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		ErrQuit,
		ErrAlreadyRunning,
		ErrNoActiveDocument,
		ErrUnknownCommand,
		ErrNoBackend,
	}

	for i, err1 := range sentinels {
		for j, err2 := range sentinels {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("sentinel errors %d and %d should be distinct", i, j)
			}
		}
	}
}
