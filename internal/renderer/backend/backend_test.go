package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/quickfind/internal/renderer/core"
)

func TestNullBackendInit(t *testing.T) {
	b := NewNullBackend(80, 24)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	w, h := b.Size()
	if w != 80 || h != 24 {
		t.Errorf("expected size (80, 24), got (%d, %d)", w, h)
	}
	if b.GetCell(3, 3) != core.EmptyCell() {
		t.Error("new backend should be blank")
	}
}

func TestNullBackendSetGetCell(t *testing.T) {
	b := NewNullBackend(80, 24)
	_ = b.Init()

	cell := core.NewStyledCell('X', core.DefaultStyle().WithForeground(core.ColorRed))
	b.SetCell(10, 5, cell)

	if got := b.GetCell(10, 5); got != cell {
		t.Errorf("cell mismatch: expected %+v, got %+v", cell, got)
	}

	// Out of bounds should be ignored/return empty
	b.SetCell(-1, 0, cell)
	b.SetCell(100, 0, cell)
	if b.GetCell(-1, 0) != core.EmptyCell() {
		t.Error("out of bounds should return empty cell")
	}
}

func TestNullBackendFillAndRow(t *testing.T) {
	b := NewNullBackend(6, 2)
	_ = b.Init()

	b.Fill(core.RectFromSize(1, 2, 5, 10), core.NewStyledCell('.', core.DefaultStyle()))
	if got := b.Row(1); got != "  ...." {
		t.Errorf("Row(1) = %q", got)
	}
	if got := b.Row(0); got != "      " {
		t.Errorf("Row(0) = %q", got)
	}
	b.Clear()
	if got := b.Row(1); got != "      " {
		t.Errorf("Row(1) after Clear = %q", got)
	}
}

func TestNullBackendCursorAndEvents(t *testing.T) {
	b := NewNullBackend(10, 10)
	_ = b.Init()

	b.ShowCursor(3, 4)
	x, y, visible := b.CursorPosition()
	if x != 3 || y != 4 || !visible {
		t.Errorf("cursor = (%d, %d, %v)", x, y, visible)
	}
	b.HideCursor()
	if _, _, visible := b.CursorPosition(); visible {
		t.Error("cursor should be hidden")
	}

	b.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'n', Mod: ModAlt})
	if ev := b.PollEvent(); ev.KeyName() != "alt+n" {
		t.Errorf("KeyName = %q", ev.KeyName())
	}
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{Event{Type: EventKey, Key: KeyRune, Rune: 'n', Mod: ModAlt}, "alt+n"},
		{Event{Type: EventKey, Key: KeyRune, Rune: 'J', Mod: ModAlt | ModShift}, "alt+J"},
		{Event{Type: EventKey, Key: KeyRune, Rune: 'x'}, "x"},
		{Event{Type: EventKey, Key: KeyCtrlS, Mod: ModCtrl}, "ctrl+s"},
		{Event{Type: EventKey, Key: KeyCtrlQ}, "ctrl+q"},
		{Event{Type: EventKey, Key: KeyLeft, Mod: ModShift}, "shift+left"},
		{Event{Type: EventKey, Key: KeyEnter}, "enter"},
		{Event{Type: EventKey, Key: KeyNone}, ""},
		{Event{Type: EventResize, Width: 10}, ""},
	}
	for _, tt := range tests {
		if got := tt.ev.KeyName(); got != tt.want {
			t.Errorf("KeyName(%+v) = %q, want %q", tt.ev, got, tt.want)
		}
	}
}

func newSimTerminal(t *testing.T) *Terminal {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(term.Shutdown)
	screen.SetSize(40, 10)
	return term
}

// nextKey skips resize events the screen may queue on start.
func nextKey(term *Terminal) Event {
	for {
		if ev := term.PollEvent(); ev.Type == EventKey {
			return ev
		}
	}
}

func TestTerminalCells(t *testing.T) {
	term := newSimTerminal(t)

	w, h := term.Size()
	if w != 40 || h != 10 {
		t.Fatalf("size = %dx%d", w, h)
	}

	style := core.DefaultStyle().WithForeground(core.ColorGreen).Bold()
	term.SetCell(2, 1, core.NewStyledCell('Q', style))
	term.Show()

	got := term.GetCell(2, 1)
	if got.Rune != 'Q' {
		t.Errorf("rune = %q", got.Rune)
	}
	if got.Style.Foreground != core.ColorGreen {
		t.Errorf("foreground = %v", got.Style.Foreground)
	}
	if !got.Style.Attributes.Has(core.AttrBold) {
		t.Error("expected bold")
	}

	term.Fill(core.RectFromSize(0, 0, 1, 3), core.NewStyledCell('-', core.DefaultStyle()))
	if term.GetCell(2, 0).Rune != '-' || term.GetCell(3, 0).Rune == '-' {
		t.Error("fill covered the wrong cells")
	}
}

func TestTerminalKeyEvents(t *testing.T) {
	term := newSimTerminal(t)

	term.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'd', Mod: ModAlt})
	ev := nextKey(term)
	if ev.Type != EventKey || ev.Key != KeyRune || ev.Rune != 'd' || !ev.Mod.Has(ModAlt) {
		t.Errorf("event = %+v", ev)
	}

	term.PostEvent(Event{Type: EventKey, Key: KeyCtrlS, Mod: ModCtrl})
	if ev := nextKey(term); ev.KeyName() != "ctrl+s" {
		t.Errorf("KeyName = %q", ev.KeyName())
	}

	term.PostEvent(Event{Type: EventKey, Key: KeyLeft, Mod: ModShift})
	if ev := nextKey(term); ev.KeyName() != "shift+left" {
		t.Errorf("KeyName = %q", ev.KeyName())
	}
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		in   tcell.Key
		want Key
	}{
		{tcell.KeyTab, KeyTab},
		{tcell.KeyEnter, KeyEnter},
		{tcell.KeyBackspace2, KeyBackspace},
		{tcell.KeyCtrlQ, KeyCtrlQ},
		{tcell.KeyPgDn, KeyPageDown},
		{tcell.KeyF5, KeyNone},
	}
	for _, tt := range tests {
		if got := convertKey(tt.in); got != tt.want {
			t.Errorf("convertKey(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
