package app

import (
	"sort"
	"strings"

	"github.com/dshills/quickfind/internal/renderer/backend"
)

// Binding sources.
const (
	SourceDefault = "default"
	SourceUser    = "user"
)

// Binding maps a key to a command.
type Binding struct {
	// Key is the key name, such as "alt+n" or "shift+left".
	Key string

	// Command is the command name passed to Execute.
	Command string

	// Source is SourceDefault or SourceUser.
	Source string
}

// DefaultBindings returns the built-in key bindings.
func DefaultBindings() map[string]string {
	return map[string]string{
		"alt+n": "goto_next",
		"alt+p": "goto_prev",
		"alt+d": "add_next",
		"alt+u": "add_prev",
		"alt+a": "add_all",
		"alt+j": "peek_next",
		"alt+k": "peek_prev",
		"alt+J": "peek_next_selected",
		"alt+K": "peek_prev_selected",
		"alt+t": "add_this",
		"alt+x": "subtract_this",
		"alt+s": "single_select_this",
		"alt+i": "invert_select_this",
		"alt+g": "go_first",
		"alt+G": "go_last",
		"alt+b": "go_back",

		"alt+c": CmdToggleCaseSensitive,
		"alt+w": CmdToggleWholeWord,
		"alt+r": CmdToggleWrapScan,
		"alt+f": CmdFlipFindFlags,

		"ctrl+s": CmdSave,
		"ctrl+q": CmdQuit,
		"ctrl+w": CmdCloseDocument,
		"ctrl+n": CmdNextDocument,
		"ctrl+p": CmdPrevDocument,

		"left":        "move_left",
		"right":       "move_right",
		"up":          "move_up",
		"down":        "move_down",
		"shift+left":  "extend_left",
		"shift+right": "extend_right",
		"shift+up":    "extend_up",
		"shift+down":  "extend_down",
		"enter":       CmdInsertNewline,
		"backspace":   CmdDeleteBackward,
	}
}

// Keymap resolves key events to commands.
type Keymap struct {
	bindings map[string]Binding

	// unknown lists user bindings naming a command that does not exist.
	unknown []string
}

// NewKeymap creates a keymap from the defaults with overrides applied.
// An override to "" unbinds the key.
func NewKeymap(overrides map[string]string) *Keymap {
	km := &Keymap{bindings: make(map[string]Binding)}
	for key, cmd := range DefaultBindings() {
		km.bindings[key] = Binding{Key: key, Command: cmd, Source: SourceDefault}
	}
	for key, cmd := range overrides {
		key = strings.TrimSpace(key)
		cmd = strings.TrimSpace(cmd)
		switch {
		case key == "":
			continue
		case cmd == "":
			delete(km.bindings, key)
		case !IsCommand(cmd):
			km.unknown = append(km.unknown, key+"="+cmd)
		default:
			km.bindings[key] = Binding{Key: key, Command: cmd, Source: SourceUser}
		}
	}
	sort.Strings(km.unknown)
	return km
}

// Lookup returns the binding for a key name.
func (k *Keymap) Lookup(key string) (Binding, bool) {
	b, ok := k.bindings[key]
	return b, ok
}

// Resolve returns the command bound to ev. Unbound printable runes
// without ctrl or alt insert themselves, reported as text.
func (k *Keymap) Resolve(ev backend.Event) (command, text string) {
	if ev.Type != backend.EventKey {
		return "", ""
	}
	if b, ok := k.bindings[ev.KeyName()]; ok {
		return b.Command, ""
	}
	switch {
	case ev.Key == backend.KeyRune && !ev.Mod.Has(backend.ModCtrl) && !ev.Mod.Has(backend.ModAlt):
		return "", string(ev.Rune)
	case ev.Key == backend.KeyTab && ev.Mod == 0:
		return "", "\t"
	}
	return "", ""
}

// Bindings returns every binding sorted by key.
func (k *Keymap) Bindings() []Binding {
	out := make([]Binding, 0, len(k.bindings))
	for _, b := range k.bindings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Unknown returns the user bindings that were ignored, as "key=command".
func (k *Keymap) Unknown() []string {
	return k.unknown
}
