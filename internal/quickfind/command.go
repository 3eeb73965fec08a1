package quickfind

import "sort"

// Command is a named user intent: an operation code, a direction and the
// notice shown after it runs.
type Command struct {
	Name    string
	Code    Code
	Reverse bool
	Notice  string
}

var commands = map[string]Command{
	"goto_next":          {Code: GotoNext, Notice: "Move"},
	"goto_prev":          {Code: GotoNext, Reverse: true, Notice: "Move"},
	"add_next":           {Code: AddNext, Notice: "Add"},
	"add_prev":           {Code: AddNext, Reverse: true, Notice: "Add"},
	"add_all":            {Code: AddAll, Notice: "Add All"},
	"peek_next":          {Code: PeekNext, Notice: "Peek"},
	"peek_prev":          {Code: PeekNext, Reverse: true, Notice: "Peek"},
	"peek_next_selected": {Code: PeekNextSelected, Notice: "Review"},
	"peek_prev_selected": {Code: PeekNextSelected, Reverse: true, Notice: "Review"},
	"add_this":           {Code: AddThis, Notice: "Add"},
	"subtract_this":      {Code: SubtractThis, Notice: "Subtract"},
	"single_select_this": {Code: SingleSelectThis, Notice: "Single Select"},
	"invert_select_this": {Code: InvertSelectThis, Notice: "Invert Select"},
	"go_first":           {Code: GoFirst, Notice: "First"},
	"go_last":            {Code: GoFirst, Reverse: true, Notice: "Last"},
	"go_back":            {Code: GoBack, Notice: "Back"},
}

// LookupCommand returns the navigation command with the given name.
func LookupCommand(name string) (Command, bool) {
	cmd, ok := commands[name]
	if !ok {
		return Command{}, false
	}
	cmd.Name = name
	return cmd, true
}

// CommandNames returns every navigation command name, sorted.
func CommandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
