package app

import (
	"context"
	"fmt"
	"runtime/debug"
	"sort"
	"time"

	"github.com/dshills/quickfind/internal/engine/span"
	"github.com/dshills/quickfind/internal/event"
	"github.com/dshills/quickfind/internal/event/events"
	"github.com/dshills/quickfind/internal/host"
	"github.com/dshills/quickfind/internal/quickfind"
	"github.com/dshills/quickfind/internal/renderer/gutter"
	"github.com/dshills/quickfind/internal/renderer/statusline"
)

// Flag toggle commands. They count as match navigation commands, so they
// push the status instead of invalidating the session.
const (
	CmdToggleCaseSensitive = "toggle_case_sensitive"
	CmdToggleWholeWord     = "toggle_whole_word"
	CmdToggleWrapScan      = "toggle_wrap_scan"
	CmdFlipFindFlags       = "flip_find_flags"
)

// Host command names.
const (
	CmdInsert         = "insert"
	CmdEdit           = "edit"
	CmdQuit           = "quit"
	CmdSave           = "save"
	CmdCloseDocument  = "close_document"
	CmdNextDocument   = "next_document"
	CmdPrevDocument   = "prev_document"
	CmdDeleteBackward = "delete_backward"
	CmdInsertNewline  = "insert_newline"
)

var toggleCommands = map[string]bool{
	CmdToggleCaseSensitive: true,
	CmdToggleWholeWord:     true,
	CmdToggleWrapScan:      true,
	CmdFlipFindFlags:       true,
}

// hostCommand edits or navigates the active document.
type hostCommand func(ctx context.Context, app *Application, doc *host.Document) error

func moveBy(delta int, extend bool) hostCommand {
	return func(_ context.Context, _ *Application, doc *host.Document) error {
		doc.MoveSelections(delta, extend)
		revealCursor(doc)
		return nil
	}
}

func moveLines(delta int, extend bool) hostCommand {
	return func(_ context.Context, _ *Application, doc *host.Document) error {
		doc.MoveSelectionLines(delta, extend)
		revealCursor(doc)
		return nil
	}
}

var hostCommands = map[string]hostCommand{
	"move_left":    moveBy(-1, false),
	"move_right":   moveBy(1, false),
	"move_up":      moveLines(-1, false),
	"move_down":    moveLines(1, false),
	"extend_left":  moveBy(-1, true),
	"extend_right": moveBy(1, true),
	"extend_up":    moveLines(-1, true),
	"extend_down":  moveLines(1, true),
	CmdDeleteBackward: func(ctx context.Context, _ *Application, doc *host.Document) error {
		err := doc.DeleteBackward(ctx)
		revealCursor(doc)
		return err
	},
	CmdInsertNewline: func(ctx context.Context, _ *Application, doc *host.Document) error {
		err := doc.InsertAtSelections(ctx, "\n")
		revealCursor(doc)
		return err
	},
	CmdSave: func(ctx context.Context, _ *Application, doc *host.Document) error {
		return doc.Save(ctx)
	},
	CmdCloseDocument: func(ctx context.Context, app *Application, doc *host.Document) error {
		return app.documents.Close(ctx, doc.ID())
	},
	CmdNextDocument: func(ctx context.Context, app *Application, _ *host.Document) error {
		_, err := app.documents.Next(ctx)
		return err
	},
	CmdPrevDocument: func(ctx context.Context, app *Application, _ *host.Document) error {
		_, err := app.documents.Previous(ctx)
		return err
	},
}

// CommandNames returns every command Execute accepts, sorted.
func CommandNames() []string {
	names := quickfind.CommandNames()
	for name := range toggleCommands {
		names = append(names, name)
	}
	for name := range hostCommands {
		names = append(names, name)
	}
	names = append(names, CmdQuit)
	sort.Strings(names)
	return names
}

// IsCommand reports whether name is a command Execute accepts.
func IsCommand(name string) bool {
	if _, ok := quickfind.LookupCommand(name); ok {
		return true
	}
	_, ok := hostCommands[name]
	return ok || toggleCommands[name] || name == CmdQuit
}

// Execute runs the named command against the active document.
// Returns ErrQuit for the quit command.
func (app *Application) Execute(ctx context.Context, name string) (err error) {
	app.mu.Lock()
	defer app.mu.Unlock()
	defer recoverInto(&err)

	start := time.Now()
	err = app.execute(ctx, name)
	app.metrics.RecordCommand(name, time.Since(start), err)
	return err
}

func (app *Application) execute(ctx context.Context, name string) error {
	if name == CmdQuit {
		return ErrQuit
	}
	app.lastAlert = ""
	doc := app.documents.Active()
	if doc == nil {
		return ErrNoActiveDocument
	}

	if cmd, ok := quickfind.LookupCommand(name); ok {
		app.runQuickfind(doc, cmd)
		return app.commandExecuted(ctx, doc, name, true)
	}
	if toggleCommands[name] {
		app.runToggle(doc, name)
		return app.commandExecuted(ctx, doc, name, true)
	}
	if fn, ok := hostCommands[name]; ok {
		err := fn(ctx, app, doc)
		if perr := app.commandExecuted(ctx, doc, name, false); err == nil {
			err = perr
		}
		if err != nil {
			return NewOperationError(name, doc.Name, err)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
}

// Restart discards the active document's ring and searches again from the
// word under its last selection, running the named navigation command.
func (app *Application) Restart(ctx context.Context, name string) (err error) {
	app.mu.Lock()
	defer app.mu.Unlock()
	defer recoverInto(&err)

	cmd, ok := quickfind.LookupCommand(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	doc := app.documents.Active()
	if doc == nil {
		return ErrNoActiveDocument
	}
	sess := app.session(doc)
	out := sess.Restart(cmd.Code, cmd.Reverse, app.config.Flags())
	app.lastAlert = out.Alert
	if cmd.Notice != "" {
		sess.SetNotice(cmd.Notice)
	}
	if out.Applied {
		app.showIndicator(doc, sess)
	}
	return app.commandExecuted(ctx, doc, name, true)
}

// InsertText replaces every selection of the active document with text.
func (app *Application) InsertText(ctx context.Context, text string) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	doc := app.documents.Active()
	if doc == nil {
		return ErrNoActiveDocument
	}
	err := doc.InsertAtSelections(ctx, text)
	revealCursor(doc)
	if perr := app.commandExecuted(ctx, doc, CmdInsert, false); err == nil {
		err = perr
	}
	return err
}

// Edit replaces the bytes from start to end of the active document.
func (app *Application) Edit(ctx context.Context, start, end int, text string) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	doc := app.documents.Active()
	if doc == nil {
		return ErrNoActiveDocument
	}
	err := doc.Edit(ctx, span.New(start, end), text)
	if perr := app.commandExecuted(ctx, doc, CmdEdit, false); err == nil {
		err = perr
	}
	return err
}

func (app *Application) runQuickfind(doc *host.Document, cmd quickfind.Command) {
	sess := app.session(doc)
	out := sess.Execute(cmd, app.config.Flags())
	app.lastAlert = out.Alert
	if out.Applied {
		app.showIndicator(doc, sess)
	}
	if out.Alert != "" {
		app.metrics.RecordAlert()
		app.Logger().WithComponent("quickfind").Debug("[%s] %s: %s", doc.ID(), cmd.Name, out.Alert)
	}
}

func (app *Application) runToggle(doc *host.Document, name string) {
	sess := app.session(doc)
	var notice string
	reset := true
	switch name {
	case CmdToggleCaseSensitive:
		notice = choose(app.config.ToggleCaseSensitive(), "Case Sensitive", "Case Insensitive")
	case CmdToggleWholeWord:
		notice = choose(app.config.ToggleWholeWord(), "Whole Word", "No Whole Word")
	case CmdToggleWrapScan:
		reset = false
		notice = choose(app.config.ToggleWrapScan(), "Wrap Scan", "No Wrap Scan")
	case CmdFlipFindFlags:
		_, reset = app.config.Flip()
		notice = "Flip Find Flags"
	}
	if reset {
		sess.Reset()
		doc.ClearMark()
	}
	sess.SetNotice(notice)
}

// showIndicator marks the current match in the gutter.
func (app *Application) showIndicator(doc *host.Document, sess *quickfind.Session) {
	this, ok := sess.ThisSpan()
	if !ok {
		doc.ClearMark()
		return
	}
	doc.SetMark(gutter.Indicator(app.config.Settings().Indicator, this, sess.ThisSelected()))
}

// pushStatus shows the status of the active document's session on the
// active document, then clears the one-shot messages of sess.
func (app *Application) pushStatus(sess *quickfind.Session) {
	if active := app.documents.Active(); active != nil {
		var alert, notice, ruler string
		if shown, ok := app.sessions.Lookup(active.ID()); ok {
			alert, notice, ruler = shown.Alert(), shown.Notice(), shown.Ruler()
		}
		active.SetStatus(statusline.Compose(app.config.Flags(), app.config.Settings(), alert, notice, ruler))
	}
	sess.ClearMessages()
}

// resetStatus pushes the status, then drops the ruler of sess.
func (app *Application) resetStatus(sess *quickfind.Session) {
	app.pushStatus(sess)
	sess.ClearRuler()
}

func (app *Application) commandExecuted(ctx context.Context, doc *host.Document, name string, qf bool) error {
	return app.bus.Publish(ctx, event.NewEvent(events.TopicCommandExecuted, events.CommandExecuted{
		DocumentID: doc.ID(),
		Command:    name,
		Quickfind:  qf,
	}, eventSource))
}

// recoverInto turns a panic, such as a failed invariant check, into an
// error so the application lock is released and the caller can report it.
func recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = NewRecoveredPanicError(r, string(debug.Stack()))
	}
}

func choose(on bool, yes, no string) string {
	if on {
		return yes
	}
	return no
}
