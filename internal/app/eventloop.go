package app

import (
	"context"
	"errors"

	"github.com/dshills/quickfind/internal/renderer/backend"
)

// Run starts the interactive loop on the configured backend. It returns
// nil when the quit command runs or ctx is canceled.
func (app *Application) Run(ctx context.Context) error {
	if app.backend == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return NewOperationError("init", "terminal", err)
	}
	defer app.backend.Shutdown()

	// Wake PollEvent so the loop notices cancellation.
	stop := context.AfterFunc(ctx, func() {
		app.backend.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyNone})
	})
	defer stop()

	log := app.Logger().WithComponent("app")
	log.Debug("event loop started")
	app.Redraw()

	for {
		ev := app.backend.PollEvent()
		if ctx.Err() != nil {
			log.Debug("event loop canceled")
			return nil
		}

		err := app.handleBackendEvent(ctx, ev)
		if errors.Is(err, ErrQuit) {
			log.Debug("quit requested")
			return nil
		}
		var panicErr *RecoveredPanicError
		if errors.As(err, &panicErr) {
			return err
		}
		if err != nil {
			log.Warn("%v", err)
		}
		app.Redraw()
	}
}

// IsRunning reports whether the event loop is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// handleBackendEvent routes a key to its command or inserts typed text.
func (app *Application) handleBackendEvent(ctx context.Context, ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		return nil
	case backend.EventKey:
		command, text := app.Keymap().Resolve(ev)
		switch {
		case command != "":
			return app.Execute(ctx, command)
		case text != "":
			return app.InsertText(ctx, text)
		}
	}
	return nil
}
