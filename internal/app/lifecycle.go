package app

import (
	"context"

	"github.com/dshills/quickfind/internal/quickfind"
)

// Shutdown clears every session's status and indicator, drops the
// sessions and releases the settings store and the event bus. It is safe
// to call more than once.
func (app *Application) Shutdown() {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.closed {
		return
	}
	app.closed = true

	app.sessions.Teardown(func(sess *quickfind.Session) {
		app.resetStatus(sess)
		if doc, ok := app.documents.Get(sess.ID()); ok {
			doc.ClearMark()
		}
	})

	app.unsubscribe()
	app.config.Close()
	app.bus.Close()
	m := app.metrics.Snapshot()
	app.Logger().WithComponent("app").Debug("shut down after %d command(s), %d alert(s), %d render(s)",
		m.CommandCount, m.AlertCount, m.RenderCount)
}

// SaveFlags writes the live find flags to the settings file.
func (app *Application) SaveFlags() error {
	app.mu.Lock()
	defer app.mu.Unlock()
	if err := app.config.SaveFlags(); err != nil {
		return NewOperationError("save flags", app.config.Path(), err)
	}
	return nil
}

// ReloadConfig re-reads the settings file and publishes config.reloaded.
// It must not be called with the application lock held.
func (app *Application) ReloadConfig(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := app.config.Reload(); err != nil {
		return NewOperationError("reload", app.config.Path(), err)
	}
	return nil
}
