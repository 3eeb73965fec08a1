package app

import (
	"context"
	"errors"

	"github.com/dshills/quickfind/internal/config"
	"github.com/dshills/quickfind/internal/event"
	"github.com/dshills/quickfind/internal/event/events"
	"github.com/dshills/quickfind/internal/event/topic"
)

const eventSource = "app"

// subscribe registers the application's listeners. Handlers run with mu
// held by whichever entry point published the event.
func (app *Application) subscribe() error {
	handlers := []struct {
		topic   topic.Topic
		handler event.Handler
	}{
		{events.TopicDocumentActivated, event.AsHandlerFunc(app.onActivated)},
		{events.TopicDocumentModified, event.AsHandlerFunc(app.onModified)},
		{events.TopicDocumentSaving, event.AsHandlerFunc(app.onSaving)},
		{events.TopicDocumentClosed, event.AsHandlerFunc(app.onClosed)},
		{events.TopicCommandExecuted, event.AsHandlerFunc(app.onCommandExecuted)},
		{events.TopicConfigReloaded, event.AsHandlerFunc(app.onConfigReloaded)},
	}

	for _, h := range handlers {
		sub, err := app.bus.Subscribe(h.topic, h.handler)
		if err != nil {
			app.unsubscribe()
			return err
		}
		app.subs = append(app.subs, sub)
	}

	trace, err := app.bus.SubscribeFunc(topic.WildcardMulti, app.traceEvent, event.WithPriority(event.PriorityLow))
	if err != nil {
		app.unsubscribe()
		return err
	}
	app.subs = append(app.subs, trace)
	return nil
}

// traceEvent logs every event after the listeners above have run.
func (app *Application) traceEvent(_ context.Context, ev any) error {
	if tp, ok := ev.(event.TopicProvider); ok {
		app.Logger().WithComponent("event").Trace("%s %+v", tp.EventTopic(), ev)
	}
	return nil
}

func (app *Application) unsubscribe() {
	for _, sub := range app.subs {
		sub.Unsubscribe()
	}
	app.subs = nil
	if app.configSub != nil {
		app.configSub.Unsubscribe()
		app.configSub = nil
	}
}

// onActivated shows the status of the newly active document.
func (app *Application) onActivated(_ context.Context, ev event.Event[events.DocumentActivated]) error {
	doc, ok := app.documents.Get(ev.Payload.DocumentID)
	if !ok {
		return nil
	}
	app.pushStatus(app.session(doc))
	return nil
}

// onModified invalidates the ring of an edited document.
func (app *Application) onModified(_ context.Context, ev event.Event[events.DocumentModified]) error {
	doc, ok := app.documents.Get(ev.Payload.DocumentID)
	if !ok {
		return nil
	}
	sess := app.session(doc)
	sess.Reset()
	app.resetStatus(sess)
	doc.ClearMark()
	return nil
}

// onSaving writes the live flags back as the new defaults.
func (app *Application) onSaving(_ context.Context, ev event.Event[events.DocumentSaving]) error {
	if !app.config.Settings().SaveFlagsOnSave {
		return nil
	}
	err := app.config.SaveFlags()
	if errors.Is(err, config.ErrNoSettingsFile) {
		return nil
	}
	if err != nil {
		app.logComponentError("config", err)
		return nil
	}
	app.Logger().WithComponent("config").Debug("saved flags before writing %s", ev.Payload.Path)
	return nil
}

// onClosed drops the session of a closed document.
func (app *Application) onClosed(_ context.Context, ev event.Event[events.DocumentClosed]) error {
	app.sessions.Remove(ev.Payload.DocumentID)
	return nil
}

// onCommandExecuted pushes the status after a navigation command and
// invalidates the ring after any other command.
func (app *Application) onCommandExecuted(_ context.Context, ev event.Event[events.CommandExecuted]) error {
	p := ev.Payload
	doc, ok := app.documents.Get(p.DocumentID)
	if !ok {
		return nil
	}
	sess := app.session(doc)
	if p.Quickfind {
		app.pushStatus(sess)
	} else {
		sess.Reset()
		app.resetStatus(sess)
		doc.ClearMark()
	}
	sess.SetLastCommand(p.Command)
	return nil
}

// onConfigReloaded applies reloaded logging and key settings and redraws
// the status with the reloaded flags.
func (app *Application) onConfigReloaded(_ context.Context, ev event.Event[events.ConfigReloaded]) error {
	settings := app.config.Settings()
	app.applyLogSettings(settings)
	app.setKeymap(settings)
	app.Logger().WithComponent("config").Info("reloaded %s", ev.Payload.Path)

	if doc := app.documents.Active(); doc != nil {
		app.pushStatus(app.session(doc))
	}
	return nil
}
