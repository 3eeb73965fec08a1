// Package event provides the host event feed for quickfind.
//
// The host publishes document and command events on a Bus; the application
// subscribes to them to reset match sessions when foreign commands run or
// the document changes, to tear sessions down when a document closes, and
// to persist the find flags before a save.
//
// Delivery is synchronous: Publish returns after every matching handler has
// run, in priority order. Handler panics are recovered and reported as
// errors.
//
// # Basic Usage
//
//	bus := event.NewBus()
//	sub, err := bus.Subscribe(events.TopicDocumentModified,
//	    event.AsHandlerFunc(func(ctx context.Context, e event.Event[events.DocumentModified]) error {
//	        sessions.Reset(e.Payload.DocumentID)
//	        return nil
//	    }))
//
//	bus.Publish(ctx, event.NewEvent(events.TopicDocumentModified, payload, "host"))
package event
