// Package quickfind implements the match ring navigator.
//
// A Session belongs to one document. It searches the document for the text
// under the last selection, keeps the matches as an ordered ring of spans,
// tracks the current match and a selected subset of the ring, and keeps
// the document's native multi-selection in sync with that subset.
//
// Commands enter through Session.Execute. Each command names one of the
// twelve operation codes plus a direction. The first command on a single
// selection runs a basic initialization (search for the word); a command
// issued on an existing multi-selection runs an extended initialization
// (the selections themselves become the ring). Every outcome is reported
// as an alert (the command could not proceed) and/or a notice (the
// command's label); neither is a Go error.
//
// Sessions are not safe for concurrent use. The host serializes commands
// and document events for a document, so no locking is performed.
//
// Basic usage:
//
//	mgr := quickfind.NewManager(quickfind.WithLogger(log))
//	sess := mgr.Get(doc.ID(), doc)
//	cmd, _ := quickfind.LookupCommand("add_next")
//	out := sess.Execute(cmd, store.Flags())
//	if out.Alert != "" {
//		// boundary reached, nothing to add, ...
//	}
package quickfind
