// Package topic provides hierarchical topic names and wildcard matching for
// the event bus.
//
// Topics use dot notation:
//
//	document.activated
//	document.modified
//	command.executed
//
// Patterns may use "*" for exactly one segment and "**" for zero or more:
//
//	document.*    matches document.activated, document.closed
//	**            matches everything
package topic
