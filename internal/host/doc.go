// Package host is the in-process editor that quickfind drives.
//
// A Document owns its text, a native multi-selection (cursor.CursorSet),
// a viewport, a status line and a single gutter mark. It provides the
// services a match session needs: literal and pattern search over the full
// text, word expansion around a point, substring extraction, and
// selection clear/add/subtract. Edits, saves, activation and closing are
// announced on the event bus.
//
// Documents are not safe for concurrent use. The application serializes
// every call on its event loop.
package host
