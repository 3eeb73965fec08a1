package host

import "errors"

// Errors returned by host operations.
var (
	// ErrDocumentNotFound indicates a document was not found.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrNoPath indicates a save was requested for a document without a path.
	ErrNoPath = errors.New("document has no path")

	// ErrInvalidRange indicates an edit or selection outside the text.
	ErrInvalidRange = errors.New("invalid range")
)
