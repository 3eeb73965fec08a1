package events

import "github.com/dshills/quickfind/internal/event/topic"

// Document event topics.
const (
	// TopicDocumentActivated is published when a document becomes the active view.
	TopicDocumentActivated topic.Topic = "document.activated"

	// TopicDocumentModified is published after the document text changes.
	TopicDocumentModified topic.Topic = "document.modified"

	// TopicDocumentSaving is published before a document is written to disk.
	TopicDocumentSaving topic.Topic = "document.saving"

	// TopicDocumentClosed is published after a document is closed.
	TopicDocumentClosed topic.Topic = "document.closed"

	// TopicDocumentAll matches every document event.
	TopicDocumentAll topic.Topic = "document.*"
)

// DocumentActivated is the payload for TopicDocumentActivated.
type DocumentActivated struct {
	DocumentID string
}

// DocumentModified is the payload for TopicDocumentModified.
// Start and End are the replaced byte range in the old text.
type DocumentModified struct {
	DocumentID string
	Start      int
	End        int
	NewText    string
}

// DocumentSaving is the payload for TopicDocumentSaving.
type DocumentSaving struct {
	DocumentID string
	Path       string
}

// DocumentClosed is the payload for TopicDocumentClosed.
type DocumentClosed struct {
	DocumentID string
}
