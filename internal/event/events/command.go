package events

import "github.com/dshills/quickfind/internal/event/topic"

// Command and settings topics.
const (
	// TopicCommandExecuted is published after any command runs against a document.
	TopicCommandExecuted topic.Topic = "command.executed"

	// TopicConfigReloaded is published after the settings file is reloaded.
	TopicConfigReloaded topic.Topic = "config.reloaded"
)

// CommandExecuted is the payload for TopicCommandExecuted.
type CommandExecuted struct {
	DocumentID string
	Command    string

	// Quickfind is true for match navigation commands. Any other command
	// invalidates the document's match session.
	Quickfind bool
}

// ConfigReloaded is the payload for TopicConfigReloaded.
type ConfigReloaded struct {
	Path string
}
