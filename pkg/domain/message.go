package domain

import "time"

// Sender identifies which side of the conversation produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ActionType is the kind of affordance attached to a bot message.
type ActionType string

const (
	// ActionUpload asks the host to collect a file for a named document.
	ActionUpload ActionType = "upload"
	// ActionDownload offers the generated sanction letter as a file.
	ActionDownload ActionType = "download"
)

// Action is an affordance attached to a bot message. Actions are idempotent
// UI hints; invoking one never mutates the message it is attached to.
type Action struct {
	Type          ActionType `json:"type"`
	Label         string     `json:"label"`
	DocumentLabel string     `json:"document_label,omitempty"`
	Completed     bool       `json:"completed,omitempty"`
}

// Message is a single transcript entry. Messages are immutable once appended.
// Text may contain a lightweight markdown subset (**bold**, line breaks),
// which terminal and web hosts render as they see fit.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	Actions   []Action  `json:"actions,omitempty"`
}
