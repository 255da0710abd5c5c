package domain

import (
	"context"
	"time"
)

// EventBase contains common fields for all conversation events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
}

// MessageEvent fires whenever a message is appended to a transcript.
type MessageEvent struct {
	EventBase
	Message Message `json:"message"`
}

// StageEvent fires on every stage transition.
type StageEvent struct {
	EventBase
	From Stage `json:"from"`
	To   Stage `json:"to"`
}

// UploadEvent fires when a document upload has been resolved.
type UploadEvent struct {
	EventBase
	DocumentLabel string `json:"document_label"`
	FileName      string `json:"file_name"`
	Valid         bool   `json:"valid"`
}

// LifecycleHooks defines callbacks for conversation observability.
// Nil hooks are skipped. Hooks run synchronously on the conversation's
// single writer; keep them cheap.
type LifecycleHooks struct {
	OnMessage     func(context.Context, *MessageEvent)
	OnStageChange func(context.Context, *StageEvent)
	OnUpload      func(context.Context, *UploadEvent)
}
