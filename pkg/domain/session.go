package domain

import (
	"fmt"
	"time"
)

// LoanDetails holds the free-text fields captured during detail collection.
// Fields are additive: a turn that re-mentions a field overwrites it, a turn
// that omits it leaves the previous capture intact.
type LoanDetails struct {
	Amount         string `json:"amount,omitempty"`
	Tenure         string `json:"tenure,omitempty"`
	Income         string `json:"income,omitempty"`
	EmploymentType string `json:"employment_type,omitempty"`
}

// UploadedDocument records one upload event. The list is append-only; a
// rejected document stays recorded even if the same label is uploaded again.
type UploadedDocument struct {
	FileName      string `json:"file_name"`
	DocumentLabel string `json:"document_label"`
	Valid         bool   `json:"valid"`
}

// Session is the sole mutable aggregate of a conversation. It is owned by
// exactly one conversation handler; all mutation funnels through the dialogue
// controller so the state machine stays inspectable.
type Session struct {
	ID           string   `json:"id"`
	Stage        Stage    `json:"stage"`
	LoanType     LoanType `json:"loan_type,omitempty"`
	ConsentGiven bool     `json:"consent_given"`

	Details           LoanDetails        `json:"details"`
	PendingDocuments  []string           `json:"pending_documents,omitempty"`
	UploadedDocuments []UploadedDocument `json:"uploaded_documents,omitempty"`
	Transcript        []Message          `json:"transcript"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// MessageSeq is the id counter for transcript entries.
	MessageSeq int `json:"message_seq"`
}

// NewSession creates an empty session at the greeting stage.
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Stage:     StageGreeting,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NextMessageID reserves and returns the next transcript message id.
// IDs are monotonic per session ("m1", "m2", ...).
func (s *Session) NextMessageID() string {
	s.MessageSeq++
	return fmt.Sprintf("m%d", s.MessageSeq)
}

// Append adds a message to the transcript. The transcript is append-only;
// nothing else in the engine removes or reorders entries.
func (s *Session) Append(msg Message) {
	s.Transcript = append(s.Transcript, msg)
	s.UpdatedAt = msg.Timestamp
}

// IsPending reports whether the document label still awaits a valid upload.
func (s *Session) IsPending(label string) bool {
	for _, d := range s.PendingDocuments {
		if d == label {
			return true
		}
	}
	return false
}

// ResolvePending removes a document label from the outstanding set.
// Only accepted uploads resolve a pending document.
func (s *Session) ResolvePending(label string) {
	kept := s.PendingDocuments[:0]
	for _, d := range s.PendingDocuments {
		if d != label {
			kept = append(kept, d)
		}
	}
	s.PendingDocuments = kept
}

// HasInvalidUpload reports whether any rejected document is on record.
// Because UploadedDocuments is append-only, this can never revert to false,
// which is what makes escalation sticky with respect to auto-approval.
func (s *Session) HasInvalidUpload() bool {
	for _, d := range s.UploadedDocuments {
		if !d.Valid {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the session, safe for concurrent readers.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	cp := *s
	cp.PendingDocuments = append([]string(nil), s.PendingDocuments...)
	cp.UploadedDocuments = append([]UploadedDocument(nil), s.UploadedDocuments...)
	cp.Transcript = make([]Message, len(s.Transcript))
	for i, m := range s.Transcript {
		mc := m
		mc.Actions = append([]Action(nil), m.Actions...)
		cp.Transcript[i] = mc
	}
	return &cp
}
