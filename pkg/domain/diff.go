package domain

import "reflect"

// SessionDiff represents the changes between two snapshots of a session.
// It is designed to be serialized to JSON for partial updates on streaming
// clients: the transcript delta is append-only, matching the session model.
type SessionDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	Stage    *Stage    `json:"stage,omitempty"`
	LoanType *LoanType `json:"loan_type,omitempty"`

	// PendingDocuments carries the full outstanding set when it changed.
	PendingDocuments *[]string `json:"pending_documents,omitempty"`

	// TranscriptDelta contains new messages appended since the old snapshot.
	TranscriptDelta *TranscriptDelta `json:"transcript,omitempty"`
}

// TranscriptDelta represents messages appended to the transcript.
type TranscriptDelta struct {
	Appended []Message `json:"appended"`
}

// Diff calculates the difference between two session snapshots.
// If old is nil, the diff represents the entire new session (initial load).
// Returns nil when nothing changed.
func Diff(old, new *Session) *SessionDiff {
	if new == nil {
		return nil
	}

	diff := &SessionDiff{SessionID: new.ID}

	if old == nil || old.Stage != new.Stage {
		stage := new.Stage
		diff.Stage = &stage
	}
	if (old == nil && new.LoanType != LoanTypeUnset) || (old != nil && old.LoanType != new.LoanType) {
		lt := new.LoanType
		diff.LoanType = &lt
	}
	if old == nil || !reflect.DeepEqual(old.PendingDocuments, new.PendingDocuments) {
		if old != nil || len(new.PendingDocuments) > 0 {
			pending := append([]string(nil), new.PendingDocuments...)
			diff.PendingDocuments = &pending
		}
	}
	diff.TranscriptDelta = diffTranscript(old, new)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// diffTranscript assumes the documented append-only transcript behavior.
func diffTranscript(old, new *Session) *TranscriptDelta {
	if len(new.Transcript) == 0 {
		return nil
	}
	if old == nil {
		return &TranscriptDelta{Appended: new.Transcript}
	}
	if len(new.Transcript) > len(old.Transcript) {
		return &TranscriptDelta{Appended: new.Transcript[len(old.Transcript):]}
	}
	return nil
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SessionDiff) IsEmpty() bool {
	return d.Stage == nil &&
		d.LoanType == nil &&
		d.PendingDocuments == nil &&
		d.TranscriptDelta == nil
}
