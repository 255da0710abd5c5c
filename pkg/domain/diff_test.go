package domain

import (
	"testing"
	"time"
)

func TestDiff(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	base := NewSession("sess-1", now)
	base.Append(Message{ID: "m1", Text: "hello", Sender: SenderBot, Timestamp: now})

	t.Run("Initial Load (Old is Nil)", func(t *testing.T) {
		diff := Diff(nil, base)
		if diff == nil {
			t.Fatal("expected diff for initial load")
		}
		if diff.Stage == nil || *diff.Stage != StageGreeting {
			t.Errorf("expected stage greeting, got %v", diff.Stage)
		}
		if diff.TranscriptDelta == nil || len(diff.TranscriptDelta.Appended) != 1 {
			t.Errorf("expected 1 appended message, got %v", diff.TranscriptDelta)
		}
	})

	t.Run("No Changes", func(t *testing.T) {
		if diff := Diff(base, base.Clone()); diff != nil {
			t.Errorf("expected nil diff, got %+v", diff)
		}
	})

	t.Run("Stage And Transcript Change", func(t *testing.T) {
		next := base.Clone()
		next.Stage = StageConsent
		next.LoanType = LoanTypeCar
		next.Append(Message{ID: "m2", Text: "car copy", Sender: SenderBot, Timestamp: now.Add(time.Second)})

		diff := Diff(base, next)
		if diff == nil {
			t.Fatal("expected diff")
		}
		if diff.Stage == nil || *diff.Stage != StageConsent {
			t.Errorf("expected stage consent, got %v", diff.Stage)
		}
		if diff.LoanType == nil || *diff.LoanType != LoanTypeCar {
			t.Errorf("expected loan type car, got %v", diff.LoanType)
		}
		if diff.TranscriptDelta == nil || len(diff.TranscriptDelta.Appended) != 1 {
			t.Fatalf("expected 1 appended message, got %v", diff.TranscriptDelta)
		}
		if diff.TranscriptDelta.Appended[0].ID != "m2" {
			t.Errorf("unexpected appended message: %+v", diff.TranscriptDelta.Appended[0])
		}
	})

	t.Run("Pending Documents Change", func(t *testing.T) {
		next := base.Clone()
		next.PendingDocuments = []string{"KYC - PAN Card"}

		diff := Diff(base, next)
		if diff == nil || diff.PendingDocuments == nil {
			t.Fatalf("expected pending documents diff, got %+v", diff)
		}
		if len(*diff.PendingDocuments) != 1 {
			t.Errorf("expected 1 pending document, got %v", *diff.PendingDocuments)
		}
	})
}

func TestSessionHelpers(t *testing.T) {
	now := time.Now()
	s := NewSession("s", now)

	if id := s.NextMessageID(); id != "m1" {
		t.Errorf("expected m1, got %s", id)
	}
	if id := s.NextMessageID(); id != "m2" {
		t.Errorf("expected m2, got %s", id)
	}

	s.PendingDocuments = []string{"a", "b", "c"}
	s.ResolvePending("b")
	if s.IsPending("b") {
		t.Error("b should be resolved")
	}
	if !s.IsPending("a") || !s.IsPending("c") {
		t.Error("a and c should remain pending")
	}

	s.UploadedDocuments = append(s.UploadedDocuments, UploadedDocument{FileName: "x.pdf", DocumentLabel: "a", Valid: true})
	if s.HasInvalidUpload() {
		t.Error("no invalid upload recorded yet")
	}
	s.UploadedDocuments = append(s.UploadedDocuments, UploadedDocument{FileName: "y.pdf", DocumentLabel: "c", Valid: false})
	if !s.HasInvalidUpload() {
		t.Error("invalid upload should be sticky")
	}
}
