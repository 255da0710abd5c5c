package ports

import (
	"context"

	"github.com/vivekalabs/viveka/pkg/domain"
)

// SessionStore defines the interface for persisting conversation sessions.
// Conversations are single-writer, so stores only need per-key atomicity.
type SessionStore interface {
	// Save persists the session under its ID, overwriting any previous state.
	Save(ctx context.Context, sessionID string, session *domain.Session) error

	// Load retrieves the session for a given ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Session, error)

	// Delete removes the session for a given ID. Deleting a missing
	// session is not an error.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of all stored sessions.
	List(ctx context.Context) ([]string, error)
}
