package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vivekalabs/viveka/pkg/domain"
	"github.com/vivekalabs/viveka/pkg/ports"
)

func TestStoreContract(t *testing.T) {
	ports.RunSessionStoreContract(t, NewStore())
}

// TestStoreIsolation ensures the store hands out copies, not shared pointers.
func TestStoreIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	sess := domain.NewSession("s1", time.Now())
	sess.PendingDocuments = []string{"KYC - PAN Card"}
	require.NoError(t, store.Save(ctx, "s1", sess))

	// Mutating the original after Save must not leak into the store.
	sess.PendingDocuments[0] = "tampered"
	sess.Stage = domain.StageApproved

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.StageGreeting, loaded.Stage)
	assert.Equal(t, []string{"KYC - PAN Card"}, loaded.PendingDocuments)

	// Mutating a loaded copy must not affect subsequent loads.
	loaded.PendingDocuments = nil
	again, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"KYC - PAN Card"}, again.PendingDocuments)
}
