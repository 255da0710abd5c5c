package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vivekalabs/viveka/pkg/domain"
	"github.com/vivekalabs/viveka/pkg/ports"
)

func TestStoreContract(t *testing.T) {
	ports.RunSessionStoreContract(t, New(t.TempDir()))
}

func TestSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	store := New(t.TempDir())

	sess := domain.NewSession("s1", time.Now().UTC())
	require.NoError(t, store.Save(ctx, "s1", sess))

	sess.Stage = domain.StageConsent
	sess.LoanType = domain.LoanTypeCar
	require.NoError(t, store.Save(ctx, "s1", sess))

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.StageConsent, loaded.Stage)
	assert.Equal(t, domain.LoanTypeCar, loaded.LoanType)
}

func TestListSkipsForeignFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := New(dir)

	require.NoError(t, store.Save(ctx, "s1", domain.NewSession("s1", time.Now())))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tmp-s2-123.json"), []byte("{}"), 0644))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, ids)
}

func TestLoadCorruptFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := New(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0644))
	_, err := store.Load(ctx, "bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestEmptySessionID(t *testing.T) {
	ctx := context.Background()
	store := New(t.TempDir())

	assert.Error(t, store.Save(ctx, "", domain.NewSession("", time.Now())))
	_, err := store.Load(ctx, "")
	assert.Error(t, err)
	assert.Error(t, store.Delete(ctx, ""))
}
