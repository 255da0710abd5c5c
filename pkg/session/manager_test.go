package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivekalabs/viveka/pkg/domain"
	"github.com/vivekalabs/viveka/pkg/session"
)

// SlowStore simulates latency to provoke race conditions if locking is missing.
type SlowStore struct {
	data map[string]*domain.Session
	mu   sync.Mutex
}

func (s *SlowStore) Save(ctx context.Context, sessionID string, sess *domain.Session) error {
	time.Sleep(10 * time.Millisecond) // Simulate IO
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string]*domain.Session)
	}
	s.data[sessionID] = sess
	return nil
}

func (s *SlowStore) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	time.Sleep(10 * time.Millisecond) // Simulate IO
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.data[sessionID]; ok {
		return sess, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (s *SlowStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

func (s *SlowStore) List(ctx context.Context) ([]string, error) {
	return nil, nil
}

func TestManager_Locking(t *testing.T) {
	store := &SlowStore{}
	manager := session.NewManager(store)
	ctx := context.Background()
	id := "race-test"

	require.NoError(t, manager.Save(ctx, id, domain.NewSession(id, time.Now())))

	// Concurrent turns against the same session must serialize: each
	// worker reads the message counter and writes it back incremented.
	const workers = 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := manager.WithLock(ctx, id, func(ctx context.Context) error {
				sess, err := store.Load(ctx, id)
				if err != nil {
					return err
				}
				sess.MessageSeq++
				return store.Save(ctx, id, sess)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	final, err := manager.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, workers, final.MessageSeq, "all increments must be observed")
}

func TestManager_LoadOrStart(t *testing.T) {
	store := &SlowStore{}
	manager := session.NewManager(store)
	ctx := context.Background()

	seed := func() *domain.Session {
		return domain.NewSession("fresh", time.Now())
	}

	sess, created, err := manager.LoadOrStart(ctx, "fresh", seed)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, domain.StageGreeting, sess.Stage)

	again, created, err := manager.LoadOrStart(ctx, "fresh", seed)
	require.NoError(t, err)
	assert.False(t, created, "second call must resume, not recreate")
	assert.Equal(t, sess.ID, again.ID)
}
