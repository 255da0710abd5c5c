package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vivekalabs/viveka/internal/adapters/redis"
)

func newTestLocker(t *testing.T) (*redis.Locker, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	return redis.NewLocker(client, "viveka:"), mr
}

func TestLockerLockUnlock(t *testing.T) {
	ctx := context.Background()
	locker, mr := newTestLocker(t)

	unlock, err := locker.Lock(ctx, "sess-1", 5*time.Second)
	require.NoError(t, err)
	assert.True(t, mr.Exists("viveka:lock:sess-1"))

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("viveka:lock:sess-1"))
}

func TestLockerContention(t *testing.T) {
	ctx := context.Background()
	locker, _ := newTestLocker(t)

	unlock, err := locker.Lock(ctx, "shared", 5*time.Second)
	require.NoError(t, err)
	defer func() { _ = unlock(ctx) }()

	// A second holder polls until its context gives up.
	ctxTimeout, cancel := context.WithTimeout(ctx, 400*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = locker.Lock(ctxTimeout, "shared", 5*time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.GreaterOrEqual(t, time.Since(start), 300*time.Millisecond)
}

func TestLockerReacquireAfterUnlock(t *testing.T) {
	ctx := context.Background()
	locker, _ := newTestLocker(t)

	unlock, err := locker.Lock(ctx, "sess-2", 5*time.Second)
	require.NoError(t, err)
	require.NoError(t, unlock(ctx))

	// A released lock is immediately available again.
	unlock2, err := locker.Lock(ctx, "sess-2", 5*time.Second)
	require.NoError(t, err)
	require.NoError(t, unlock2(ctx))
}

func TestLockerStaleUnlockIsNoop(t *testing.T) {
	ctx := context.Background()
	locker, mr := newTestLocker(t)

	unlock, err := locker.Lock(ctx, "sess-3", 50*time.Millisecond)
	require.NoError(t, err)

	// Simulate TTL expiry and takeover by another holder.
	mr.FastForward(100 * time.Millisecond)
	unlock2, err := locker.Lock(ctx, "sess-3", 5*time.Second)
	require.NoError(t, err)

	// The stale unlock must not release the new holder's lock.
	require.NoError(t, unlock(ctx))
	assert.True(t, mr.Exists("viveka:lock:sess-3"))

	require.NoError(t, unlock2(ctx))
	assert.False(t, mr.Exists("viveka:lock:sess-3"))
}
