package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vivekalabs/viveka/internal/logging"
)

func TestStreamManagerFanOut(t *testing.T) {
	sm := NewStreamManager(logging.NewNop())

	ch1, cancel1 := sm.Subscribe("s1")
	ch2, cancel2 := sm.Subscribe("s1")
	other, cancelOther := sm.Subscribe("s2")
	defer cancelOther()

	sm.Broadcast("s1", "hello")

	assert.Equal(t, "hello", <-ch1)
	assert.Equal(t, "hello", <-ch2)
	assert.Empty(t, other, "subscriber of another session must not receive")

	cancel1()
	cancel2()

	// Broadcasting to a session with no subscribers is a no-op.
	sm.Broadcast("s1", "after close")
}

func TestStreamManagerSlowClient(t *testing.T) {
	sm := NewStreamManager(logging.NewNop())

	ch, cancel := sm.Subscribe("s1")
	defer cancel()

	// Fill the buffer past capacity; extra messages are dropped, not blocking.
	for i := 0; i < 20; i++ {
		sm.Broadcast("s1", "m")
	}
	assert.Len(t, ch, 10)
}

func TestStreamManagerCancelClosesChannel(t *testing.T) {
	sm := NewStreamManager(logging.NewNop())

	ch, cancel := sm.Subscribe("s1")
	cancel()

	_, open := <-ch
	assert.False(t, open)
}
