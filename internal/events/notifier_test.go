package events

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_PublishSubscribe(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	n := NewNotifier(rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan Event, 1)
	require.NoError(t, n.Subscribe(ctx, func(e Event) {
		received <- e
	}))

	// Give the subscriber goroutine time to register.
	time.Sleep(50 * time.Millisecond)

	n.Publish(ctx, EventPostCreated, map[string]any{"post_id": float64(1)})

	select {
	case e := <-received:
		assert.Equal(t, EventPostCreated, e.Type)
		assert.NotEmpty(t, e.ID)
		assert.Equal(t, float64(1), e.Payload["post_id"])
	case <-time.After(2 * time.Second):
		t.Fatal("event not received")
	}
}

func TestNotifier_NilClientNoop(t *testing.T) {
	n := NewNotifier(nil)
	// Must not panic or block.
	n.Publish(context.Background(), EventFollowUpdated, nil)
	assert.NoError(t, n.Subscribe(context.Background(), func(Event) {}))

	var nilNotifier *Notifier
	nilNotifier.Publish(context.Background(), EventPostDeleted, nil)
}
