// Package events publishes domain events to Redis pub/sub so clients can keep
// follow and like state consistent from a single channel instead of ad hoc
// per-component broadcasts.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"microsns/internal/middleware"
	"microsns/internal/observability"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Event type constants prevent typos in event names.
const (
	EventPostCreated     = "post_created"
	EventPostUpdated     = "post_updated"
	EventPostDeleted     = "post_deleted"
	EventPostLikeUpdated = "post_like_updated"
	EventCommentCreated  = "comment_created"
	EventFollowUpdated   = "follow_updated"
	EventUserRegistered  = "user_registered"
)

// BroadcastChannel is the Redis channel all domain events are published to.
const BroadcastChannel = "events:broadcast"

// Event is the wire format for a published domain event.
type Event struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	At      time.Time      `json:"at"`
	Payload map[string]any `json:"payload"`
}

// Notifier publishes domain events into Redis channels.
// A nil Redis client turns every publish into a no-op.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// Publish sends a domain event to the broadcast channel. Failures are logged,
// never surfaced: event delivery is best effort and must not fail the request.
func (n *Notifier) Publish(ctx context.Context, eventType string, payload map[string]any) {
	if n == nil || n.rdb == nil {
		return
	}

	event := Event{
		ID:      uuid.New().String(),
		Type:    eventType,
		At:      time.Now().UTC(),
		Payload: payload,
	}
	b, err := json.Marshal(event)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to marshal event",
			slog.String("event_type", eventType), slog.String("error", err.Error()))
		return
	}

	if err := n.rdb.Publish(ctx, BroadcastChannel, string(b)).Err(); err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to publish event",
			slog.String("event_type", eventType), slog.String("error", err.Error()))
		return
	}
	observability.EventsPublished.WithLabelValues(eventType).Inc()
}

// Subscribe subscribes to the broadcast channel and calls onEvent for each
// decoded event until ctx is cancelled. Used by delivery-side consumers.
func (n *Notifier) Subscribe(ctx context.Context, onEvent func(Event)) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, BroadcastChannel)
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					middleware.Logger.Error("failed to decode event",
						slog.String("error", err.Error()))
					continue
				}
				onEvent(event)
			}
		}
	}()

	return nil
}
