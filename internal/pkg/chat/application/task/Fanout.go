package task

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	qport "go-parley/internal/infrastructure/queue/port"
	chat "go-parley/internal/pkg/chat/application/domain"
	"go-parley/internal/pkg/chat/application/event"
)

// Fanout hands broadcast events to the queue so delivery runs decoupled from
// the HTTP request that created the message. All methods are fire-and-forget:
// failures are logged, never surfaced to the sender, and never retried.
type Fanout struct {
	Q qport.Client
}

func NewFanout(q qport.Client) *Fanout {
	return &Fanout{Q: q}
}

// MessageCreated resolves the room's channel and enqueues the message.sent
// envelope. It is called after the durable write has committed.
func (f *Fanout) MessageCreated(ctx context.Context, room chat.Room, m chat.MessageWithSender) {
	envelope := event.NewMessageSent(m.Message, m.Sender)
	f.enqueue(ctx, chat.ResolveChannel(room), envelope)
}

// SubscriberJoined announces a new presence-channel subscriber to the
// channel's members.
func (f *Fanout) SubscriberJoined(ctx context.Context, channel string, identity chat.Identity) {
	f.enqueue(ctx, channel, event.NewPresenceJoined(identity))
}

func (f *Fanout) enqueue(ctx context.Context, channel string, envelope event.Envelope) {
	if f == nil || f.Q == nil {
		return
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fanout: encode envelope: %v\n", err)
		return
	}
	payload, err := json.Marshal(BroadcastMessagePayload{Channel: channel, Envelope: body})
	if err != nil {
		fmt.Fprintf(os.Stderr, "fanout: encode payload: %v\n", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	// At-most-once: no retries, short retention for inspection only.
	opts := qport.EnqueueOption{Queue: "chat", MaxRetry: 0, Retention: time.Minute}
	if _, err := f.Q.Enqueue(ctx, qport.Task{Type: BroadcastMessageTaskType, Payload: payload}, opts); err != nil {
		fmt.Fprintf(os.Stderr, "fanout: enqueue %s: %v\n", channel, err)
	}
}
