package task

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	bport "go-parley/internal/infrastructure/broadcast/port"
	qport "go-parley/internal/infrastructure/queue/port"
)

// BroadcastMessageTaskType is the queue task name for publishing an event
// envelope to its resolved channel.
const BroadcastMessageTaskType = "chat:broadcast_message"

// BroadcastMessagePayload is the JSON payload transported via the queue.
// The channel is resolved and the envelope serialized at enqueue time, so
// the worker only publishes.
type BroadcastMessagePayload struct {
	Channel  string          `json:"channel"`
	Envelope json.RawMessage `json:"envelope"`
}

// RegisterBroadcastMessageTask binds the publish handler to the queue server.
// Publish failures are logged and swallowed: the message row is already
// durable and delivery is best-effort with no retry.
func RegisterBroadcastMessageTask(srv qport.Server, broadcaster bport.Broadcaster) {
	srv.Register(BroadcastMessageTaskType, func(ctx context.Context, t qport.Task) error {
		var p BroadcastMessagePayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: drop, never retry
			fmt.Fprintf(os.Stderr, "broadcast task: bad payload: %v\n", err)
			return nil
		}

		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := p.publish(ctx, broadcaster); err != nil {
			fmt.Fprintf(os.Stderr, "broadcast task: publish %s: %v\n", p.Channel, err)
		}
		return nil
	})
}

func (p BroadcastMessagePayload) publish(ctx context.Context, broadcaster bport.Broadcaster) error {
	if p.Channel == "" || len(p.Envelope) == 0 {
		return fmt.Errorf("channel and envelope are required")
	}
	return broadcaster.Publish(ctx, p.Channel, p.Envelope)
}
