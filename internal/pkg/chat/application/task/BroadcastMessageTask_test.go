package task

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	bport "go-parley/internal/infrastructure/broadcast/port"
	qport "go-parley/internal/infrastructure/queue/port"
)

type fakeQueueServer struct {
	handlers map[string]qport.Handler
}

func (f *fakeQueueServer) Register(taskType string, h qport.Handler) {
	if f.handlers == nil {
		f.handlers = make(map[string]qport.Handler)
	}
	f.handlers[taskType] = h
}

func (f *fakeQueueServer) Run(ctx context.Context) error  { return nil }
func (f *fakeQueueServer) Stop(ctx context.Context) error { return nil }

type fakeBroadcaster struct {
	published []bport.Event
	err       error
}

func (f *fakeBroadcaster) Publish(ctx context.Context, channel string, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, bport.Event{Channel: channel, Payload: payload})
	return nil
}

func (f *fakeBroadcaster) Subscribe(ctx context.Context, patterns ...string) (<-chan bport.Event, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeBroadcaster) Close() error { return nil }

func broadcastTask(t *testing.T, channel string, envelope string) qport.Task {
	t.Helper()
	payload, err := json.Marshal(BroadcastMessagePayload{Channel: channel, Envelope: json.RawMessage(envelope)})
	if err != nil {
		t.Fatal(err)
	}
	return qport.Task{Type: BroadcastMessageTaskType, Payload: payload}
}

func TestBroadcastMessageTaskPublishes(t *testing.T) {
	srv := &fakeQueueServer{}
	b := &fakeBroadcaster{}
	RegisterBroadcastMessageTask(srv, b)

	h := srv.handlers[BroadcastMessageTaskType]
	if h == nil {
		t.Fatal("handler not registered")
	}

	if err := h(context.Background(), broadcastTask(t, "room.r1", `{"event":"message.sent"}`)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(b.published) != 1 {
		t.Fatalf("published %d events, want 1", len(b.published))
	}
	if b.published[0].Channel != "room.r1" {
		t.Errorf("channel = %q", b.published[0].Channel)
	}
	if string(b.published[0].Payload) != `{"event":"message.sent"}` {
		t.Errorf("payload = %s", b.published[0].Payload)
	}
}

func TestBroadcastMessageTaskNeverRetries(t *testing.T) {
	srv := &fakeQueueServer{}

	t.Run("malformed payload", func(t *testing.T) {
		b := &fakeBroadcaster{}
		RegisterBroadcastMessageTask(srv, b)
		h := srv.handlers[BroadcastMessageTaskType]
		if err := h(context.Background(), qport.Task{Type: BroadcastMessageTaskType, Payload: []byte("{")}); err != nil {
			t.Errorf("malformed payload must be dropped, got %v", err)
		}
		if len(b.published) != 0 {
			t.Error("nothing should be published for a malformed payload")
		}
	})

	t.Run("publish failure", func(t *testing.T) {
		b := &fakeBroadcaster{err: errors.New("pubsub down")}
		RegisterBroadcastMessageTask(srv, b)
		h := srv.handlers[BroadcastMessageTaskType]
		if err := h(context.Background(), broadcastTask(t, "room.r1", `{}`)); err != nil {
			t.Errorf("publish failure must be swallowed, got %v", err)
		}
	})

	t.Run("missing channel", func(t *testing.T) {
		b := &fakeBroadcaster{}
		RegisterBroadcastMessageTask(srv, b)
		h := srv.handlers[BroadcastMessageTaskType]
		if err := h(context.Background(), broadcastTask(t, "", `{}`)); err != nil {
			t.Errorf("invalid task must be dropped, got %v", err)
		}
		if len(b.published) != 0 {
			t.Error("nothing should be published without a channel")
		}
	})
}
