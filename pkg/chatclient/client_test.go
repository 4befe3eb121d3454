package chatclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// chatServer scripts the server side of the websocket protocol: it acks
// subscribe/unsubscribe frames, records their order, and can push events.
type chatServer struct {
	upgrader websocket.Upgrader

	mu     sync.Mutex
	ws     *websocket.Conn
	frames []string // "subscribe:<ch>" / "unsubscribe:<ch>"
	denied map[string]bool
}

func newChatServer() *chatServer {
	return &chatServer{denied: make(map[string]bool)}
}

func (s *chatServer) handler(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.ws = ws
	s.mu.Unlock()

	s.write(map[string]any{"type": "connected"})

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			return
		}
		var frame struct {
			Type    string `json:"type"`
			Channel string `json:"channel"`
		}
		if err := json.Unmarshal(data, &frame); err != nil {
			continue
		}

		s.mu.Lock()
		s.frames = append(s.frames, frame.Type+":"+frame.Channel)
		denied := s.denied[frame.Channel]
		s.mu.Unlock()

		switch frame.Type {
		case "subscribe":
			if denied {
				s.write(map[string]any{"type": "error", "code": "forbidden", "error": "subscription denied", "channel": frame.Channel})
			} else {
				s.write(map[string]any{"type": "subscribed", "channel": frame.Channel})
			}
		case "unsubscribe":
			s.write(map[string]any{"type": "unsubscribed", "channel": frame.Channel})
		}
	}
}

func (s *chatServer) write(frame map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ws == nil {
		return
	}
	payload, _ := json.Marshal(frame)
	_ = s.ws.WriteMessage(websocket.TextMessage, payload)
}

func (s *chatServer) pushEvent(channel string, env Envelope) {
	data, _ := json.Marshal(env)
	s.write(map[string]any{"type": "event", "channel": channel, "data": json.RawMessage(data)})
}

func (s *chatServer) recordedFrames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.frames))
	copy(out, s.frames)
	return out
}

func startClient(t *testing.T) (*Client, *chatServer) {
	t.Helper()
	srv := newChatServer()
	ts := httptest.NewServer(http.HandlerFunc(srv.handler))
	t.Cleanup(ts.Close)

	c := New()
	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Connect(ctx, url, "test-token"); err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c, srv
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal(msg)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestClientConnectAndSubscribe(t *testing.T) {
	c, _ := startClient(t)

	if c.State() != StateConnected {
		t.Fatalf("state = %v, want connected", c.State())
	}

	ctx := context.Background()
	if err := c.Subscribe(ctx, "room.r1"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if c.State() != StateSubscribed || c.Channel() != "room.r1" {
		t.Errorf("state = %v channel = %q", c.State(), c.Channel())
	}

	// Subscribing to the current channel is a no-op.
	if err := c.Subscribe(ctx, "room.r1"); err != nil {
		t.Fatalf("resubscribe: %v", err)
	}
}

func TestClientSwitchUnsubscribesFirst(t *testing.T) {
	c, srv := startClient(t)
	ctx := context.Background()

	if err := c.Subscribe(ctx, "room.r1"); err != nil {
		t.Fatal(err)
	}
	if err := c.Subscribe(ctx, "room.r2"); err != nil {
		t.Fatal(err)
	}

	want := []string{"subscribe:room.r1", "unsubscribe:room.r1", "subscribe:room.r2"}
	got := srv.recordedFrames()
	if len(got) != len(want) {
		t.Fatalf("frames = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frames = %v, want %v", got, want)
		}
	}
	if c.Channel() != "room.r2" {
		t.Errorf("channel = %q, want room.r2", c.Channel())
	}
}

func TestClientSubscribeDenied(t *testing.T) {
	c, srv := startClient(t)
	srv.mu.Lock()
	srv.denied["room.secret"] = true
	srv.mu.Unlock()

	err := c.Subscribe(context.Background(), "room.secret")
	if err != ErrDenied {
		t.Fatalf("err = %v, want ErrDenied", err)
	}
	if c.State() != StateConnected || c.Channel() != "" {
		t.Errorf("state = %v channel = %q after denial", c.State(), c.Channel())
	}
}

func TestClientCollectsMessages(t *testing.T) {
	c, srv := startClient(t)
	ctx := context.Background()
	if err := c.Subscribe(ctx, "room.r1"); err != nil {
		t.Fatal(err)
	}

	content := "hello"
	srv.pushEvent("room.r1", Envelope{
		Event:   "message.sent",
		Message: &Message{ID: "m1", ChatRoomID: "r1", UserID: "u1", Content: &content},
	})
	// Events for other channels and non-message events are not collected.
	srv.pushEvent("room.other", Envelope{Event: "message.sent", Message: &Message{ID: "m2"}})
	srv.pushEvent("room.r1", Envelope{Event: "presence.joined", User: &Identity{ID: "u2"}})

	waitFor(t, func() bool { return len(c.Messages()) >= 1 }, "message.sent not collected")
	// Give the stray events a moment to arrive before asserting absence.
	time.Sleep(50 * time.Millisecond)

	msgs := c.Messages()
	if len(msgs) != 1 || msgs[0].ID != "m1" {
		t.Errorf("messages = %+v, want single m1", msgs)
	}
}

func TestClientMergeHistory(t *testing.T) {
	c := New()
	c.messages = []Message{{ID: "m2"}, {ID: "m3"}}

	c.MergeHistory([]Message{{ID: "m1"}, {ID: "m2"}})

	msgs := c.Messages()
	if len(msgs) != 3 {
		t.Fatalf("merged %d messages, want 3", len(msgs))
	}
	for i, want := range []string{"m1", "m2", "m3"} {
		if msgs[i].ID != want {
			t.Errorf("msgs[%d] = %q, want %q", i, msgs[i].ID, want)
		}
	}
}

func TestClientUnsubscribeClearsState(t *testing.T) {
	c, _ := startClient(t)
	ctx := context.Background()
	if err := c.Subscribe(ctx, "room.r1"); err != nil {
		t.Fatal(err)
	}
	if err := c.Unsubscribe(ctx); err != nil {
		t.Fatal(err)
	}
	if c.State() != StateConnected || c.Channel() != "" {
		t.Errorf("state = %v channel = %q", c.State(), c.Channel())
	}
	// Unsubscribing with no subscription is a no-op.
	if err := c.Unsubscribe(ctx); err != nil {
		t.Fatal(err)
	}
}
