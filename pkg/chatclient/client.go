// Package chatclient is a websocket client for the realtime chat API. It
// keeps at most one channel subscription alive at a time: switching rooms
// unsubscribes from the previous channel and waits for the server's ack
// before subscribing to the next one, so events from an abandoned room can
// never land after the switch.
package chatclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// State of the client connection.
type State int

const (
	StateDisconnected State = iota
	StateConnected
	StateSubscribed
)

func (s State) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateSubscribed:
		return "subscribed"
	default:
		return "disconnected"
	}
}

var (
	ErrNotConnected = errors.New("chatclient: not connected")
	ErrDenied       = errors.New("chatclient: subscription denied")
	ErrClosed       = errors.New("chatclient: connection closed")
)

// Identity mirrors the user block carried on broadcast events.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Message mirrors the message block of a message.sent event and of history
// responses, so both decode into the same type.
type Message struct {
	ID             string   `json:"id"`
	ChatRoomID     string   `json:"chat_room_id"`
	UserID         string   `json:"user_id"`
	Content        *string  `json:"content"`
	AttachmentPath *string  `json:"attachment_path"`
	CreatedAt      string   `json:"created_at"`
	User           Identity `json:"user"`
}

// Envelope is the payload published on a channel.
type Envelope struct {
	Event   string    `json:"event"`
	Message *Message  `json:"message,omitempty"`
	User    *Identity `json:"user,omitempty"`
}

type wireFrame struct {
	Type    string          `json:"type"`
	Channel string          `json:"channel,omitempty"`
	Code    string          `json:"code,omitempty"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Client connects to the chat websocket endpoint and reconciles its local
// subscription with the user's current room. Safe for concurrent use; control
// operations (Connect, Subscribe, Unsubscribe, Close) serialize internally.
type Client struct {
	dialer *websocket.Dialer

	// OnEvent, when set before Connect, observes every event frame including
	// those for channels other than the current subscription.
	OnEvent func(channel string, env Envelope)

	opMu sync.Mutex // one control operation at a time

	mu       sync.Mutex
	ws       *websocket.Conn
	state    State
	channel  string
	messages []Message
	acks     chan wireFrame
	done     chan struct{}
}

// New returns an unconnected client.
func New() *Client {
	return &Client{dialer: websocket.DefaultDialer}
}

// Connect dials the websocket endpoint, authenticating with the bearer token,
// and waits for the server's connected ack.
func (c *Client) Connect(ctx context.Context, url string, token string) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mu.Lock()
	if c.ws != nil {
		c.mu.Unlock()
		return errors.New("chatclient: already connected")
	}
	c.mu.Unlock()

	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	ws, resp, err := c.dialer.DialContext(ctx, url, header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("chatclient: dial: %w (status %d)", err, resp.StatusCode)
		}
		return fmt.Errorf("chatclient: dial: %w", err)
	}

	c.mu.Lock()
	c.ws = ws
	c.state = StateConnected
	c.channel = ""
	c.acks = make(chan wireFrame, 8)
	c.done = make(chan struct{})
	c.mu.Unlock()

	go c.readLoop(ws)

	if _, err := c.waitAck(ctx, "connected", ""); err != nil {
		c.Close()
		return err
	}
	return nil
}

// State reports the current connection state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Channel reports the currently subscribed channel, or empty.
func (c *Client) Channel() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.channel
}

// Subscribe reconciles the subscription to the given channel. If another
// channel is active it is released first, and the server's unsubscribed ack
// is awaited before the new subscribe goes out. Subscribing to the current
// channel is a no-op.
func (c *Client) Subscribe(ctx context.Context, channel string) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mu.Lock()
	if c.ws == nil {
		c.mu.Unlock()
		return ErrNotConnected
	}
	current := c.channel
	c.mu.Unlock()

	if current == channel {
		return nil
	}
	if current != "" {
		if err := c.unsubscribeLocked(ctx, current); err != nil {
			return err
		}
	}

	if err := c.send(wireFrame{Type: "subscribe", Channel: channel}); err != nil {
		return err
	}
	ack, err := c.waitAck(ctx, "subscribed", channel)
	if err != nil {
		return err
	}
	if ack.Type == "error" {
		if ack.Code == "forbidden" {
			return ErrDenied
		}
		return fmt.Errorf("chatclient: subscribe: %s", ack.Error)
	}

	c.mu.Lock()
	c.channel = channel
	c.state = StateSubscribed
	c.messages = nil
	c.mu.Unlock()
	return nil
}

// Unsubscribe releases the current subscription, if any.
func (c *Client) Unsubscribe(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mu.Lock()
	current := c.channel
	connected := c.ws != nil
	c.mu.Unlock()

	if !connected {
		return ErrNotConnected
	}
	if current == "" {
		return nil
	}
	return c.unsubscribeLocked(ctx, current)
}

// unsubscribeLocked sends the unsubscribe frame and blocks for the ack.
// Caller holds opMu.
func (c *Client) unsubscribeLocked(ctx context.Context, channel string) error {
	if err := c.send(wireFrame{Type: "unsubscribe", Channel: channel}); err != nil {
		return err
	}
	if _, err := c.waitAck(ctx, "unsubscribed", channel); err != nil {
		return err
	}
	c.mu.Lock()
	c.channel = ""
	c.state = StateConnected
	c.messages = nil
	c.mu.Unlock()
	return nil
}

// Messages returns a copy of the messages received on the current
// subscription, in arrival order.
func (c *Client) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// MergeHistory folds a fetched history into the local message list. Messages
// already received live are kept once, matched by id; history order wins for
// the merged prefix.
func (c *Client) MergeHistory(history []Message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[string]struct{}, len(history))
	merged := make([]Message, 0, len(history)+len(c.messages))
	for _, m := range history {
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		merged = append(merged, m)
	}
	for _, m := range c.messages {
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		merged = append(merged, m)
	}
	c.messages = merged
}

// Close tears the connection down. Safe to call more than once.
func (c *Client) Close() error {
	c.mu.Lock()
	ws := c.ws
	done := c.done
	c.ws = nil
	c.state = StateDisconnected
	c.channel = ""
	c.mu.Unlock()

	if ws == nil {
		return nil
	}
	_ = ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), closeDeadline())
	err := ws.Close()
	if done != nil {
		<-done
	}
	return err
}

func closeDeadline() time.Time {
	return time.Now().Add(time.Second)
}

func (c *Client) send(frame wireFrame) error {
	c.mu.Lock()
	ws := c.ws
	c.mu.Unlock()
	if ws == nil {
		return ErrNotConnected
	}
	payload, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	return ws.WriteMessage(websocket.TextMessage, payload)
}

// waitAck blocks until an ack of the wanted type (or an error frame for the
// same channel) arrives.
func (c *Client) waitAck(ctx context.Context, wantType string, channel string) (wireFrame, error) {
	c.mu.Lock()
	acks := c.acks
	done := c.done
	c.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			return wireFrame{}, ctx.Err()
		case <-done:
			return wireFrame{}, ErrClosed
		case frame := <-acks:
			if frame.Type == wantType && (channel == "" || frame.Channel == channel) {
				return frame, nil
			}
			if frame.Type == "error" && (frame.Channel == "" || frame.Channel == channel) {
				return frame, nil
			}
			// Stale ack from a previous operation; keep waiting.
		}
	}
}

func (c *Client) readLoop(ws *websocket.Conn) {
	defer func() {
		c.mu.Lock()
		if c.ws == ws {
			c.ws = nil
			c.state = StateDisconnected
			c.channel = ""
		}
		done := c.done
		c.mu.Unlock()
		if done != nil {
			select {
			case <-done:
			default:
				close(done)
			}
		}
	}()

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			return
		}
		var frame wireFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			continue
		}
		switch frame.Type {
		case "event":
			c.handleEvent(frame)
		case "connected", "subscribed", "unsubscribed", "error", "pong":
			c.mu.Lock()
			acks := c.acks
			c.mu.Unlock()
			select {
			case acks <- frame:
			default:
				// No control operation is waiting; drop it.
			}
		}
	}
}

func (c *Client) handleEvent(frame wireFrame) {
	var env Envelope
	if err := json.Unmarshal(frame.Data, &env); err != nil {
		return
	}

	if c.OnEvent != nil {
		c.OnEvent(frame.Channel, env)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.channel != frame.Channel {
		// Event for a channel we no longer (or never) hold; ignore.
		return
	}
	if env.Event == "message.sent" && env.Message != nil {
		c.messages = append(c.messages, *env.Message)
	}
}
