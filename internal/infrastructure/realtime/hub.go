package realtime

import (
	"context"
	"encoding/json"
	"sync"

	bport "go-parley/internal/infrastructure/broadcast/port"
)

// Hub tracks websocket sessions and their channel subscriptions. It keeps one
// active connection per user and fans payloads out to every subscriber of a
// channel. Unsubscribe is synchronous: once it returns, no further payload is
// delivered to that session on that channel.
type Hub struct {
	mu              sync.RWMutex
	sessions        map[string]Conn            // sessionID -> connection
	userSessions    map[string]string          // userID -> sessionID
	channels        map[string]map[string]Conn // channel -> sessionID -> connection
	sessionChannels map[string]map[string]struct{}
}

// NewHub constructs an initialized Hub.
func NewHub() *Hub {
	return &Hub{
		sessions:        make(map[string]Conn),
		userSessions:    make(map[string]string),
		channels:        make(map[string]map[string]Conn),
		sessionChannels: make(map[string]map[string]struct{}),
	}
}

// Attach registers a connection for the given user. If a previous session
// exists, it is removed and closed after the swap to enforce one active
// socket per user.
func (h *Hub) Attach(conn Conn) {
	var previous Conn

	h.mu.Lock()
	if existingID, ok := h.userSessions[conn.UserID()]; ok {
		if existing := h.sessions[existingID]; existing != nil {
			previous = existing
			h.detachLocked(existingID)
		}
	}

	h.sessions[conn.SessionID()] = conn
	h.userSessions[conn.UserID()] = conn.SessionID()
	h.sessionChannels[conn.SessionID()] = make(map[string]struct{})
	h.mu.Unlock()

	conn.Start()

	if previous != nil {
		previous.Close(4001, "session replaced")
	}
}

// Detach removes a connection and all its subscriptions if still tracked.
func (h *Hub) Detach(conn Conn) {
	h.mu.Lock()
	h.detachLocked(conn.SessionID())
	h.mu.Unlock()
}

// Subscribe adds the connection to the channel. Authorization happens before
// this call, on every attempt; the hub only routes.
func (h *Hub) Subscribe(channel string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.sessions[conn.SessionID()]; !ok {
		return
	}

	subs := h.channels[channel]
	if subs == nil {
		subs = make(map[string]Conn)
		h.channels[channel] = subs
	}
	subs[conn.SessionID()] = conn

	memberships := h.sessionChannels[conn.SessionID()]
	if memberships == nil {
		memberships = make(map[string]struct{})
		h.sessionChannels[conn.SessionID()] = memberships
	}
	memberships[channel] = struct{}{}
}

// Unsubscribe removes the connection from the channel.
func (h *Hub) Unsubscribe(channel string, conn Conn) {
	h.mu.Lock()
	h.unsubscribeLocked(channel, conn.SessionID())
	h.mu.Unlock()
}

// Publish writes payload to all channel subscribers and reports the delivered
// count. excludeUserID, when non-empty, skips that user's session.
func (h *Hub) Publish(channel string, payload []byte, excludeUserID string) int {
	h.mu.RLock()
	subs := h.channels[channel]
	if len(subs) == 0 {
		h.mu.RUnlock()
		return 0
	}

	delivered := 0
	for _, conn := range subs {
		if excludeUserID != "" && conn.UserID() == excludeUserID {
			continue
		}
		if err := conn.Send(payload); err == nil {
			delivered++
		}
	}
	h.mu.RUnlock()
	return delivered
}

// eventFrame is the outbound wire frame carrying a broadcast envelope to
// websocket clients.
type eventFrame struct {
	Type    string          `json:"type"`
	Channel string          `json:"channel"`
	Data    json.RawMessage `json:"data"`
}

// EncodeEventFrame wraps a published envelope with its channel for delivery
// to websocket subscribers.
func EncodeEventFrame(channel string, payload []byte) ([]byte, error) {
	return json.Marshal(eventFrame{Type: "event", Channel: channel, Data: payload})
}

// RunBridge consumes the broadcaster's event stream and forwards each event
// to local subscribers. It blocks until ctx is canceled or the stream closes.
func (h *Hub) RunBridge(ctx context.Context, b bport.Broadcaster, patterns ...string) error {
	events, err := b.Subscribe(ctx, patterns...)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			frame, err := EncodeEventFrame(ev.Channel, ev.Payload)
			if err != nil {
				continue
			}
			h.Publish(ev.Channel, frame, "")
		}
	}
}

// Close terminates all tracked connections and clears hub state.
func (h *Hub) Close() {
	h.mu.Lock()
	sessions := make([]Conn, 0, len(h.sessions))
	for _, conn := range h.sessions {
		sessions = append(sessions, conn)
	}
	h.sessions = make(map[string]Conn)
	h.userSessions = make(map[string]string)
	h.channels = make(map[string]map[string]Conn)
	h.sessionChannels = make(map[string]map[string]struct{})
	h.mu.Unlock()

	for _, conn := range sessions {
		conn.Close(1001, "hub shutdown")
	}
}

func (h *Hub) detachLocked(sessionID string) {
	conn, ok := h.sessions[sessionID]
	if !ok {
		return
	}
	delete(h.sessions, sessionID)

	if current, ok := h.userSessions[conn.UserID()]; ok && current == sessionID {
		delete(h.userSessions, conn.UserID())
	}

	for channel := range h.sessionChannels[sessionID] {
		h.unsubscribeLocked(channel, sessionID)
	}
	delete(h.sessionChannels, sessionID)
}

func (h *Hub) unsubscribeLocked(channel string, sessionID string) {
	if sessionID == "" {
		return
	}
	subs := h.channels[channel]
	if subs == nil {
		return
	}
	delete(subs, sessionID)
	if len(subs) == 0 {
		delete(h.channels, channel)
	}
	if memberships, ok := h.sessionChannels[sessionID]; ok {
		delete(memberships, channel)
		if len(memberships) == 0 {
			delete(h.sessionChannels, sessionID)
		}
	}
}
