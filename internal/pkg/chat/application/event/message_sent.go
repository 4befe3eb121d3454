package event

import (
	"time"

	chat "go-parley/internal/pkg/chat/application/domain"
)

// Broadcast event names. These are part of the wire contract with clients
// and must not change.
const (
	MessageSent    = "message.sent"
	PresenceJoined = "presence.joined"
)

// MessagePayload is the fixed wire shape of a broadcast message. Field names
// and the UTC timestamp format are frozen for client compatibility.
type MessagePayload struct {
	ID             string        `json:"id"`
	ChatRoomID     string        `json:"chat_room_id"`
	UserID         string        `json:"user_id"`
	Content        *string       `json:"content"`
	AttachmentPath *string       `json:"attachment_path"`
	CreatedAt      string        `json:"created_at"`
	User           chat.Identity `json:"user"`
}

// Envelope is the immutable payload published to a channel. Exactly one of
// Message or User is set, depending on Event.
type Envelope struct {
	Event   string          `json:"event"`
	Message *MessagePayload `json:"message,omitempty"`
	User    *chat.Identity  `json:"user,omitempty"`
}

// NewMessageSent builds the message.sent envelope for a persisted message.
func NewMessageSent(m chat.Message, sender chat.Identity) Envelope {
	return Envelope{
		Event: MessageSent,
		Message: &MessagePayload{
			ID:             m.ID,
			ChatRoomID:     m.ChatRoomID,
			UserID:         m.UserID,
			Content:        m.Content,
			AttachmentPath: m.AttachmentPath,
			CreatedAt:      m.CreatedAt.UTC().Format(time.RFC3339Nano),
			User:           sender,
		},
	}
}

// NewPresenceJoined builds the identity announcement pushed to a presence
// channel when a new subscriber is admitted.
func NewPresenceJoined(identity chat.Identity) Envelope {
	return Envelope{Event: PresenceJoined, User: &identity}
}
