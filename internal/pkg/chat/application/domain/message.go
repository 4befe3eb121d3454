package chat

import (
	"strings"
	"time"
)

// Message is an immutable log entry in a room. Ordering within a room is by
// CreatedAt, which the store keeps monotonic non-decreasing per room.
type Message struct {
	ID             string    `db:"id"`
	ChatRoomID     string    `db:"chat_room_id"`
	UserID         string    `db:"user_id"`
	CreatedAt      time.Time `db:"created_at"`
	Content        *string   `db:"content"`
	AttachmentPath *string   `db:"attachment_path"`
}

// MessageWithSender carries a message together with the sender's public identity.
type MessageWithSender struct {
	Message
	Sender Identity `json:"user"`
}

// NewMessage validates and normalizes a message before persistence.
// A message must carry content or an attachment; whitespace-only content
// counts as absent.
func NewMessage(m Message) (*Message, error) {
	if m.ChatRoomID == "" || m.UserID == "" {
		return nil, ErrInvalidMessage
	}

	if m.Content != nil {
		trimmed := strings.TrimSpace(*m.Content)
		if trimmed == "" {
			m.Content = nil
		} else {
			m.Content = &trimmed
		}
	}

	if m.Content == nil && m.AttachmentPath == nil {
		return nil, ErrEmptyMessage
	}

	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	return &m, nil
}
