package repository

import (
	"context"

	chat "go-parley/internal/pkg/chat/application/domain"
)

// MessageRepository defines persistence operations for the append-only
// message log. SaveMessage must keep CreatedAt monotonic non-decreasing
// within a room.
type MessageRepository interface {
	SaveMessage(ctx context.Context, m chat.Message) (chat.Message, error)
	GetMessage(ctx context.Context, messageID string) (chat.Message, error)
	ListMessages(ctx context.Context, roomID string) ([]chat.MessageWithSender, error)
}
