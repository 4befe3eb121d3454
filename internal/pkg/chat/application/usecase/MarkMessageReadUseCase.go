package usecase

import (
	"context"
	"fmt"

	chat "go-parley/internal/pkg/chat/application/domain"
	repository "go-parley/internal/pkg/chat/persistence/repository/port"
)

// MarkMessageReadUseCase validates that the message belongs to the room and
// acknowledges the read without persisting anything. Read receipts are a
// known gap; no per-user read state is stored yet.
type MarkMessageReadUseCase struct {
	Messages repository.MessageRepository
}

func NewMarkMessageReadUseCase(messages repository.MessageRepository) *MarkMessageReadUseCase {
	return &MarkMessageReadUseCase{Messages: messages}
}

func (uc *MarkMessageReadUseCase) Execute(ctx context.Context, roomID string, messageID string) error {
	if roomID == "" || messageID == "" {
		return fmt.Errorf("room id and message id are required")
	}

	msg, err := uc.Messages.GetMessage(ctx, messageID)
	if err != nil {
		return wrapRepoErr(err)
	}
	if msg.ChatRoomID != roomID {
		return chat.ErrMessageMismatch
	}
	return nil
}
