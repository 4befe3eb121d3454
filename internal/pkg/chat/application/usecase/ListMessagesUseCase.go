package usecase

import (
	"context"
	"fmt"

	chat "go-parley/internal/pkg/chat/application/domain"
	repository "go-parley/internal/pkg/chat/persistence/repository/port"
)

// ListMessagesUseCase fetches a room's history in ascending creation order,
// enforcing the read policy for the caller.
type ListMessagesUseCase struct {
	Rooms    repository.RoomRepository
	Messages repository.MessageRepository
}

func NewListMessagesUseCase(rooms repository.RoomRepository, messages repository.MessageRepository) *ListMessagesUseCase {
	return &ListMessagesUseCase{Rooms: rooms, Messages: messages}
}

func (uc *ListMessagesUseCase) Execute(ctx context.Context, roomID string, userID string) ([]chat.MessageWithSender, error) {
	if roomID == "" || userID == "" {
		return nil, fmt.Errorf("room id and user id are required")
	}

	room, err := uc.Rooms.GetRoom(ctx, roomID)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	isMember, err := uc.Rooms.HasMember(ctx, roomID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !room.CanRead(userID, isMember) {
		return nil, chat.ErrForbidden
	}

	msgs, err := uc.Messages.ListMessages(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msgs, nil
}
