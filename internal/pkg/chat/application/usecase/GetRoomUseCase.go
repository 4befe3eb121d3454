package usecase

import (
	"context"
	"fmt"

	chat "go-parley/internal/pkg/chat/application/domain"
	repository "go-parley/internal/pkg/chat/persistence/repository/port"
)

// RoomDetail is the full view of a room: its members and ordered history.
type RoomDetail struct {
	Room     chat.Room
	Members  []chat.Member
	Messages []chat.MessageWithSender
}

// GetRoomUseCase loads a room with members and messages, enforcing the read
// policy for the caller.
type GetRoomUseCase struct {
	Rooms    repository.RoomRepository
	Messages repository.MessageRepository
}

func NewGetRoomUseCase(rooms repository.RoomRepository, messages repository.MessageRepository) *GetRoomUseCase {
	return &GetRoomUseCase{Rooms: rooms, Messages: messages}
}

func (uc *GetRoomUseCase) Execute(ctx context.Context, roomID string, userID string) (*RoomDetail, error) {
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

	members, err := uc.Rooms.ListMembers(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	messages, err := uc.Messages.ListMessages(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &RoomDetail{Room: room, Members: members, Messages: messages}, nil
}
