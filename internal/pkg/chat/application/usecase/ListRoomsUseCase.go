package usecase

import (
	"context"
	"fmt"

	chat "go-parley/internal/pkg/chat/application/domain"
	repository "go-parley/internal/pkg/chat/persistence/repository/port"
)

// RoomListOutput buckets rooms the way the room-list endpoint serves them:
// the caller's personal rooms, the private/public rooms they belong to, and
// the public rooms they could still join.
type RoomListOutput struct {
	OwnedRooms  []chat.Room
	MemberRooms []chat.Room
	PublicRooms []chat.Room
}

// ListRoomsUseCase assembles the three room buckets for a user.
type ListRoomsUseCase struct {
	Rooms repository.RoomRepository
}

func NewListRoomsUseCase(rooms repository.RoomRepository) *ListRoomsUseCase {
	return &ListRoomsUseCase{Rooms: rooms}
}

func (uc *ListRoomsUseCase) Execute(ctx context.Context, userID string) (*RoomListOutput, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	owned, err := uc.Rooms.ListOwnedPersonalRooms(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	member, err := uc.Rooms.ListMemberRooms(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	public, err := uc.Rooms.ListPublicRoomsExcluding(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &RoomListOutput{OwnedRooms: owned, MemberRooms: member, PublicRooms: public}, nil
}
