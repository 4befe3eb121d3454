package usecase

import (
	"context"
	"fmt"

	chat "go-parley/internal/pkg/chat/application/domain"
	repository "go-parley/internal/pkg/chat/persistence/repository/port"
)

// LeaveRoomUseCase detaches a user from a room. Personal rooms can never be
// left: their membership is fixed at exactly owner plus counterpart.
type LeaveRoomUseCase struct {
	Rooms repository.RoomRepository
}

func NewLeaveRoomUseCase(rooms repository.RoomRepository) *LeaveRoomUseCase {
	return &LeaveRoomUseCase{Rooms: rooms}
}

func (uc *LeaveRoomUseCase) Execute(ctx context.Context, roomID string, userID string) error {
	if roomID == "" || userID == "" {
		return fmt.Errorf("room id and user id are required")
	}

	room, err := uc.Rooms.GetRoom(ctx, roomID)
	if err != nil {
		return wrapRepoErr(err)
	}

	isMember, err := uc.Rooms.HasMember(ctx, roomID, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !isMember {
		return chat.ErrNotMember
	}
	if room.Type == chat.RoomTypePersonal {
		return chat.ErrPersonalRoom
	}

	if err := uc.Rooms.RemoveMember(ctx, roomID, userID); err != nil {
		return wrapRepoErr(err)
	}
	return nil
}
