package usecase

import (
	"context"
	"fmt"

	chat "go-parley/internal/pkg/chat/application/domain"
	repository "go-parley/internal/pkg/chat/persistence/repository/port"
)

// DeleteRoomUseCase removes a room. Owner only.
type DeleteRoomUseCase struct {
	Rooms repository.RoomRepository
}

func NewDeleteRoomUseCase(rooms repository.RoomRepository) *DeleteRoomUseCase {
	return &DeleteRoomUseCase{Rooms: rooms}
}

func (uc *DeleteRoomUseCase) Execute(ctx context.Context, roomID string, userID string) error {
	if roomID == "" || userID == "" {
		return fmt.Errorf("room id and user id are required")
	}

	room, err := uc.Rooms.GetRoom(ctx, roomID)
	if err != nil {
		return wrapRepoErr(err)
	}
	if !room.IsOwner(userID) {
		return chat.ErrNotOwner
	}

	if err := uc.Rooms.DeleteRoom(ctx, roomID); err != nil {
		return wrapRepoErr(err)
	}
	return nil
}
