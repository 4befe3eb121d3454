package usecase

import (
	"context"
	"fmt"

	chat "go-parley/internal/pkg/chat/application/domain"
	repository "go-parley/internal/pkg/chat/persistence/repository/port"
)

// JoinRoomUseCase attaches a user to a public room. Joining is idempotent at
// the storage level; a second join surfaces chat.ErrAlreadyMember without
// creating another membership row.
type JoinRoomUseCase struct {
	Rooms repository.RoomRepository
}

func NewJoinRoomUseCase(rooms repository.RoomRepository) *JoinRoomUseCase {
	return &JoinRoomUseCase{Rooms: rooms}
}

func (uc *JoinRoomUseCase) Execute(ctx context.Context, roomID string, userID string) error {
	if roomID == "" || userID == "" {
		return fmt.Errorf("room id and user id are required")
	}

	room, err := uc.Rooms.GetRoom(ctx, roomID)
	if err != nil {
		return wrapRepoErr(err)
	}
	if room.Type != chat.RoomTypePublic {
		return chat.ErrNotJoinable
	}

	if err := uc.Rooms.AddMember(ctx, roomID, userID); err != nil {
		return wrapRepoErr(err)
	}
	return nil
}
