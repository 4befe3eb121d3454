package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "go-parley/internal/pkg/chat/application/domain"
	repository "go-parley/internal/pkg/chat/persistence/repository/port"
	user "go-parley/internal/pkg/user/application/domain"
	userrepo "go-parley/internal/pkg/user/persistence/repository/port"
)

// AddFriendUseCase creates the personal room between the caller and a target
// user. The caller becomes the owner, the room is named after the target,
// and both users are attached atomically.
type AddFriendUseCase struct {
	Rooms repository.RoomRepository
	Users userrepo.UserRepository
}

func NewAddFriendUseCase(rooms repository.RoomRepository, users userrepo.UserRepository) *AddFriendUseCase {
	return &AddFriendUseCase{Rooms: rooms, Users: users}
}

func (uc *AddFriendUseCase) Execute(ctx context.Context, callerID string, targetID string) (*chat.Room, error) {
	if callerID == "" || targetID == "" {
		return nil, fmt.Errorf("caller id and target id are required")
	}
	if callerID == targetID {
		return nil, chat.ErrSelfFriend
	}

	target, err := uc.Users.FindByID(ctx, targetID)
	if errors.Is(err, user.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	existing, err := uc.Rooms.FindPersonalRoomBetween(ctx, callerID, targetID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if existing != nil {
		return nil, chat.ErrAlreadyFriends
	}

	owner := callerID
	room := chat.Room{OwnerID: &owner, Name: target.Name, Type: chat.RoomTypePersonal}
	created, err := uc.Rooms.CreateRoom(ctx, room, []string{callerID, targetID})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &created, nil
}
