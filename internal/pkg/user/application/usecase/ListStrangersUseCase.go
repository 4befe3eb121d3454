package usecase

import (
	"context"
	"fmt"

	chatrepo "go-parley/internal/pkg/chat/persistence/repository/port"
	user "go-parley/internal/pkg/user/application/domain"
	repository "go-parley/internal/pkg/user/persistence/repository/port"
)

// ListStrangersUseCase returns every user the caller could still add as a
// friend: everyone except the caller and their existing personal-room
// counterparts.
type ListStrangersUseCase struct {
	Users repository.UserRepository
	Rooms chatrepo.RoomRepository
}

func NewListStrangersUseCase(users repository.UserRepository, rooms chatrepo.RoomRepository) *ListStrangersUseCase {
	return &ListStrangersUseCase{Users: users, Rooms: rooms}
}

func (uc *ListStrangersUseCase) Execute(ctx context.Context, userID string) ([]user.User, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	friendIDs, err := uc.Rooms.ListFriendIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	users, err := uc.Users.ListExcluding(ctx, userID, friendIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return users, nil
}
