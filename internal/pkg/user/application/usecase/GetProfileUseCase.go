package usecase

import (
	"context"
	"errors"
	"fmt"

	user "go-parley/internal/pkg/user/application/domain"
	repository "go-parley/internal/pkg/user/persistence/repository/port"
)

// GetProfileUseCase loads the authenticated user's account.
type GetProfileUseCase struct {
	Users repository.UserRepository
}

func NewGetProfileUseCase(users repository.UserRepository) *GetProfileUseCase {
	return &GetProfileUseCase{Users: users}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, userID string) (*user.User, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	u, err := uc.Users.FindByID(ctx, userID)
	if errors.Is(err, user.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &u, nil
}
