package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	user "go-parley/internal/pkg/user/application/domain"
	repository "go-parley/internal/pkg/user/persistence/repository/port"
)

// UpdateProfileInput carries the mutable profile fields. Nil means "leave
// unchanged".
type UpdateProfileInput struct {
	UserID     string
	Name       *string
	AvatarPath *string
}

// UpdateProfileUseCase applies partial profile updates.
type UpdateProfileUseCase struct {
	Users repository.UserRepository
}

func NewUpdateProfileUseCase(users repository.UserRepository) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{Users: users}
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, in UpdateProfileInput) (*user.User, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	u, err := uc.Users.FindByID(ctx, in.UserID)
	if errors.Is(err, user.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name != "" {
			u.Name = name
		}
	}
	if in.AvatarPath != nil {
		u.AvatarPath = in.AvatarPath
	}

	if err := uc.Users.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &u, nil
}
