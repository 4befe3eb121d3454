package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-parley/internal/pkg/auth"
	user "go-parley/internal/pkg/user/application/domain"
	repository "go-parley/internal/pkg/user/persistence/repository/port"
)

// LoginUseCase verifies credentials and returns the account. Unknown email
// and wrong password are indistinguishable to the caller.
type LoginUseCase struct {
	Users  repository.UserRepository
	Hasher *auth.PasswordHasher
}

func NewLoginUseCase(users repository.UserRepository, hasher *auth.PasswordHasher) *LoginUseCase {
	return &LoginUseCase{Users: users, Hasher: hasher}
}

func (uc *LoginUseCase) Execute(ctx context.Context, email string, password string) (*user.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, user.ErrInvalidCredentials
	}

	u, err := uc.Users.FindByEmail(ctx, email)
	if errors.Is(err, user.ErrNotFound) {
		return nil, user.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if !uc.Hasher.Verify(password, u.PasswordHash) {
		return nil, user.ErrInvalidCredentials
	}
	return &u, nil
}
