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

// RegisterInput carries a new account's fields.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

var ErrInvalidRegistration = errors.New("user: name, email and password are required")

const minPasswordLength = 8

// RegisterUseCase creates an account with a bcrypt-hashed password.
type RegisterUseCase struct {
	Users  repository.UserRepository
	Hasher *auth.PasswordHasher
}

func NewRegisterUseCase(users repository.UserRepository, hasher *auth.PasswordHasher) *RegisterUseCase {
	return &RegisterUseCase{Users: users, Hasher: hasher}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, in RegisterInput) (*user.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" || !strings.Contains(email, "@") || len(in.Password) < minPasswordLength {
		return nil, ErrInvalidRegistration
	}

	hash, err := uc.Hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	created, err := uc.Users.Create(ctx, user.User{Name: name, Email: email, PasswordHash: hash})
	if errors.Is(err, user.ErrEmailTaken) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &created, nil
}
