package repository

import (
	"context"

	user "go-parley/internal/pkg/user/application/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, u user.User) (user.User, error)
	FindByID(ctx context.Context, id string) (user.User, error)
	FindByEmail(ctx context.Context, email string) (user.User, error)
	Update(ctx context.Context, u user.User) error

	// ListExcluding returns all users except the given user and the ids in
	// excludeIDs, for the friend-discovery listing.
	ListExcluding(ctx context.Context, userID string, excludeIDs []string) ([]user.User, error)
}
