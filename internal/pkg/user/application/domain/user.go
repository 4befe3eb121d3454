package user

import (
	"errors"
	"time"

	chat "go-parley/internal/pkg/chat/application/domain"
)

// User is an account identity. PasswordHash never leaves the persistence
// and auth layers; controllers serialize users through Public().
type User struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	AvatarPath   *string   `db:"avatar_path"`
	CreatedAt    time.Time `db:"created_at"`
}

// Identity returns the public identity payload used on presence channels
// and broadcast messages.
func (u User) Identity() chat.Identity {
	return chat.Identity{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Public is the serializable view of a user.
type Public struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	AvatarPath *string `json:"avatar_path"`
}

func (u User) Public() Public {
	return Public{ID: u.ID, Name: u.Name, Email: u.Email, AvatarPath: u.AvatarPath}
}

var (
	ErrNotFound           = errors.New("user: not found")
	ErrEmailTaken         = errors.New("user: email already registered")
	ErrInvalidCredentials = errors.New("user: invalid email or password")
)
