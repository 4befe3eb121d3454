package chat

import "time"

// Membership is the edge between a user and a room.
// Primary key: (ChatRoomID, UserID)
type Membership struct {
	ChatRoomID string    `db:"chat_room_id"`
	UserID     string    `db:"user_id"`
	CreatedAt  time.Time `db:"created_at"`
}

// Member is a room member joined with its public user fields, as returned
// by batched membership lookups.
type Member struct {
	ID         string    `db:"id"`
	Name       string    `db:"name"`
	Email      string    `db:"email"`
	AvatarPath *string   `db:"avatar_path"`
	JoinedAt   time.Time `db:"joined_at"`
}

// Identity is the public identity payload announced on presence channels
// and attached to broadcast messages.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
