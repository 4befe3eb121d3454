package chat

import "time"

// RoomType classifies a chat room. The type is fixed at creation.
type RoomType string

const (
	RoomTypePersonal RoomType = "personal" // canonical DM container owned by one user
	RoomTypePrivate  RoomType = "private"  // members only
	RoomTypePublic   RoomType = "public"   // discoverable, open join
)

// Valid reports whether t is one of the known room types.
func (t RoomType) Valid() bool {
	switch t {
	case RoomTypePersonal, RoomTypePrivate, RoomTypePublic:
		return true
	}
	return false
}

// Room is a conversation container. OwnerID is always set for personal rooms
// and carries the creator for private/public rooms.
type Room struct {
	ID        string    `db:"id"`
	OwnerID   *string   `db:"owner_id"`
	Name      string    `db:"name"`
	Type      RoomType  `db:"type"`
	CreatedAt time.Time `db:"created_at"`
}

// IsOwner reports whether userID owns this room.
func (r Room) IsOwner(userID string) bool {
	return r.OwnerID != nil && *r.OwnerID == userID
}

// CanRead applies the read policy for the room type.
// personal: owner only; private: members only; public: any authenticated user.
func (r Room) CanRead(userID string, isMember bool) bool {
	switch r.Type {
	case RoomTypePersonal:
		return r.IsOwner(userID)
	case RoomTypePrivate:
		return isMember
	case RoomTypePublic:
		return true
	}
	return isMember
}

// CanWrite applies the write policy for the room type.
// personal: owner only; private and public: members only.
func (r Room) CanWrite(userID string, isMember bool) bool {
	switch r.Type {
	case RoomTypePersonal:
		return r.IsOwner(userID)
	case RoomTypePrivate, RoomTypePublic:
		return isMember
	}
	return isMember
}
