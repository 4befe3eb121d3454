package repository

import (
	"context"

	chat "go-parley/internal/pkg/chat/application/domain"
)

// RoomRepository defines persistence operations for rooms and memberships.
// Implementations must make CreateRoom atomic: the room row and all initial
// membership rows are committed together or not at all.
type RoomRepository interface {
	CreateRoom(ctx context.Context, r chat.Room, memberIDs []string) (chat.Room, error)
	GetRoom(ctx context.Context, roomID string) (chat.Room, error)
	DeleteRoom(ctx context.Context, roomID string) error

	HasMember(ctx context.Context, roomID string, userID string) (bool, error)
	AddMember(ctx context.Context, roomID string, userID string) error
	RemoveMember(ctx context.Context, roomID string, userID string) error
	ListMembers(ctx context.Context, roomID string) ([]chat.Member, error)

	ListOwnedPersonalRooms(ctx context.Context, userID string) ([]chat.Room, error)
	ListMemberRooms(ctx context.Context, userID string) ([]chat.Room, error)
	ListPublicRoomsExcluding(ctx context.Context, userID string) ([]chat.Room, error)

	FindPersonalRoomBetween(ctx context.Context, userID string, otherID string) (*chat.Room, error)
	ListFriendIDs(ctx context.Context, userID string) ([]string, error)
}
