package usecase

import (
	"context"
	"fmt"
	"strings"

	chat "go-parley/internal/pkg/chat/application/domain"
	repository "go-parley/internal/pkg/chat/persistence/repository/port"
)

// CreateRoomInput carries the data to open a new room. For personal rooms,
// MemberIDs must hold exactly the one counterpart; for other types the
// creator is implicitly included.
type CreateRoomInput struct {
	CreatorID string
	Name      string
	Type      chat.RoomType
	MemberIDs []string
}

// CreateRoomUseCase creates a room and its initial memberships atomically.
type CreateRoomUseCase struct {
	Rooms repository.RoomRepository
}

func NewCreateRoomUseCase(rooms repository.RoomRepository) *CreateRoomUseCase {
	return &CreateRoomUseCase{Rooms: rooms}
}

func (uc *CreateRoomUseCase) Execute(ctx context.Context, in CreateRoomInput) (*chat.Room, error) {
	if in.CreatorID == "" {
		return nil, fmt.Errorf("creator id is required")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, chat.ErrInvalidRoomInput
	}
	if !in.Type.Valid() {
		return nil, chat.ErrInvalidRoomType
	}

	memberIDs, err := resolveMemberIDs(in)
	if err != nil {
		return nil, err
	}

	creatorID := in.CreatorID
	room := chat.Room{OwnerID: &creatorID, Name: name, Type: in.Type}

	created, err := uc.Rooms.CreateRoom(ctx, room, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &created, nil
}

func resolveMemberIDs(in CreateRoomInput) ([]string, error) {
	if in.Type == chat.RoomTypePersonal {
		// exactly owner + one counterpart
		if len(in.MemberIDs) != 1 || in.MemberIDs[0] == "" || in.MemberIDs[0] == in.CreatorID {
			return nil, chat.ErrInvalidRoomInput
		}
		return []string{in.CreatorID, in.MemberIDs[0]}, nil
	}

	memberIDs := make([]string, 0, len(in.MemberIDs)+1)
	seen := map[string]struct{}{in.CreatorID: {}}
	memberIDs = append(memberIDs, in.CreatorID)
	for _, id := range in.MemberIDs {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		memberIDs = append(memberIDs, id)
	}
	return memberIDs, nil
}
