package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "go-parley/internal/pkg/chat/application/domain"
	repository "go-parley/internal/pkg/chat/persistence/repository/port"
	userrepo "go-parley/internal/pkg/user/persistence/repository/port"
)

// AuthorizeChannelOutput reports a subscription decision. Identity is set
// only for granted presence-channel subscriptions; it is the payload
// announced to the channel's other members.
type AuthorizeChannelOutput struct {
	Granted  bool
	Identity *chat.Identity
}

// AuthorizeChannelUseCase decides whether a user may subscribe to a channel.
// It runs on every subscription attempt; a grant is never cached, because
// membership can change between attempts.
type AuthorizeChannelUseCase struct {
	Rooms repository.RoomRepository
	Users userrepo.UserRepository
}

func NewAuthorizeChannelUseCase(rooms repository.RoomRepository, users userrepo.UserRepository) *AuthorizeChannelUseCase {
	return &AuthorizeChannelUseCase{Rooms: rooms, Users: users}
}

var deny = &AuthorizeChannelOutput{}

func (uc *AuthorizeChannelUseCase) Execute(ctx context.Context, userID string, channelName string) (*AuthorizeChannelOutput, error) {
	if userID == "" {
		return deny, nil
	}

	ch, ok := chat.ParseChannel(channelName)
	if !ok {
		return deny, nil
	}

	switch ch.Kind {
	case chat.ChannelUser:
		// personal delivery channel belongs to exactly one user
		if ch.TargetID != userID {
			return deny, nil
		}
		return &AuthorizeChannelOutput{Granted: true}, nil

	case chat.ChannelRoom:
		room, err := uc.Rooms.GetRoom(ctx, ch.TargetID)
		if errors.Is(err, chat.ErrRoomNotFound) {
			return deny, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if room.Type == chat.RoomTypePublic {
			return deny, nil // public rooms subscribe via their presence channel
		}
		isMember, err := uc.Rooms.HasMember(ctx, ch.TargetID, userID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if !isMember {
			return deny, nil
		}
		return &AuthorizeChannelOutput{Granted: true}, nil

	case chat.ChannelPublicRoom:
		room, err := uc.Rooms.GetRoom(ctx, ch.TargetID)
		if errors.Is(err, chat.ErrRoomNotFound) {
			return deny, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if room.Type != chat.RoomTypePublic {
			return deny, nil
		}
		u, err := uc.Users.FindByID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		identity := u.Identity()
		return &AuthorizeChannelOutput{Granted: true, Identity: &identity}, nil
	}

	return deny, nil
}
