package usecase

import (
	"context"
	"fmt"

	chat "go-parley/internal/pkg/chat/application/domain"
	repository "go-parley/internal/pkg/chat/persistence/repository/port"
	userrepo "go-parley/internal/pkg/user/persistence/repository/port"
)

// SendMessageInput carries the data needed to append a message to a room.
type SendMessageInput struct {
	RoomID         string
	SenderID       string
	Content        *string
	AttachmentPath *string
}

// SendMessageOutput returns the persisted message with sender identity plus
// the room, which the broadcast fan-out needs for channel resolution.
type SendMessageOutput struct {
	Room    chat.Room
	Message chat.MessageWithSender
}

// SendMessageUseCase validates write access, persists the message, and
// hydrates the sender identity for broadcasting. It does not publish;
// fan-out is the caller's follow-up step after the durable write.
type SendMessageUseCase struct {
	Rooms    repository.RoomRepository
	Messages repository.MessageRepository
	Users    userrepo.UserRepository
}

func NewSendMessageUseCase(rooms repository.RoomRepository, messages repository.MessageRepository, users userrepo.UserRepository) *SendMessageUseCase {
	return &SendMessageUseCase{Rooms: rooms, Messages: messages, Users: users}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*SendMessageOutput, error) {
	if in.RoomID == "" || in.SenderID == "" {
		return nil, fmt.Errorf("room id and sender id are required")
	}

	room, err := uc.Rooms.GetRoom(ctx, in.RoomID)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	isMember, err := uc.Rooms.HasMember(ctx, in.RoomID, in.SenderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !room.CanWrite(in.SenderID, isMember) {
		return nil, chat.ErrForbidden
	}

	msg, err := chat.NewMessage(chat.Message{
		ChatRoomID:     in.RoomID,
		UserID:         in.SenderID,
		Content:        in.Content,
		AttachmentPath: in.AttachmentPath,
	})
	if err != nil {
		return nil, err
	}

	sender, err := uc.Users.FindByID(ctx, in.SenderID)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	saved, err := uc.Messages.SaveMessage(ctx, *msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &SendMessageOutput{
		Room:    room,
		Message: chat.MessageWithSender{Message: saved, Sender: sender.Identity()},
	}, nil
}
