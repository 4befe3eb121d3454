package controller

import (
	"time"

	chat "go-parley/internal/pkg/chat/application/domain"
	"go-parley/internal/pkg/chat/application/event"
)

// Response DTOs keep the JSON contract stable regardless of domain struct
// changes. Messages reuse the broadcast payload shape so history fetches and
// pushed events decode identically on the client.

type roomResponse struct {
	ID        string    `json:"id"`
	OwnerID   *string   `json:"owner_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

type memberResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	AvatarPath *string   `json:"avatar_path"`
	JoinedAt   time.Time `json:"joined_at"`
}

func toRoomResponse(r chat.Room) roomResponse {
	return roomResponse{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		Name:      r.Name,
		Type:      string(r.Type),
		CreatedAt: r.CreatedAt,
	}
}

func toRoomResponses(rooms []chat.Room) []roomResponse {
	out := make([]roomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomResponse(r))
	}
	return out
}

func toMemberResponses(members []chat.Member) []memberResponse {
	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, memberResponse{
			ID:         m.ID,
			Name:       m.Name,
			Email:      m.Email,
			AvatarPath: m.AvatarPath,
			JoinedAt:   m.JoinedAt,
		})
	}
	return out
}

func toMessageResponse(m chat.MessageWithSender) event.MessagePayload {
	return *event.NewMessageSent(m.Message, m.Sender).Message
}

func toMessageResponses(msgs []chat.MessageWithSender) []event.MessagePayload {
	out := make([]event.MessagePayload, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	return out
}
