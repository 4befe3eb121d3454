package usecase

import (
	"context"
	"errors"
	"testing"

	chat "go-parley/internal/pkg/chat/application/domain"
)

func seedRooms(t *testing.T) *fakeRoomRepo {
	t.Helper()
	owner := "u1"
	rooms := newFakeRoomRepo()
	rooms.putRoom(chat.Room{ID: "dm", OwnerID: &owner, Type: chat.RoomTypePersonal}, "u1", "u2")
	rooms.putRoom(chat.Room{ID: "priv", OwnerID: &owner, Type: chat.RoomTypePrivate}, "u1", "u2")
	rooms.putRoom(chat.Room{ID: "pub", OwnerID: &owner, Type: chat.RoomTypePublic}, "u1")
	return rooms
}

func TestJoinRoomUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("join public room", func(t *testing.T) {
		rooms := seedRooms(t)
		uc := NewJoinRoomUseCase(rooms)
		if err := uc.Execute(ctx, "pub", "u3"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if isMember, _ := rooms.HasMember(ctx, "pub", "u3"); !isMember {
			t.Error("membership row missing after join")
		}
	})

	t.Run("second join conflicts", func(t *testing.T) {
		rooms := seedRooms(t)
		uc := NewJoinRoomUseCase(rooms)
		if err := uc.Execute(ctx, "pub", "u3"); err != nil {
			t.Fatal(err)
		}
		if err := uc.Execute(ctx, "pub", "u3"); !errors.Is(err, chat.ErrAlreadyMember) {
			t.Errorf("err = %v, want ErrAlreadyMember", err)
		}
	})

	t.Run("private room not joinable", func(t *testing.T) {
		uc := NewJoinRoomUseCase(seedRooms(t))
		if err := uc.Execute(ctx, "priv", "u3"); !errors.Is(err, chat.ErrNotJoinable) {
			t.Errorf("err = %v, want ErrNotJoinable", err)
		}
	})

	t.Run("personal room not joinable", func(t *testing.T) {
		uc := NewJoinRoomUseCase(seedRooms(t))
		if err := uc.Execute(ctx, "dm", "u3"); !errors.Is(err, chat.ErrNotJoinable) {
			t.Errorf("err = %v, want ErrNotJoinable", err)
		}
	})

	t.Run("unknown room", func(t *testing.T) {
		uc := NewJoinRoomUseCase(seedRooms(t))
		if err := uc.Execute(ctx, "nope", "u3"); !errors.Is(err, chat.ErrRoomNotFound) {
			t.Errorf("err = %v, want ErrRoomNotFound", err)
		}
	})
}

func TestLeaveRoomUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("member leaves private room", func(t *testing.T) {
		rooms := seedRooms(t)
		uc := NewLeaveRoomUseCase(rooms)
		if err := uc.Execute(ctx, "priv", "u2"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if isMember, _ := rooms.HasMember(ctx, "priv", "u2"); isMember {
			t.Error("membership row still present after leave")
		}
	})

	t.Run("non-member cannot leave", func(t *testing.T) {
		uc := NewLeaveRoomUseCase(seedRooms(t))
		if err := uc.Execute(ctx, "priv", "u3"); !errors.Is(err, chat.ErrNotMember) {
			t.Errorf("err = %v, want ErrNotMember", err)
		}
	})

	t.Run("personal room cannot be left", func(t *testing.T) {
		for _, userID := range []string{"u1", "u2"} {
			uc := NewLeaveRoomUseCase(seedRooms(t))
			if err := uc.Execute(ctx, "dm", userID); !errors.Is(err, chat.ErrPersonalRoom) {
				t.Errorf("user %s: err = %v, want ErrPersonalRoom", userID, err)
			}
		}
	})
}

func TestDeleteRoomUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes", func(t *testing.T) {
		rooms := seedRooms(t)
		uc := NewDeleteRoomUseCase(rooms)
		if err := uc.Execute(ctx, "priv", "u1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := rooms.GetRoom(ctx, "priv"); !errors.Is(err, chat.ErrRoomNotFound) {
			t.Error("room still present after delete")
		}
	})

	t.Run("non-owner denied", func(t *testing.T) {
		uc := NewDeleteRoomUseCase(seedRooms(t))
		if err := uc.Execute(ctx, "priv", "u2"); !errors.Is(err, chat.ErrNotOwner) {
			t.Errorf("err = %v, want ErrNotOwner", err)
		}
	})
}
