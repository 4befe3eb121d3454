package usecase

import (
	"context"
	"fmt"
	"time"

	chat "go-parley/internal/pkg/chat/application/domain"
	user "go-parley/internal/pkg/user/application/domain"
)

// In-memory repositories backing the use case tests. Behavior mirrors the
// Postgres adapters: sentinel errors for missing rows and membership
// conflicts, atomic room+membership creation.

type fakeRoomRepo struct {
	rooms   map[string]chat.Room
	members map[string]map[string]bool
	nextID  int

	failWith error // when set, every call returns this
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{
		rooms:   make(map[string]chat.Room),
		members: make(map[string]map[string]bool),
	}
}

func (f *fakeRoomRepo) putRoom(r chat.Room, memberIDs ...string) chat.Room {
	if r.ID == "" {
		f.nextID++
		r.ID = fmt.Sprintf("room-%d", f.nextID)
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	f.rooms[r.ID] = r
	set := make(map[string]bool)
	for _, id := range memberIDs {
		set[id] = true
	}
	f.members[r.ID] = set
	return r
}

func (f *fakeRoomRepo) CreateRoom(ctx context.Context, r chat.Room, memberIDs []string) (chat.Room, error) {
	if f.failWith != nil {
		return chat.Room{}, f.failWith
	}
	return f.putRoom(r, memberIDs...), nil
}

func (f *fakeRoomRepo) GetRoom(ctx context.Context, roomID string) (chat.Room, error) {
	if f.failWith != nil {
		return chat.Room{}, f.failWith
	}
	r, ok := f.rooms[roomID]
	if !ok {
		return chat.Room{}, chat.ErrRoomNotFound
	}
	return r, nil
}

func (f *fakeRoomRepo) DeleteRoom(ctx context.Context, roomID string) error {
	if _, ok := f.rooms[roomID]; !ok {
		return chat.ErrRoomNotFound
	}
	delete(f.rooms, roomID)
	delete(f.members, roomID)
	return nil
}

func (f *fakeRoomRepo) HasMember(ctx context.Context, roomID string, userID string) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	return f.members[roomID][userID], nil
}

func (f *fakeRoomRepo) AddMember(ctx context.Context, roomID string, userID string) error {
	if f.members[roomID] == nil {
		f.members[roomID] = make(map[string]bool)
	}
	if f.members[roomID][userID] {
		return chat.ErrAlreadyMember
	}
	f.members[roomID][userID] = true
	return nil
}

func (f *fakeRoomRepo) RemoveMember(ctx context.Context, roomID string, userID string) error {
	if !f.members[roomID][userID] {
		return chat.ErrNotMember
	}
	delete(f.members[roomID], userID)
	return nil
}

func (f *fakeRoomRepo) ListMembers(ctx context.Context, roomID string) ([]chat.Member, error) {
	var out []chat.Member
	for id := range f.members[roomID] {
		out = append(out, chat.Member{ID: id})
	}
	return out, nil
}

func (f *fakeRoomRepo) ListOwnedPersonalRooms(ctx context.Context, userID string) ([]chat.Room, error) {
	var out []chat.Room
	for _, r := range f.rooms {
		if r.Type == chat.RoomTypePersonal && r.IsOwner(userID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRoomRepo) ListMemberRooms(ctx context.Context, userID string) ([]chat.Room, error) {
	var out []chat.Room
	for id, r := range f.rooms {
		if r.Type != chat.RoomTypePersonal && f.members[id][userID] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRoomRepo) ListPublicRoomsExcluding(ctx context.Context, userID string) ([]chat.Room, error) {
	var out []chat.Room
	for id, r := range f.rooms {
		if r.Type == chat.RoomTypePublic && !f.members[id][userID] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRoomRepo) FindPersonalRoomBetween(ctx context.Context, userID string, otherID string) (*chat.Room, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for id, r := range f.rooms {
		if r.Type == chat.RoomTypePersonal && f.members[id][userID] && f.members[id][otherID] {
			room := r
			return &room, nil
		}
	}
	return nil, nil
}

func (f *fakeRoomRepo) ListFriendIDs(ctx context.Context, userID string) ([]string, error) {
	var out []string
	for id, r := range f.rooms {
		if r.Type != chat.RoomTypePersonal || !f.members[id][userID] {
			continue
		}
		for member := range f.members[id] {
			if member != userID {
				out = append(out, member)
			}
		}
	}
	return out, nil
}

type fakeMessageRepo struct {
	saved  []chat.Message
	nextID int
}

func (f *fakeMessageRepo) SaveMessage(ctx context.Context, m chat.Message) (chat.Message, error) {
	f.nextID++
	m.ID = fmt.Sprintf("msg-%d", f.nextID)
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	f.saved = append(f.saved, m)
	return m, nil
}

func (f *fakeMessageRepo) GetMessage(ctx context.Context, messageID string) (chat.Message, error) {
	for _, m := range f.saved {
		if m.ID == messageID {
			return m, nil
		}
	}
	return chat.Message{}, chat.ErrMessageNotFound
}

func (f *fakeMessageRepo) ListMessages(ctx context.Context, roomID string) ([]chat.MessageWithSender, error) {
	var out []chat.MessageWithSender
	for _, m := range f.saved {
		if m.ChatRoomID == roomID {
			out = append(out, chat.MessageWithSender{Message: m})
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[string]user.User
}

func newFakeUserRepo(users ...user.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[string]user.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, u user.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) ListExcluding(ctx context.Context, userID string, excludeIDs []string) ([]user.User, error) {
	excluded := map[string]bool{userID: true}
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	var out []user.User
	for _, u := range f.users {
		if !excluded[u.ID] {
			out = append(out, u)
		}
	}
	return out, nil
}
