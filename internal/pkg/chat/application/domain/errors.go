package chat

import "errors"

// Domain-level errors for room and message behaviors
var (
	ErrRoomNotFound     = errors.New("chat: room not found")
	ErrMessageNotFound  = errors.New("chat: message not found")
	ErrNotMember        = errors.New("chat: user is not a member of the room")
	ErrNotOwner         = errors.New("chat: user is not the owner of the room")
	ErrForbidden        = errors.New("chat: user may not access the room")
	ErrNotJoinable      = errors.New("chat: only public rooms can be joined")
	ErrAlreadyMember    = errors.New("chat: user is already a member")
	ErrPersonalRoom     = errors.New("chat: personal rooms cannot be left")
	ErrAlreadyFriends   = errors.New("chat: personal room already exists for these users")
	ErrSelfFriend       = errors.New("chat: cannot add yourself as a friend")
	ErrInvalidMessage   = errors.New("chat: chat_room_id and user_id are required")
	ErrEmptyMessage     = errors.New("chat: empty message (no content or attachment)")
	ErrMessageMismatch  = errors.New("chat: message does not belong to the room")
	ErrInvalidRoomType  = errors.New("chat: unknown room type")
	ErrInvalidRoomInput = errors.New("chat: invalid room input")
)
