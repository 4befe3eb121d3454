package adapter

import (
	"context"
	"errors"

	chat "go-parley/internal/pkg/chat/application/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRoomRepository struct {
	pool *pgxpool.Pool
}

func NewPgRoomRepository(pool *pgxpool.Pool) *PgRoomRepository {
	return &PgRoomRepository{pool: pool}
}

const roomColumns = "id::text, owner_id::text, name, type, created_at"

// CreateRoom inserts the room and its initial memberships in one transaction.
// A failure on any membership rolls back the room row as well.
func (r *PgRoomRepository) CreateRoom(ctx context.Context, room chat.Room, memberIDs []string) (chat.Room, error) {
	if r == nil || r.pool == nil {
		return chat.Room{}, errors.New("PgRoomRepository: nil pool")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return chat.Room{}, err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO chat.chat_room (owner_id, name, type)
		VALUES (NULLIF($1, '')::uuid, $2, $3)
		RETURNING `+roomColumns+`
	`, deref(room.OwnerID), room.Name, room.Type).
		Scan(&room.ID, &room.OwnerID, &room.Name, &room.Type, &room.CreatedAt)
	if err != nil {
		return chat.Room{}, err
	}

	for _, uid := range memberIDs {
		if uid == "" {
			continue
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO chat.chat_room_member (chat_room_id, user_id)
			VALUES ($1::uuid, $2::uuid)
			ON CONFLICT (chat_room_id, user_id) DO NOTHING
		`, room.ID, uid); err != nil {
			return chat.Room{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return chat.Room{}, err
	}
	return room, nil
}

func (r *PgRoomRepository) GetRoom(ctx context.Context, roomID string) (chat.Room, error) {
	var room chat.Room
	err := r.pool.QueryRow(ctx,
		"SELECT "+roomColumns+" FROM chat.chat_room WHERE id = $1::uuid",
		roomID,
	).Scan(&room.ID, &room.OwnerID, &room.Name, &room.Type, &room.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
		return chat.Room{}, chat.ErrRoomNotFound
	}
	if err != nil {
		return chat.Room{}, err
	}
	return room, nil
}

func (r *PgRoomRepository) DeleteRoom(ctx context.Context, roomID string) error {
	ct, err := r.pool.Exec(ctx, "DELETE FROM chat.chat_room WHERE id = $1::uuid", roomID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return chat.ErrRoomNotFound
	}
	return nil
}

func (r *PgRoomRepository) HasMember(ctx context.Context, roomID string, userID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM chat.chat_room_member
			WHERE chat_room_id = $1::uuid AND user_id = $2::uuid
		)
	`, roomID, userID).Scan(&exists)
	return exists, err
}

// AddMember inserts a membership row. A duplicate reports chat.ErrAlreadyMember.
func (r *PgRoomRepository) AddMember(ctx context.Context, roomID string, userID string) error {
	ct, err := r.pool.Exec(ctx, `
		INSERT INTO chat.chat_room_member (chat_room_id, user_id)
		VALUES ($1::uuid, $2::uuid)
		ON CONFLICT (chat_room_id, user_id) DO NOTHING
	`, roomID, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return chat.ErrAlreadyMember
	}
	return nil
}

func (r *PgRoomRepository) RemoveMember(ctx context.Context, roomID string, userID string) error {
	ct, err := r.pool.Exec(ctx, `
		DELETE FROM chat.chat_room_member
		WHERE chat_room_id = $1::uuid AND user_id = $2::uuid
	`, roomID, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return chat.ErrNotMember
	}
	return nil
}

func (r *PgRoomRepository) ListMembers(ctx context.Context, roomID string) ([]chat.Member, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id::text, u.name, u.email, u.avatar_path, m.created_at
		FROM chat.chat_room_member m
		JOIN chat.app_user u ON u.id = m.user_id
		WHERE m.chat_room_id = $1::uuid
		ORDER BY m.created_at ASC
	`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []chat.Member
	for rows.Next() {
		var m chat.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.AvatarPath, &m.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *PgRoomRepository) ListOwnedPersonalRooms(ctx context.Context, userID string) ([]chat.Room, error) {
	return r.queryRooms(ctx, `
		SELECT `+roomColumns+` FROM chat.chat_room
		WHERE owner_id = $1::uuid AND type = 'personal'
		ORDER BY created_at ASC
	`, userID)
}

func (r *PgRoomRepository) ListMemberRooms(ctx context.Context, userID string) ([]chat.Room, error) {
	return r.queryRooms(ctx, `
		SELECT `+roomColumns+` FROM chat.chat_room c
		WHERE c.type IN ('private', 'public')
		  AND EXISTS (
			SELECT 1 FROM chat.chat_room_member m
			WHERE m.chat_room_id = c.id AND m.user_id = $1::uuid
		  )
		ORDER BY c.created_at ASC
	`, userID)
}

func (r *PgRoomRepository) ListPublicRoomsExcluding(ctx context.Context, userID string) ([]chat.Room, error) {
	return r.queryRooms(ctx, `
		SELECT `+roomColumns+` FROM chat.chat_room c
		WHERE c.type = 'public'
		  AND NOT EXISTS (
			SELECT 1 FROM chat.chat_room_member m
			WHERE m.chat_room_id = c.id AND m.user_id = $1::uuid
		  )
		ORDER BY c.created_at ASC
	`, userID)
}

// FindPersonalRoomBetween returns the personal room holding both users as
// members, or nil when the users are not friends yet.
func (r *PgRoomRepository) FindPersonalRoomBetween(ctx context.Context, userID string, otherID string) (*chat.Room, error) {
	var room chat.Room
	err := r.pool.QueryRow(ctx, `
		SELECT `+roomColumns+` FROM chat.chat_room c
		WHERE c.type = 'personal'
		  AND EXISTS (SELECT 1 FROM chat.chat_room_member m
		              WHERE m.chat_room_id = c.id AND m.user_id = $1::uuid)
		  AND EXISTS (SELECT 1 FROM chat.chat_room_member m
		              WHERE m.chat_room_id = c.id AND m.user_id = $2::uuid)
		LIMIT 1
	`, userID, otherID).Scan(&room.ID, &room.OwnerID, &room.Name, &room.Type, &room.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// ListFriendIDs returns the counterpart user ids across all personal rooms
// the user belongs to.
func (r *PgRoomRepository) ListFriendIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT m2.user_id::text
		FROM chat.chat_room_member m1
		JOIN chat.chat_room c ON c.id = m1.chat_room_id AND c.type = 'personal'
		JOIN chat.chat_room_member m2 ON m2.chat_room_id = c.id
		WHERE m1.user_id = $1::uuid AND m2.user_id <> $1::uuid
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PgRoomRepository) queryRooms(ctx context.Context, sql string, args ...any) ([]chat.Room, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []chat.Room
	for rows.Next() {
		var room chat.Room
		if err := rows.Scan(&room.ID, &room.OwnerID, &room.Name, &room.Type, &room.CreatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// isInvalidUUID treats malformed uuid path params as not-found rather than
// surfacing a 500 from the cast.
func isInvalidUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
