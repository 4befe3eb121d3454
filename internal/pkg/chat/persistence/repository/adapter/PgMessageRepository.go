package adapter

import (
	"context"
	"errors"

	chat "go-parley/internal/pkg/chat/application/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgMessageRepository struct {
	pool *pgxpool.Pool
}

func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

// SaveMessage appends a message. The insert clamps created_at so timestamps
// never decrease within a room, which keeps rendering order stable.
func (r *PgMessageRepository) SaveMessage(ctx context.Context, m chat.Message) (chat.Message, error) {
	if r == nil || r.pool == nil {
		return chat.Message{}, errors.New("PgMessageRepository: nil pool")
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO chat.message (chat_room_id, user_id, content, attachment_path, created_at)
		VALUES (
			$1::uuid, $2::uuid, $3, $4,
			GREATEST(
				now(),
				COALESCE((SELECT MAX(created_at) FROM chat.message WHERE chat_room_id = $1::uuid), now())
			)
		)
		RETURNING id::text, created_at
	`, m.ChatRoomID, m.UserID, m.Content, m.AttachmentPath).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return chat.Message{}, err
	}
	return m, nil
}

func (r *PgMessageRepository) GetMessage(ctx context.Context, messageID string) (chat.Message, error) {
	var m chat.Message
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, chat_room_id::text, user_id::text, content, attachment_path, created_at
		FROM chat.message
		WHERE id = $1::uuid
	`, messageID).Scan(&m.ID, &m.ChatRoomID, &m.UserID, &m.Content, &m.AttachmentPath, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
		return chat.Message{}, chat.ErrMessageNotFound
	}
	if err != nil {
		return chat.Message{}, err
	}
	return m, nil
}

// ListMessages returns the full room history in ascending creation order,
// with each sender's identity joined in one query.
func (r *PgMessageRepository) ListMessages(ctx context.Context, roomID string) ([]chat.MessageWithSender, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT msg.id::text, msg.chat_room_id::text, msg.user_id::text,
		       msg.content, msg.attachment_path, msg.created_at,
		       u.name, u.email
		FROM chat.message msg
		JOIN chat.app_user u ON u.id = msg.user_id
		WHERE msg.chat_room_id = $1::uuid
		ORDER BY msg.created_at ASC, msg.id ASC
	`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []chat.MessageWithSender
	for rows.Next() {
		var m chat.MessageWithSender
		if err := rows.Scan(
			&m.ID, &m.ChatRoomID, &m.UserID,
			&m.Content, &m.AttachmentPath, &m.CreatedAt,
			&m.Sender.Name, &m.Sender.Email,
		); err != nil {
			return nil, err
		}
		m.Sender.ID = m.UserID
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
