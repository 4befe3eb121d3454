package adapter

import (
	"context"
	"errors"

	user "go-parley/internal/pkg/user/application/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

const userColumns = "id::text, name, email, password_hash, avatar_path, created_at"

func (r *PgUserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	if r == nil || r.pool == nil {
		return user.User{}, errors.New("PgUserRepository: nil pool")
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO chat.app_user (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns+`
	`, u.Name, u.Email, u.PasswordHash).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.AvatarPath, &u.CreatedAt)
	if isUniqueViolation(err) {
		return user.User{}, user.ErrEmailTaken
	}
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}

func (r *PgUserRepository) FindByID(ctx context.Context, id string) (user.User, error) {
	return r.findOne(ctx, "SELECT "+userColumns+" FROM chat.app_user WHERE id = $1::uuid", id)
}

func (r *PgUserRepository) FindByEmail(ctx context.Context, email string) (user.User, error) {
	return r.findOne(ctx, "SELECT "+userColumns+" FROM chat.app_user WHERE email = $1", email)
}

func (r *PgUserRepository) Update(ctx context.Context, u user.User) error {
	ct, err := r.pool.Exec(ctx, `
		UPDATE chat.app_user
		SET name = $2, avatar_path = $3
		WHERE id = $1::uuid
	`, u.ID, u.Name, u.AvatarPath)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PgUserRepository) ListExcluding(ctx context.Context, userID string, excludeIDs []string) ([]user.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+` FROM chat.app_user
		WHERE id <> $1::uuid AND NOT (id::text = ANY($2))
		ORDER BY name ASC
	`, userID, excludeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		var u user.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.AvatarPath, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PgUserRepository) findOne(ctx context.Context, sql string, arg any) (user.User, error) {
	var u user.User
	err := r.pool.QueryRow(ctx, sql, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.AvatarPath, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
		return user.User{}, user.ErrNotFound
	}
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isInvalidUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
