package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"civicdesk/internal/platform/postgres"
	"civicdesk/pkg/domain"
	"civicdesk/pkg/platform/sentinel"
)

// PostgresStore reads and writes the users table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Upsert inserts the user or refreshes the claims of an existing row. The
// row is only rewritten when a claim actually changed.
func (s *PostgresStore) Upsert(ctx context.Context, user *User) error {
	_, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO users (id, username, email, is_staff, is_active, date_joined)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET username = EXCLUDED.username,
			email = CASE WHEN EXCLUDED.email = '' THEN users.email ELSE EXCLUDED.email END,
			is_staff = EXCLUDED.is_staff,
			is_active = EXCLUDED.is_active
		WHERE users.username IS DISTINCT FROM EXCLUDED.username
			OR users.is_staff IS DISTINCT FROM EXCLUDED.is_staff
			OR users.is_active IS DISTINCT FROM EXCLUDED.is_active
			OR (EXCLUDED.email <> '' AND users.email IS DISTINCT FROM EXCLUDED.email)`,
		uuid.UUID(user.ID), user.Username, user.Email, user.IsStaff, user.IsActive, user.DateJoined,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err, "users_username_key") {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.UserID) (*User, error) {
	var (
		u   User
		uid uuid.UUID
	)
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx, `
		SELECT id, username, email, is_staff, is_active, date_joined
		FROM users WHERE id = $1`, uuid.UUID(id),
	).Scan(&uid, &u.Username, &u.Email, &u.IsStaff, &u.IsActive, &u.DateJoined)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	u.ID = domain.UserID(uid)
	return &u, nil
}

func (s *PostgresStore) Exists(ctx context.Context, id domain.UserID) (bool, error) {
	var exists bool
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, uuid.UUID(id),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) CountActive(ctx context.Context) (int, error) {
	var n int
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT count(*) FROM users WHERE is_active`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active users: %w", err)
	}
	return n, nil
}
