package repository

import (
	"context"
	"database/sql"
	"errors"

	"demo-bank/backend/internal/db"
	"demo-bank/backend/internal/session/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a session repository backed by handle.
// It takes *sql.DB rather than db.DBTX because Replace owns its own
// transaction.
func NewPostgresRepository(handle *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: handle}
}

// Replace removes every session for s.UserID and inserts s in a single
// transaction, so at no point can the user hold two live sessions.
func (r *PostgresRepository) Replace(ctx context.Context, s *domain.Session) error {
	return db.WithTx(ctx, r.db, nil, func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, s.UserID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO sessions (id, user_id, token, expires_at, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			s.ID, s.UserID, s.Token, s.ExpiresAt, s.CreatedAt)
		return err
	})
}

// GetByToken returns the session holding token, or nil if no such session
// exists. Expiry is not evaluated here; callers check it against the clock.
func (r *PostgresRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, token, expires_at, created_at
		FROM sessions WHERE token = $1`, token).
		Scan(&s.ID, &s.UserID, &s.Token, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *PostgresRepository) DeleteAllForUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PostgresRepository) CountForUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}
