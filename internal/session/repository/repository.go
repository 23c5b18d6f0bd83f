package repository

import (
	"context"

	"demo-bank/backend/internal/session/domain"
)

// Repository defines persistence for login sessions.
type Repository interface {
	// Replace atomically removes all existing sessions for s.UserID and
	// inserts s, enforcing the one-session-per-user rule.
	Replace(ctx context.Context, s *domain.Session) error

	// GetByToken returns the session for token, or nil if not found.
	GetByToken(ctx context.Context, token string) (*domain.Session, error)

	// DeleteAllForUser removes every session belonging to userID and
	// returns the number of rows removed.
	DeleteAllForUser(ctx context.Context, userID string) (int64, error)

	// CountForUser returns how many sessions userID currently has.
	CountForUser(ctx context.Context, userID string) (int64, error)
}
