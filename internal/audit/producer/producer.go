package producer

import (
	"context"

	"demo-bank/backend/internal/audit/domain"
)

// Producer mirrors audit events to an external stream. Implementations are
// best-effort; the database row written by the audit logger is the record
// of truth.
type Producer interface {
	Emit(ctx context.Context, event *domain.AuditLog) error
	Close() error
}
