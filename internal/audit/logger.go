package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"demo-bank/backend/internal/audit/domain"
	"demo-bank/backend/internal/audit/producer"
	auditrepo "demo-bank/backend/internal/audit/repository"
	"demo-bank/backend/internal/logging"
)

// IPExtractor returns the client IP from the request context.
type IPExtractor func(context.Context) string

// AuditLogger writes a single audit event with explicit action/resource.
// Used by the auth and funding code paths. LogEvent is best-effort:
// failures are logged and do not affect the caller.
type AuditLogger interface {
	LogEvent(ctx context.Context, userID, action, resource, metadata string)
}

// Logger implements AuditLogger using the audit repository, an optional
// Kafka mirror, and an optional IP extractor.
type Logger struct {
	repo        auditrepo.Repository
	mirror      producer.Producer
	ipExtractor IPExtractor
	log         logging.Logger
}

// NewLogger returns an AuditLogger that persists to repo and uses
// ipExtractor for client IP. mirror may be nil to disable streaming;
// ipExtractor may be nil, then IP is recorded as "unknown".
func NewLogger(repo auditrepo.Repository, mirror producer.Producer, ipExtractor IPExtractor, log logging.Logger) *Logger {
	return &Logger{repo: repo, mirror: mirror, ipExtractor: ipExtractor, log: log}
}

// LogEvent writes one audit log entry. Best-effort: errors are logged and
// not returned.
func (l *Logger) LogEvent(ctx context.Context, userID, action, resource, metadata string) {
	if l.repo == nil {
		return
	}
	ip := "unknown"
	if l.ipExtractor != nil {
		ip = l.ipExtractor(ctx)
	}
	entry := &domain.AuditLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Resource:  resource,
		IP:        ip,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}
	if err := l.repo.Save(ctx, entry); err != nil {
		l.log.Error(ctx, "audit: failed to log event",
			"action", action, "resource", resource, "error", err)
	}
	if l.mirror != nil {
		if err := l.mirror.Emit(ctx, entry); err != nil {
			l.log.Warn(ctx, "audit: kafka mirror emit failed",
				"action", action, "error", err)
		}
	}
}
