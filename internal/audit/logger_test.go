package audit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"demo-bank/backend/internal/audit/domain"
	"demo-bank/backend/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type memAuditRepo struct {
	saved []*domain.AuditLog
	err   error
}

func (m *memAuditRepo) Save(ctx context.Context, a *domain.AuditLog) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, a)
	return nil
}

func (m *memAuditRepo) ListByUser(ctx context.Context, userID string, limit, offset int32) ([]*domain.AuditLog, error) {
	return nil, nil
}

type memMirror struct {
	emitted []*domain.AuditLog
	err     error
}

func (m *memMirror) Emit(ctx context.Context, e *domain.AuditLog) error {
	if m.err != nil {
		return m.err
	}
	m.emitted = append(m.emitted, e)
	return nil
}

func (m *memMirror) Close() error { return nil }

func TestLogEvent(t *testing.T) {
	repo := &memAuditRepo{}
	mirror := &memMirror{}
	l := NewLogger(repo, mirror, func(context.Context) string { return "203.0.113.9" }, testLogger())

	l.LogEvent(context.Background(), "u1", domain.ActionLoginSuccess, "session", "")

	if len(repo.saved) != 1 {
		t.Fatalf("saved %d entries, want 1", len(repo.saved))
	}
	got := repo.saved[0]
	if got.ID == "" {
		t.Error("entry ID not set")
	}
	if got.UserID != "u1" || got.Action != domain.ActionLoginSuccess || got.Resource != "session" {
		t.Errorf("entry = %+v", got)
	}
	if got.IP != "203.0.113.9" {
		t.Errorf("IP = %q", got.IP)
	}
	if len(mirror.emitted) != 1 {
		t.Errorf("mirrored %d entries, want 1", len(mirror.emitted))
	}
}

func TestLogEvent_NilExtractorAndMirror(t *testing.T) {
	repo := &memAuditRepo{}
	l := NewLogger(repo, nil, nil, testLogger())

	l.LogEvent(context.Background(), "u1", domain.ActionLogout, "session", "")

	if len(repo.saved) != 1 {
		t.Fatalf("saved %d entries, want 1", len(repo.saved))
	}
	if repo.saved[0].IP != "unknown" {
		t.Errorf("IP = %q, want unknown", repo.saved[0].IP)
	}
}

func TestLogEvent_BestEffort(t *testing.T) {
	repo := &memAuditRepo{err: errors.New("db down")}
	mirror := &memMirror{err: errors.New("kafka down")}
	l := NewLogger(repo, mirror, nil, testLogger())

	// Must not panic or propagate the failures.
	l.LogEvent(context.Background(), "u1", domain.ActionSignup, "user", "")
}
