package domain

import "time"

// ExpiryBuffer is subtracted from a session's expiry when checking
// validity, so tokens are treated as dead shortly before they actually
// expire. This keeps a request from authenticating against a session
// that will be gone before the response completes.
const ExpiryBuffer = 30 * time.Second

// Session is a single login session. Each user has at most one row;
// logging in replaces any previous session.
type Session struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Validity reports the outcome of a session check. Reason is empty for a
// valid session, "buffer" when the session is inside the expiry buffer,
// and "expired" when it is past its expiry.
type Validity struct {
	Valid  bool
	Reason string
}

// Check evaluates the session against now. A session whose remaining
// lifetime is ExpiryBuffer or less is invalid: at exactly the buffer
// boundary the session is already rejected.
func (s *Session) Check(now time.Time) Validity {
	if !now.Before(s.ExpiresAt) {
		return Validity{Valid: false, Reason: "expired"}
	}
	if !now.Before(s.ExpiresAt.Add(-ExpiryBuffer)) {
		return Validity{Valid: false, Reason: "buffer"}
	}
	return Validity{Valid: true}
}
