package domain

import (
	"testing"
	"time"
)

func TestSessionCheck(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		expiresAt time.Time
		valid     bool
		reason    string
	}{
		{"well before expiry", now.Add(time.Hour), true, ""},
		{"just outside buffer", now.Add(ExpiryBuffer + time.Millisecond), true, ""},
		{"exactly at buffer boundary", now.Add(ExpiryBuffer), false, "buffer"},
		{"inside buffer", now.Add(10 * time.Second), false, "buffer"},
		{"exactly at expiry", now, false, "expired"},
		{"past expiry", now.Add(-time.Minute), false, "expired"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &Session{ID: "s1", UserID: "u1", Token: "tok", ExpiresAt: tc.expiresAt}
			got := s.Check(now)
			if got.Valid != tc.valid {
				t.Errorf("Valid = %v, want %v", got.Valid, tc.valid)
			}
			if got.Reason != tc.reason {
				t.Errorf("Reason = %q, want %q", got.Reason, tc.reason)
			}
		})
	}
}
