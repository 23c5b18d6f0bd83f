package security

import (
	"testing"
	"time"
)

func newTestTokenProvider() *TokenProvider {
	return NewTokenProvider([]byte("test-secret"), 7*24*time.Hour)
}

func TestTokenProvider_IssueAndValidate(t *testing.T) {
	p := newTestTokenProvider()

	token, exp, err := p.Issue("u1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatal("token empty")
	}
	if exp.Before(time.Now().Add(6 * 24 * time.Hour)) {
		t.Errorf("expiry %v not ~7 days out", exp)
	}

	userID, err := p.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if userID != "u1" {
		t.Errorf("userID = %q, want u1", userID)
	}
}

func TestTokenProvider_ValidateMalformed(t *testing.T) {
	p := newTestTokenProvider()
	if _, err := p.Validate("not-a-token"); err != ErrInvalidToken {
		t.Errorf("want ErrInvalidToken, got %v", err)
	}
}

func TestTokenProvider_ValidateWrongSecret(t *testing.T) {
	p := newTestTokenProvider()
	token, _, err := p.Issue("u1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	other := NewTokenProvider([]byte("different-secret"), time.Hour)
	if _, err := other.Validate(token); err != ErrInvalidToken {
		t.Errorf("want ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestTokenProvider_ValidateExpired(t *testing.T) {
	p := NewTokenProvider([]byte("test-secret"), -time.Minute)
	token, _, err := p.Issue("u1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := p.Validate(token); err != ErrInvalidToken {
		t.Errorf("want ErrInvalidToken for expired token, got %v", err)
	}
}
