package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token is malformed, expired, or
	// fails signature verification.
	ErrInvalidToken = errors.New("invalid token")
)

// SessionClaims holds JWT claims for the session token. The user id travels
// in the registered Subject claim.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// TokenProvider issues and validates session JWTs signed with HS256 using a
// process-wide secret. The secret is read once at startup and never rotated
// at runtime.
type TokenProvider struct {
	secret     []byte
	sessionTTL time.Duration
}

// NewTokenProvider returns a TokenProvider signing with secret. sessionTTL
// is the token lifetime (7 days for this application).
func NewTokenProvider(secret []byte, sessionTTL time.Duration) *TokenProvider {
	return &TokenProvider{secret: secret, sessionTTL: sessionTTL}
}

// Issue signs a session token for userID. Returns the token string and its
// expiration time.
func (p *TokenProvider) Issue(userID string) (token string, expiresAt time.Time, err error) {
	now := time.Now().UTC()
	expiresAt = now.Add(p.sessionTTL)
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = t.SignedString(p.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Validate parses and verifies the token (signature and exp) and returns the
// embedded user id. Any failure is reported as ErrInvalidToken; callers must
// not distinguish failure modes to the client.
func (p *TokenProvider) Validate(tokenString string) (userID string, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return p.secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
