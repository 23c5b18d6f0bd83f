package security

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"

	"demo-bank/backend/internal/logging"
)

// AES-256-GCM encryption for sensitive PII such as SSNs. GCM provides both
// confidentiality and an authentication tag, so tampered ciphertext fails to
// decrypt instead of yielding garbage.

const (
	// ivLength is the GCM nonce size. 16 bytes to stay wire-compatible with
	// stored blobs produced by earlier versions of this application.
	ivLength = 16

	devKeyPassphrase = "development-key-do-not-use-in-production"
	devKeySalt       = "salt"
)

// ErrInvalidCiphertext is returned when a stored blob is malformed or its
// authentication tag fails to verify. Callers never receive partial
// plaintext.
var ErrInvalidCiphertext = errors.New("invalid or tampered ciphertext")

// Cipher encrypts and decrypts PII with a process-wide AES-256 key. The key
// is fixed for the process lifetime; there is no runtime rotation.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher builds a Cipher from a base64-encoded 32-byte key.
func NewCipher(base64Key string) (*Cipher, error) {
	raw, err := base64.StdEncoding.DecodeString(base64Key)
	if err != nil {
		return nil, fmt.Errorf("decode encryption key: %w", err)
	}
	if len(raw) != 32 {
		return nil, errors.New("encryption key must be 32 bytes (256 bits)")
	}
	return newCipherFromKey(raw)
}

// NewCipherWithFallback builds a Cipher from the configured key, or, when
// the key is empty, derives a deterministic development key via scrypt and
// logs a warning. The fallback only exists so the app runs unconfigured;
// production startup refuses an empty key before reaching this point.
func NewCipherWithFallback(ctx context.Context, base64Key string, log logging.Logger) (*Cipher, error) {
	if base64Key != "" {
		return NewCipher(base64Key)
	}
	log.Warn(ctx, "using default encryption key; set ENCRYPTION_KEY in production")
	raw, err := scrypt.Key([]byte(devKeyPassphrase), []byte(devKeySalt), 16384, 8, 1, 32)
	if err != nil {
		return nil, fmt.Errorf("derive fallback key: %w", err)
	}
	return newCipherFromKey(raw)
}

func newCipherFromKey(key []byte) (*Cipher, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCMWithNonceSize(block, ivLength)
	if err != nil {
		return nil, err
	}
	return &Cipher{aead: aead}, nil
}

// Encrypt encrypts plaintext and returns "iv:authTag:ciphertext" with all
// three components base64-encoded. A fresh random IV is generated per call,
// so encrypting the same plaintext twice yields different blobs.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	iv := make([]byte, ivLength)
	if _, err := rand.Read(iv); err != nil {
		return "", err
	}

	sealed := c.aead.Seal(nil, iv, []byte(plaintext), nil)
	// Seal appends the tag to the ciphertext; the stored format keeps them
	// as separate components.
	tagStart := len(sealed) - c.aead.Overhead()
	ciphertext, tag := sealed[:tagStart], sealed[tagStart:]

	return strings.Join([]string{
		base64.StdEncoding.EncodeToString(iv),
		base64.StdEncoding.EncodeToString(tag),
		base64.StdEncoding.EncodeToString(ciphertext),
	}, ":"), nil
}

// Decrypt parses an "iv:authTag:ciphertext" blob and returns the plaintext.
// Returns ErrInvalidCiphertext when the format is malformed or the
// authentication tag does not verify.
func (c *Cipher) Decrypt(blob string) (string, error) {
	parts := strings.Split(blob, ":")
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: expected 3 colon-separated parts, got %d", ErrInvalidCiphertext, len(parts))
	}

	iv, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil || len(iv) != ivLength {
		return "", fmt.Errorf("%w: bad iv", ErrInvalidCiphertext)
	}
	tag, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil || len(tag) != c.aead.Overhead() {
		return "", fmt.Errorf("%w: bad auth tag", ErrInvalidCiphertext)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return "", fmt.Errorf("%w: bad ciphertext", ErrInvalidCiphertext)
	}

	plaintext, err := c.aead.Open(nil, iv, append(ciphertext, tag...), nil)
	if err != nil {
		return "", fmt.Errorf("%w: authentication failed", ErrInvalidCiphertext)
	}
	return string(plaintext), nil
}

// MaskSSN formats an SSN for display: "123456789" -> "***-**-6789". Never
// exposes more than the trailing four digits.
func MaskSSN(ssn string) string {
	return "***-**-" + SSNLast4(ssn)
}

// SSNLast4 returns the last 4 characters of the SSN, for storage alongside
// the encrypted value.
func SSNLast4(ssn string) string {
	if len(ssn) <= 4 {
		return ssn
	}
	return ssn[len(ssn)-4:]
}
