package security

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demo-bank/backend/internal/logging"
)

func testKey() string {
	return base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
}

func newTestCipher(t *testing.T) *Cipher {
	t.Helper()
	c, err := NewCipher(testKey())
	require.NoError(t, err)
	return c
}

func TestCipher_RoundTrip(t *testing.T) {
	c := newTestCipher(t)

	for _, plaintext := range []string{"123456789", "", "hello world", "üñïçødé"} {
		blob, err := c.Encrypt(plaintext)
		require.NoError(t, err)
		require.Len(t, strings.Split(blob, ":"), 3, "blob must have exactly 3 parts")

		got, err := c.Decrypt(blob)
		require.NoError(t, err)
		assert.Equal(t, plaintext, got)
	}
}

func TestCipher_NondeterministicOutput(t *testing.T) {
	c := newTestCipher(t)

	b1, err := c.Encrypt("123456789")
	require.NoError(t, err)
	b2, err := c.Encrypt("123456789")
	require.NoError(t, err)
	assert.NotEqual(t, b1, b2, "same plaintext must encrypt to different blobs (random IV)")
}

func TestCipher_TamperDetection(t *testing.T) {
	c := newTestCipher(t)
	blob, err := c.Encrypt("123456789")
	require.NoError(t, err)
	parts := strings.Split(blob, ":")

	flip := func(s string) string {
		raw, err := base64.StdEncoding.DecodeString(s)
		require.NoError(t, err)
		if len(raw) == 0 {
			raw = []byte{0}
		} else {
			raw[0] ^= 0xff
		}
		return base64.StdEncoding.EncodeToString(raw)
	}

	for i, name := range []string{"iv", "auth tag", "ciphertext"} {
		t.Run(name, func(t *testing.T) {
			tampered := make([]string, 3)
			copy(tampered, parts)
			tampered[i] = flip(parts[i])
			_, err := c.Decrypt(strings.Join(tampered, ":"))
			require.ErrorIs(t, err, ErrInvalidCiphertext)
		})
	}
}

func TestCipher_MalformedBlob(t *testing.T) {
	c := newTestCipher(t)

	for _, blob := range []string{
		"",
		"onlyonepart",
		"two:parts",
		"a:b:c:d",
		"!!!:AAAA:AAAA",
		"AAAA:!!!:AAAA",
		"AAAA:AAAA:!!!",
	} {
		_, err := c.Decrypt(blob)
		assert.ErrorIs(t, err, ErrInvalidCiphertext, "blob %q", blob)
	}
}

func TestCipher_WrongKey(t *testing.T) {
	c := newTestCipher(t)
	blob, err := c.Encrypt("123456789")
	require.NoError(t, err)

	other, err := NewCipher(base64.StdEncoding.EncodeToString([]byte("another-32-byte-key-abcdefghijkl")))
	require.NoError(t, err)

	_, err = other.Decrypt(blob)
	require.ErrorIs(t, err, ErrInvalidCiphertext)
}

func TestNewCipher_KeyValidation(t *testing.T) {
	_, err := NewCipher("not base64!!")
	assert.Error(t, err)

	_, err = NewCipher(base64.StdEncoding.EncodeToString([]byte("short")))
	assert.Error(t, err)
}

func TestNewCipherWithFallback_Deterministic(t *testing.T) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	c1, err := NewCipherWithFallback(ctx, "", log)
	require.NoError(t, err)
	c2, err := NewCipherWithFallback(ctx, "", log)
	require.NoError(t, err)

	// Two processes without ENCRYPTION_KEY must derive the same key so data
	// written by one can be read by the other.
	blob, err := c1.Encrypt("123456789")
	require.NoError(t, err)
	got, err := c2.Decrypt(blob)
	require.NoError(t, err)
	assert.Equal(t, "123456789", got)
}

func TestMaskSSN(t *testing.T) {
	assert.Equal(t, "***-**-6789", MaskSSN("123456789"))
	assert.Equal(t, "6789", SSNLast4("123456789"))
	assert.Equal(t, "123", SSNLast4("123"))
}
