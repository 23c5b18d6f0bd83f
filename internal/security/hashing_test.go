package security

import (
	"testing"
)

func TestHasher_HashAndCompare(t *testing.T) {
	h := NewHasher(4)
	password := []byte("Secret1!")
	hash, err := h.Hash(password)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "" {
		t.Fatal("Hash returned empty")
	}
	if err := h.Compare(hash, password); err != nil {
		t.Fatalf("Compare: %v", err)
	}
}

func TestHasher_CompareWrongPassword(t *testing.T) {
	h := NewHasher(4)
	hash, _ := h.Hash([]byte("Secret1!"))
	if err := h.Compare(hash, []byte("wrong")); err == nil {
		t.Fatal("Compare with wrong password should fail")
	}
}

func TestHasher_SaltedPerCall(t *testing.T) {
	h := NewHasher(4)
	h1, _ := h.Hash([]byte("Secret1!"))
	h2, _ := h.Hash([]byte("Secret1!"))
	if h1 == h2 {
		t.Error("two hashes of the same password must differ (per-call salt)")
	}
}

func TestHasher_CostClamp(t *testing.T) {
	h := NewHasher(12)
	if h.Cost != 12 {
		t.Errorf("Cost want 12, got %d", h.Cost)
	}
	h0 := NewHasher(0)
	if h0.Cost < 4 {
		t.Errorf("zero cost should be clamped to at least MinCost, got %d", h0.Cost)
	}
	hBig := NewHasher(99)
	if hBig.Cost > 31 {
		t.Errorf("cost should be clamped to MaxCost, got %d", hBig.Cost)
	}
}
