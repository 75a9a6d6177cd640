package auth

import (
	"context"
	"encoding/hex"
	"errors"
	"testing"
)

// testIterations keeps KDF tests fast; production uses DefaultIterations.
const testIterations = 1000

func TestDerive_Deterministic(t *testing.T) {
	t.Parallel()

	h := NewHasher(testIterations)

	salt, secret1, err := h.Derive(context.Background(), "hunter2", "")
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}

	salt2, secret2, err := h.Derive(context.Background(), "hunter2", salt)
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}
	if salt2 != salt {
		t.Fatalf("salt changed between calls: %q -> %q", salt, salt2)
	}
	if secret1 != secret2 {
		t.Fatalf("derivation is not deterministic: %q != %q", secret1, secret2)
	}
}

func TestDerive_FreshSaltsDiffer(t *testing.T) {
	t.Parallel()

	h := NewHasher(testIterations)

	salt1, secret1, err := h.Derive(context.Background(), "samepassword", "")
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}
	salt2, secret2, err := h.Derive(context.Background(), "samepassword", "")
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}

	if salt1 == salt2 {
		t.Fatalf("two generated salts are identical: %q", salt1)
	}
	if secret1 == secret2 {
		t.Fatalf("same credential with different salts produced identical secrets")
	}
}

func TestDerive_SaltEncodingStable(t *testing.T) {
	t.Parallel()

	h := NewHasher(testIterations)

	salt, secret, err := h.Derive(context.Background(), "pw", "")
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}
	if _, err := hex.DecodeString(salt); err != nil {
		t.Fatalf("salt is not lowercase hex: %q (%v)", salt, err)
	}
	if _, err := hex.DecodeString(secret); err != nil {
		t.Fatalf("secret is not lowercase hex: %q (%v)", secret, err)
	}
	if len(salt) != saltLen*2 {
		t.Fatalf("unexpected salt length: got %d want %d", len(salt), saltLen*2)
	}
	if len(secret) != keyLen*2 {
		t.Fatalf("unexpected secret length: got %d want %d", len(secret), keyLen*2)
	}
}

func TestVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	h := NewHasher(testIterations)

	salt, secret, err := h.Derive(context.Background(), "asdf", "")
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}

	ok, err := h.Verify(context.Background(), "asdf", salt, secret)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !ok {
		t.Fatalf("correct credential did not verify")
	}

	ok, err = h.Verify(context.Background(), "wrongPassword", salt, secret)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if ok {
		t.Fatalf("wrong credential verified")
	}
}

func TestVerify_LengthMismatchIsCleanMismatch(t *testing.T) {
	t.Parallel()

	h := NewHasher(testIterations)

	salt, _, err := h.Derive(context.Background(), "asdf", "")
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}

	// Stored secret shorter than any derived secret: must be a plain "no",
	// never a panic or an error.
	ok, err := h.Verify(context.Background(), "asdf", salt, "abcd")
	if err != nil {
		t.Fatalf("Verify error on length mismatch: %v", err)
	}
	if ok {
		t.Fatalf("truncated stored secret verified")
	}
}

func TestConstantTimeEqual(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"equal", "deadbeef", "deadbeef", true},
		{"differs early", "aaadbeef", "deadbeef", false},
		{"differs late", "deadbeea", "deadbeef", false},
		{"different length", "dead", "deadbeef", false},
		{"both empty", "", "", true},
	}

	for _, tc := range tests {
		if got := constantTimeEqual(tc.a, tc.b); got != tc.want {
			t.Fatalf("%s: constantTimeEqual(%q, %q) = %v, want %v", tc.name, tc.a, tc.b, got, tc.want)
		}
	}
}

func TestDerive_CancelledWhileWaiting(t *testing.T) {
	t.Parallel()

	h := NewHasher(testIterations)
	// Occupy every semaphore slot so the next Derive has to wait.
	for i := 0; i < cap(h.sem); i++ {
		h.sem <- struct{}{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := h.Derive(ctx, "hunter2", "")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNewHasher_IterationFallback(t *testing.T) {
	t.Parallel()

	h := NewHasher(0)
	if h.iterations != DefaultIterations {
		t.Fatalf("expected fallback to DefaultIterations, got %d", h.iterations)
	}
}
