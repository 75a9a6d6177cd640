package auth

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"hash"
	"runtime"

	"golang.org/x/crypto/pbkdf2"

	"postboard/internal/common"
)

const (
	// DefaultIterations is the PBKDF2 iteration count. Derivation is
	// deliberately expensive; this is a load-bearing security setting.
	DefaultIterations = 310000

	saltLen = 16 // bytes of random salt per identity
	keyLen  = 32 // bytes of derived secret
)

// Hasher derives verifiable secrets from plaintext credentials using PBKDF2.
// Salt and derived secret are exchanged as lowercase hex strings so the
// stored encoding never drifts between registration and verification.
//
// Derivation is CPU-bound and slow on purpose, so concurrent calls are
// limited by a worker semaphore: one stuck derivation cannot occupy every
// scheduler thread and stall unrelated request handling.
type Hasher struct {
	iterations int
	newDigest  func() hash.Hash
	sem        chan struct{}
}

// NewHasher constructs a Hasher with the given iteration count. Iterations
// below 1 fall back to DefaultIterations. The digest is SHA-512.
func NewHasher(iterations int) *Hasher {
	return NewHasherWithDigest(iterations, sha512.New)
}

// NewHasherWithDigest constructs a Hasher with an explicit digest
// constructor. A nil newDigest selects SHA-512.
func NewHasherWithDigest(iterations int, newDigest func() hash.Hash) *Hasher {
	if iterations < 1 {
		iterations = DefaultIterations
	}
	if newDigest == nil {
		newDigest = sha512.New
	}
	return &Hasher{
		iterations: iterations,
		newDigest:  newDigest,
		sem:        make(chan struct{}, runtime.GOMAXPROCS(0)),
	}
}

// Derive computes the derived secret for credential keyed by salt. When salt
// is empty a new random salt is generated first. Both returned values are
// lowercase hex. Derive is deterministic for a fixed (credential, salt) pair.
//
// The call blocks while all semaphore slots are busy; a cancelled ctx aborts
// the wait and returns ctx.Err. A failing primitive yields
// common.ErrHashFailure and never a usable result, so verification can not
// silently succeed against garbage.
func (h *Hasher) Derive(ctx context.Context, credential string, salt string) (string, string, error) {
	if salt == "" {
		generated, err := common.MakeRandHexString(saltLen)
		if err != nil {
			return "", "", common.ErrHashFailure
		}
		salt = generated
	}

	select {
	case h.sem <- struct{}{}:
	case <-ctx.Done():
		return "", "", ctx.Err()
	}
	key := pbkdf2.Key([]byte(credential), []byte(salt), h.iterations, keyLen, h.newDigest)
	<-h.sem

	if len(key) != keyLen {
		return "", "", common.ErrHashFailure
	}

	return salt, hex.EncodeToString(key), nil
}

// Verify derives a candidate secret from credential and salt and compares it
// against storedSecret byte for byte in constant time. A length mismatch is
// reported as a plain mismatch, not an error.
func (h *Hasher) Verify(ctx context.Context, credential string, salt string, storedSecret string) (bool, error) {
	_, candidate, err := h.Derive(ctx, credential, salt)
	if err != nil {
		return false, err
	}
	return constantTimeEqual(candidate, storedSecret), nil
}

// constantTimeEqual compares two strings without leaking the position of the
// first differing byte. Unequal lengths compare the candidate against itself
// to keep the running time independent of the stored value, then report a
// mismatch.
func constantTimeEqual(a, b string) bool {
	if len(a) != len(b) {
		_ = subtle.ConstantTimeCompare([]byte(a), []byte(a))
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
