package models

import "time"

// User is a persisted identity record. Hash is the derived secret produced
// by the password hasher keyed by Salt; it is never the plaintext credential.
// Both are stored as lowercase hex strings so the encoding is identical
// between registration and verification.
type User struct {
	UserID    string
	Hash      string
	Salt      string
	CreatedAt time.Time
}
