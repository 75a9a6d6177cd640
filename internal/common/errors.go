// Package common defines shared constants and sentinel errors used across
// postboard components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Validation errors.
	ErrorInvalidInput = errors.New("invalid input")

	// Authentication / authorization errors.
	ErrorAuthenticationFailed = errors.New("authentication failed")
	ErrorUnauthenticated      = errors.New("unauthenticated")
	ErrorForbidden            = errors.New("forbidden")

	// Token lifecycle errors (distinguishable for callers).
	ErrTokenExpired      = errors.New("token expired")
	ErrInvalidToken      = errors.New("invalid token")
	ErrTokenVerification = errors.New("token verification error")

	// Internal primitive failures (server-fault, 5xx class).
	ErrHashFailure    = errors.New("hash failure")
	ErrSigningFailure = errors.New("signing failure")
	ErrorInternal     = errors.New("internal error")
)
