// Package services contains server-side business logic. This file implements
// UserService: registration, password-based authentication and the
// owner-gated account mutations.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"postboard/internal/common"
	"postboard/internal/dbx"
	"postboard/internal/server/auth"
	"postboard/internal/server/models"
	"postboard/internal/server/repositories/repomanager"
)

// UserService provides identity-related operations:
//   - Register: create an identity record with a freshly salted secret
//   - Authenticate: verify a credential and mint a token
//   - ChangePassword / Delete: owner-gated account mutations
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.Hasher
	tokens      *auth.TokenService
	gate        *auth.Gate
}

// NewUserService constructs a UserService from its collaborators.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.Hasher, tokens *auth.TokenService, gate *auth.Gate) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		gate:        gate,
	}
}

// Register creates a new identity. The credential is never stored: a random
// salt is generated and the derived secret is persisted alongside it. The
// derivation runs before the transaction so the slow KDF never holds a
// database handle; the existence check and insert share one transaction.
//
// The existence pre-check is an optimization; the database uniqueness
// constraint is the authoritative guard, so a concurrent registration losing
// the race still surfaces as common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, userID, credential string) (*models.User, error) {
	if userID == "" || credential == "" {
		return nil, common.ErrorInvalidInput
	}

	salt, hash, err := s.hasher.Derive(ctx, credential, "")
	if err != nil {
		return nil, err
	}

	user := &models.User{UserID: userID, Hash: hash, Salt: salt}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		exists, err := repo.Exists(ctx, userID)
		if err != nil {
			return common.ErrorInternal
		}
		if exists {
			return common.ErrorAlreadyExists
		}

		if err := repo.Create(ctx, user); err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return err
			}
			return fmt.Errorf("error creating user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// IssueTokenForNewIdentity mints a token right after a successful
// registration so the caller does not need a second round trip to log in.
func (s *UserService) IssueTokenForNewIdentity(userID string) (string, error) {
	return s.tokens.Issue(userID)
}

// Authenticate verifies the credential for userID and returns a fresh token.
//
// Outcomes: common.ErrorInvalidInput for empty arguments,
// common.ErrorNotFound for an unknown identity,
// common.ErrorAuthenticationFailed for a bad credential,
// common.ErrorInternal for any store/derivation/signing fault. Internal
// faults are never reported as success. Authentication reads the identity
// record and mutates nothing.
func (s *UserService) Authenticate(ctx context.Context, userID, credential string) (string, error) {
	if userID == "" || credential == "" {
		return "", common.ErrorInvalidInput
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", common.ErrorInternal
	}

	ok, err := s.hasher.Verify(ctx, credential, user.Salt, user.Hash)
	if err != nil {
		return "", common.ErrorInternal
	}
	if !ok {
		return "", common.ErrorAuthenticationFailed
	}

	token, err := s.tokens.Issue(user.UserID)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// Get returns the identity record for userID with the secrets stripped.
func (s *UserService) Get(ctx context.Context, userID string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Hash = ""
	user.Salt = ""
	return user, nil
}

// List returns all identities, secrets never included.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.repomanager.Users(s.db).List(ctx)
}

// ChangePassword re-derives the stored secret with a fresh salt and writes
// both together in one statement. Only the account owner may call it; token
// problems surface as common.ErrorUnauthenticated and a wrong owner as
// common.ErrorForbidden.
//
// Previously issued tokens remain valid until natural expiry; there is no
// invalidation on password change.
func (s *UserService) ChangePassword(ctx context.Context, token, userID, newCredential string) error {
	if _, err := s.gate.Authorize(token, userID); err != nil {
		return err
	}
	if newCredential == "" {
		return common.ErrorInvalidInput
	}

	salt, hash, err := s.hasher.Derive(ctx, newCredential, "")
	if err != nil {
		return err
	}

	matched, err := s.repomanager.Users(s.db).UpdateCredentials(ctx, userID, hash, salt)
	if err != nil {
		return common.ErrorInternal
	}
	if matched == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Delete removes the account. Only the owner may delete it. Tokens issued
// before deletion stay valid until they expire.
func (s *UserService) Delete(ctx context.Context, token, userID string) error {
	if _, err := s.gate.Authorize(token, userID); err != nil {
		return err
	}

	deleted, err := s.repomanager.Users(s.db).Delete(ctx, userID)
	if err != nil {
		return common.ErrorInternal
	}
	if deleted == 0 {
		return common.ErrorNotFound
	}
	return nil
}
