package auth

import (
	"errors"

	"postboard/internal/common"
)

// Gate decides allow/deny for mutating operations on owned resources.
// It is applied to every update and delete; reads are unauthenticated and
// resource creation verifies the token directly since no owner exists yet.
type Gate struct {
	tokens *TokenService
}

// NewGate constructs a Gate over the given TokenService.
func NewGate(tokens *TokenService) *Gate {
	return &Gate{tokens: tokens}
}

// Authorize verifies token and compares the bound identity against
// resourceOwner. On success it returns the caller's identity so the caller
// can proceed with its own mutation.
//
// Token problems of any kind map to common.ErrorUnauthenticated; a valid
// token naming a different owner maps to common.ErrorForbidden. The owner
// comparison is ordinary equality: the owner is not a secret, so no
// constant-time handling applies here.
func (g *Gate) Authorize(token string, resourceOwner string) (string, error) {
	userID, err := g.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, common.ErrTokenVerification) {
			return "", err
		}
		return "", common.ErrorUnauthenticated
	}

	if userID != resourceOwner {
		return "", common.ErrorForbidden
	}

	return userID, nil
}
