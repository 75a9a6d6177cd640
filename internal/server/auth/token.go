// Package auth provides the authentication and authorization primitives of
// the server: password derivation and verification, signed bearer tokens,
// and the ownership gate applied to mutating operations.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"postboard/internal/common"
)

// Claims carries the standard registered claims plus the authenticated
// user's identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// TokenService issues and verifies signed, time-limited bearer tokens.
// Tokens are stateless: validity is a pure function of the token bytes,
// the signing secret and the current time. There is no revocation list;
// a token stays valid for its whole stated lifetime.
type TokenService struct {
	secret   []byte
	validity time.Duration
}

// NewTokenService constructs a TokenService with the process-wide signing
// secret and token validity. The secret is configuration loaded once at
// startup, never a hidden global.
func NewTokenService(secret []byte, validity time.Duration) *TokenService {
	return &TokenService{secret: secret, validity: validity}
}

// Issue signs a token binding userID, valid from now for the configured
// duration. A failure of the signing primitive is reported as
// common.ErrSigningFailure.
func (s *TokenService) Issue(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", common.ErrSigningFailure
	}

	return tokenString, nil
}

// Verify checks the signature and expiry of tokenString and returns the
// bound user ID. Failures are distinguishable:
//   - common.ErrTokenExpired for a token past its expiry
//   - common.ErrInvalidToken for a bad signature or malformed structure
//   - common.ErrTokenVerification for anything unexpected
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", common.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed),
			errors.Is(err, jwt.ErrTokenSignatureInvalid),
			errors.Is(err, common.ErrInvalidToken):
			return "", common.ErrInvalidToken
		default:
			return "", common.ErrTokenVerification
		}
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
