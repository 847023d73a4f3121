package auth

import (
	"context"
	"errors"

	"github.com/taxitalk/server/internal/domain"
)

var (
	ErrTokenMissing = errors.New("token is missing")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrUserNotFound = errors.New("user not found")
)

// TokenVerifier resolves a credential token to a verified identity.
// Verification happens before a connection touches any room state and
// must never be called while holding hub locks.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*domain.User, error)
}
