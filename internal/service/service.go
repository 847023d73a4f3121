package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/taxitalk/server/internal/domain"
)

type IdentityInteractor interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	VerifyToken(ctx context.Context, token string) (*domain.User, error)
	Profile(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
