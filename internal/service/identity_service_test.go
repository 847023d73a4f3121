package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taxitalk/server/internal/auth"
	"github.com/taxitalk/server/internal/repository"
)

func newTestService(ttl time.Duration) *IdentityService {
	return NewIdentityService(repository.NewInMemoryUserRepository(), ttl, nil)
}

func TestRegisterLoginVerify(t *testing.T) {
	ctx := context.Background()
	s := newTestService(time.Hour)

	user, err := s.Register(ctx, "driver42", "sekret-pass")
	require.NoError(t, err)
	assert.Equal(t, "driver42", user.Username)
	assert.NotEmpty(t, user.PassHash)

	token, loggedIn, err := s.Login(ctx, "driver42", "sekret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	verified, err := s.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)
	assert.Equal(t, "driver42", verified.Username)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestService(time.Hour)

	_, err := s.Register(ctx, "", "sekret-pass")
	assert.Error(t, err)

	_, err = s.Register(ctx, "driver42", "abc")
	assert.Error(t, err)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	s := newTestService(time.Hour)

	_, err := s.Register(ctx, "driver42", "sekret-pass")
	require.NoError(t, err)

	_, err = s.Register(ctx, "driver42", "other-pass")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLoginWrongCredentials(t *testing.T) {
	ctx := context.Background()
	s := newTestService(time.Hour)

	_, err := s.Register(ctx, "driver42", "sekret-pass")
	require.NoError(t, err)

	_, _, err = s.Login(ctx, "driver42", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = s.Login(ctx, "nobody", "sekret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyTokenErrors(t *testing.T) {
	ctx := context.Background()
	s := newTestService(time.Hour)

	_, err := s.VerifyToken(ctx, "")
	assert.ErrorIs(t, err, auth.ErrTokenMissing)

	_, err = s.VerifyToken(ctx, "deadbeef")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyTokenExpiry(t *testing.T) {
	ctx := context.Background()
	s := newTestService(10 * time.Millisecond)

	_, err := s.Register(ctx, "driver42", "sekret-pass")
	require.NoError(t, err)

	token, _, err := s.Login(ctx, "driver42", "sekret-pass")
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	_, err = s.VerifyToken(ctx, token)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	s := newTestService(time.Hour)

	user, err := s.Register(ctx, "driver42", "sekret-pass")
	require.NoError(t, err)

	got, err := s.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, got.Username)

	_, err = s.Profile(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
