package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taxitalk/server/internal/domain"
)

func TestInMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryUserRepository()

	user := domain.NewUser("driver42", []byte("hash"))
	require.NoError(t, repo.Create(ctx, user))

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "driver42", got.Username)

		_, err = repo.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("get by username", func(t *testing.T) {
		got, err := repo.GetByUsername(ctx, "driver42")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)

		_, err = repo.GetByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("duplicate username", func(t *testing.T) {
		err := repo.Create(ctx, domain.NewUser("driver42", []byte("hash")))
		assert.ErrorIs(t, err, ErrUsernameExists)
	})

	t.Run("update rename", func(t *testing.T) {
		other := domain.NewUser("dispatcher", []byte("hash"))
		require.NoError(t, repo.Create(ctx, other))

		renamed := *other
		renamed.Username = "driver42"
		assert.ErrorIs(t, repo.Update(ctx, &renamed), ErrUsernameExists)

		renamed.Username = "dispatcher-1"
		require.NoError(t, repo.Update(ctx, &renamed))

		got, err := repo.GetByUsername(ctx, "dispatcher-1")
		require.NoError(t, err)
		assert.Equal(t, other.ID, got.ID)

		_, err = repo.GetByUsername(ctx, "dispatcher")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("update unknown user", func(t *testing.T) {
		err := repo.Update(ctx, domain.NewUser("ghost", []byte("hash")))
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
