package services

import (
	"context"
	"strings"
	"testing"

	"github.com/Laib363/E-Commerce-Project/apperrors"
	"github.com/Laib363/E-Commerce-Project/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(repository.NewMemoryUserRepository())

	user, err := svc.Register(ctx, "alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.False(t, user.ID.IsZero())
	assert.Empty(t, user.Cart)

	// The stored password is a bcrypt digest, never the plaintext.
	assert.NotEqual(t, "s3cret-pass", user.Password)
	assert.True(t, strings.HasPrefix(user.Password, "$2"))

	loggedIn, err := svc.Authenticate(ctx, "alice", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(repository.NewMemoryUserRepository())

	_, err := svc.Register(ctx, "alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "alice", "wrong-pass")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	// An unknown user fails the same way as a wrong password.
	_, err = svc.Authenticate(ctx, "nobody", "s3cret-pass")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRegisterRejectsDuplicateIdentity(t *testing.T) {
	ctx := context.Background()
	users := repository.NewMemoryUserRepository()
	svc := NewAuthService(users)

	_, err := svc.Register(ctx, "alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other@example.com", "another-pass")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateIdentity)

	_, err = svc.Register(ctx, "alice2", "alice@example.com", "another-pass")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateIdentity)

	// Neither failed attempt left a record behind.
	_, err = users.FindByUsername(ctx, "alice2")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
