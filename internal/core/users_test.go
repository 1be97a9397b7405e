package core

import (
	"context"
	"testing"

	"github.com/conduitapp/conduit/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserDuplicates(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	createTestUser(t, c, "alice")

	sameEmail := &auth.User{Username: "alice2", Email: "alice@example.com"}
	require.NoError(t, sameEmail.SetPassword("password-123"))
	err := c.CreateUser(ctx, sameEmail)
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	sameUsername := &auth.User{Username: "alice", Email: "alice2@example.com"}
	require.NoError(t, sameUsername.SetPassword("password-123"))
	err = c.CreateUser(ctx, sameUsername)
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestAuthenticate(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	registered := createTestUser(t, c, "alice")

	user, err := c.Authenticate(ctx, "alice", "password-123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	// Wrong password and unknown username must be indistinguishable.
	_, err = c.Authenticate(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = c.Authenticate(ctx, "nobody", "password-123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestGetUser(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	registered := createTestUser(t, c, "alice")

	byUsername, err := c.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, byUsername.ID)

	byID, err := c.GetUserByID(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	_, err = c.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateUserPartialPatch(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	registered := createTestUser(t, c, "alice")

	bio := "I work at statefarm"
	updated, err := c.UpdateUser(ctx, registered.ID, UserPatch{Bio: &bio})
	require.NoError(t, err)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, bio, *updated.Bio)
	// Untouched fields keep their stored values.
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, "alice@example.com", updated.Email)
	assert.Nil(t, updated.Image)

	newPassword := "a-new-password"
	_, err = c.UpdateUser(ctx, registered.ID, UserPatch{Password: &newPassword})
	require.NoError(t, err)

	_, err = c.Authenticate(ctx, "alice", "password-123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	user, err := c.Authenticate(ctx, "alice", newPassword)
	require.NoError(t, err)
	require.NotNil(t, user.Bio)
	assert.Equal(t, bio, *user.Bio)
}
