package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/pkg/domain/model"
	"marketplace/pkg/domain/service"
)

// stubPasswordManager marks hashes deterministically so the tests do not
// depend on the bcrypt implementation.
type stubPasswordManager struct{}

func (stubPasswordManager) Hash(plainTextPassword string) (string, error) {
	return "hashed:" + plainTextPassword, nil
}

func (stubPasswordManager) Check(hashedPassword, plainTextPassword string) (bool, error) {
	return hashedPassword == "hashed:"+plainTextPassword, nil
}

func setupUserService(t *testing.T) (service.UserService, *memoryStore, *mockEventDispatcher) {
	t.Helper()
	store := newMemoryStore()
	dispatcher := &mockEventDispatcher{}
	userService := service.NewUserService(&mockUnitOfWork{store: store}, stubPasswordManager{}, dispatcher)
	return userService, store, dispatcher
}

func TestRegister(t *testing.T) {
	userService, store, dispatcher := setupUserService(t)

	t.Run("Success", func(t *testing.T) {
		user, err := userService.Register(context.Background(), "alice", "secret-password")

		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "hashed:secret-password", user.HashedPassword)

		saved, ok := store.users[user.ID]
		require.True(t, ok)
		assert.Equal(t, "alice", saved.Username)

		events := dispatcher.Events()
		require.Len(t, events, 1)
		_, ok = events[0].(model.UserRegistered)
		assert.True(t, ok)
	})

	t.Run("Fail on taken username", func(t *testing.T) {
		_, err := userService.Register(context.Background(), "alice", "another-password")
		assert.ErrorIs(t, err, model.ErrUsernameTaken)
	})

	t.Run("Fail on short password", func(t *testing.T) {
		_, err := userService.Register(context.Background(), "bob", "short")
		assert.ErrorIs(t, err, service.ErrPasswordTooShort)
	})
}

func TestAuthenticate(t *testing.T) {
	userService, _, _ := setupUserService(t)
	registered, err := userService.Register(context.Background(), "alice", "secret-password")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		user, err := userService.Authenticate(context.Background(), "alice", "secret-password")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("Fail on wrong password", func(t *testing.T) {
		_, err := userService.Authenticate(context.Background(), "alice", "wrong-password")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("Fail on unknown user", func(t *testing.T) {
		_, err := userService.Authenticate(context.Background(), "mallory", "secret-password")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestGetUser(t *testing.T) {
	userService, _, _ := setupUserService(t)
	registered, err := userService.Register(context.Background(), "alice", "secret-password")
	require.NoError(t, err)

	user, err := userService.GetUser(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}
