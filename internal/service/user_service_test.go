package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/taskdesk-api/internal/domain"
	"github.com/phrazzld/taskdesk-api/internal/mocks"
	"github.com/phrazzld/taskdesk-api/internal/service"
	"github.com/phrazzld/taskdesk-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the password", func(t *testing.T) {
		stores := mocks.NewMockStores()
		svc := service.NewUserService(stores.Users, stores.Tx, testLogger())

		user, err := svc.CreateUser(ctx, "alice", "secret")
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.Empty(t, user.Password)

		stored, err := stores.Users.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.HashedPassword), []byte("secret")))
	})

	t.Run("duplicate username", func(t *testing.T) {
		stores := mocks.NewMockStores()
		svc := service.NewUserService(stores.Users, stores.Tx, testLogger())

		_, err := svc.CreateUser(ctx, "alice", "secret")
		require.NoError(t, err)

		_, err = svc.CreateUser(ctx, "alice", "other")
		assert.ErrorIs(t, err, service.ErrDuplicateUsername)
		assert.Equal(t, 1, stores.Users.Count())
	})

	t.Run("validation", func(t *testing.T) {
		stores := mocks.NewMockStores()
		svc := service.NewUserService(stores.Users, stores.Tx, testLogger())

		_, err := svc.CreateUser(ctx, "", "secret")
		assert.ErrorIs(t, err, domain.ErrEmptyUsername)

		_, err = svc.CreateUser(ctx, "bob", "")
		assert.ErrorIs(t, err, domain.ErrEmptyPassword)
		assert.Equal(t, 0, stores.Users.Count())
	})

	t.Run("unique violation on insert", func(t *testing.T) {
		userStore := new(mocks.TestifyMockUserStore)
		userStore.On("GetByUsername", mock.Anything, "alice").Return(nil, store.ErrUserNotFound)
		userStore.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(store.ErrUsernameExists)

		svc := service.NewUserService(userStore, &mocks.MockTransactor{}, testLogger())
		_, err := svc.CreateUser(ctx, "alice", "secret")

		assert.ErrorIs(t, err, service.ErrDuplicateUsername)
		userStore.AssertExpectations(t)
	})

	t.Run("lookup failure is not reported as duplicate", func(t *testing.T) {
		dbErr := errors.New("connection reset")
		userStore := new(mocks.TestifyMockUserStore)
		userStore.On("GetByUsername", mock.Anything, "alice").Return(nil, dbErr)

		svc := service.NewUserService(userStore, &mocks.MockTransactor{}, testLogger())
		_, err := svc.CreateUser(ctx, "alice", "secret")

		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, service.ErrDuplicateUsername)
		userStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUserService_GetAndList(t *testing.T) {
	ctx := context.Background()
	stores := mocks.NewMockStores()
	svc := service.NewUserService(stores.Users, stores.Tx, testLogger())

	for _, name := range []string{"alice", "bob"} {
		_, err := svc.CreateUser(ctx, name, "pw")
		require.NoError(t, err)
	}

	users, err := svc.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)

	bob, err := svc.GetUserByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(2), bob.ID)

	_, err = svc.GetUserByUsername(ctx, "carol")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestUserService_UpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("changes the password", func(t *testing.T) {
		stores := mocks.NewMockStores()
		svc := service.NewUserService(stores.Users, stores.Tx, testLogger())
		_, err := svc.CreateUser(ctx, "alice", "old")
		require.NoError(t, err)

		password := "new"
		updated, err := svc.UpdateUser(ctx, "alice", service.UserUpdate{Password: &password})
		require.NoError(t, err)
		assert.Equal(t, "alice", updated.Username)

		stored, err := stores.Users.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.HashedPassword), []byte("new")))
	})

	t.Run("empty update keeps the hash", func(t *testing.T) {
		stores := mocks.NewMockStores()
		svc := service.NewUserService(stores.Users, stores.Tx, testLogger())
		_, err := svc.CreateUser(ctx, "alice", "old")
		require.NoError(t, err)
		before, err := stores.Users.GetByUsername(ctx, "alice")
		require.NoError(t, err)

		_, err = svc.UpdateUser(ctx, "alice", service.UserUpdate{})
		require.NoError(t, err)

		after, err := stores.Users.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, before.HashedPassword, after.HashedPassword)
	})

	t.Run("empty password is rejected", func(t *testing.T) {
		stores := mocks.NewMockStores()
		svc := service.NewUserService(stores.Users, stores.Tx, testLogger())
		_, err := svc.CreateUser(ctx, "alice", "old")
		require.NoError(t, err)

		empty := ""
		_, err = svc.UpdateUser(ctx, "alice", service.UserUpdate{Password: &empty})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("unknown user", func(t *testing.T) {
		stores := mocks.NewMockStores()
		svc := service.NewUserService(stores.Users, stores.Tx, testLogger())

		password := "new"
		_, err := svc.UpdateUser(ctx, "ghost", service.UserUpdate{Password: &password})
		assert.ErrorIs(t, err, service.ErrNotFound)
		assert.Equal(t, 0, stores.Users.Count())
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	ctx := context.Background()
	stores := mocks.NewMockStores()
	svc := service.NewUserService(stores.Users, stores.Tx, testLogger())

	_, err := svc.CreateUser(ctx, "alice", "pw")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, "alice"))
	_, err = svc.GetUserByUsername(ctx, "alice")
	assert.ErrorIs(t, err, service.ErrNotFound)

	err = svc.DeleteUser(ctx, "alice")
	assert.ErrorIs(t, err, service.ErrNotFound)
}
