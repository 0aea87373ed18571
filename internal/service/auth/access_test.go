package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/taskdesk-api/internal/domain"
	"github.com/phrazzld/taskdesk-api/internal/mocks"
	"github.com/phrazzld/taskdesk-api/internal/service/auth"
	"github.com/phrazzld/taskdesk-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// seedUsers creates alice (High), bob (Low) and carol (no priority).
func seedUsers(t *testing.T) *mocks.MockStores {
	t.Helper()
	ctx := context.Background()
	stores := mocks.NewMockStores()

	high := &domain.Priority{Name: "High"}
	low := &domain.Priority{Name: "Low"}
	require.NoError(t, stores.Priorities.Create(ctx, high))
	require.NoError(t, stores.Priorities.Create(ctx, low))

	require.NoError(t, stores.Users.Create(ctx, &domain.User{Username: "alice", Password: "pw", PriorityID: &high.ID}))
	require.NoError(t, stores.Users.Create(ctx, &domain.User{Username: "bob", Password: "pw", PriorityID: &low.ID}))
	require.NoError(t, stores.Users.Create(ctx, &domain.User{Username: "carol", Password: "pw"}))
	return stores
}

func TestAccessChecker_CheckPriority(t *testing.T) {
	stores := seedUsers(t)
	checker := auth.NewAccessChecker(stores.Users, testLogger())

	tests := []struct {
		name     string
		username string
		required string
		wantErr  error
	}{
		{"matching priority", "alice", "High", nil},
		{"lower priority", "bob", "High", auth.ErrAccessDenied},
		{"no hierarchy", "alice", "Low", auth.ErrAccessDenied},
		{"case sensitive", "alice", "high", auth.ErrAccessDenied},
		{"no priority", "carol", "High", auth.ErrAccessDenied},
		{"unknown user", "mallory", "High", auth.ErrAccessDenied},
		{"empty requirement", "carol", "", auth.ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checker.CheckPriority(context.Background(), tt.username, tt.required)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAccessChecker_StoreFailure(t *testing.T) {
	dbErr := errors.New("connection reset")
	users := new(mocks.TestifyMockUserStore)
	users.On("GetByUsername", mock.Anything, "alice").Return(nil, dbErr)

	err := auth.NewAccessChecker(users, testLogger()).CheckPriority(context.Background(), "alice", "High")
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, auth.ErrAccessDenied)
}

func TestGuard(t *testing.T) {
	stores := seedUsers(t)
	checker := auth.NewAccessChecker(stores.Users, testLogger())
	ctx := context.Background()

	t.Run("denied without calling the operation", func(t *testing.T) {
		called := false
		got, err := auth.Guard(ctx, checker, "bob", "High", func(ctx context.Context) (string, error) {
			called = true
			return "deleted", nil
		})

		assert.ErrorIs(t, err, auth.ErrAccessDenied)
		assert.Empty(t, got)
		assert.False(t, called)
	})

	t.Run("passes the result through", func(t *testing.T) {
		got, err := auth.Guard(ctx, checker, "alice", "High", func(ctx context.Context) (string, error) {
			return "deleted", nil
		})

		require.NoError(t, err)
		assert.Equal(t, "deleted", got)
	})

	t.Run("passes the operation error through", func(t *testing.T) {
		_, err := auth.Guard(ctx, checker, "alice", "High", func(ctx context.Context) (*domain.Task, error) {
			return nil, store.ErrTaskNotFound
		})

		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}
