package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskdesk-api/internal/store"
)

// PriorityChecker decides whether a user may perform a guarded operation.
type PriorityChecker interface {
	// CheckPriority returns nil when the user's priority name equals required,
	// and ErrAccessDenied otherwise.
	CheckPriority(ctx context.Context, username, required string) error
}

// AccessChecker compares a user's priority against a required priority name.
// Matching is exact: there is no ordering between priorities.
type AccessChecker struct {
	users  store.UserStore
	logger *slog.Logger
}

var _ PriorityChecker = (*AccessChecker)(nil)

// NewAccessChecker creates an AccessChecker reading users from users.
func NewAccessChecker(users store.UserStore, logger *slog.Logger) *AccessChecker {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccessChecker{
		users:  users,
		logger: logger.With("component", "access_checker"),
	}
}

// CheckPriority implements PriorityChecker. Unknown users and users without
// a priority are denied.
func (c *AccessChecker) CheckPriority(ctx context.Context, username, required string) error {
	user, err := c.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.logger.Debug("access denied: unknown user", "username", username)
			return ErrAccessDenied
		}
		return fmt.Errorf("failed to load user for access check: %w", err)
	}

	if user.PriorityName() != required || required == "" {
		c.logger.Debug("access denied",
			"username", username,
			"priority", user.PriorityName(),
			"required", required)
		return ErrAccessDenied
	}
	return nil
}

// Guard runs op only when checker allows username, and returns op's result
// unchanged. On denial op is not called.
func Guard[T any](
	ctx context.Context,
	checker PriorityChecker,
	username, required string,
	op func(ctx context.Context) (T, error),
) (T, error) {
	if err := checker.CheckPriority(ctx, username, required); err != nil {
		var zero T
		return zero, err
	}
	return op(ctx)
}
