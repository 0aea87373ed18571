package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/taskdesk-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user and sets its ID.
	// It validates the user and hashes the plaintext Password internally.
	// Returns ErrUsernameExists if the username is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetAll returns every user ordered by ID. Priorities are not loaded.
	GetAll(ctx context.Context) ([]*domain.User, error)

	// GetByUsername retrieves a user and its assigned priority, if any.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// Update writes the user's priority and, when a new plaintext Password is
	// set, its re-hashed password.
	// Returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user by username.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, username string) error

	// WithTx returns a UserStore that runs its statements on tx.
	WithTx(tx *sql.Tx) UserStore
}
