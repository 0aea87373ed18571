package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/taskdesk-api/internal/domain"
)

// PriorityStore defines the interface for priority persistence.
type PriorityStore interface {
	// Create inserts the priority and sets its ID.
	// Returns ErrPriorityNameExists on a name collision.
	Create(ctx context.Context, priority *domain.Priority) error

	// GetAll returns every priority ordered by ID.
	GetAll(ctx context.Context) ([]*domain.Priority, error)

	// GetByID returns ErrPriorityNotFound if no row matches.
	GetByID(ctx context.Context, id int64) (*domain.Priority, error)

	// GetByName returns ErrPriorityNotFound if no row matches.
	GetByName(ctx context.Context, name string) (*domain.Priority, error)

	// Update renames the priority.
	// Returns ErrPriorityNotFound or ErrPriorityNameExists.
	Update(ctx context.Context, priority *domain.Priority) error

	// Delete returns ErrPriorityNotFound if no row matches and ErrInUse when
	// tasks still reference the priority.
	Delete(ctx context.Context, id int64) error

	WithTx(tx *sql.Tx) PriorityStore
}
