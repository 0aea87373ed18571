package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/taskdesk-api/internal/domain"
)

// TaskStore defines the interface for task persistence, including the
// task-to-category association rows.
type TaskStore interface {
	// Create inserts the task and one association row per category and sets
	// the task ID. Callers are expected to have resolved the priority and
	// categories; a dangling reference surfaces as ErrInvalidEntity.
	Create(ctx context.Context, task *domain.Task) error

	// GetAll returns every task ordered by ID with its priority and
	// categories loaded.
	GetAll(ctx context.Context) ([]*domain.Task, error)

	// GetByID returns ErrTaskNotFound if no row matches.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Update writes the task columns and replaces its category set.
	// Returns ErrTaskNotFound if no row matches.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes the task and its association rows.
	// Returns ErrTaskNotFound if no row matches.
	Delete(ctx context.Context, id int64) error

	WithTx(tx *sql.Tx) TaskStore
}
