package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/taskdesk-api/internal/domain"
)

// CategoryStore defines the interface for category persistence.
// Its error contract mirrors PriorityStore with the Category errors.
type CategoryStore interface {
	Create(ctx context.Context, category *domain.Category) error
	GetAll(ctx context.Context) ([]*domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error

	// Delete also removes the category from every task it was attached to.
	Delete(ctx context.Context, id int64) error

	WithTx(tx *sql.Tx) CategoryStore
}
