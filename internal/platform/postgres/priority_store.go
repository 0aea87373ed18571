package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskdesk-api/internal/domain"
	"github.com/phrazzld/taskdesk-api/internal/store"
)

// PostgresPriorityStore implements store.PriorityStore on the priorities table.
type PostgresPriorityStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPriorityStore creates a priority store on a connection or transaction.
// If logger is nil, the default logger is used.
func NewPostgresPriorityStore(db store.DBTX, logger *slog.Logger) *PostgresPriorityStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresPriorityStore{
		db:     db,
		logger: logger.With(slog.String("component", "priority_store")),
	}
}

var _ store.PriorityStore = (*PostgresPriorityStore)(nil)

// WithTx implements store.PriorityStore.WithTx.
func (s *PostgresPriorityStore) WithTx(tx *sql.Tx) store.PriorityStore {
	if tx == nil {
		return s
	}
	return &PostgresPriorityStore{db: tx, logger: s.logger}
}

// Create implements store.PriorityStore.Create.
func (s *PostgresPriorityStore) Create(ctx context.Context, priority *domain.Priority) error {
	if err := priority.Validate(); err != nil {
		return invalidEntity(err)
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO priorities (name) VALUES ($1) RETURNING id`,
		priority.Name,
	).Scan(&priority.ID)
	if err != nil {
		s.logger.Debug("failed to insert priority", slog.String("name", priority.Name), slog.Any("error", err))
		return mapEntityError(err, store.ErrPriorityNotFound, store.ErrPriorityNameExists)
	}

	s.logger.Debug("priority created", slog.Int64("priority_id", priority.ID))
	return nil
}

// GetAll implements store.PriorityStore.GetAll.
func (s *PostgresPriorityStore) GetAll(ctx context.Context) ([]*domain.Priority, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM priorities ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query priorities: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	priorities := make([]*domain.Priority, 0)
	for rows.Next() {
		var p domain.Priority
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan priority row: %w", err)
		}
		priorities = append(priorities, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating priority rows: %w", err)
	}
	return priorities, nil
}

// GetByID implements store.PriorityStore.GetByID.
func (s *PostgresPriorityStore) GetByID(ctx context.Context, id int64) (*domain.Priority, error) {
	return s.getOne(ctx, `SELECT id, name FROM priorities WHERE id = $1`, id)
}

// GetByName implements store.PriorityStore.GetByName.
func (s *PostgresPriorityStore) GetByName(ctx context.Context, name string) (*domain.Priority, error) {
	return s.getOne(ctx, `SELECT id, name FROM priorities WHERE name = $1`, name)
}

func (s *PostgresPriorityStore) getOne(ctx context.Context, query string, arg any) (*domain.Priority, error) {
	var p domain.Priority
	if err := s.db.QueryRowContext(ctx, query, arg).Scan(&p.ID, &p.Name); err != nil {
		return nil, mapEntityError(err, store.ErrPriorityNotFound, nil)
	}
	return &p, nil
}

// Update implements store.PriorityStore.Update.
func (s *PostgresPriorityStore) Update(ctx context.Context, priority *domain.Priority) error {
	if err := priority.Validate(); err != nil {
		return invalidEntity(err)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE priorities SET name = $1 WHERE id = $2`,
		priority.Name, priority.ID,
	)
	if err != nil {
		return mapEntityError(err, store.ErrPriorityNotFound, store.ErrPriorityNameExists)
	}
	return CheckRowsAffected(result, store.ErrPriorityNotFound)
}

// Delete implements store.PriorityStore.Delete.
func (s *PostgresPriorityStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM priorities WHERE id = $1`, id)
	if err != nil {
		s.logger.Debug("failed to delete priority", slog.Int64("priority_id", id), slog.Any("error", err))
		return mapDeleteError(err)
	}
	return CheckRowsAffected(result, store.ErrPriorityNotFound)
}
