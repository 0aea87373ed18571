package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskdesk-api/internal/domain"
	"github.com/phrazzld/taskdesk-api/internal/store"
)

// PostgresCategoryStore implements store.CategoryStore on the categories table.
type PostgresCategoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCategoryStore creates a category store on a connection or transaction.
// If logger is nil, the default logger is used.
func NewPostgresCategoryStore(db store.DBTX, logger *slog.Logger) *PostgresCategoryStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCategoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "category_store")),
	}
}

var _ store.CategoryStore = (*PostgresCategoryStore)(nil)

// WithTx implements store.CategoryStore.WithTx.
func (s *PostgresCategoryStore) WithTx(tx *sql.Tx) store.CategoryStore {
	if tx == nil {
		return s
	}
	return &PostgresCategoryStore{db: tx, logger: s.logger}
}

// Create implements store.CategoryStore.Create.
func (s *PostgresCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	if err := category.Validate(); err != nil {
		return invalidEntity(err)
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id`,
		category.Name,
	).Scan(&category.ID)
	if err != nil {
		s.logger.Debug("failed to insert category", slog.String("name", category.Name), slog.Any("error", err))
		return mapEntityError(err, store.ErrCategoryNotFound, store.ErrCategoryNameExists)
	}

	s.logger.Debug("category created", slog.Int64("category_id", category.ID))
	return nil
}

// GetAll implements store.CategoryStore.GetAll.
func (s *PostgresCategoryStore) GetAll(ctx context.Context) ([]*domain.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}
	return categories, nil
}

// GetByID implements store.CategoryStore.GetByID.
func (s *PostgresCategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	return s.getOne(ctx, `SELECT id, name FROM categories WHERE id = $1`, id)
}

// GetByName implements store.CategoryStore.GetByName.
func (s *PostgresCategoryStore) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	return s.getOne(ctx, `SELECT id, name FROM categories WHERE name = $1`, name)
}

func (s *PostgresCategoryStore) getOne(ctx context.Context, query string, arg any) (*domain.Category, error) {
	var c domain.Category
	if err := s.db.QueryRowContext(ctx, query, arg).Scan(&c.ID, &c.Name); err != nil {
		return nil, mapEntityError(err, store.ErrCategoryNotFound, nil)
	}
	return &c, nil
}

// Update implements store.CategoryStore.Update.
func (s *PostgresCategoryStore) Update(ctx context.Context, category *domain.Category) error {
	if err := category.Validate(); err != nil {
		return invalidEntity(err)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE categories SET name = $1 WHERE id = $2`,
		category.Name, category.ID,
	)
	if err != nil {
		return mapEntityError(err, store.ErrCategoryNotFound, store.ErrCategoryNameExists)
	}
	return CheckRowsAffected(result, store.ErrCategoryNotFound)
}

// Delete implements store.CategoryStore.Delete. Association rows go with it
// through ON DELETE CASCADE.
func (s *PostgresCategoryStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		s.logger.Debug("failed to delete category", slog.Int64("category_id", id), slog.Any("error", err))
		return mapDeleteError(err)
	}
	return CheckRowsAffected(result, store.ErrCategoryNotFound)
}
