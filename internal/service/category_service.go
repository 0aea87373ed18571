package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskdesk-api/internal/domain"
	"github.com/phrazzld/taskdesk-api/internal/store"
)

// CategoryService manages the category catalogue.
type CategoryService interface {
	// Create fails with ErrDuplicateName when the name is already used.
	Create(ctx context.Context, name string) (*domain.Category, error)

	// GetAll returns every category in insertion order.
	GetAll(ctx context.Context) ([]*domain.Category, error)

	// GetByID fails with ErrNotFound when no category has the id.
	GetByID(ctx context.Context, id int64) (*domain.Category, error)

	// Update renames a category. Fails with ErrNotFound or ErrDuplicateName.
	Update(ctx context.Context, id int64, name string) (*domain.Category, error)

	// Delete fails with ErrNotFound. Tasks tagged with the category lose the tag.
	Delete(ctx context.Context, id int64) error
}

// CategoryServiceImpl implements the CategoryService interface
type CategoryServiceImpl struct {
	categoryStore store.CategoryStore
	tx            store.Transactor
	logger        *slog.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryStore store.CategoryStore, tx store.Transactor, logger *slog.Logger) CategoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryServiceImpl{
		categoryStore: categoryStore,
		tx:            tx,
		logger:        logger.With("component", "category_service"),
	}
}

// Create implements CategoryService.
func (s *CategoryServiceImpl) Create(ctx context.Context, name string) (*domain.Category, error) {
	category, err := domain.NewCategory(name)
	if err != nil {
		return nil, fmt.Errorf("invalid category: %w", err)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.categoryStore.WithTx(tx)

		_, err := txStore.GetByName(ctx, category.Name)
		switch {
		case err == nil:
			return ErrDuplicateName
		case !errors.Is(err, store.ErrNotFound):
			return fmt.Errorf("failed to check category name: %w", err)
		}

		return translateStoreError(txStore.Create(ctx, category), nil, ErrDuplicateName)
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateName) {
			s.logger.Debug("attempted to create category with existing name", "name", category.Name)
		} else {
			s.logger.Error("failed to create category", "error", err, "name", category.Name)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info("category created", "category_id", category.ID, "name", category.Name)
	return category, nil
}

// GetAll implements CategoryService.
func (s *CategoryServiceImpl) GetAll(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categoryStore.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list categories", "error", err)
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetByID implements CategoryService.
func (s *CategoryServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	category, err := s.categoryStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve category %d: %w", id, translateStoreError(err, ErrNotFound, nil))
	}
	return category, nil
}

// Update implements CategoryService.
func (s *CategoryServiceImpl) Update(ctx context.Context, id int64, name string) (*domain.Category, error) {
	updated, err := domain.NewCategory(name)
	if err != nil {
		return nil, fmt.Errorf("invalid category: %w", err)
	}
	updated.ID = id

	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.categoryStore.WithTx(tx)

		if _, err := txStore.GetByID(ctx, id); err != nil {
			return translateStoreError(err, ErrNotFound, nil)
		}

		existing, err := txStore.GetByName(ctx, updated.Name)
		switch {
		case err == nil && existing.ID != id:
			return ErrDuplicateName
		case err != nil && !errors.Is(err, store.ErrNotFound):
			return fmt.Errorf("failed to check category name: %w", err)
		}

		return translateStoreError(txStore.Update(ctx, updated), ErrNotFound, ErrDuplicateName)
	})
	if err != nil {
		s.logger.Debug("category update rejected", "error", err, "category_id", id)
		return nil, fmt.Errorf("failed to update category %d: %w", id, err)
	}

	s.logger.Info("category updated", "category_id", id, "name", updated.Name)
	return updated, nil
}

// Delete implements CategoryService.
func (s *CategoryServiceImpl) Delete(ctx context.Context, id int64) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.categoryStore.WithTx(tx)

		if _, err := txStore.GetByID(ctx, id); err != nil {
			return translateStoreError(err, ErrNotFound, nil)
		}
		return translateStoreError(txStore.Delete(ctx, id), ErrNotFound, nil)
	})
	if err != nil {
		s.logger.Debug("category delete rejected", "error", err, "category_id", id)
		return fmt.Errorf("failed to delete category %d: %w", id, err)
	}

	s.logger.Info("category deleted", "category_id", id)
	return nil
}
