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

// PriorityService manages the priority catalogue.
type PriorityService interface {
	// Create fails with ErrDuplicateName when the name is already used.
	Create(ctx context.Context, name string) (*domain.Priority, error)

	// GetAll returns every priority in insertion order.
	GetAll(ctx context.Context) ([]*domain.Priority, error)

	// GetByID fails with ErrNotFound when no priority has the id.
	GetByID(ctx context.Context, id int64) (*domain.Priority, error)

	// Update renames a priority. Fails with ErrNotFound or ErrDuplicateName.
	Update(ctx context.Context, id int64, name string) (*domain.Priority, error)

	// Delete fails with ErrNotFound, or ErrInUse while tasks reference it.
	Delete(ctx context.Context, id int64) error
}

// PriorityServiceImpl implements the PriorityService interface
type PriorityServiceImpl struct {
	priorityStore store.PriorityStore
	tx            store.Transactor
	logger        *slog.Logger
}

// NewPriorityService creates a new PriorityService
func NewPriorityService(priorityStore store.PriorityStore, tx store.Transactor, logger *slog.Logger) PriorityService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PriorityServiceImpl{
		priorityStore: priorityStore,
		tx:            tx,
		logger:        logger.With("component", "priority_service"),
	}
}

// Create implements PriorityService.
func (s *PriorityServiceImpl) Create(ctx context.Context, name string) (*domain.Priority, error) {
	priority, err := domain.NewPriority(name)
	if err != nil {
		return nil, fmt.Errorf("invalid priority: %w", err)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.priorityStore.WithTx(tx)

		_, err := txStore.GetByName(ctx, priority.Name)
		switch {
		case err == nil:
			return ErrDuplicateName
		case !errors.Is(err, store.ErrNotFound):
			return fmt.Errorf("failed to check priority name: %w", err)
		}

		return translateStoreError(txStore.Create(ctx, priority), nil, ErrDuplicateName)
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateName) {
			s.logger.Debug("attempted to create priority with existing name", "name", priority.Name)
		} else {
			s.logger.Error("failed to create priority", "error", err, "name", priority.Name)
		}
		return nil, fmt.Errorf("failed to create priority: %w", err)
	}

	s.logger.Info("priority created", "priority_id", priority.ID, "name", priority.Name)
	return priority, nil
}

// GetAll implements PriorityService.
func (s *PriorityServiceImpl) GetAll(ctx context.Context) ([]*domain.Priority, error) {
	priorities, err := s.priorityStore.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list priorities", "error", err)
		return nil, fmt.Errorf("failed to list priorities: %w", err)
	}
	return priorities, nil
}

// GetByID implements PriorityService.
func (s *PriorityServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Priority, error) {
	priority, err := s.priorityStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve priority %d: %w", id, translateStoreError(err, ErrNotFound, nil))
	}
	return priority, nil
}

// Update implements PriorityService.
func (s *PriorityServiceImpl) Update(ctx context.Context, id int64, name string) (*domain.Priority, error) {
	updated, err := domain.NewPriority(name)
	if err != nil {
		return nil, fmt.Errorf("invalid priority: %w", err)
	}
	updated.ID = id

	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.priorityStore.WithTx(tx)

		if _, err := txStore.GetByID(ctx, id); err != nil {
			return translateStoreError(err, ErrNotFound, nil)
		}

		existing, err := txStore.GetByName(ctx, updated.Name)
		switch {
		case err == nil && existing.ID != id:
			return ErrDuplicateName
		case err != nil && !errors.Is(err, store.ErrNotFound):
			return fmt.Errorf("failed to check priority name: %w", err)
		}

		return translateStoreError(txStore.Update(ctx, updated), ErrNotFound, ErrDuplicateName)
	})
	if err != nil {
		s.logger.Debug("priority update rejected", "error", err, "priority_id", id)
		return nil, fmt.Errorf("failed to update priority %d: %w", id, err)
	}

	s.logger.Info("priority updated", "priority_id", id, "name", updated.Name)
	return updated, nil
}

// Delete implements PriorityService.
func (s *PriorityServiceImpl) Delete(ctx context.Context, id int64) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.priorityStore.WithTx(tx)

		if _, err := txStore.GetByID(ctx, id); err != nil {
			return translateStoreError(err, ErrNotFound, nil)
		}
		return translateStoreError(txStore.Delete(ctx, id), ErrNotFound, nil)
	})
	if err != nil {
		s.logger.Debug("priority delete rejected", "error", err, "priority_id", id)
		return fmt.Errorf("failed to delete priority %d: %w", id, err)
	}

	s.logger.Info("priority deleted", "priority_id", id)
	return nil
}
