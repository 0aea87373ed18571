package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/taskdesk-api/internal/domain"
	"github.com/phrazzld/taskdesk-api/internal/store"
)

// TaskInput holds the fields of a new task.
type TaskInput struct {
	Title       string
	Description *string
	Completed   bool
	PriorityID  int64
	CategoryIDs []int64
}

// TaskUpdate holds a partial task update. Nil fields are left unchanged;
// a non-nil CategoryIDs replaces the whole category set.
type TaskUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
	PriorityID  *int64
	CategoryIDs *[]int64
}

// TaskService manages tasks and their priority and category references.
type TaskService interface {
	// CreateTask fails with ErrPriorityNotFound or ErrCategoryNotFound when a
	// reference does not resolve.
	CreateTask(ctx context.Context, input TaskInput) (*domain.Task, error)

	// GetAllTasks returns every task with its priority and categories resolved.
	GetAllTasks(ctx context.Context) ([]*domain.Task, error)

	// GetTask fails with ErrNotFound when no task has the id.
	GetTask(ctx context.Context, id int64) (*domain.Task, error)

	// UpdateTask applies update to an existing task.
	UpdateTask(ctx context.Context, id int64, update TaskUpdate) (*domain.Task, error)

	// DeleteTask removes the task and its category associations.
	DeleteTask(ctx context.Context, id int64) error
}

// TaskServiceImpl implements the TaskService interface
type TaskServiceImpl struct {
	taskStore     store.TaskStore
	priorityStore store.PriorityStore
	categoryStore store.CategoryStore
	tx            store.Transactor
	logger        *slog.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskStore store.TaskStore,
	priorityStore store.PriorityStore,
	categoryStore store.CategoryStore,
	tx store.Transactor,
	logger *slog.Logger,
) TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskServiceImpl{
		taskStore:     taskStore,
		priorityStore: priorityStore,
		categoryStore: categoryStore,
		tx:            tx,
		logger:        logger.With("component", "task_service"),
	}
}

// resolveReferences loads the task's priority and categories through the
// transaction-bound stores and attaches them to task.
func (s *TaskServiceImpl) resolveReferences(ctx context.Context, tx *sql.Tx, task *domain.Task) error {
	priority, err := s.priorityStore.WithTx(tx).GetByID(ctx, task.PriorityID)
	if err != nil {
		return translateStoreError(err, ErrPriorityNotFound, nil)
	}
	task.Priority = priority

	categoryStore := s.categoryStore.WithTx(tx)
	resolved := make([]*domain.Category, 0, len(task.Categories))
	for _, id := range task.CategoryIDs() {
		category, err := categoryStore.GetByID(ctx, id)
		if err != nil {
			return translateStoreError(err, ErrCategoryNotFound, nil)
		}
		resolved = append(resolved, category)
	}
	task.Categories = resolved
	return nil
}

// CreateTask implements TaskService.
func (s *TaskServiceImpl) CreateTask(ctx context.Context, input TaskInput) (*domain.Task, error) {
	task, err := domain.NewTask(input.Title, input.Description, input.Completed, input.PriorityID, input.CategoryIDs)
	if err != nil {
		return nil, fmt.Errorf("invalid task: %w", err)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.resolveReferences(ctx, tx, task); err != nil {
			return err
		}
		return s.taskStore.WithTx(tx).Create(ctx, task)
	})
	if err != nil {
		if isReferenceError(err) {
			s.logger.Debug("task references unknown row", "error", err, "priority_id", input.PriorityID)
		} else {
			s.logger.Error("failed to create task", "error", err)
		}
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("task created", "task_id", task.ID, "priority_id", task.PriorityID)
	return task, nil
}

// GetAllTasks implements TaskService.
func (s *TaskServiceImpl) GetAllTasks(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.taskStore.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list tasks", "error", err)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask implements TaskService.
func (s *TaskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve task %d: %w", id, translateStoreError(err, ErrNotFound, nil))
	}
	return task, nil
}

// UpdateTask implements TaskService. The stored task is loaded, patched and
// revalidated before it is written back.
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, id int64, update TaskUpdate) (*domain.Task, error) {
	var updated *domain.Task
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.taskStore.WithTx(tx)

		task, err := txStore.GetByID(ctx, id)
		if err != nil {
			return translateStoreError(err, ErrNotFound, nil)
		}

		applyTaskUpdate(task, update)
		if err := task.Validate(); err != nil {
			return err
		}
		if err := s.resolveReferences(ctx, tx, task); err != nil {
			return err
		}

		if err := txStore.Update(ctx, task); err != nil {
			return translateStoreError(err, ErrNotFound, nil)
		}
		updated = task
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, domain.ErrValidation) || isReferenceError(err) {
			s.logger.Debug("task update rejected", "error", err, "task_id", id)
		} else {
			s.logger.Error("failed to update task", "error", err, "task_id", id)
		}
		return nil, fmt.Errorf("failed to update task %d: %w", id, err)
	}

	s.logger.Info("task updated", "task_id", id)
	return updated, nil
}

func applyTaskUpdate(task *domain.Task, update TaskUpdate) {
	if update.Title != nil {
		task.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		task.Description = update.Description
	}
	if update.Completed != nil {
		task.Completed = *update.Completed
	}
	if update.PriorityID != nil {
		task.PriorityID = *update.PriorityID
	}
	if update.CategoryIDs != nil {
		task.SetCategoryIDs(*update.CategoryIDs)
	}
}

// DeleteTask implements TaskService.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.taskStore.WithTx(tx)

		if _, err := txStore.GetByID(ctx, id); err != nil {
			return translateStoreError(err, ErrNotFound, nil)
		}
		return translateStoreError(txStore.Delete(ctx, id), ErrNotFound, nil)
	})
	if err != nil {
		s.logger.Debug("task delete rejected", "error", err, "task_id", id)
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}

	s.logger.Info("task deleted", "task_id", id)
	return nil
}

func isReferenceError(err error) bool {
	return errors.Is(err, ErrPriorityNotFound) || errors.Is(err, ErrCategoryNotFound)
}
