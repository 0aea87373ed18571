package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskdesk-api/internal/domain"
	"github.com/phrazzld/taskdesk-api/internal/store"
)

const selectTasks = `
	SELECT t.id, t.title, t.description, t.completed, t.priority_id, p.name
	FROM tasks t
	JOIN priorities p ON p.id = t.priority_id`

const selectTaskCategories = `
	SELECT tc.task_id, c.id, c.name
	FROM task_category tc
	JOIN categories c ON c.id = tc.category_id`

// PostgresTaskStore implements store.TaskStore on the tasks and task_category tables.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgresTaskStore
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	if tx == nil {
		return s
	}
	return &PostgresTaskStore{db: tx, logger: s.logger}
}

// Create implements store.TaskStore.Create. It issues several statements and
// should run inside a transaction.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return invalidEntity(err)
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO tasks (title, description, completed, priority_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		task.Title, nullString(task.Description), task.Completed, task.PriorityID,
	).Scan(&task.ID)
	if err != nil {
		s.logger.Debug("failed to insert task", slog.String("title", task.Title), slog.Any("error", err))
		return mapEntityError(err, store.ErrTaskNotFound, nil)
	}

	if err := s.insertCategories(ctx, task); err != nil {
		return err
	}

	s.logger.Debug("task created",
		slog.Int64("task_id", task.ID),
		slog.Int("category_count", len(task.Categories)))
	return nil
}

func (s *PostgresTaskStore) insertCategories(ctx context.Context, task *domain.Task) error {
	for _, id := range task.CategoryIDs() {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO task_category (task_id, category_id) VALUES ($1, $2)`,
			task.ID, id,
		)
		if err != nil {
			return store.NewStoreError("task", "attach category",
				fmt.Sprintf("category %d to task %d", id, task.ID), MapError(err))
		}
	}
	return nil
}

// GetAll implements store.TaskStore.GetAll.
func (s *PostgresTaskStore) GetAll(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.queryTasks(ctx, selectTasks+` ORDER BY t.id`)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return tasks, nil
	}
	if err := s.loadCategories(ctx, tasks, selectTaskCategories+` ORDER BY tc.task_id, c.id`); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetByID implements store.TaskStore.GetByID.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	tasks, err := s.queryTasks(ctx, selectTasks+` WHERE t.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, store.ErrTaskNotFound
	}
	if err := s.loadCategories(ctx, tasks, selectTaskCategories+` WHERE tc.task_id = $1 ORDER BY c.id`, id); err != nil {
		return nil, err
	}
	return tasks[0], nil
}

// queryTasks reads every task row before returning so the connection is free
// for the category query that follows.
func (s *PostgresTaskStore) queryTasks(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		var (
			t            domain.Task
			description  sql.NullString
			priorityName string
		)
		if err := rows.Scan(&t.ID, &t.Title, &description, &t.Completed, &t.PriorityID, &priorityName); err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		if description.Valid {
			d := description.String
			t.Description = &d
		}
		t.Priority = &domain.Priority{ID: t.PriorityID, Name: priorityName}
		t.Categories = []*domain.Category{}
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}
	return tasks, nil
}

func (s *PostgresTaskStore) loadCategories(ctx context.Context, tasks []*domain.Task, query string, args ...any) error {
	byID := make(map[int64]*domain.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query task categories: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			taskID int64
			c      domain.Category
		)
		if err := rows.Scan(&taskID, &c.ID, &c.Name); err != nil {
			return fmt.Errorf("failed to scan task category row: %w", err)
		}
		if t, ok := byID[taskID]; ok {
			t.Categories = append(t.Categories, &c)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating task category rows: %w", err)
	}
	return nil
}

// Update implements store.TaskStore.Update.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return invalidEntity(err)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET title = $1, description = $2, completed = $3, priority_id = $4 WHERE id = $5`,
		task.Title, nullString(task.Description), task.Completed, task.PriorityID, task.ID,
	)
	if err != nil {
		return mapEntityError(err, store.ErrTaskNotFound, nil)
	}
	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM task_category WHERE task_id = $1`, task.ID); err != nil {
		return fmt.Errorf("failed to clear task categories: %w", MapError(err))
	}
	return s.insertCategories(ctx, task)
}

// Delete implements store.TaskStore.Delete. Association rows go with the task
// through ON DELETE CASCADE.
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
