package mocks

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/phrazzld/taskdesk-api/internal/domain"
	"github.com/phrazzld/taskdesk-api/internal/store"
)

type taskRecord struct {
	id          int64
	title       string
	description *string
	completed   bool
	priorityID  int64
	categoryIDs []int64
}

// MockTaskStore is an in-memory store.TaskStore. When created by
// NewMockStores it resolves priorities and categories like the SQL joins and
// rejects dangling references with store.ErrInvalidEntity.
type MockTaskStore struct {
	mu     sync.Mutex
	tasks  []*taskRecord
	nextID int64

	priorities *MockPriorityStore
	categories *MockCategoryStore

	// Err, if set, is returned by every method.
	Err error
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates an empty, unwired task store.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{}
}

// Count returns the number of stored tasks.
func (m *MockTaskStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func toRecord(t *domain.Task) *taskRecord {
	var description *string
	if t.Description != nil {
		d := *t.Description
		description = &d
	}
	return &taskRecord{
		id:          t.ID,
		title:       t.Title,
		description: description,
		completed:   t.Completed,
		priorityID:  t.PriorityID,
		categoryIDs: t.CategoryIDs(),
	}
}

func (m *MockTaskStore) checkReferences(ctx context.Context, t *domain.Task) error {
	if m.priorities != nil {
		if _, err := m.priorities.GetByID(ctx, t.PriorityID); err != nil {
			return fmt.Errorf("%w: priority %d", store.ErrInvalidEntity, t.PriorityID)
		}
	}
	if m.categories != nil {
		for _, id := range t.CategoryIDs() {
			if _, err := m.categories.GetByID(ctx, id); err != nil {
				return fmt.Errorf("%w: category %d", store.ErrInvalidEntity, id)
			}
		}
	}
	return nil
}

// resolve builds the domain task outside the task store's lock.
func (m *MockTaskStore) resolve(ctx context.Context, r *taskRecord) *domain.Task {
	t := &domain.Task{
		ID:          r.id,
		Title:       r.title,
		Description: r.description,
		Completed:   r.completed,
		PriorityID:  r.priorityID,
		Priority:    &domain.Priority{ID: r.priorityID},
		Categories:  []*domain.Category{},
	}
	if m.priorities != nil {
		if p, err := m.priorities.GetByID(ctx, r.priorityID); err == nil {
			t.Priority = p
		}
	}
	for _, id := range r.categoryIDs {
		c := &domain.Category{ID: id}
		if m.categories != nil {
			if found, err := m.categories.GetByID(ctx, id); err == nil {
				c = found
			}
		}
		t.Categories = append(t.Categories, c)
	}
	return t
}

func (m *MockTaskStore) snapshot(r *taskRecord) *taskRecord {
	c := *r
	c.categoryIDs = append([]int64(nil), r.categoryIDs...)
	return &c
}

func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.Err != nil {
		return m.Err
	}
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	if err := m.checkReferences(ctx, task); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	task.ID = m.nextID
	m.tasks = append(m.tasks, toRecord(task))
	return nil
}

func (m *MockTaskStore) GetAll(ctx context.Context) ([]*domain.Task, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	records := make([]*taskRecord, 0, len(m.tasks))
	for _, r := range m.tasks {
		records = append(records, m.snapshot(r))
	}
	m.mu.Unlock()

	out := make([]*domain.Task, 0, len(records))
	for _, r := range records {
		out = append(out, m.resolve(ctx, r))
	}
	return out, nil
}

func (m *MockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	var record *taskRecord
	for _, r := range m.tasks {
		if r.id == id {
			record = m.snapshot(r)
			break
		}
	}
	m.mu.Unlock()

	if record == nil {
		return nil, store.ErrTaskNotFound
	}
	return m.resolve(ctx, record), nil
}

func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.Err != nil {
		return m.Err
	}
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	if err := m.checkReferences(ctx, task); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.tasks {
		if r.id == task.ID {
			m.tasks[i] = toRecord(task)
			return nil
		}
	}
	return store.ErrTaskNotFound
}

func (m *MockTaskStore) Delete(ctx context.Context, id int64) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.tasks {
		if r.id == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return store.ErrTaskNotFound
}

func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}

func (m *MockTaskStore) usesPriority(priorityID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.tasks {
		if r.priorityID == priorityID {
			return true
		}
	}
	return false
}

// detachCategory mirrors ON DELETE CASCADE on task_category.category_id.
func (m *MockTaskStore) detachCategory(categoryID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.tasks {
		kept := r.categoryIDs[:0]
		for _, id := range r.categoryIDs {
			if id != categoryID {
				kept = append(kept, id)
			}
		}
		r.categoryIDs = kept
	}
}
