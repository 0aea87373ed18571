package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/phrazzld/taskdesk-api/internal/domain"
	"github.com/phrazzld/taskdesk-api/internal/store"
)

// MockCategoryStore is an in-memory store.CategoryStore.
type MockCategoryStore struct {
	mu         sync.Mutex
	categories []*domain.Category
	nextID     int64

	onDelete func(id int64)

	// CreateFn replaces Create when set.
	CreateFn func(ctx context.Context, category *domain.Category) error
	// Err, if set, is returned by every method.
	Err error
}

var _ store.CategoryStore = (*MockCategoryStore)(nil)

// NewMockCategoryStore creates a store seeded with the given names.
func NewMockCategoryStore(names ...string) *MockCategoryStore {
	m := &MockCategoryStore{}
	for _, name := range names {
		_ = m.Create(context.Background(), &domain.Category{Name: name})
	}
	return m
}

// Count returns the number of stored categories.
func (m *MockCategoryStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.categories)
}

func (m *MockCategoryStore) indexOf(id int64) int {
	for i, p := range m.categories {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (m *MockCategoryStore) nameTaken(name string, exceptID int64) bool {
	for _, p := range m.categories {
		if p.Name == name && p.ID != exceptID {
			return true
		}
	}
	return false
}

func (m *MockCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, category)
	}
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.nameTaken(category.Name, 0) {
		return store.ErrCategoryNameExists
	}
	m.nextID++
	category.ID = m.nextID
	m.categories = append(m.categories, &domain.Category{ID: category.ID, Name: category.Name})
	return nil
}

func (m *MockCategoryStore) GetAll(ctx context.Context) ([]*domain.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.Category, 0, len(m.categories))
	for _, p := range m.categories {
		out = append(out, &domain.Category{ID: p.ID, Name: p.Name})
	}
	return out, nil
}

func (m *MockCategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return nil, store.ErrCategoryNotFound
	}
	p := m.categories[i]
	return &domain.Category{ID: p.ID, Name: p.Name}, nil
}

func (m *MockCategoryStore) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.categories {
		if p.Name == name {
			return &domain.Category{ID: p.ID, Name: p.Name}, nil
		}
	}
	return nil, store.ErrCategoryNotFound
}

func (m *MockCategoryStore) Update(ctx context.Context, category *domain.Category) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(category.ID)
	if i < 0 {
		return store.ErrCategoryNotFound
	}
	if m.nameTaken(category.Name, category.ID) {
		return store.ErrCategoryNameExists
	}
	m.categories[i].Name = category.Name
	return nil
}

func (m *MockCategoryStore) Delete(ctx context.Context, id int64) error {
	if m.Err != nil {
		return m.Err
	}

	m.mu.Lock()
	i := m.indexOf(id)
	if i < 0 {
		m.mu.Unlock()
		return store.ErrCategoryNotFound
	}
	m.categories = append(m.categories[:i], m.categories[i+1:]...)
	m.mu.Unlock()

	if m.onDelete != nil {
		m.onDelete(id)
	}
	return nil
}

func (m *MockCategoryStore) WithTx(tx *sql.Tx) store.CategoryStore {
	return m
}
