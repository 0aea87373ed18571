package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/phrazzld/taskdesk-api/internal/domain"
	"github.com/phrazzld/taskdesk-api/internal/store"
)

// MockPriorityStore is an in-memory store.PriorityStore.
type MockPriorityStore struct {
	mu         sync.Mutex
	priorities []*domain.Priority
	nextID     int64

	inUse    func(id int64) bool
	onDelete func(id int64)

	// CreateFn replaces Create when set.
	CreateFn func(ctx context.Context, priority *domain.Priority) error
	// Err, if set, is returned by every method.
	Err error
}

var _ store.PriorityStore = (*MockPriorityStore)(nil)

// NewMockPriorityStore creates a store seeded with the given names.
func NewMockPriorityStore(names ...string) *MockPriorityStore {
	m := &MockPriorityStore{}
	for _, name := range names {
		_ = m.Create(context.Background(), &domain.Priority{Name: name})
	}
	return m
}

// Count returns the number of stored priorities.
func (m *MockPriorityStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.priorities)
}

func (m *MockPriorityStore) indexOf(id int64) int {
	for i, p := range m.priorities {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (m *MockPriorityStore) nameTaken(name string, exceptID int64) bool {
	for _, p := range m.priorities {
		if p.Name == name && p.ID != exceptID {
			return true
		}
	}
	return false
}

func (m *MockPriorityStore) Create(ctx context.Context, priority *domain.Priority) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, priority)
	}
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.nameTaken(priority.Name, 0) {
		return store.ErrPriorityNameExists
	}
	m.nextID++
	priority.ID = m.nextID
	m.priorities = append(m.priorities, &domain.Priority{ID: priority.ID, Name: priority.Name})
	return nil
}

func (m *MockPriorityStore) GetAll(ctx context.Context) ([]*domain.Priority, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.Priority, 0, len(m.priorities))
	for _, p := range m.priorities {
		out = append(out, &domain.Priority{ID: p.ID, Name: p.Name})
	}
	return out, nil
}

func (m *MockPriorityStore) GetByID(ctx context.Context, id int64) (*domain.Priority, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return nil, store.ErrPriorityNotFound
	}
	p := m.priorities[i]
	return &domain.Priority{ID: p.ID, Name: p.Name}, nil
}

func (m *MockPriorityStore) GetByName(ctx context.Context, name string) (*domain.Priority, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.priorities {
		if p.Name == name {
			return &domain.Priority{ID: p.ID, Name: p.Name}, nil
		}
	}
	return nil, store.ErrPriorityNotFound
}

func (m *MockPriorityStore) Update(ctx context.Context, priority *domain.Priority) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(priority.ID)
	if i < 0 {
		return store.ErrPriorityNotFound
	}
	if m.nameTaken(priority.Name, priority.ID) {
		return store.ErrPriorityNameExists
	}
	m.priorities[i].Name = priority.Name
	return nil
}

func (m *MockPriorityStore) Delete(ctx context.Context, id int64) error {
	if m.Err != nil {
		return m.Err
	}
	if m.inUse != nil && m.inUse(id) {
		return store.ErrInUse
	}

	m.mu.Lock()
	i := m.indexOf(id)
	if i < 0 {
		m.mu.Unlock()
		return store.ErrPriorityNotFound
	}
	m.priorities = append(m.priorities[:i], m.priorities[i+1:]...)
	m.mu.Unlock()

	if m.onDelete != nil {
		m.onDelete(id)
	}
	return nil
}

func (m *MockPriorityStore) WithTx(tx *sql.Tx) store.PriorityStore {
	return m
}
