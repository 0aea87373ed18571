package mocks

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/phrazzld/taskdesk-api/internal/domain"
	"github.com/phrazzld/taskdesk-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// MockUserStore is an in-memory store.UserStore. Passwords are hashed with
// bcrypt at the minimum cost so BcryptVerifier works against stored users.
type MockUserStore struct {
	mu     sync.Mutex
	users  []*domain.User
	nextID int64

	priorities *MockPriorityStore

	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, user *domain.User) error
	GetByUsernameFn func(ctx context.Context, username string) (*domain.User, error)

	// Err, if set, is returned by every method without a function override.
	Err error
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates an empty store. Users keep their PriorityID but
// Priority is only resolved when the store is created by NewMockStores.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{}
}

// Count returns the number of stored users.
func (m *MockUserStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

func copyUser(u *domain.User) *domain.User {
	c := *u
	if u.PriorityID != nil {
		id := *u.PriorityID
		c.PriorityID = &id
	}
	c.Priority = nil
	return &c
}

func (m *MockUserStore) indexOf(username string) int {
	for i, u := range m.users {
		if u.Username == username {
			return i
		}
	}
	return -1
}

func hashForMock(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	if m.Err != nil {
		return m.Err
	}
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.indexOf(user.Username) >= 0 {
		return store.ErrUsernameExists
	}
	if user.Password != "" {
		hashed, err := hashForMock(user.Password)
		if err != nil {
			return err
		}
		user.HashedPassword = hashed
		user.Password = ""
	}
	m.nextID++
	user.ID = m.nextID
	m.users = append(m.users, copyUser(user))
	return nil
}

func (m *MockUserStore) GetAll(ctx context.Context) ([]*domain.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, copyUser(u))
	}
	return out, nil
}

func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	i := m.indexOf(username)
	if i < 0 {
		m.mu.Unlock()
		return nil, store.ErrUserNotFound
	}
	user := copyUser(m.users[i])
	m.mu.Unlock()

	if user.PriorityID != nil && m.priorities != nil {
		if p, err := m.priorities.GetByID(ctx, *user.PriorityID); err == nil {
			user.Priority = p
		}
	}
	return user, nil
}

func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.Err != nil {
		return m.Err
	}
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := -1
	for j, u := range m.users {
		if u.ID == user.ID {
			i = j
			break
		}
	}
	if i < 0 {
		return store.ErrUserNotFound
	}
	if user.Password != "" {
		hashed, err := hashForMock(user.Password)
		if err != nil {
			return err
		}
		user.HashedPassword = hashed
		user.Password = ""
	}
	m.users[i] = copyUser(user)
	return nil
}

func (m *MockUserStore) Delete(ctx context.Context, username string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(username)
	if i < 0 {
		return store.ErrUserNotFound
	}
	m.users = append(m.users[:i], m.users[i+1:]...)
	return nil
}

func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

// clearPriority mirrors ON DELETE SET NULL on users.priority_id.
func (m *MockUserStore) clearPriority(priorityID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.PriorityID != nil && *u.PriorityID == priorityID {
			u.PriorityID = nil
		}
	}
}
