package mocks

// MockStores bundles in-memory stores that reference each other.
type MockStores struct {
	Users      *MockUserStore
	Priorities *MockPriorityStore
	Categories *MockCategoryStore
	Tasks      *MockTaskStore
	Tx         *MockTransactor
}

// NewMockStores creates empty, cross-wired in-memory stores.
func NewMockStores() *MockStores {
	priorities := NewMockPriorityStore()
	categories := NewMockCategoryStore()
	users := NewMockUserStore()
	tasks := NewMockTaskStore()

	users.priorities = priorities
	tasks.priorities = priorities
	tasks.categories = categories

	// tasks.priority_id has no ON DELETE action; users.priority_id is SET NULL.
	priorities.inUse = tasks.usesPriority
	priorities.onDelete = users.clearPriority
	// task_category rows cascade with the category.
	categories.onDelete = tasks.detachCategory

	return &MockStores{
		Users:      users,
		Priorities: priorities,
		Categories: categories,
		Tasks:      tasks,
		Tx:         &MockTransactor{},
	}
}
