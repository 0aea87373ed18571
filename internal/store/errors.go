package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a uniqueness
	// constraint, such as a second priority with the same name.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation or a
	// foreign key, check or not-null constraint.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrInUse is returned when a delete is blocked because other rows still
	// reference the entity.
	ErrInUse = errors.New("entity is referenced by other entities")

	ErrUserNotFound     = fmt.Errorf("%w: user", ErrNotFound)
	ErrPriorityNotFound = fmt.Errorf("%w: priority", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("%w: category", ErrNotFound)
	ErrTaskNotFound     = fmt.Errorf("%w: task", ErrNotFound)

	ErrUsernameExists     = fmt.Errorf("%w: username", ErrDuplicate)
	ErrPriorityNameExists = fmt.Errorf("%w: priority name", ErrDuplicate)
	ErrCategoryNameExists = fmt.Errorf("%w: category name", ErrDuplicate)
)

// IsNotFoundError reports whether err is, or wraps, any "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is, or wraps, any "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "user", "task")
	Operation string // The operation that failed (e.g., "create", "update")
	Message   string
	Err       error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
