// Package service provides the resource services for users, priorities,
// categories and tasks.
package service

import (
	"errors"

	"github.com/phrazzld/taskdesk-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is; the API layer maps them to HTTP
// status codes.
var (
	// ErrNotFound indicates the addressed resource does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicateName indicates a priority or category with the same name exists.
	// API layer should map this to HTTP 400 Bad Request.
	ErrDuplicateName = errors.New("name already exists")

	// ErrDuplicateUsername indicates the username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrPriorityNotFound indicates a referenced priority does not exist.
	// Unlike ErrNotFound, it concerns a reference inside the request body.
	ErrPriorityNotFound = errors.New("referenced priority not found")

	// ErrCategoryNotFound indicates a referenced category does not exist.
	ErrCategoryNotFound = errors.New("referenced category not found")

	// ErrInUse indicates a delete was blocked by rows that still reference
	// the resource, such as tasks using a priority.
	ErrInUse = errors.New("resource is still in use")
)

// translateStoreError maps the generic store errors onto service sentinels.
// Errors it does not recognize are returned unchanged.
func translateStoreError(err, notFound, duplicate error) error {
	switch {
	case err == nil:
		return nil
	case store.IsNotFoundError(err) && notFound != nil:
		return notFound
	case store.IsDuplicateError(err) && duplicate != nil:
		return duplicate
	case errors.Is(err, store.ErrInUse):
		return ErrInUse
	}
	return err
}
