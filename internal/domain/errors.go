// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Entity-specific validation errors wrap it, so callers can test for
	// any validation failure with errors.Is(err, ErrValidation).
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is zero or negative.
	ErrInvalidID = errors.New("invalid ID")
)
