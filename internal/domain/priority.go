package domain

import (
	"fmt"
	"strings"
)

// MaxPriorityNameLength mirrors the width of priorities.name.
const MaxPriorityNameLength = 50

// Priority validation errors
var (
	ErrPriorityNameEmpty   = fmt.Errorf("%w: priority name cannot be empty", ErrValidation)
	ErrPriorityNameTooLong = fmt.Errorf(
		"%w: priority name must be at most %d characters",
		ErrValidation,
		MaxPriorityNameLength,
	)
)

// Priority is a named urgency level ("High", "Medium", "Low").
// It is referenced by tasks for urgency and by users as their access level.
type Priority struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewPriority creates an unsaved Priority with the given name.
// The ID is assigned by the store on insert.
func NewPriority(name string) (*Priority, error) {
	p := &Priority{Name: strings.TrimSpace(name)}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks if the Priority has valid data.
func (p *Priority) Validate() error {
	if p.Name == "" {
		return ErrPriorityNameEmpty
	}
	if len(p.Name) > MaxPriorityNameLength {
		return ErrPriorityNameTooLong
	}
	return nil
}
