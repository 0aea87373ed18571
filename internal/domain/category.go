package domain

import (
	"fmt"
	"strings"
)

// MaxCategoryNameLength mirrors the width of categories.name.
const MaxCategoryNameLength = 100

// Category validation errors
var (
	ErrCategoryNameEmpty   = fmt.Errorf("%w: category name cannot be empty", ErrValidation)
	ErrCategoryNameTooLong = fmt.Errorf(
		"%w: category name must be at most %d characters",
		ErrValidation,
		MaxCategoryNameLength,
	)
)

// Category groups tasks by theme. A task may belong to any number of
// categories and a category may hold any number of tasks.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewCategory creates an unsaved Category with the given name.
func NewCategory(name string) (*Category, error) {
	c := &Category{Name: strings.TrimSpace(name)}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks if the Category has valid data.
func (c *Category) Validate() error {
	if c.Name == "" {
		return ErrCategoryNameEmpty
	}
	if len(c.Name) > MaxCategoryNameLength {
		return ErrCategoryNameTooLong
	}
	return nil
}
