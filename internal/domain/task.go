package domain

import (
	"fmt"
	"strings"
)

const (
	// MaxTaskTitleLength mirrors the width of tasks.title.
	MaxTaskTitleLength = 120

	// MaxTaskDescriptionLength mirrors the width of tasks.description.
	MaxTaskDescriptionLength = 255
)

// Task validation errors
var (
	ErrTaskTitleEmpty         = fmt.Errorf("%w: task title cannot be empty", ErrValidation)
	ErrTaskTitleTooLong       = fmt.Errorf("%w: task title must be at most %d characters", ErrValidation, MaxTaskTitleLength)
	ErrTaskDescriptionTooLong = fmt.Errorf("%w: task description must be at most %d characters", ErrValidation, MaxTaskDescriptionLength)
	ErrTaskPriorityIDMissing  = fmt.Errorf("%w: task priority is required", ErrValidation)
	ErrTaskCategoryIDInvalid  = fmt.Errorf("%w: task category ID must be positive", ErrValidation)
)

// Task is a unit of work. Every task has exactly one priority and zero or
// more categories.
type Task struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
	PriorityID  int64   `json:"priority_id"`

	// Priority is the resolved priority row, populated by store reads.
	Priority *Priority `json:"-"`

	// Categories holds the task's categories. On writes only the IDs are used.
	Categories []*Category `json:"categories"`
}

// NewTask creates an unsaved Task. Duplicate category IDs are collapsed.
func NewTask(title string, description *string, completed bool, priorityID int64, categoryIDs []int64) (*Task, error) {
	task := &Task{
		Title:       strings.TrimSpace(title),
		Description: description,
		Completed:   completed,
		PriorityID:  priorityID,
	}
	task.SetCategoryIDs(categoryIDs)

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrTaskTitleEmpty
	}
	if len(t.Title) > MaxTaskTitleLength {
		return ErrTaskTitleTooLong
	}
	if t.Description != nil && len(*t.Description) > MaxTaskDescriptionLength {
		return ErrTaskDescriptionTooLong
	}
	if t.PriorityID <= 0 {
		return ErrTaskPriorityIDMissing
	}
	for _, c := range t.Categories {
		if c == nil || c.ID <= 0 {
			return ErrTaskCategoryIDInvalid
		}
	}
	return nil
}

// CategoryIDs returns the IDs of the task's categories in order.
func (t *Task) CategoryIDs() []int64 {
	ids := make([]int64, 0, len(t.Categories))
	for _, c := range t.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

// SetCategoryIDs replaces the task's categories with ID-only placeholders,
// keeping first-seen order and dropping duplicates.
func (t *Task) SetCategoryIDs(ids []int64) {
	seen := make(map[int64]struct{}, len(ids))
	categories := make([]*Category, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		categories = append(categories, &Category{ID: id})
	}
	t.Categories = categories
}

// PriorityName returns the resolved priority name, or "" if not loaded.
func (t *Task) PriorityName() string {
	if t.Priority == nil {
		return ""
	}
	return t.Priority.Name
}
