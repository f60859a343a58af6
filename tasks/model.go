package tasks

import (
	"strings"

	"task-list/errors"
)

// Task is a titled work item. ID is assigned by the store and never changes.
type Task struct {
	ID      uint64 `json:"id"`
	Title   string `json:"title"`
	Details string `json:"details"`
}

// InsertTask is the decoded body of an insert request.
type InsertTask struct {
	NonEmptyTitle string `json:"non_empty_title"`
	Details       string `json:"details"`
}

// UpdateTask is the decoded body of an update request.
type UpdateTask struct {
	ID       uint64 `json:"id"`
	NewTitle string `json:"new_title"`
	Details  string `json:"details"`
}

// ValidateTitle rejects titles that are empty after trimming whitespace.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.NewEmptyTitleError()
	}
	return nil
}

func (t InsertTask) Validate() error {
	return ValidateTitle(t.NonEmptyTitle)
}

func (t UpdateTask) Validate() error {
	return ValidateTitle(t.NewTitle)
}

// Matches reports whether pattern occurs in the title or details,
// ignoring case. An empty pattern matches every task.
func (t Task) Matches(pattern string) bool {
	if pattern == "" {
		return true
	}
	p := strings.ToLower(pattern)
	return strings.Contains(strings.ToLower(t.Title), p) ||
		strings.Contains(strings.ToLower(t.Details), p)
}
