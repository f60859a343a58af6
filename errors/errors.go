package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// TaskErrorType categorizes the failures a task operation can report
type TaskErrorType string

const (
	ValidationError      TaskErrorType = "validation"
	NotFoundError        TaskErrorType = "not_found"
	InternalError        TaskErrorType = "internal"
	PayloadTooLargeError TaskErrorType = "payload_too_large"
)

const (
	msgEmptyTitle = "`title` field of `Task` cannot be empty!"
	msgInternal   = "Internal server error!"
)

// TaskError provides structured error information with HTTP status suggestions
type TaskError struct {
	Type    TaskErrorType  `json:"type"`
	Message string         `json:"message"`
	Code    int            `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Constructor functions for common error types
func NewValidationError(message string, details ...map[string]any) *TaskError {
	var d map[string]any
	if len(details) > 0 {
		d = details[0]
	}
	return &TaskError{
		Type:    ValidationError,
		Message: message,
		Code:    http.StatusBadRequest,
		Details: d,
	}
}

// NewEmptyTitleError reports a title that is empty once surrounding whitespace is trimmed.
func NewEmptyTitleError() *TaskError {
	return NewValidationError(msgEmptyTitle, map[string]any{
		"field": "title",
	})
}

func NewNotFoundError(message string, details ...map[string]any) *TaskError {
	var d map[string]any
	if len(details) > 0 {
		d = details[0]
	}
	return &TaskError{
		Type:    NotFoundError,
		Message: message,
		Code:    http.StatusNotFound,
		Details: d,
	}
}

// NewIDNotFoundError reports that no stored task carries the given id.
func NewIDNotFoundError(id uint64) *TaskError {
	return NewNotFoundError(fmt.Sprintf("`%d` id not found!", id), map[string]any{
		"id": id,
	})
}

// NewInternalError reports a store-internal failure. The message sent to
// clients is fixed; cause is only kept in Details for logging.
func NewInternalError(cause string) *TaskError {
	var d map[string]any
	if cause != "" {
		d = map[string]any{"cause": cause}
	}
	return &TaskError{
		Type:    InternalError,
		Message: msgInternal,
		Code:    http.StatusInternalServerError,
		Details: d,
	}
}

func NewPayloadTooLargeError(limit int64) *TaskError {
	return &TaskError{
		Type:    PayloadTooLargeError,
		Message: "request body too large",
		Code:    http.StatusRequestEntityTooLarge,
		Details: map[string]any{
			"max_size_bytes": limit,
		},
	}
}

// IsTaskError checks if an error is (or wraps) a TaskError and returns it
func IsTaskError(err error) (*TaskError, bool) {
	var taskErr *TaskError
	if stderrors.As(err, &taskErr) {
		return taskErr, true
	}
	return nil, false
}

// IsEmptyTitle reports whether err is the empty title validation failure.
func IsEmptyTitle(err error) bool {
	taskErr, ok := IsTaskError(err)
	return ok && taskErr.Type == ValidationError && taskErr.Message == msgEmptyTitle
}

func IsNotFound(err error) bool {
	taskErr, ok := IsTaskError(err)
	return ok && taskErr.Type == NotFoundError
}

func IsInternal(err error) bool {
	taskErr, ok := IsTaskError(err)
	return ok && taskErr.Type == InternalError
}
