package errors

import (
	"fmt"
	"net/http"
	"testing"

	"gotest.tools/v3/assert"
)

func TestConstructors(t *testing.T) {
	testCases := []struct {
		name     string
		err      *TaskError
		wantType TaskErrorType
		wantCode int
	}{
		{"empty title", NewEmptyTitleError(), ValidationError, http.StatusBadRequest},
		{"id not found", NewIDNotFoundError(3), NotFoundError, http.StatusNotFound},
		{"internal", NewInternalError("lock"), InternalError, http.StatusInternalServerError},
		{"payload too large", NewPayloadTooLargeError(512), PayloadTooLargeError, http.StatusRequestEntityTooLarge},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantType, tc.err.Type)
			assert.Equal(t, tc.wantCode, tc.err.Code)
		})
	}
}

func TestIDNotFoundMessage(t *testing.T) {
	err := NewIDNotFoundError(17)
	assert.Equal(t, "[not_found] `17` id not found!", err.Error())
	assert.Equal(t, uint64(17), err.Details["id"])
}

func TestInternalHidesCause(t *testing.T) {
	err := NewInternalError("redis hget: connection refused")
	assert.Equal(t, "Internal server error!", err.Message)
	assert.Equal(t, "redis hget: connection refused", err.Details["cause"])
}

func TestIsTaskError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("store: %w", NewIDNotFoundError(1))

	taskErr, ok := IsTaskError(wrapped)
	assert.Assert(t, ok)
	assert.Equal(t, NotFoundError, taskErr.Type)
	assert.Assert(t, IsNotFound(wrapped))

	_, ok = IsTaskError(fmt.Errorf("plain"))
	assert.Assert(t, !ok)
}

func TestKindPredicates(t *testing.T) {
	assert.Assert(t, IsEmptyTitle(NewEmptyTitleError()))
	assert.Assert(t, !IsEmptyTitle(NewValidationError("invalid JSON payload")))
	assert.Assert(t, !IsEmptyTitle(NewIDNotFoundError(0)))
	assert.Assert(t, IsInternal(NewInternalError("")))
	assert.Assert(t, !IsInternal(nil))
}
