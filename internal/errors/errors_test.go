package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	cause := errors.New("end before begin")

	tests := []struct {
		name         string
		err          *AppError
		expectedType ErrorType
		expectedCode string
	}{
		{"validation", NewValidationError("timesheet rejected", cause), ErrorTypeValidation, "VALIDATION_FAILED"},
		{"not found", NewNotFoundError("timesheet", int64(42)), ErrorTypeNotFound, "NOT_FOUND"},
		{"database", NewDatabaseError("insert timesheet", cause), ErrorTypeDatabase, "DATABASE_ERROR"},
		{"invalid input", NewInvalidInputError("begin", "yesterday-ish", "not a timestamp"), ErrorTypeInvalidInput, "INVALID_INPUT"},
		{"permission", NewPermissionError("edit", "exported timesheet"), ErrorTypePermission, "PERMISSION_DENIED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedType, tt.err.Type)
			assert.Equal(t, tt.expectedCode, tt.err.Code)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := NewDatabaseError("insert timesheet", cause)

	assert.Contains(t, err.Error(), "database")
	assert.Contains(t, err.Error(), "insert timesheet")
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, cause, errors.Unwrap(err))

	// without a cause the suffix disappears
	bare := NewNotFoundError("project", int64(7))
	assert.NotContains(t, bare.Error(), "caused by")
}

func TestWrapError(t *testing.T) {
	cause := errors.New("original error")
	err := WrapError(cause, ErrorTypeDatabase, "wrapped message")

	assert.Equal(t, ErrorTypeDatabase, err.Type)
	assert.Equal(t, "wrapped message", err.Message)
	assert.Equal(t, "database", err.Code)
	assert.Equal(t, cause, err.Cause)
}

func TestAsAppError_ThroughWrapping(t *testing.T) {
	inner := NewPermissionError("edit", "exported timesheet")
	wrapped := fmt.Errorf("save failed: %w", inner)

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrorTypePermission, appErr.Type)

	assert.True(t, IsAppError(wrapped))
	assert.False(t, IsAppError(errors.New("plain")))
	assert.True(t, IsErrorType(wrapped, ErrorTypePermission))
	assert.False(t, IsErrorType(wrapped, ErrorTypeDatabase))
}

func TestGetUserMessage(t *testing.T) {
	assert.Equal(t, "timesheet rejected",
		GetUserMessage(NewValidationError("timesheet rejected", nil)))
	assert.Equal(t, "A database error occurred. Please try again.",
		GetUserMessage(NewDatabaseError("query", errors.New("locked"))))
	assert.Equal(t, "plain failure",
		GetUserMessage(errors.New("plain failure")))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", GetErrorCode(NewNotFoundError("activity", int64(3))))
	assert.Equal(t, "UNKNOWN_ERROR", GetErrorCode(errors.New("plain")))
}

func TestShouldLogError(t *testing.T) {
	assert.False(t, ShouldLogError(NewValidationError("rejected", nil)))
	assert.False(t, ShouldLogError(NewNotFoundError("customer", int64(1))))
	assert.True(t, ShouldLogError(NewDatabaseError("insert", errors.New("locked"))))
	assert.True(t, ShouldLogError(NewPermissionError("edit", "timesheet")))
	assert.True(t, ShouldLogError(errors.New("plain")))
}

func TestWithContext(t *testing.T) {
	err := NewValidationError("rejected", nil).WithContext("entry_id", int64(9))

	v, ok := err.GetContext("entry_id")
	require.True(t, ok)
	assert.Equal(t, int64(9), v)

	_, ok = err.GetContext("missing")
	assert.False(t, ok)
}
