package sqlite

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// MockResult implements sql.Result for testing
type MockResult struct {
	lastInsertID int64
	rowsAffected int64
	insertErr    error
	rowsErr      error
}

func (mr *MockResult) LastInsertId() (int64, error) {
	return mr.lastInsertID, mr.insertErr
}

func (mr *MockResult) RowsAffected() (int64, error) {
	return mr.rowsAffected, mr.rowsErr
}

func TestHandleDatabaseError(t *testing.T) {
	originalErr := errors.New("database connection failed")
	result := HandleDatabaseError("count running timesheets", originalErr)

	assert.Contains(t, result.Error(), "count running timesheets")
	assert.Contains(t, result.Error(), "database connection failed")
}

func TestHandleNoRowsError(t *testing.T) {
	notFound := HandleNoRowsError(sql.ErrNoRows, "timesheet", int64(123))
	assert.Contains(t, notFound.Error(), "not found")
	assert.Contains(t, notFound.Error(), "timesheet")
	assert.Contains(t, notFound.Error(), "123")

	other := errors.New("some other error")
	assert.Equal(t, other, HandleNoRowsError(other, "timesheet", int64(123)))
}

func TestValidateRowsAffected(t *testing.T) {
	tests := []struct {
		name        string
		result      sql.Result
		expectError string
	}{
		{
			name:   "rows were affected",
			result: &MockResult{rowsAffected: 1},
		},
		{
			name:        "no rows affected reports not found",
			result:      &MockResult{rowsAffected: 0},
			expectError: "not found",
		},
		{
			name:        "driver error is wrapped",
			result:      &MockResult{rowsErr: errors.New("database error")},
			expectError: "database error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRowsAffected(tt.result, "timesheet", int64(123))
			if tt.expectError == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
			}
		})
	}
}
