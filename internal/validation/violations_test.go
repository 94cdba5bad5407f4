package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode_String(t *testing.T) {
	assert.Equal(t, "ZERO_DURATION_ERROR", CodeZeroDuration.String())
	assert.Equal(t, "BEGIN_IN_FUTURE_ERROR", CodeBeginInFuture.String())
	assert.Equal(t, "RECORD_OVERLAPPING", CodeRecordOverlapping.String())
	assert.Equal(t, "PERIOD_LOCKED", CodePeriodLocked.String())
	assert.Equal(t, "TIMESHEET_EXPORTED", CodeTimesheetExported.String())
	assert.Equal(t, "BUDGET_USED_ERROR", CodeBudgetUsed.String())
	assert.Equal(t, "UNKNOWN_ERROR", Code(9999).String())
}

func TestResult_PreservesInsertionOrder(t *testing.T) {
	res := &Result{}
	res.Add(FieldBeginDate, CodeMissingBegin, "first")
	res.Add(FieldDuration, CodeZeroDuration, "second")
	res.Add(FieldBeginDate, CodeBeginInFuture, "third")

	violations := res.Violations()
	assert.Len(t, violations, 3)
	assert.Equal(t, "first", violations[0].Message)
	assert.Equal(t, "second", violations[1].Message)
	assert.Equal(t, "third", violations[2].Message)
}

func TestResult_Queries(t *testing.T) {
	res := &Result{}
	assert.True(t, res.IsValid())
	assert.False(t, res.HasViolations())
	assert.False(t, res.HasFieldViolation(FieldDuration))

	res.Add(FieldDuration, CodeZeroDuration, "zero")

	assert.False(t, res.IsValid())
	assert.True(t, res.HasViolations())
	assert.True(t, res.HasFieldViolation(FieldDuration))
	assert.False(t, res.HasFieldViolation(FieldBeginDate))
	assert.True(t, res.HasCode(CodeZeroDuration))
	assert.False(t, res.HasCode(CodeBudgetUsed))
}
