package sqlite

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timegate/internal/domain"
)

// TestScanner implements the Scanner interface for testing
type TestScanner struct {
	data []interface{}
	err  error
}

func (ts *TestScanner) Scan(dest ...interface{}) error {
	if ts.err != nil {
		return ts.err
	}
	if len(dest) != len(ts.data) {
		return errors.New("mismatch in number of destinations")
	}
	for i, d := range dest {
		switch v := d.(type) {
		case *int64:
			*v = ts.data[i].(int64)
		case *sql.NullInt64:
			*v = ts.data[i].(sql.NullInt64)
		case *string:
			*v = ts.data[i].(string)
		case *sql.NullString:
			*v = ts.data[i].(sql.NullString)
		case *bool:
			*v = ts.data[i].(bool)
		}
	}
	return nil
}

func timesheetScanData() []interface{} {
	return []interface{}{
		int64(1),                            // id
		int64(10),                           // user_id
		sql.NullInt64{Int64: 5, Valid: true}, // activity_id
		sql.NullInt64{Int64: 7, Valid: true}, // project_id
		"2024-03-15T09:00:00Z",              // begin_time
		sql.NullString{String: "2024-03-15T11:00:00Z", Valid: true}, // end_time
		int64(600),        // break_seconds
		sql.NullInt64{},   // duration
		"sprint work",     // description
		"sprint,frontend", // tags
		true,              // billable
		false,             // exported
		"170",             // rate
		sql.NullString{String: "85", Valid: true}, // hourly_rate
		sql.NullString{},                          // fixed_rate
	}
}

func TestScanTimesheetRow(t *testing.T) {
	row, err := ScanTimesheetRow(&TestScanner{data: timesheetScanData()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), row.ID)
	assert.Equal(t, int64(10), row.UserID)
	assert.Equal(t, "2024-03-15T09:00:00Z", row.Begin)
	assert.True(t, row.End.Valid)

	_, err = ScanTimesheetRow(&TestScanner{err: sql.ErrNoRows})
	assert.Error(t, err)
}

func TestTimesheetRowToDomain(t *testing.T) {
	row, err := ScanTimesheetRow(&TestScanner{data: timesheetScanData()})
	require.NoError(t, err)

	user := &domain.User{ID: 10, Name: "alice"}
	activity := &domain.Activity{ID: 5}
	project := &domain.Project{ID: 7}

	entry, err := row.toDomain(user, activity, project)
	require.NoError(t, err)
	assert.Equal(t, int64(1), entry.ID)
	assert.Same(t, user, entry.User)
	assert.Same(t, activity, entry.Activity)
	assert.Same(t, project, entry.Project)
	assert.Equal(t, time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC), entry.Begin.UTC())
	require.NotNil(t, entry.End)
	assert.Equal(t, time.Date(2024, 3, 15, 11, 0, 0, 0, time.UTC), entry.End.UTC())
	assert.Nil(t, entry.Duration)
	assert.Equal(t, int64(600), entry.BreakSeconds)
	assert.Equal(t, []string{"sprint", "frontend"}, entry.Tags)
	assert.True(t, entry.Rate.Equal(decimal.NewFromInt(170)))
	require.NotNil(t, entry.HourlyRate)
	assert.True(t, entry.HourlyRate.Equal(decimal.NewFromInt(85)))
	assert.Nil(t, entry.FixedRate)
}

func TestTimesheetRowToDomainRunningEntry(t *testing.T) {
	data := timesheetScanData()
	data[5] = sql.NullString{} // end_time NULL
	data[9] = ""               // no tags

	row, err := ScanTimesheetRow(&TestScanner{data: data})
	require.NoError(t, err)

	entry, err := row.toDomain(&domain.User{ID: 10}, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, entry.End)
	assert.True(t, entry.IsRunning())
	assert.Empty(t, entry.Tags)
}

func TestTimesheetRowToDomainBadTime(t *testing.T) {
	data := timesheetScanData()
	data[4] = "not a time"

	row, err := ScanTimesheetRow(&TestScanner{data: data})
	require.NoError(t, err)

	_, err = row.toDomain(&domain.User{ID: 10}, nil, nil)
	assert.Error(t, err)
}

func TestScanCustomer(t *testing.T) {
	scanner := &TestScanner{data: []interface{}{
		int64(1), "acme", true, "EUR", "Europe/Berlin",
		int64(3600), "1000", "month",
	}}

	customer, err := ScanCustomer(scanner)
	require.NoError(t, err)
	assert.Equal(t, "acme", customer.Name)
	assert.Equal(t, "EUR", customer.Currency)
	assert.Equal(t, int64(3600), customer.Budgets.TimeBudgetSeconds)
	assert.True(t, customer.Budgets.MoneyBudget.Equal(decimal.NewFromInt(1000)))
	assert.True(t, customer.Budgets.IsMonthly())

	_, err = ScanCustomer(&TestScanner{err: sql.ErrNoRows})
	assert.Error(t, err)
}

func TestScanProjectRow(t *testing.T) {
	scanner := &TestScanner{data: []interface{}{
		int64(7), int64(1), "website", true,
		sql.NullString{String: "2024-01-01T00:00:00Z", Valid: true},
		sql.NullString{},
		int64(0), "5000", "",
	}}

	row, err := ScanProjectRow(scanner)
	require.NoError(t, err)

	customer := &domain.Customer{ID: 1}
	project, err := row.toDomain(customer)
	require.NoError(t, err)
	assert.Equal(t, "website", project.Name)
	assert.Same(t, customer, project.Customer)
	require.NotNil(t, project.Start)
	assert.Nil(t, project.End)
	assert.True(t, project.Budgets.MoneyBudget.Equal(decimal.NewFromInt(5000)))
}

func TestScanActivityRow(t *testing.T) {
	scanner := &TestScanner{data: []interface{}{
		int64(5), sql.NullInt64{}, "meeting", true,
		int64(0), "0", "",
	}}

	row, err := ScanActivityRow(scanner)
	require.NoError(t, err)

	activity, err := row.toDomain(nil)
	require.NoError(t, err)
	assert.Equal(t, "meeting", activity.Name)
	assert.True(t, activity.IsGlobal())
	assert.False(t, activity.Budgets.HasTimeBudget())
}

func TestScanUser(t *testing.T) {
	user, err := ScanUser(&TestScanner{data: []interface{}{int64(10), "alice", "UTC"}})
	require.NoError(t, err)
	assert.Equal(t, int64(10), user.ID)
	assert.Equal(t, "alice", user.Name)
	assert.Equal(t, "UTC", user.Timezone)
}
