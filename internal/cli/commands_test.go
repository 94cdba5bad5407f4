package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timegate/internal/api"
	"timegate/internal/config"
	"timegate/internal/errors"
)

func newTestApp(mock *mockAPI) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	app := NewApp(mock, config.NewConfig())
	app.out = out
	return app, out
}

func TestStartCommand(t *testing.T) {
	mock := &mockAPI{
		startOutcome: &api.OutcomeDTO{
			Saved: true,
			Entry: &api.TimesheetDTO{ID: 5, User: "alice", Begin: "2024-03-15T09:00:00Z", Running: true},
		},
	}
	app, out := newTestApp(mock)

	handler := NewStartCommand(app)
	handler.Activity = "development"
	handler.Project = "website"
	handler.Billable = true

	require.NoError(t, handler.Execute(context.Background(), []string{"alice"}))
	assert.Equal(t, "alice", mock.startCandidate.User)
	assert.Equal(t, "development", mock.startCandidate.Activity)
	assert.True(t, mock.startCandidate.Billable)
	assert.Contains(t, out.String(), "Started entry 5 for alice")
}

func TestStartCommandRejected(t *testing.T) {
	mock := &mockAPI{
		startOutcome: &api.OutcomeDTO{
			Saved: false,
			Result: &api.ResultDTO{Violations: []api.ViolationDTO{
				{Field: "begin_date", Code: "PERIOD_LOCKED", Message: "This period is locked."},
			}},
		},
	}
	app, out := newTestApp(mock)

	err := NewStartCommand(app).Execute(context.Background(), []string{"alice"})
	require.Error(t, err)
	assert.Contains(t, out.String(), "PERIOD_LOCKED")
	assert.Contains(t, out.String(), "This period is locked.")
}

func TestStartCommandInfrastructureError(t *testing.T) {
	mock := &mockAPI{startErr: errors.NewNotFoundError("user", "alice")}
	app, _ := newTestApp(mock)

	err := NewStartCommand(app).Execute(context.Background(), []string{"alice"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start tracking")
}

func TestStopCommand(t *testing.T) {
	mock := &mockAPI{
		stopOutcome: &api.OutcomeDTO{
			Saved: true,
			Entry: &api.TimesheetDTO{ID: 7, Duration: "2:30"},
		},
	}
	app, out := newTestApp(mock)

	require.NoError(t, NewStopCommand(app).Execute(context.Background(), []string{"7"}))
	assert.Equal(t, int64(7), mock.stopID)
	assert.Contains(t, out.String(), "Stopped entry 7 after 2:30")
}

func TestStopCommandBadID(t *testing.T) {
	app, _ := newTestApp(&mockAPI{})

	err := NewStopCommand(app).Execute(context.Background(), []string{"seven"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}

func TestRestartCommand(t *testing.T) {
	mock := &mockAPI{
		restartOutcome: &api.OutcomeDTO{
			Saved: true,
			Entry: &api.TimesheetDTO{ID: 9, User: "alice", Begin: "2024-03-15T13:00:00Z", Running: true},
		},
	}
	app, out := newTestApp(mock)

	require.NoError(t, NewRestartCommand(app).Execute(context.Background(), []string{"3"}))
	assert.Equal(t, int64(3), mock.restartID)
	assert.Contains(t, out.String(), "Started entry 9")
}

func TestListCommand(t *testing.T) {
	mock := &mockAPI{
		listDTOs: []*api.TimesheetDTO{
			{ID: 1, User: "alice", Project: "website", Activity: "development", Begin: "2024-03-15T09:00:00Z", Duration: "1:00"},
			{ID: 2, User: "alice", Begin: "2024-03-15T11:00:00Z", Running: true, Description: "standup"},
		},
	}
	app, out := newTestApp(mock)

	handler := NewListCommand(app)
	handler.Running = true
	require.NoError(t, handler.Execute(context.Background(), []string{"alice"}))

	assert.Equal(t, "alice", mock.listUser)
	assert.True(t, mock.listRunning)
	assert.Contains(t, out.String(), "website/development")
	assert.Contains(t, out.String(), "running")
	assert.Contains(t, out.String(), "standup")
}

func TestListCommandEmpty(t *testing.T) {
	app, out := newTestApp(&mockAPI{})

	require.NoError(t, NewListCommand(app).Execute(context.Background(), nil))
	assert.Contains(t, out.String(), "No entries found")
}

func writeCandidateFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "candidate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCheckCommandValid(t *testing.T) {
	mock := &mockAPI{checkResult: &api.ResultDTO{Valid: true, Violations: []api.ViolationDTO{}}}
	app, out := newTestApp(mock)

	path := writeCandidateFile(t, `
user: alice
project: website
activity: development
begin: 2024-03-15T09:00:00Z
end: 2024-03-15T11:30:00Z
tags: [sprint, review]
hourlyRate: "85.50"
`)

	require.NoError(t, NewCheckCommand(app).Execute(context.Background(), []string{path}))
	assert.Contains(t, out.String(), "OK")

	require.NotNil(t, mock.checkCandidate)
	assert.Equal(t, "alice", mock.checkCandidate.User)
	assert.Equal(t, "2024-03-15T09:00:00Z", mock.checkCandidate.Begin)
	assert.Equal(t, []string{"sprint", "review"}, mock.checkCandidate.Tags)
	assert.Equal(t, "85.50", mock.checkCandidate.HourlyRate)
}

func TestCheckCommandViolations(t *testing.T) {
	mock := &mockAPI{checkResult: &api.ResultDTO{
		Valid: false,
		Violations: []api.ViolationDTO{
			{Field: "duration", Code: "ZERO_DURATION_ERROR", Message: "Duration cannot be zero."},
			{Field: "activity", Code: "BUDGET_USED_ERROR", Message: "The budget is completely used."},
		},
	}}
	app, out := newTestApp(mock)

	path := writeCandidateFile(t, "user: alice\n")
	err := NewCheckCommand(app).Execute(context.Background(), []string{path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 rule(s) failed")
	assert.Contains(t, out.String(), "ZERO_DURATION_ERROR")
	assert.Contains(t, out.String(), "BUDGET_USED_ERROR")
}

func TestCheckCommandMissingFile(t *testing.T) {
	app, _ := newTestApp(&mockAPI{})

	err := NewCheckCommand(app).Execute(context.Background(), []string{"/does/not/exist.yaml"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}

func TestCheckCommandBadYAML(t *testing.T) {
	app, _ := newTestApp(&mockAPI{})

	path := writeCandidateFile(t, "user: [unclosed\n")
	err := NewCheckCommand(app).Execute(context.Background(), []string{path})
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}

func TestBudgetCommand(t *testing.T) {
	mock := &mockAPI{budgetDTO: &api.BudgetDTO{
		Scope:          "project",
		ID:             3,
		Name:           "website",
		Monthly:        true,
		WindowStart:    "2024-03-01T00:00:00Z",
		WindowEnd:      "2024-04-01T00:00:00Z",
		TimeBudget:     "10:00",
		TimeConsumed:   "6:30",
		TimeRemaining:  "3:30",
		MoneyBudget:    "1000.00 EUR",
		MoneyConsumed:  "650.00 EUR",
		MoneyRemaining: "350.00 EUR",
	}}
	app, out := newTestApp(mock)

	require.NoError(t, NewBudgetCommand(app).Execute(context.Background(), []string{"project", "3"}))
	assert.Equal(t, "project", mock.budgetScope)
	assert.Equal(t, int64(3), mock.budgetID)
	assert.Contains(t, out.String(), `project "website" (id 3)`)
	assert.Contains(t, out.String(), "resets monthly")
	assert.Contains(t, out.String(), "6:30 used of 10:00, 3:30 remaining")
	assert.Contains(t, out.String(), "650.00 EUR used of 1000.00 EUR, 350.00 EUR remaining")
}

func TestBudgetCommandNoBudget(t *testing.T) {
	mock := &mockAPI{budgetDTO: &api.BudgetDTO{Scope: "customer", ID: 1, Name: "acme"}}
	app, out := newTestApp(mock)

	require.NoError(t, NewBudgetCommand(app).Execute(context.Background(), []string{"customer", "1"}))
	assert.Contains(t, out.String(), "no budget configured")
}

func TestRootCommandWiring(t *testing.T) {
	mock := &mockAPI{
		stopOutcome: &api.OutcomeDTO{Saved: true, Entry: &api.TimesheetDTO{ID: 4, Duration: "0:45"}},
	}
	root := NewRootCommand(mock, config.NewConfig())
	root.app.out = &bytes.Buffer{}

	root.cmd.SetArgs([]string{"stop", "4"})
	require.NoError(t, root.cmd.Execute())
	assert.Equal(t, int64(4), mock.stopID)
}

func TestErrorHandler(t *testing.T) {
	eh := NewErrorHandler()

	wrapped := eh.Handle("stop tracking", errors.NewNotFoundError("timesheet", int64(9)))
	assert.Contains(t, wrapped.Error(), "failed to stop tracking")

	assert.True(t, eh.IsNotFoundError(errors.NewNotFoundError("timesheet", int64(9))))
	assert.False(t, eh.IsNotFoundError(errors.NewValidationError("nope", nil)))
	assert.Equal(t, "NOT_FOUND", eh.GetErrorCode(errors.NewNotFoundError("x", 1)))
}
