package cli

import (
	"context"
	"time"

	"timegate/internal/api"
)

// mockAPI is a hand-written test double for the API facade. Each call
// is recorded; responses are configured per method.
type mockAPI struct {
	startCandidate *api.Candidate
	startOutcome   *api.OutcomeDTO
	startErr       error

	stopID      int64
	stopOutcome *api.OutcomeDTO
	stopErr     error

	restartID      int64
	restartOutcome *api.OutcomeDTO
	restartErr     error

	checkCandidate *api.Candidate
	checkResult    *api.ResultDTO
	checkErr       error

	getDTO *api.TimesheetDTO
	getErr error

	listUser    string
	listRunning bool
	listDTOs    []*api.TimesheetDTO
	listErr     error

	budgetScope string
	budgetID    int64
	budgetDTO   *api.BudgetDTO
	budgetErr   error
}

var _ api.API = (*mockAPI)(nil)

func (m *mockAPI) Start(_ context.Context, candidate *api.Candidate) (*api.OutcomeDTO, error) {
	m.startCandidate = candidate
	return m.startOutcome, m.startErr
}

func (m *mockAPI) Stop(_ context.Context, id int64, _ time.Time) (*api.OutcomeDTO, error) {
	m.stopID = id
	return m.stopOutcome, m.stopErr
}

func (m *mockAPI) Restart(_ context.Context, id int64) (*api.OutcomeDTO, error) {
	m.restartID = id
	return m.restartOutcome, m.restartErr
}

func (m *mockAPI) Check(_ context.Context, candidate *api.Candidate) (*api.ResultDTO, error) {
	m.checkCandidate = candidate
	return m.checkResult, m.checkErr
}

func (m *mockAPI) Get(_ context.Context, _ int64) (*api.TimesheetDTO, error) {
	return m.getDTO, m.getErr
}

func (m *mockAPI) List(_ context.Context, userName string, running bool) ([]*api.TimesheetDTO, error) {
	m.listUser = userName
	m.listRunning = running
	return m.listDTOs, m.listErr
}

func (m *mockAPI) Budget(_ context.Context, scopeKind string, id int64) (*api.BudgetDTO, error) {
	m.budgetScope = scopeKind
	m.budgetID = id
	return m.budgetDTO, m.budgetErr
}
