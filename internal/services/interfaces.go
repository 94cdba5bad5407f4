package services

import (
	"context"
	"time"

	"timegate/internal/budget"
	"timegate/internal/config"
	"timegate/internal/domain"
	"timegate/internal/repository/sqlite"
	"timegate/internal/validation"
)

// SaveOutcome is the result of a mutating timesheet operation. When the
// rule engine rejected the entry, Entry is nil and Result carries the
// violations; infrastructure failures come back as errors instead.
type SaveOutcome struct {
	Entry  *domain.Timesheet  `json:"entry,omitempty"`
	Result *validation.Result `json:"-"`
}

// Saved reports whether the operation persisted the entry.
func (o *SaveOutcome) Saved() bool {
	return o.Result == nil || o.Result.IsValid()
}

// StartRequest carries everything needed to start tracking.
type StartRequest struct {
	User        *domain.User
	Activity    *domain.Activity
	Project     *domain.Project
	Begin       time.Time
	Description string
	Tags        []string
	Billable    bool
}

// BatchOutcome reports a batch operation: the entries that were saved
// and the violations per rejected entry, keyed by entry ID.
type BatchOutcome struct {
	Saved    []*domain.Timesheet
	Rejected map[int64]*validation.Result
}

// TimesheetService handles the timesheet lifecycle. Every mutation runs
// the full rule set before touching the repository.
type TimesheetService interface {
	Start(ctx context.Context, req StartRequest, perms validation.Permissions) (*SaveOutcome, error)
	Stop(ctx context.Context, id int64, end time.Time, perms validation.Permissions) (*SaveOutcome, error)
	Restart(ctx context.Context, id int64, begin time.Time, perms validation.Permissions) (*SaveOutcome, error)
	Update(ctx context.Context, entry *domain.Timesheet, perms validation.Permissions) (*SaveOutcome, error)
	Delete(ctx context.Context, id int64, perms validation.Permissions) error

	Get(ctx context.Context, id int64) (*domain.Timesheet, error)
	Search(ctx context.Context, opts sqlite.SearchOptions) ([]*domain.Timesheet, error)

	// Validate runs the rule set without persisting anything.
	Validate(ctx context.Context, entry *domain.Timesheet, perms validation.Permissions) (*validation.Result, error)

	MultiUpdate(ctx context.Context, dto *domain.MultiUpdate, perms validation.Permissions) (*BatchOutcome, *validation.Result, error)
	MultiUser(ctx context.Context, dto *domain.MultiUser, perms validation.Permissions) (*BatchOutcome, *validation.Result, error)
}

// BudgetService answers budget consumption questions for reporting.
type BudgetService interface {
	ActivityStatistic(ctx context.Context, activityID int64, at time.Time) (*budget.Statistic, error)
	ProjectStatistic(ctx context.Context, projectID int64, at time.Time) (*budget.Statistic, error)
	CustomerStatistic(ctx context.Context, customerID int64, at time.Time) (*budget.Statistic, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	Timesheets TimesheetService
	Budgets    BudgetService
}

// NewServiceContainer wires the services over one repository and
// configuration snapshot.
func NewServiceContainer(repo sqlite.Repository, cfg *config.Config) *ServiceContainer {
	return &ServiceContainer{
		Timesheets: NewTimesheetService(repo, cfg),
		Budgets:    NewBudgetService(repo, cfg),
	}
}
