package api

import (
	"context"
	"time"

	"timegate/internal/budget"
	"timegate/internal/config"
	"timegate/internal/errors"
	"timegate/internal/repository/sqlite"
	"timegate/internal/services"
	"timegate/internal/validation"
)

// API is the transport-neutral facade the HTTP server and the CLI
// talk to. It resolves names, runs the services and converts domain
// results into wire DTOs.
type API interface {
	// Start begins tracking the candidate as a running entry.
	Start(ctx context.Context, candidate *Candidate) (*OutcomeDTO, error)

	// Stop finishes a running entry at the given time, or now when the
	// time is zero.
	Stop(ctx context.Context, id int64, end time.Time) (*OutcomeDTO, error)

	// Restart starts a fresh running copy of an existing entry.
	Restart(ctx context.Context, id int64) (*OutcomeDTO, error)

	// Check runs the full rule set against a candidate without saving.
	Check(ctx context.Context, candidate *Candidate) (*ResultDTO, error)

	// Get returns one entry.
	Get(ctx context.Context, id int64) (*TimesheetDTO, error)

	// List returns the entries of a user ordered by begin. With
	// running=true only the active ones come back.
	List(ctx context.Context, userName string, running bool) ([]*TimesheetDTO, error)

	// Budget reports the consumption statistic of one scope.
	Budget(ctx context.Context, scopeKind string, id int64) (*BudgetDTO, error)
}

type apiImpl struct {
	services *services.ServiceContainer
	repo     sqlite.Repository
	cfg      *config.Config
	perms    validation.Permissions
}

// New creates the facade. The permission set applies to every call;
// there is no per-request authentication.
func New(container *services.ServiceContainer, repo sqlite.Repository, cfg *config.Config, perms validation.Permissions) API {
	return &apiImpl{
		services: container,
		repo:     repo,
		cfg:      cfg,
		perms:    perms,
	}
}

func (a *apiImpl) Start(ctx context.Context, candidate *Candidate) (*OutcomeDTO, error) {
	entry, err := candidate.Resolve(ctx, a.repo)
	if err != nil {
		return nil, err
	}

	req := services.StartRequest{
		User:        entry.User,
		Activity:    entry.Activity,
		Project:     entry.Project,
		Begin:       entry.Begin,
		Description: entry.Description,
		Tags:        entry.Tags,
		Billable:    entry.Billable,
	}
	outcome, err := a.services.Timesheets.Start(ctx, req, a.perms)
	if err != nil {
		return nil, err
	}
	return newOutcomeDTO(outcome), nil
}

func (a *apiImpl) Stop(ctx context.Context, id int64, end time.Time) (*OutcomeDTO, error) {
	outcome, err := a.services.Timesheets.Stop(ctx, id, end, a.perms)
	if err != nil {
		return nil, err
	}
	return newOutcomeDTO(outcome), nil
}

func (a *apiImpl) Restart(ctx context.Context, id int64) (*OutcomeDTO, error) {
	outcome, err := a.services.Timesheets.Restart(ctx, id, time.Time{}, a.perms)
	if err != nil {
		return nil, err
	}
	return newOutcomeDTO(outcome), nil
}

func (a *apiImpl) Check(ctx context.Context, candidate *Candidate) (*ResultDTO, error) {
	entry, err := candidate.Resolve(ctx, a.repo)
	if err != nil {
		return nil, err
	}
	result, err := a.services.Timesheets.Validate(ctx, entry, a.perms)
	if err != nil {
		return nil, err
	}
	return NewResultDTO(result), nil
}

func (a *apiImpl) Get(ctx context.Context, id int64) (*TimesheetDTO, error) {
	entry, err := a.services.Timesheets.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewTimesheetDTO(entry), nil
}

func (a *apiImpl) List(ctx context.Context, userName string, running bool) ([]*TimesheetDTO, error) {
	opts := sqlite.SearchOptions{Running: running}
	if userName != "" {
		user, err := a.repo.GetUserByName(ctx, userName)
		if err != nil {
			return nil, err
		}
		opts.UserID = &user.ID
	}

	entries, err := a.services.Timesheets.Search(ctx, opts)
	if err != nil {
		return nil, err
	}
	dtos := make([]*TimesheetDTO, len(entries))
	for i, entry := range entries {
		dtos[i] = NewTimesheetDTO(entry)
	}
	return dtos, nil
}

func (a *apiImpl) Budget(ctx context.Context, scopeKind string, id int64) (*BudgetDTO, error) {
	now := time.Now()

	switch budget.ScopeKind(scopeKind) {
	case budget.ScopeActivity:
		activity, err := a.repo.GetActivity(ctx, id)
		if err != nil {
			return nil, err
		}
		stat, err := a.services.Budgets.ActivityStatistic(ctx, id, now)
		if err != nil {
			return nil, err
		}
		currency := ""
		if activity.Project != nil && activity.Project.Customer != nil {
			currency = activity.Project.Customer.Currency
		}
		return NewBudgetDTO(stat, activity.Name, currency), nil

	case budget.ScopeProject:
		project, err := a.repo.GetProject(ctx, id)
		if err != nil {
			return nil, err
		}
		stat, err := a.services.Budgets.ProjectStatistic(ctx, id, now)
		if err != nil {
			return nil, err
		}
		currency := ""
		if project.Customer != nil {
			currency = project.Customer.Currency
		}
		return NewBudgetDTO(stat, project.Name, currency), nil

	case budget.ScopeCustomer:
		customer, err := a.repo.GetCustomer(ctx, id)
		if err != nil {
			return nil, err
		}
		stat, err := a.services.Budgets.CustomerStatistic(ctx, id, now)
		if err != nil {
			return nil, err
		}
		return NewBudgetDTO(stat, customer.Name, customer.Currency), nil
	}

	return nil, errors.NewInvalidInputError("scope", scopeKind, "scope must be activity, project or customer")
}

func newOutcomeDTO(outcome *services.SaveOutcome) *OutcomeDTO {
	dto := &OutcomeDTO{Saved: outcome.Saved()}
	if outcome.Result != nil {
		dto.Result = NewResultDTO(outcome.Result)
	}
	if outcome.Entry != nil {
		dto.Entry = NewTimesheetDTO(outcome.Entry)
	}
	return dto
}
