package services

import (
	"context"
	"time"

	"timegate/internal/budget"
	"timegate/internal/config"
	"timegate/internal/repository/sqlite"
)

// budgetServiceImpl implements the BudgetService interface
type budgetServiceImpl struct {
	repo sqlite.Repository
	calc *budget.Calculator
}

// NewBudgetService creates a new BudgetService instance
func NewBudgetService(repo sqlite.Repository, cfg *config.Config) BudgetService {
	return &budgetServiceImpl{
		repo: repo,
		calc: budget.NewCalculator(repo, cfg.Timesheet.Location()),
	}
}

// ActivityStatistic aggregates the consumption of one activity.
func (s *budgetServiceImpl) ActivityStatistic(ctx context.Context, activityID int64, at time.Time) (*budget.Statistic, error) {
	activity, err := s.repo.GetActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}
	scope := budget.Scope{Kind: budget.ScopeActivity, ID: activity.ID}
	return s.calc.Statistic(ctx, scope, activity.Budgets, at, 0)
}

// ProjectStatistic aggregates the consumption of one project.
func (s *budgetServiceImpl) ProjectStatistic(ctx context.Context, projectID int64, at time.Time) (*budget.Statistic, error) {
	project, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	scope := budget.Scope{Kind: budget.ScopeProject, ID: project.ID}
	return s.calc.Statistic(ctx, scope, project.Budgets, at, 0)
}

// CustomerStatistic aggregates the consumption of one customer.
func (s *budgetServiceImpl) CustomerStatistic(ctx context.Context, customerID int64, at time.Time) (*budget.Statistic, error) {
	customer, err := s.repo.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	scope := budget.Scope{Kind: budget.ScopeCustomer, ID: customer.ID}
	return s.calc.Statistic(ctx, scope, customer.Budgets, at, 0)
}
