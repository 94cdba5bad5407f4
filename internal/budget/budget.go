package budget

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"timegate/internal/domain"
	"timegate/internal/timeutil"
)

// ScopeKind names a level of the budget-bearing hierarchy.
type ScopeKind string

const (
	ScopeActivity ScopeKind = "activity"
	ScopeProject  ScopeKind = "project"
	ScopeCustomer ScopeKind = "customer"
)

// Scope identifies one budget-bearing entity.
type Scope struct {
	Kind ScopeKind
	ID   int64
}

// Usage is the consumption already persisted for a scope. Billable
// figures are tracked separately from the totals; budgets count the
// totals, billable feeds invoicing reports.
type Usage struct {
	DurationSeconds         int64
	BillableDurationSeconds int64
	Amount                  decimal.Decimal
	BillableAmount          decimal.Decimal
}

// Source answers read-only consumption queries against the persisted
// entries. A nil window means "all time"; excludeEntryID removes one
// entry's stored contribution (the candidate being edited) from the
// totals. Implementations block; the aggregator adds no retries or
// timeouts of its own.
type Source interface {
	Consumed(ctx context.Context, scope Scope, window *timeutil.Window, excludeEntryID int64) (Usage, error)
}

// Statistic is the transient per-scope aggregate computed for one
// validation or report. It is never persisted.
type Statistic struct {
	Scope    Scope
	Budgets  domain.Budgets
	Consumed Usage
	// Window is set when the scope resets monthly; consumption outside
	// it did not count.
	Window *timeutil.Window
}

// TimeRemaining returns the seconds left before the time ceiling,
// negative when already exceeded. Only meaningful with a time budget.
func (s *Statistic) TimeRemaining() int64 {
	return s.Budgets.TimeBudgetSeconds - s.Consumed.DurationSeconds
}

// MoneyRemaining returns the amount left before the monetary ceiling.
func (s *Statistic) MoneyRemaining() decimal.Decimal {
	return s.Budgets.MoneyBudget.Sub(s.Consumed.Amount)
}

// Calculator computes budget statistics for scopes. The reporting
// location controls where calendar-month boundaries fall for
// monthly-reset budgets.
type Calculator struct {
	source   Source
	location *time.Location
}

// NewCalculator creates a calculator over the given source.
func NewCalculator(source Source, location *time.Location) *Calculator {
	if source == nil {
		panic("budget: nil source")
	}
	if location == nil {
		location = time.UTC
	}
	return &Calculator{source: source, location: location}
}

// Statistic aggregates the already-consumed figures of one scope.
// When editing an existing entry its stored contribution is excluded via
// excludeEntryID, so the caller can add the entry's new figures back
// without double counting. at anchors the calendar month for
// monthly-reset budgets.
func (c *Calculator) Statistic(ctx context.Context, scope Scope, budgets domain.Budgets, at time.Time, excludeEntryID int64) (*Statistic, error) {
	stat := &Statistic{Scope: scope, Budgets: budgets}

	if budgets.IsMonthly() {
		window := timeutil.MonthWindow(at, c.location)
		stat.Window = &window
	}

	usage, err := c.source.Consumed(ctx, scope, stat.Window, excludeEntryID)
	if err != nil {
		return nil, err
	}
	stat.Consumed = usage

	return stat, nil
}
