package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetResetPolicy controls which consumption window counts against a
// scope's budget ceiling.
type BudgetResetPolicy string

const (
	BudgetResetNone    BudgetResetPolicy = ""
	BudgetResetMonthly BudgetResetPolicy = "month"
)

// Budgets carries the configured ceilings of a scope. Zero values mean
// unlimited.
type Budgets struct {
	TimeBudgetSeconds int64
	MoneyBudget       decimal.Decimal
	ResetPolicy       BudgetResetPolicy
}

// HasTimeBudget reports whether a time ceiling is configured.
func (b Budgets) HasTimeBudget() bool {
	return b.TimeBudgetSeconds > 0
}

// HasMoneyBudget reports whether a monetary ceiling is configured.
func (b Budgets) HasMoneyBudget() bool {
	return b.MoneyBudget.IsPositive()
}

// IsMonthly reports whether consumption resets each calendar month.
func (b Budgets) IsMonthly() bool {
	return b.ResetPolicy == BudgetResetMonthly
}

// Activity is the finest budget-bearing scope. An activity without a
// project is global and may be combined with any project.
type Activity struct {
	ID      int64
	Name    string
	Project *Project
	Visible bool
	Budgets Budgets
}

// IsGlobal reports whether the activity can be used with any project.
func (a *Activity) IsGlobal() bool {
	return a.Project == nil
}

// Project groups activities under a customer and may restrict the time
// range entries can be booked into.
type Project struct {
	ID       int64
	Name     string
	Customer *Customer
	Visible  bool
	// Start and End bound the validity window of the project. Either may
	// be nil for an open side.
	Start   *time.Time
	End     *time.Time
	Budgets Budgets
}

// Customer is the coarsest budget-bearing scope.
type Customer struct {
	ID       int64
	Name     string
	Visible  bool
	Currency string
	Timezone string
	Budgets  Budgets
}

// Location resolves the customer's configured timezone, falling back to
// UTC when unset or unknown.
func (c *Customer) Location() *time.Location {
	if c == nil || c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
