package validation

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"timegate/internal/budget"
	"timegate/internal/config"
	"timegate/internal/domain"
	"timegate/internal/timeutil"
)

// fixed "now" used across the rule tests
var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return config.NewConfig()
}

func testContext(cfg *config.Config) *Context {
	return &Context{
		Config:      cfg,
		Permissions: DefaultPermissions(),
		Now:         testNow,
	}
}

// testEntry builds a finished one-hour entry on a fully visible scope
// hierarchy, beginning two hours before testNow.
func testEntry() *domain.Timesheet {
	customer := &domain.Customer{ID: 1, Name: "acme", Visible: true, Currency: "EUR"}
	project := &domain.Project{ID: 1, Name: "website", Customer: customer, Visible: true}
	activity := &domain.Activity{ID: 1, Name: "development", Project: project, Visible: true}

	begin := testNow.Add(-2 * time.Hour)
	end := begin.Add(time.Hour)
	return &domain.Timesheet{
		User:     &domain.User{ID: 1, Name: "alice"},
		Activity: activity,
		Project:  project,
		Begin:    begin,
		End:      &end,
	}
}

type overlapCall struct {
	userID    int64
	begin     time.Time
	end       *time.Time
	excludeID int64
}

type fakeOverlaps struct {
	result bool
	err    error
	calls  []overlapCall
}

func (f *fakeOverlaps) HasOverlappingEntry(_ context.Context, userID int64, begin time.Time, end *time.Time, excludeEntryID int64) (bool, error) {
	f.calls = append(f.calls, overlapCall{userID, begin, end, excludeEntryID})
	return f.result, f.err
}

type consumedCall struct {
	scope     budget.Scope
	window    *timeutil.Window
	excludeID int64
}

type fakeBudgetSource struct {
	usage map[budget.Scope]budget.Usage
	err   error
	calls []consumedCall
}

func (f *fakeBudgetSource) Consumed(_ context.Context, scope budget.Scope, window *timeutil.Window, excludeEntryID int64) (budget.Usage, error) {
	f.calls = append(f.calls, consumedCall{scope, window, excludeEntryID})
	if f.err != nil {
		return budget.Usage{}, f.err
	}
	return f.usage[scope], nil
}

func decimalPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func int64Ptr(v int64) *int64 {
	return &v
}

func runRule(check CheckFunc, entry *domain.Timesheet, rctx *Context) *Result {
	res := &Result{}
	if err := check(context.Background(), entry, rctx, res); err != nil {
		panic(err)
	}
	return res
}
