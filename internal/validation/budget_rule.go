package validation

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"timegate/internal/budget"
	"timegate/internal/domain"
	"timegate/internal/timeutil"
)

type budgetScope struct {
	field    string
	scope    budget.Scope
	budgets  domain.Budgets
	currency string
}

// checkBudget verifies that the candidate does not push any of its
// scopes over a configured ceiling. The projection is "consumed by
// everyone else, plus what this entry will consume after the edit":
// the candidate's stored contribution is excluded from the aggregate
// and its new figures added back, so editing never double counts.
func checkBudget(ctx context.Context, entry *domain.Timesheet, rctx *Context, res *Result) error {
	if rctx.Config.Timesheet.AllowOverbooking {
		return nil
	}
	if rctx.Budgets == nil || entry.Begin.IsZero() {
		return nil
	}

	// An edit that changes nothing budget-relevant is exempt, even when
	// the scope is already over budget. A moved date is not exempt.
	if rctx.Original != nil && sameBudgetFootprint(rctx.Original, entry, rctx.Now) {
		return nil
	}

	candidateSeconds := entry.CalculatedSeconds(rctx.Now)
	candidateAmount := entry.CalculatedRate(rctx.Now)

	currency := ""
	if entry.Project != nil && entry.Project.Customer != nil {
		currency = entry.Project.Customer.Currency
	}

	var scopes []budgetScope
	if entry.Activity != nil {
		scopes = append(scopes, budgetScope{
			field:    FieldActivity,
			scope:    budget.Scope{Kind: budget.ScopeActivity, ID: entry.Activity.ID},
			budgets:  entry.Activity.Budgets,
			currency: currency,
		})
	}
	if entry.Project != nil {
		scopes = append(scopes, budgetScope{
			field:    FieldProject,
			scope:    budget.Scope{Kind: budget.ScopeProject, ID: entry.Project.ID},
			budgets:  entry.Project.Budgets,
			currency: currency,
		})
		if entry.Project.Customer != nil {
			scopes = append(scopes, budgetScope{
				field:    FieldCustomer,
				scope:    budget.Scope{Kind: budget.ScopeCustomer, ID: entry.Project.Customer.ID},
				budgets:  entry.Project.Customer.Budgets,
				currency: currency,
			})
		}
	}

	calc := budget.NewCalculator(rctx.Budgets, rctx.Config.Timesheet.Location())

	for _, s := range scopes {
		// unlimited budgets can never be violated, skip the query
		if !s.budgets.HasTimeBudget() && !s.budgets.HasMoneyBudget() {
			continue
		}
		// defer to a violation another rule already put on this scope
		if res.HasFieldViolation(s.field) {
			continue
		}

		stat, err := calc.Statistic(ctx, s.scope, s.budgets, entry.Begin, entry.ID)
		if err != nil {
			return err
		}

		if s.budgets.HasTimeBudget() &&
			stat.Consumed.DurationSeconds+candidateSeconds > s.budgets.TimeBudgetSeconds {
			res.AddViolation(Violation{
				Field:   s.field,
				Code:    CodeBudgetUsed,
				Message: "The chosen date range exceeds the remaining time budget.",
				Params: map[string]string{
					"used":   timeutil.FormatHoursMinutes(stat.Consumed.DurationSeconds),
					"free":   timeutil.FormatHoursMinutes(clampSeconds(stat.TimeRemaining())),
					"budget": timeutil.FormatHoursMinutes(s.budgets.TimeBudgetSeconds),
				},
			})
			continue
		}

		if s.budgets.HasMoneyBudget() &&
			stat.Consumed.Amount.Add(candidateAmount).GreaterThan(s.budgets.MoneyBudget) {
			free := stat.MoneyRemaining()
			if free.IsNegative() {
				free = decimal.Zero
			}
			res.AddViolation(Violation{
				Field:   s.field,
				Code:    CodeBudgetUsed,
				Message: "The chosen date range exceeds the remaining monetary budget.",
				Params: map[string]string{
					"used":   budget.FormatMoney(stat.Consumed.Amount, s.currency),
					"free":   budget.FormatMoney(free, s.currency),
					"budget": budget.FormatMoney(s.budgets.MoneyBudget, s.currency),
				},
			})
		}
	}
	return nil
}

// sameBudgetFootprint reports whether two versions of an entry consume
// budgets identically: same dates, same duration, same amount.
func sameBudgetFootprint(a, b *domain.Timesheet, now time.Time) bool {
	if !a.Begin.Equal(b.Begin) {
		return false
	}
	if (a.End == nil) != (b.End == nil) {
		return false
	}
	if a.End != nil && !a.End.Equal(*b.End) {
		return false
	}
	return a.CalculatedSeconds(now) == b.CalculatedSeconds(now) &&
		a.CalculatedRate(now).Equal(b.CalculatedRate(now))
}

func clampSeconds(s int64) int64 {
	if s < 0 {
		return 0
	}
	return s
}
