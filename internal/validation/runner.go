package validation

import (
	"context"

	"timegate/internal/domain"
	"timegate/internal/logging"
)

// CheckFunc is a single business rule. It inspects the candidate and
// the read-only context and records violations on the result. It only
// returns an error for infrastructure failures (a repository query
// failing), never for business-rule failures.
type CheckFunc func(ctx context.Context, entry *domain.Timesheet, rctx *Context, res *Result) error

// Rule pairs a check with its stable name.
type Rule struct {
	Name  string
	Check CheckFunc
}

// Runner evaluates an ordered rule set against one candidate entry.
// Rules run in declared order and never short-circuit: the caller gets
// every violation at once. Violation ordering is therefore
// deterministic across calls.
type Runner struct {
	rules []Rule
}

// NewRunner creates a runner over the given rules. Registering a rule
// without a name or check is a programmer error and panics.
func NewRunner(rules ...Rule) *Runner {
	for _, r := range rules {
		if r.Name == "" || r.Check == nil {
			panic("validation: rule registered without name or check")
		}
	}
	return &Runner{rules: rules}
}

// NewTimesheetRunner creates a runner with the full default rule set.
func NewTimesheetRunner() *Runner {
	return NewRunner(DefaultRules()...)
}

// Validate runs every rule against the candidate and returns the
// collected violations. A nil candidate or context is a caller bug and
// panics; business failures always come back as data. The runner holds
// no state between calls and may be reused concurrently.
func (r *Runner) Validate(ctx context.Context, entry *domain.Timesheet, rctx *Context) (*Result, error) {
	if entry == nil {
		panic("validation: nil timesheet entry")
	}
	if rctx == nil || rctx.Config == nil {
		panic("validation: nil validation context")
	}

	res := &Result{}
	for _, rule := range r.rules {
		before := len(res.violations)
		if err := rule.Check(ctx, entry, rctx, res); err != nil {
			return nil, err
		}
		if added := len(res.violations) - before; added > 0 {
			logging.Debugf("rule %s recorded %d violation(s)\n", rule.Name, added)
		}
	}
	return res, nil
}

// DefaultRules returns the complete rule set in its fixed evaluation
// order. The budget rule runs last so it can inspect the violations
// the scope rules already recorded.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "begin_required", Check: checkBeginRequired},
		{Name: "activity_required", Check: checkActivityRequired},
		{Name: "project_required", Check: checkProjectRequired},
		{Name: "end_before_begin", Check: checkEndBeforeBegin},
		{Name: "activity_project_mismatch", Check: checkActivityProjectMismatch},
		{Name: "disabled_scopes", Check: checkDisabledScopes},
		{Name: "future_begin", Check: checkFutureBegin},
		{Name: "zero_duration", Check: checkZeroDuration},
		{Name: "negative_duration", Check: checkNegativeDuration},
		{Name: "long_running", Check: checkLongRunning},
		{Name: "overlapping", Check: checkOverlapping},
		{Name: "restart_permission", Check: checkRestartPermission},
		{Name: "exported_lock", Check: checkExportedLock},
		{Name: "lockdown", Check: checkLockdown},
		{Name: "project_window", Check: checkProjectWindow},
		{Name: "budget", Check: checkBudget},
	}
}
