package validation

import (
	"context"
	"time"

	"timegate/internal/domain"
	"timegate/internal/logging"
	"timegate/internal/timeutil"
)

// checkLockdown blocks edits whose begin date falls inside the
// configured lockdown period. Operators supply the boundaries as date
// expressions; anything unparseable silently disables the lockdown, a
// broken configuration must never break user-facing validation.
func checkLockdown(_ context.Context, entry *domain.Timesheet, rctx *Context, res *Result) error {
	lockdown := rctx.Config.Lockdown
	if !lockdown.IsConfigured() || entry.Begin.IsZero() {
		return nil
	}
	if rctx.Permissions.LockdownOverride {
		return nil
	}

	loc := lockdown.Location()
	now := rctx.Now

	var periodStart, periodEnd time.Time
	if lockdown.PeriodStart != "" {
		start, err := timeutil.ParseDateExpression(lockdown.PeriodStart, now, loc)
		if err != nil {
			logging.Debugf("lockdown disabled, bad period_start: %v\n", err)
			return nil
		}
		periodStart = timeutil.StartOfDay(start)
	}
	if lockdown.PeriodEnd != "" {
		end, err := timeutil.ParseDateExpression(lockdown.PeriodEnd, now, loc)
		if err != nil {
			logging.Debugf("lockdown disabled, bad period_end: %v\n", err)
			return nil
		}
		periodEnd = timeutil.EndOfDay(end)
	}

	// without an end there is nothing the grace period could attach to;
	// treat a start-only lockdown as closing at the start boundary
	if periodEnd.IsZero() {
		if periodStart.IsZero() {
			return nil
		}
		periodEnd = periodStart
		periodStart = time.Time{}
	}

	if entry.Begin.After(periodEnd) {
		return nil
	}
	if !periodStart.IsZero() && timeutil.IsBefore(entry.Begin, periodStart) {
		return nil
	}

	if rctx.Permissions.LockdownGrace {
		grace, err := timeutil.ParseGracePeriod(lockdown.GracePeriod)
		if err != nil {
			logging.Debugf("lockdown grace ignored, bad grace_period: %v\n", err)
			grace = 0
		}
		if !now.After(periodEnd.Add(grace)) {
			return nil
		}
	}

	res.Add(FieldBeginDate, CodePeriodLocked, "This period is locked and cannot be changed anymore.")
	return nil
}
