package validation

import (
	"context"

	"timegate/internal/domain"
	"timegate/internal/timeutil"
)

// absoluteMaxSeconds is the hard ceiling for a single entry, enforced
// independently of the configured long-running threshold.
const absoluteMaxSeconds = int64(365 * 24 * 3600)

func checkBeginRequired(_ context.Context, entry *domain.Timesheet, _ *Context, res *Result) error {
	if entry.Begin.IsZero() {
		res.Add(FieldBeginDate, CodeMissingBegin, "A begin date is required.")
	}
	return nil
}

func checkEndBeforeBegin(_ context.Context, entry *domain.Timesheet, _ *Context, res *Result) error {
	if entry.Begin.IsZero() || entry.End == nil {
		return nil
	}
	if timeutil.IsBefore(*entry.End, entry.Begin) {
		res.Add(FieldEndDate, CodeEndBeforeBegin, "The end date must not be earlier than the begin date.")
	}
	return nil
}

func checkFutureBegin(_ context.Context, entry *domain.Timesheet, rctx *Context, res *Result) error {
	if rctx.Config.Timesheet.AllowFutureTimes || entry.Begin.IsZero() {
		return nil
	}
	if timeutil.IsInFuture(entry.Begin, rctx.Now) {
		res.Add(FieldBeginDate, CodeBeginInFuture, "The begin date cannot be in the future.")
	}
	return nil
}

func checkZeroDuration(_ context.Context, entry *domain.Timesheet, rctx *Context, res *Result) error {
	if rctx.Config.Timesheet.AllowZeroDuration {
		return nil
	}
	// running entries are exempt, they will be checked again on stop
	if entry.Begin.IsZero() || entry.End == nil {
		return nil
	}
	if entry.End.Equal(entry.Begin) {
		res.Add(FieldDuration, CodeZeroDuration, "Duration cannot be zero.")
	}
	return nil
}

func checkNegativeDuration(_ context.Context, entry *domain.Timesheet, rctx *Context, res *Result) error {
	if entry.Duration != nil && *entry.Duration < 0 {
		res.Add(FieldDuration, CodeNegativeDuration, "Duration cannot be negative.")
		return nil
	}
	if entry.Begin.IsZero() || entry.End == nil {
		return nil
	}
	// the break can push the duration negative even with begin < end
	if entry.CalculatedSeconds(rctx.Now) < 0 {
		res.Add(FieldDuration, CodeNegativeDuration, "Duration cannot be negative.")
	}
	return nil
}

func checkLongRunning(_ context.Context, entry *domain.Timesheet, rctx *Context, res *Result) error {
	if entry.Begin.IsZero() {
		return nil
	}
	seconds := entry.CalculatedSeconds(rctx.Now)

	if seconds > absoluteMaxSeconds {
		res.Add(FieldDuration, CodeAbsoluteDurationExceeded, "Maximum duration of one year exceeded.")
		return nil
	}

	maxMinutes := rctx.Config.Timesheet.LongRunningMaxMinutes
	if maxMinutes <= 0 {
		return nil
	}
	if seconds > int64(maxMinutes)*60 {
		formatted := timeutil.FormatHoursMinutes(int64(maxMinutes) * 60)
		res.AddViolation(Violation{
			Field:   FieldDuration,
			Code:    CodeMaximumDurationExceeded,
			Message: "Maximum duration of " + formatted + " exceeded.",
			Params:  map[string]string{"maxDuration": formatted},
		})
	}
	return nil
}

func checkRestartPermission(_ context.Context, entry *domain.Timesheet, rctx *Context, res *Result) error {
	if !entry.IsNew() || !entry.IsRunning() {
		return nil
	}
	mode := rctx.Config.Timesheet.TrackingMode
	if rctx.Permissions.CanStart(mode) {
		return nil
	}

	field := FieldEnd
	switch mode {
	case domain.TrackingModeDurationOnly:
		field = FieldDuration
	case domain.TrackingModePunch:
		field = FieldStart
	}
	res.Add(field, CodeRestartNotAllowed, "You are not allowed to start this timesheet record.")
	return nil
}

func checkExportedLock(_ context.Context, entry *domain.Timesheet, rctx *Context, res *Result) error {
	// brand-new entries were never exported, nothing to protect
	if entry.IsNew() {
		return nil
	}
	exported := entry.Exported
	if rctx.Original != nil {
		exported = rctx.Original.Exported
	}
	if exported && !rctx.Permissions.EditExported {
		res.Add(FieldExported, CodeTimesheetExported, "This timesheet is already exported and cannot be changed.")
	}
	return nil
}
