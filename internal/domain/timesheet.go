package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"timegate/internal/timeutil"
)

// Timesheet represents a single tracked work record. This is a pure
// domain model without database-specific concerns; an ID of zero means
// the record has not been persisted yet.
type Timesheet struct {
	ID           int64
	User         *User
	Activity     *Activity
	Project      *Project
	Begin        time.Time
	End          *time.Time
	BreakSeconds int64
	// Duration is the explicit duration in seconds, set by duration-only
	// tracking. When nil the duration is derived from begin/end.
	Duration    *int64
	Description string
	Tags        []string
	Billable    bool
	Exported    bool
	// Rate is the monetary amount stored when the entry was saved.
	// Historical rates are never recomputed.
	Rate       decimal.Decimal
	HourlyRate *decimal.Decimal
	FixedRate  *decimal.Decimal
}

// NewTimesheet creates an unsaved running entry for the given user.
func NewTimesheet(user *User, begin time.Time) *Timesheet {
	return &Timesheet{User: user, Begin: begin}
}

// IsNew reports whether the entry has no persisted identity yet.
func (t *Timesheet) IsNew() bool {
	return t.ID == 0
}

// IsRunning reports whether the entry is still being tracked.
func (t *Timesheet) IsRunning() bool {
	return t.End == nil
}

// CalculatedSeconds returns the worked seconds of the entry. An explicit
// duration wins; otherwise it is derived from begin/end minus break.
// Running entries are measured against now.
func (t *Timesheet) CalculatedSeconds(now time.Time) int64 {
	if t.Duration != nil {
		return *t.Duration
	}
	end := now
	if t.End != nil {
		end = *t.End
	}
	return timeutil.Seconds(t.Begin, end, t.BreakSeconds)
}

// CalculatedRate returns the monetary amount the entry will be worth
// after saving. A fixed rate wins over an hourly rate; without either
// override the already stored rate stands.
func (t *Timesheet) CalculatedRate(now time.Time) decimal.Decimal {
	if t.FixedRate != nil {
		return *t.FixedRate
	}
	if t.HourlyRate != nil {
		hours := decimal.NewFromInt(t.CalculatedSeconds(now)).Div(decimal.NewFromInt(3600))
		return t.HourlyRate.Mul(hours)
	}
	return t.Rate
}

// Stop finishes the entry at the given time.
func (t *Timesheet) Stop(end time.Time) {
	t.End = &end
}

// Restart returns a fresh running copy of the entry: same user, scope,
// description and tags, but no identity, no end, no stored rate and the
// exported flag cleared.
func (t *Timesheet) Restart(begin time.Time) *Timesheet {
	return &Timesheet{
		User:        t.User,
		Activity:    t.Activity,
		Project:     t.Project,
		Begin:       begin,
		Description: t.Description,
		Tags:        append([]string(nil), t.Tags...),
		Billable:    t.Billable,
		HourlyRate:  t.HourlyRate,
		FixedRate:   t.FixedRate,
	}
}
