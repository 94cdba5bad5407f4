package validation

import (
	"context"

	"timegate/internal/domain"
)

// checkOverlapping asks the repository whether another persisted entry
// of the same user intersects the candidate's interval. The query is
// skipped entirely when overlapping records are allowed.
func checkOverlapping(ctx context.Context, entry *domain.Timesheet, rctx *Context, res *Result) error {
	if rctx.Config.Timesheet.AllowOverlapping {
		return nil
	}
	if rctx.Overlaps == nil || entry.Begin.IsZero() || entry.User == nil {
		return nil
	}

	overlaps, err := rctx.Overlaps.HasOverlappingEntry(ctx, entry.User.ID, entry.Begin, entry.End, entry.ID)
	if err != nil {
		return err
	}
	if overlaps {
		res.Add(FieldBeginDate, CodeRecordOverlapping, "You already have an entry for this time.")
	}
	return nil
}
