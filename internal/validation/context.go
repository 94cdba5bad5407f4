package validation

import (
	"context"
	"time"

	"timegate/internal/budget"
	"timegate/internal/config"
	"timegate/internal/domain"
)

// Permissions are the caller's resolved permission flags. The engine
// never looks permissions up itself; the caller resolves them before
// validating.
type Permissions struct {
	// EditExported allows changing entries already marked exported.
	EditExported bool
	// LockdownOverride allows editing inside the lockdown period.
	LockdownOverride bool
	// LockdownGrace allows editing inside the lockdown period while the
	// grace period has not elapsed yet.
	LockdownGrace bool

	// Start permissions per tracking mode.
	StartDefault      bool
	StartDurationOnly bool
	StartPunch        bool
}

// CanStart reports whether the caller may start a new running entry in
// the given tracking mode.
func (p Permissions) CanStart(mode domain.TrackingMode) bool {
	switch mode {
	case domain.TrackingModeDurationOnly:
		return p.StartDurationOnly
	case domain.TrackingModePunch:
		return p.StartPunch
	default:
		return p.StartDefault
	}
}

// AllPermissions returns a permission set with every flag granted.
func AllPermissions() Permissions {
	return Permissions{
		EditExported:      true,
		LockdownOverride:  true,
		LockdownGrace:     true,
		StartDefault:      true,
		StartDurationOnly: true,
		StartPunch:        true,
	}
}

// DefaultPermissions returns the flags of an ordinary user: allowed to
// start entries in any mode, no override permissions.
func DefaultPermissions() Permissions {
	return Permissions{
		StartDefault:      true,
		StartDurationOnly: true,
		StartPunch:        true,
	}
}

// OverlapChecker answers whether a persisted entry of the same user
// intersects a candidate interval. excludeEntryID removes the candidate
// itself from the check when it is already persisted.
type OverlapChecker interface {
	HasOverlappingEntry(ctx context.Context, userID int64, begin time.Time, end *time.Time, excludeEntryID int64) (bool, error)
}

// Context is the read-only bundle a validation call runs against.
// Everything is resolved eagerly by the caller: configuration snapshot,
// permissions, the persisted original of the candidate, and the
// repository accessors. Rules never trigger hidden lookups beyond the
// two declared query interfaces.
type Context struct {
	Config      *config.Config
	Permissions Permissions

	// Now anchors every "current time" comparison, so results are
	// reproducible and lockdown checks are testable.
	Now time.Time

	// Original is the persisted state of the candidate when editing;
	// nil when creating. The exported lock and the budget
	// grandfathering compare against it.
	Original *domain.Timesheet

	// Overlaps and Budgets are the repository accessors. A rule whose
	// accessor is nil is skipped; the collaborator decides which checks
	// it can answer.
	Overlaps OverlapChecker
	Budgets  budget.Source
}
