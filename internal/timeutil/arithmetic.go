package timeutil

import (
	"time"
)

// Duration returns the span between begin and end. For a running entry
// (no end) the caller decides what "now" means, so there is no variant
// taking a nil end here.
func Duration(begin, end time.Time) time.Duration {
	return end.Sub(begin)
}

// Seconds returns the worked seconds between begin and end after
// subtracting break time. The result can be negative when the break
// exceeds the span; callers validate that separately.
func Seconds(begin, end time.Time, breakSeconds int64) int64 {
	return int64(end.Sub(begin).Seconds()) - breakSeconds
}

// Overlaps reports whether two closed-open intervals intersect.
// A nil end means the interval is open-ended and extends forever.
func Overlaps(aBegin time.Time, aEnd *time.Time, bBegin time.Time, bEnd *time.Time) bool {
	if aEnd != nil && !bBegin.Before(*aEnd) {
		return false
	}
	if bEnd != nil && !aBegin.Before(*bEnd) {
		return false
	}
	return true
}

// IsInFuture reports whether instant lies after now. time.Time compares
// on the absolute instant, so entries keep their display location while
// the comparison is effectively in UTC.
func IsInFuture(instant, now time.Time) bool {
	return instant.After(now)
}

// IsBefore reports whether a lies strictly before b.
func IsBefore(a, b time.Time) bool {
	return a.Before(b)
}

// Window is a closed-open time interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// MonthWindow returns the calendar month containing t, evaluated in loc.
// The window is closed-open: it ends at the first instant of the next month.
func MonthWindow(t time.Time, loc *time.Location) Window {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	return Window{Start: start, End: start.AddDate(0, 1, 0)}
}

// EndOfDay returns the last second of the day containing t, in t's location.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// StartOfDay returns the first instant of the day containing t, in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
