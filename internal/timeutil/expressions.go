package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date expressions appear in operator-supplied configuration (lockdown
// boundaries). Absolute timestamps and a small set of relative phrases
// are accepted; anything else is a parse error that callers are expected
// to treat as "not configured".

var relativeDayRegex = regexp.MustCompile(`^(first|last) day of (this|last|next) month$`)

var absoluteLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDateExpression resolves expr relative to now in loc.
func ParseDateExpression(expr string, now time.Time, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	expr = strings.TrimSpace(strings.ToLower(expr))
	if expr == "" {
		return time.Time{}, fmt.Errorf("empty date expression")
	}

	if m := relativeDayRegex.FindStringSubmatch(expr); m != nil {
		month := MonthWindow(now, loc)
		switch m[2] {
		case "last":
			month = MonthWindow(month.Start.AddDate(0, 0, -1), loc)
		case "next":
			month = MonthWindow(month.End, loc)
		}
		if m[1] == "first" {
			return month.Start, nil
		}
		return month.End.AddDate(0, 0, -1), nil
	}

	for _, layout := range absoluteLayouts {
		if t, err := time.ParseInLocation(layout, expr, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unparseable date expression: %q", expr)
}

var dayPeriodRegex = regexp.MustCompile(`^\+?\s*(\d+)\s*days?$`)

// ParseGracePeriod accepts Go duration syntax ("240h") or a day count
// ("10 days", "+10 days").
func ParseGracePeriod(s string) (time.Duration, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, nil
	}
	if m := dayPeriodRegex.FindStringSubmatch(s); m != nil {
		days, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, err
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}
