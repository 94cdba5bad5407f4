package timeutil

import (
	"fmt"
)

// FormatHoursMinutes renders seconds as "H:MM", flooring to whole
// minutes. The raw seconds stay exact everywhere else; this is only for
// human-readable message parameters.
func FormatHoursMinutes(seconds int64) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	minutes := seconds / 60
	return fmt.Sprintf("%s%d:%02d", sign, minutes/60, minutes%60)
}
