package calendar

import (
	"fmt"
	"strings"
)

// FormatDuration renders a millisecond span as "H hours, M minutes",
// omitting zero components and flooring to whole minutes. Zero and
// sub-minute spans render as "0 minutes".
func FormatDuration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	hours := ms / MSPerHour
	minutes := (ms % MSPerHour) / MSPerMinute

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", hours, pluralize("hour", hours)))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", minutes, pluralize("minute", minutes)))
	}
	if len(parts) == 0 {
		return "0 minutes"
	}
	return strings.Join(parts, ", ")
}

// FormatClock renders an elapsed millisecond span as "H:MM:SS".
func FormatClock(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	hours := ms / MSPerHour
	minutes := (ms % MSPerHour) / MSPerMinute
	seconds := (ms % MSPerMinute) / MSPerSecond
	return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
}

func pluralize(unit string, n int64) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
