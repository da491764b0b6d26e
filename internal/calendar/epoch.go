package calendar

import (
	"time"

	"github.com/mkaminska/studycal/internal/domain"
)

// Millisecond spans used throughout the calendar math.
const (
	MSPerSecond int64 = 1000
	MSPerMinute int64 = 60 * MSPerSecond
	MSPerHour   int64 = 60 * MSPerMinute
	MSPerDay    int64 = 24 * MSPerHour
	MSPerWeek   int64 = 7 * MSPerDay
)

// DayIndex returns the number of calendar days between the civil date of the
// instant in loc and 1970-01-01. Two instants on the same local calendar day
// map to the same index even when their UTC dates differ.
func DayIndex(ms int64, loc *time.Location) int {
	y, m, d := time.UnixMilli(ms).In(loc).Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// DateFromDayIndex reconstructs local midnight of the given day index in loc.
// Inverse of DayIndex: DayIndex(DateFromDayIndex(i, loc).UnixMilli(), loc) == i
// for every index, including across DST transitions.
func DateFromDayIndex(dayIndex int, loc *time.Location) time.Time {
	y, m, d := time.Unix(int64(dayIndex)*86400, 0).UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DayStartMS returns the first millisecond of the day in loc.
func DayStartMS(dayIndex int, loc *time.Location) int64 {
	return DateFromDayIndex(dayIndex, loc).UnixMilli()
}

// DayEndMS returns the last millisecond of the day in loc (23:59:59.999
// local). Defined as the millisecond before the next day's start, so DST
// days of 23 or 25 hours still partition time with no gap or overlap.
func DayEndMS(dayIndex int, loc *time.Location) int64 {
	return DayStartMS(dayIndex+1, loc) - 1
}

// WeekStartAndEndMS computes, in UTC, the Sunday 00:00:00.000 through
// Saturday 23:59:59.999 bounding the UTC calendar date of the instant.
// Correct for dates before the epoch (negative millisecond results).
func WeekStartAndEndMS(ms int64) (startMS, endMS int64) {
	t := time.UnixMilli(ms).UTC()
	y, m, d := t.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	weekStart := dayStart.AddDate(0, 0, -int(t.Weekday()))
	startMS = weekStart.UnixMilli()
	endMS = startMS + MSPerWeek - 1
	return startMS, endMS
}

// WeekNumberSinceEpoch returns floor(weekStart / msPerWeek). Week 0 begins
// Sunday 1970-01-04; the epoch itself (a Thursday) falls in week -1. Floor
// division keeps pre-epoch weeks distinct instead of colliding around zero.
func WeekNumberSinceEpoch(ms int64) int {
	start, _ := WeekStartAndEndMS(ms)
	return int(floorDiv(start, MSPerWeek))
}

// GridColumnCount returns the number of day columns rendered for a display
// mode: 1 for day, 7 for week, and the number of days in the month of `at`
// for month mode.
func GridColumnCount(mode domain.DisplayMode, at time.Time) int {
	switch mode {
	case domain.ModeDay:
		return 1
	case domain.ModeMonth:
		y, m, _ := at.Date()
		// Day zero of the next month is the last day of this one.
		return time.Date(y, m+1, 0, 0, 0, 0, 0, at.Location()).Day()
	default:
		return 7
	}
}

// floorDiv divides rounding toward negative infinity, which Go's integer
// division does not do for negative operands.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
