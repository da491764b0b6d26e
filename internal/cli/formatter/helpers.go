package formatter

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mkaminska/studycal/internal/calendar"
)

// TruncID shortens a UUID to its first 8 characters for table display.
func TruncID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// ClockTime renders a millisecond timestamp as a local wall-clock time.
func ClockTime(ms int64, loc *time.Location) string {
	return time.UnixMilli(ms).In(loc).Format("15:04")
}

// DayDate renders a millisecond timestamp as a local calendar date.
func DayDate(ms int64, loc *time.Location) string {
	return time.UnixMilli(ms).In(loc).Format("Mon Jan 2, 2006")
}

// TimeRange renders a start/end pair as "9:00–10:30"; live sessions get
// a styled "now" end.
func TimeRange(startMS int64, endMS *int64, loc *time.Location) string {
	start := ClockTime(startMS, loc)
	if endMS == nil {
		return start + "–" + StyleGreen.Render("now")
	}
	return start + "–" + ClockTime(*endMS, loc)
}

// Duration renders a millisecond span in the "2 hours, 5 minutes" form.
func Duration(ms int64) string {
	return calendar.FormatDuration(ms)
}

// Stopwatch renders a millisecond span as a running h:mm:ss clock.
func Stopwatch(ms int64) string {
	return calendar.FormatClock(ms)
}
