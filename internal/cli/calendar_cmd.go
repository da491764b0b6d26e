package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mkaminska/studycal/internal/calendar"
	"github.com/mkaminska/studycal/internal/cli/formatter"
	"github.com/mkaminska/studycal/internal/domain"
	"github.com/spf13/cobra"
)

func newCalendarCmd(app *App) *cobra.Command {
	var mode domain.DisplayMode
	var date string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show the study calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			loc := app.Calendar.Location()

			prefs, err := app.Prefs.Get(ctx)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("mode") {
				prefs.DisplayMode = mode
			}

			focusDay := calendar.DayIndex(app.Calendar.Now(), loc)
			if date != "" {
				t, err := time.ParseInLocation("2006-01-02", date, loc)
				if err != nil {
					return fmt.Errorf("parsing --date: %w", err)
				}
				focusDay = calendar.DayIndex(t.UnixMilli(), loc)
			}

			if app.interactive() {
				p := tea.NewProgram(newCalendarModel(app, prefs, focusDay), tea.WithAltScreen())
				_, err := p.Run()
				return err
			}
			return printCalendarText(ctx, app, prefs, focusDay)
		},
	}

	cmd.Flags().Var(newDisplayModeValue(domain.ModeWeek, &mode), "mode", "Display mode (day, week, month)")
	cmd.Flags().StringVar(&date, "date", "", "Date to focus (2006-01-02, default today)")

	return cmd
}

// printCalendarText is the non-terminal fallback: one table per day with a
// row per slice, columns included so overlaps are visible.
func printCalendarText(ctx context.Context, app *App, prefs domain.ViewPrefs, focusDay int) error {
	loc := app.Calendar.Location()
	days := visibleDayIndices(prefs, focusDay, loc)

	startMS := calendar.DayStartMS(days[0], loc)
	endMS := calendar.DayEndMS(days[len(days)-1], loc)
	if _, err := app.Calendar.Refresh(ctx, startMS, endMS); err != nil {
		return err
	}

	now := app.Calendar.Now()
	for _, d := range days {
		slices := app.Calendar.Day(d)
		if len(slices) == 0 {
			continue
		}

		headers := []string{"TIME", "TOPIC", "DURATION", "COL"}
		rows := make([][]string, 0, len(slices))
		var total int64
		for _, cs := range slices {
			end := cs.SliceEndMS
			var endPtr *int64
			if !cs.TracksNow {
				endPtr = &end
			}
			rows = append(rows, []string{
				formatter.TimeRange(cs.SliceStartMS, endPtr, loc),
				formatter.TopicSwatch(cs.Session.Color, cs.Session.TopicTitle),
				formatter.Duration(cs.DurationMS(now)),
				fmt.Sprintf("%d/%d", cs.ColumnIndex+1, cs.LocalMaxColumn+1),
			})
			total += cs.DurationMS(now)
		}

		title := formatter.DayDate(calendar.DayStartMS(d, loc), loc)
		fmt.Print(formatter.RenderBox(title, formatter.RenderTable(headers, rows)+
			"\n"+formatter.Dim("Total: "+formatter.Duration(total))))
		fmt.Println()
	}
	return nil
}

// visibleDayIndices mirrors the TUI's day window for the text fallback.
func visibleDayIndices(prefs domain.ViewPrefs, focusDay int, loc *time.Location) []int {
	switch prefs.DisplayMode {
	case domain.ModeDay:
		return []int{focusDay}
	case domain.ModeMonth:
		focus := calendar.DateFromDayIndex(focusDay, loc)
		first := time.Date(focus.Year(), focus.Month(), 1, 0, 0, 0, 0, loc)
		n := calendar.GridColumnCount(domain.ModeMonth, first)
		start := calendar.DayIndex(first.UnixMilli(), loc)
		days := make([]int, n)
		for i := range days {
			days[i] = start + i
		}
		return days
	default:
		focus := calendar.DateFromDayIndex(focusDay, loc)
		offset := (int(focus.Weekday()) - prefs.WeekStartsOn + 7) % 7
		days := make([]int, 7)
		for i := range days {
			days[i] = focusDay - offset + i
		}
		return days
	}
}
