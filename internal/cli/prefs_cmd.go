package cli

import (
	"context"
	"fmt"

	"github.com/mkaminska/studycal/internal/cli/formatter"
	"github.com/mkaminska/studycal/internal/domain"
	"github.com/spf13/cobra"
)

func newPrefsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "View and change calendar preferences",
	}

	cmd.AddCommand(
		newPrefsShowCmd(app),
		newPrefsSetCmd(app),
	)

	return cmd
}

func newPrefsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Prefs.Get(context.Background())
			if err != nil {
				return err
			}
			content := fmt.Sprintf("%s %s\n%s %s\n%s %d\n%s %.0fpx",
				formatter.Bold("Display mode:"), p.DisplayMode,
				formatter.Bold("Week starts on:"), weekdayName(p.WeekStartsOn),
				formatter.Bold("Zoom level:"), p.ZoomLevel,
				formatter.Bold("Cell height:"), p.CellHeightPx)
			fmt.Print(formatter.RenderBox("Preferences", content))
			return nil
		},
	}
}

func newPrefsSetCmd(app *App) *cobra.Command {
	var mode domain.DisplayMode
	var weekStart, zoom int
	var cellHeight float64

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := app.Prefs.Get(ctx)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("mode") {
				p.DisplayMode = mode
			}
			if cmd.Flags().Changed("week-start") {
				p.WeekStartsOn = weekStart
			}
			if cmd.Flags().Changed("zoom") {
				p.ZoomLevel = zoom
			}
			if cmd.Flags().Changed("cell-height") {
				p.CellHeightPx = cellHeight
			}

			stored, err := app.Prefs.Update(ctx, p)
			if err != nil {
				return err
			}
			fmt.Printf("Preferences saved: %s, zoom %d, %.0fpx cells, week starts %s\n",
				stored.DisplayMode, stored.ZoomLevel, stored.CellHeightPx,
				weekdayName(stored.WeekStartsOn))
			return nil
		},
	}

	cmd.Flags().Var(newDisplayModeValue(domain.ModeWeek, &mode), "mode", "Display mode (day, week, month)")
	cmd.Flags().IntVar(&weekStart, "week-start", 0, "First weekday of the week (0 = Sunday .. 6 = Saturday)")
	cmd.Flags().IntVar(&zoom, "zoom", 2, "Zoom level (1-11)")
	cmd.Flags().Float64Var(&cellHeight, "cell-height", domain.DefaultCellHeightPx, "Hour cell height in pixels")

	return cmd
}

func weekdayName(d int) string {
	names := []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	if d < 0 || d >= len(names) {
		return "Sunday"
	}
	return names[d]
}
