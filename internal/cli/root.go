package cli

import (
	"github.com/mkaminska/studycal/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Topics   service.TopicService
	Sessions service.SessionService
	Prefs    service.PrefsService
	Calendar service.CalendarService

	// IsInteractive reports whether stdin is attached to a terminal;
	// commands fall back to flag-only operation when it returns false.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "studycal" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "studycal",
		Short: "Study time tracker with a terminal calendar",
	}

	root.AddCommand(
		newTopicCmd(app),
		newSessionCmd(app),
		newCalendarCmd(app),
		newPrefsCmd(app),
	)

	return root
}
