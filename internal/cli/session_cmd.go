package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mkaminska/studycal/internal/calendar"
	"github.com/mkaminska/studycal/internal/cli/formatter"
	"github.com/mkaminska/studycal/internal/domain"
	"github.com/mkaminska/studycal/internal/repository"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Track study sessions",
	}

	cmd.AddCommand(
		newSessionStartCmd(app),
		newSessionStopCmd(app),
		newSessionStatusCmd(app),
		newSessionLogCmd(app),
		newSessionListCmd(app),
		newSessionRemoveCmd(app),
	)

	return cmd
}

func newSessionStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start <topic-id>",
		Short: "Start the live session clock on a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.Sessions.Start(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Started %s at %s\n",
				formatter.TopicSwatch(sess.Color, sess.TopicTitle),
				formatter.ClockTime(sess.StartMS, app.Calendar.Location()))
			return nil
		},
	}
}

func newSessionStopCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.Sessions.Stop(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("Stopped %s after %s\n",
				formatter.TopicSwatch(sess.Color, sess.TopicTitle),
				formatter.Duration(sess.DurationMS(app.Calendar.Now())))
			return nil
		},
	}
}

func newSessionStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running session, if any",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.Sessions.Active(context.Background())
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					fmt.Println("No session running.")
					return nil
				}
				return err
			}
			fmt.Printf("%s %s  %s elapsed\n",
				formatter.StatusIndicator(sess.Status),
				formatter.TopicSwatch(sess.Color, sess.TopicTitle),
				formatter.Stopwatch(sess.DurationMS(app.Calendar.Now())))
			return nil
		},
	}
}

func newSessionLogCmd(app *App) *cobra.Command {
	var topicID, from, to string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record an already-finished session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			loc := app.Calendar.Location()

			// Unflagged on an attached terminal: collect via the form.
			if topicID == "" && app.interactive() {
				var err error
				topicID, from, to, err = runLogSessionForm(ctx, app)
				if err != nil {
					return err
				}
			}
			if topicID == "" || from == "" || to == "" {
				return fmt.Errorf("--topic, --from and --to are required")
			}

			startMS, err := parseLocalTime(from, loc)
			if err != nil {
				return fmt.Errorf("parsing --from: %w", err)
			}
			endMS, err := parseLocalTime(to, loc)
			if err != nil {
				return fmt.Errorf("parsing --to: %w", err)
			}

			sess, err := app.Sessions.Log(ctx, topicID, startMS, endMS)
			if err != nil {
				return err
			}
			fmt.Printf("Logged %s on %s (%s)\n",
				formatter.Duration(sess.DurationMS(endMS)),
				formatter.TopicSwatch(sess.Color, sess.TopicTitle),
				formatter.TruncID(sess.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&topicID, "topic", "", "Topic ID")
	cmd.Flags().StringVar(&from, "from", "", "Start time (2006-01-02 15:04)")
	cmd.Flags().StringVar(&to, "to", "", "End time (2006-01-02 15:04)")

	return cmd
}

func newSessionListCmd(app *App) *cobra.Command {
	var topicID string
	var days int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List study sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			loc := app.Calendar.Location()
			now := app.Calendar.Now()

			var sessions []*domain.StudySession
			var err error
			if topicID != "" {
				sessions, err = app.Sessions.ListByTopic(ctx, topicID)
			} else {
				sessions, err = app.Sessions.ListInRange(ctx, now-int64(days)*calendar.MSPerDay, now)
			}
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Println("No sessions found.")
				return nil
			}

			headers := []string{"ID", "TOPIC", "DATE", "TIME", "DURATION"}
			rows := make([][]string, 0, len(sessions))
			for _, s := range sessions {
				rows = append(rows, []string{
					formatter.TruncID(s.ID),
					formatter.TopicSwatch(s.Color, s.TopicTitle),
					formatter.DayDate(s.StartMS, loc),
					formatter.TimeRange(s.StartMS, s.EndMS, loc),
					formatter.Duration(s.DurationMS(now)),
				})
			}

			fmt.Print(formatter.RenderBox("Sessions", formatter.RenderTable(headers, rows)))
			return nil
		},
	}

	cmd.Flags().StringVar(&topicID, "topic", "", "Filter by topic ID")
	cmd.Flags().IntVar(&days, "days", 7, "Number of recent days to show")

	return cmd
}

func newSessionRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Calendar.RemoveSession(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted session %s\n", formatter.TruncID(args[0]))
			return nil
		},
	}
}

// parseLocalTime accepts "2006-01-02 15:04" or the bare time "15:04"
// (meaning today) in the viewer's location.
func parseLocalTime(s string, loc *time.Location) (int64, error) {
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, loc); err == nil {
		return t.UnixMilli(), nil
	}
	t, err := time.ParseInLocation("15:04", s, loc)
	if err != nil {
		return 0, err
	}
	now := time.Now().In(loc)
	t = time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, loc)
	return t.UnixMilli(), nil
}
