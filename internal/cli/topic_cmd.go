package cli

import (
	"context"
	"fmt"

	"github.com/mkaminska/studycal/internal/cli/formatter"
	"github.com/mkaminska/studycal/internal/domain"
	"github.com/spf13/cobra"
)

func newTopicCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topic",
		Short: "Manage study topics",
	}

	cmd.AddCommand(
		newTopicAddCmd(app),
		newTopicListCmd(app),
		newTopicRenameCmd(app),
		newTopicArchiveCmd(app),
		newTopicRemoveCmd(app),
		newTopicStatsCmd(app),
	)

	return cmd
}

func newTopicAddCmd(app *App) *cobra.Command {
	var title, color string

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Create a study topic",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if len(args) > 0 {
				title = args[0]
			}

			// No title on an attached terminal: collect via the form.
			if title == "" && app.interactive() {
				var err error
				title, color, err = runTopicForm(title, color)
				if err != nil {
					return err
				}
			}
			if title == "" {
				return fmt.Errorf("topic title is required")
			}
			color = domain.CoalesceStr(color, string(domain.ColorBlue))

			topic, err := app.Topics.Create(ctx, title, domain.ColorCode(color))
			if err != nil {
				return err
			}

			fmt.Printf("Created topic %s (%s)\n",
				formatter.TopicSwatch(topic.Color, topic.Title), formatter.TruncID(topic.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "Topic color (red, orange, yellow, green, blue, purple, pink, gray)")

	return cmd
}

func newTopicListCmd(app *App) *cobra.Command {
	var includeArchived bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List study topics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			topics, err := app.Topics.List(ctx, includeArchived)
			if err != nil {
				return err
			}
			if len(topics) == 0 {
				fmt.Println("No topics found.")
				return nil
			}

			headers := []string{"ID", "TOPIC", "STUDIED"}
			rows := make([][]string, 0, len(topics))
			for _, t := range topics {
				total, err := app.Topics.TotalStudiedMS(ctx, t.ID)
				if err != nil {
					return err
				}
				title := formatter.TopicSwatch(t.Color, t.Title)
				if t.ArchivedAt != nil {
					title += formatter.Dim(" (archived)")
				}
				rows = append(rows, []string{
					formatter.TruncID(t.ID),
					title,
					formatter.Duration(total),
				})
			}

			fmt.Print(formatter.RenderBox("Topics", formatter.RenderTable(headers, rows)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeArchived, "all", false, "Include archived topics")

	return cmd
}

func newTopicRenameCmd(app *App) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "rename <id> <title>",
		Short: "Rename a topic",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			topic, err := app.Topics.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			topic.Title = args[1]
			if color != "" {
				topic.Color = domain.ColorCode(color)
			}
			if err := app.Topics.Update(ctx, topic); err != nil {
				return err
			}
			fmt.Printf("Updated topic %s\n", formatter.TopicSwatch(topic.Color, topic.Title))
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "New topic color")

	return cmd
}

func newTopicArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive <id>",
		Short: "Archive a topic, hiding it from the default list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Topics.Archive(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Archived topic %s\n", formatter.TruncID(args[0]))
			return nil
		},
	}
}

func newTopicRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a topic and all of its sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Topics.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted topic %s\n", formatter.TruncID(args[0]))
			return nil
		},
	}
}

func newTopicStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <id>",
		Short: "Show total study time for a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			topic, err := app.Topics.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			total, err := app.Topics.TotalStudiedMS(ctx, topic.ID)
			if err != nil {
				return err
			}
			sessions, err := app.Sessions.ListByTopic(ctx, topic.ID)
			if err != nil {
				return err
			}

			content := fmt.Sprintf("%s\n\n%s %s\n%s %d",
				formatter.TopicSwatch(topic.Color, topic.Title),
				formatter.Bold("Total studied:"), formatter.Duration(total),
				formatter.Bold("Sessions:"), len(sessions))
			fmt.Print(formatter.RenderBox("", content))
			return nil
		},
	}
}
