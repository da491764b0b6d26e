package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mkaminska/studycal/internal/cli/formatter"
	"github.com/mkaminska/studycal/internal/domain"
)

// studycalHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func studycalHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func colorOptions() []huh.Option[string] {
	ordered := []domain.ColorCode{
		domain.ColorRed, domain.ColorOrange, domain.ColorYellow, domain.ColorGreen,
		domain.ColorBlue, domain.ColorPurple, domain.ColorPink, domain.ColorGray,
	}
	options := make([]huh.Option[string], 0, len(ordered))
	for _, c := range ordered {
		options = append(options, huh.NewOption(formatter.TopicStyle(c).Render(string(c)), string(c)))
	}
	return options
}

// runTopicForm collects a topic title and color interactively.
func runTopicForm(title, color string) (string, string, error) {
	color = domain.CoalesceStr(color, string(domain.ColorBlue))
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Topic Title").
				Placeholder("Linear Algebra").
				Value(&title).
				Validate(validateNonEmpty),
			huh.NewSelect[string]().
				Title("Color").
				Options(colorOptions()...).
				Value(&color),
		),
	).WithTheme(studycalHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return "", "", err
	}
	return title, color, nil
}

// runLogSessionForm collects a topic and a start/end pair interactively.
func runLogSessionForm(ctx context.Context, app *App) (topicID, from, to string, err error) {
	topics, err := app.Topics.List(ctx, false)
	if err != nil {
		return "", "", "", err
	}
	if len(topics) == 0 {
		return "", "", "", fmt.Errorf("no topics exist yet; create one with 'studycal topic add'")
	}

	options := make([]huh.Option[string], 0, len(topics))
	for _, t := range topics {
		options = append(options, huh.NewOption(formatter.TopicSwatch(t.Color, t.Title), t.ID))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Topic").
				Options(options...).
				Value(&topicID),
			huh.NewInput().
				Title("Start (2006-01-02 15:04 or 15:04)").
				Placeholder("09:00").
				Value(&from).
				Validate(validateTimeInput),
			huh.NewInput().
				Title("End (2006-01-02 15:04 or 15:04)").
				Placeholder("10:30").
				Value(&to).
				Validate(validateTimeInput),
		),
	).WithTheme(studycalHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return "", "", "", err
	}
	return topicID, from, to, nil
}

func validateNonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func validateTimeInput(s string) error {
	if _, err := time.Parse("2006-01-02 15:04", s); err == nil {
		return nil
	}
	if _, err := time.Parse("15:04", s); err == nil {
		return nil
	}
	return fmt.Errorf("use 2006-01-02 15:04 or 15:04")
}
