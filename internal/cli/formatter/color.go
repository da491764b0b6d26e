package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mkaminska/studycal/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorOrange = lipgloss.Color("#fe8019")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorPink   = lipgloss.Color("#d65d8e")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// topicStyles maps each topic color code to its terminal style.
var topicStyles = map[domain.ColorCode]lipgloss.Style{
	domain.ColorRed:    StyleRed,
	domain.ColorOrange: lipgloss.NewStyle().Foreground(ColorOrange),
	domain.ColorYellow: StyleYellow,
	domain.ColorGreen:  StyleGreen,
	domain.ColorBlue:   StyleBlue,
	domain.ColorPurple: StylePurple,
	domain.ColorPink:   lipgloss.NewStyle().Foreground(ColorPink),
	domain.ColorGray:   StyleDim,
}

// TopicStyle returns the style for a topic color code, dim for unknowns.
func TopicStyle(c domain.ColorCode) lipgloss.Style {
	if s, ok := topicStyles[c]; ok {
		return s
	}
	return StyleDim
}

// TopicSwatch renders a colored block marker followed by the topic title.
func TopicSwatch(c domain.ColorCode, title string) string {
	return TopicStyle(c).Render("■ ") + StyleFg.Render(title)
}

// StatusIndicator renders a session status as a colored dot.
func StatusIndicator(s domain.SessionStatus) string {
	if s == domain.SessionActive {
		return StyleGreen.Render("● LIVE")
	}
	return StyleDim.Render("● done")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
