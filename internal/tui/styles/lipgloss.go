package styles

import "github.com/charmbracelet/lipgloss"

// Styles contains lipgloss styles derived from theme tokens.
type Styles struct {
	Theme   Theme
	Title   lipgloss.Style
	Kicker  lipgloss.Style
	Text    lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
	Border  lipgloss.Style
	Focus   lipgloss.Style
	Warning lipgloss.Style

	TabCurrent  lipgloss.Style
	TabVisited  lipgloss.Style
	TabUpcoming lipgloss.Style

	ProgressFill  lipgloss.Style
	ProgressEmpty lipgloss.Style

	StatusIdle    lipgloss.Style
	StatusPlaying lipgloss.Style

	KeyEnabled  lipgloss.Style
	KeyDisabled lipgloss.Style

	// Tokens cycle across token chips in order.
	Tokens []lipgloss.Style
	Cursor lipgloss.Style
}

// DefaultStyles builds styles from the default theme.
func DefaultStyles() Styles {
	return BuildStyles(DefaultTheme)
}

// BuildStyles converts theme tokens into lipgloss styles.
func BuildStyles(theme Theme) Styles {
	tokens := theme.Tokens
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}

	return Styles{
		Theme:   theme,
		Title:   fg(tokens.Text).Bold(true),
		Kicker:  fg(tokens.Accent).Bold(true),
		Text:    fg(tokens.Text),
		Muted:   fg(tokens.TextMuted),
		Accent:  fg(tokens.Accent),
		Border:  fg(tokens.Border),
		Focus:   fg(tokens.Focus).Bold(true),
		Warning: fg(tokens.Warning),

		TabCurrent:  fg(tokens.Background).Background(lipgloss.Color(tokens.Accent)).Bold(true).Padding(0, 1),
		TabVisited:  fg(tokens.Visited).Padding(0, 1),
		TabUpcoming: fg(tokens.Upcoming).Padding(0, 1),

		ProgressFill:  fg(tokens.Accent),
		ProgressEmpty: fg(tokens.Border),

		StatusIdle:    fg(tokens.TextMuted),
		StatusPlaying: fg(tokens.Success).Bold(true),

		KeyEnabled:  fg(tokens.Focus),
		KeyDisabled: fg(tokens.Upcoming).Strikethrough(true),

		Tokens: []lipgloss.Style{
			fg(tokens.Accent),
			fg(tokens.Success),
			fg(tokens.Warning),
			fg(tokens.Focus),
			fg(tokens.Visited),
		},
		Cursor: fg(tokens.Background).Background(lipgloss.Color(tokens.Focus)),
	}
}
