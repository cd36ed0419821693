// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/folio-labs/explainer/internal/tui/styles"
)

// EmptyState represents an empty state message with optional suggestions.
type EmptyState struct {
	// Icon is an optional icon to display.
	Icon string
	// Title is the main empty state message.
	Title string
	// Subtitle is an optional secondary message.
	Subtitle string
	// Suggestions are actionable commands the user can run.
	Suggestions []Suggestion
}

// Suggestion represents a suggested command with description.
type Suggestion struct {
	// Command is the CLI command to run (e.g., "explainer catalog list").
	Command string
	// Description explains what the command does.
	Description string
}

// Render renders the empty state with the given styles.
func (e EmptyState) Render(styleSet styles.Styles) string {
	var lines []string

	titleLine := e.Title
	if e.Icon != "" {
		titleLine = e.Icon + "  " + titleLine
	}
	lines = append(lines, styleSet.Muted.Render(titleLine))

	if e.Subtitle != "" {
		lines = append(lines, styleSet.Muted.Render(e.Subtitle))
	}

	if len(e.Suggestions) > 0 {
		lines = append(lines, "")
		lines = append(lines, styleSet.Text.Render("Try:"))
		for _, s := range e.Suggestions {
			cmdLine := fmt.Sprintf("  %s", styleSet.Accent.Render(s.Command))
			if s.Description != "" {
				cmdLine += styleSet.Muted.Render(fmt.Sprintf("  # %s", s.Description))
			}
			lines = append(lines, cmdLine)
		}
	}

	return strings.Join(lines, "\n")
}

// EmptyCatalogs is shown when no explainer could be loaded.
func EmptyCatalogs() EmptyState {
	return EmptyState{
		Title:    "No explainers to show",
		Subtitle: "Catalogs are YAML files under .explainer/catalogs or ~/.config/explainer/catalogs.",
		Suggestions: []Suggestion{
			{Command: "explainer catalog list", Description: "see which catalogs were found"},
			{Command: "explainer ui nlp-flow", Description: "open a built-in explainer"},
		},
	}
}

// EmptyCatalogsFiltered is shown when none of the requested names matched.
func EmptyCatalogsFiltered(names []string) EmptyState {
	return EmptyState{
		Title:    fmt.Sprintf("No explainers match %s", strings.Join(names, ", ")),
		Subtitle: "Names are matched case-insensitively against catalog names.",
		Suggestions: []Suggestion{
			{Command: "explainer catalog list", Description: "list available names"},
		},
	}
}
