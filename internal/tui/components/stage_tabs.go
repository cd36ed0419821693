package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/folio-labs/explainer/internal/tui/styles"
)

// StageTabs renders the row of stage selectors, wrapping to width.
type StageTabs struct {
	Titles  []string
	Current int
	Width   int
}

// Render renders one tab per stage: stages before Current are visited,
// Current is highlighted and the rest are upcoming.
func (t StageTabs) Render(styleSet styles.Styles) string {
	var (
		lines []string
		line  string
	)
	for i, title := range t.Titles {
		label := fmt.Sprintf("%d %s", i+1, title)
		var tab string
		switch {
		case i == t.Current:
			tab = styleSet.TabCurrent.Render(label)
		case i < t.Current:
			tab = styleSet.TabVisited.Render(label)
		default:
			tab = styleSet.TabUpcoming.Render(label)
		}
		if line != "" && t.Width > 0 && lipgloss.Width(line)+lipgloss.Width(tab) > t.Width {
			lines = append(lines, line)
			line = ""
		}
		line += tab
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
