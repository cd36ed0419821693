package components

import (
	"fmt"
	"strings"

	"github.com/folio-labs/explainer/internal/tui/styles"
)

// RenderSummary renders the numbered recap shown once a pipeline has been
// played to its final stage.
func RenderSummary(styleSet styles.Styles, title string, steps []string) string {
	if len(steps) == 0 {
		return ""
	}
	if title == "" {
		title = "Summary"
	}
	lines := []string{styleSet.Accent.Render(title)}
	for i, step := range steps {
		lines = append(lines, fmt.Sprintf("  %s %s", styleSet.Focus.Render(fmt.Sprintf("%d.", i+1)), styleSet.Text.Render(step)))
	}
	return strings.Join(lines, "\n")
}
