package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/folio-labs/explainer/internal/tui/styles"
)

// RenderTokens lays tokens out as bracketed chips, coloring each in turn
// and wrapping to width.
func RenderTokens(styleSet styles.Styles, tokens []string, width int) string {
	if len(tokens) == 0 {
		return styleSet.Muted.Render("(no tokens)")
	}
	if width <= 0 {
		width = 80
	}

	var lines []string
	var line []string
	lineWidth := 0
	for i, tok := range tokens {
		chip := "[" + tok + "]"
		if len(styleSet.Tokens) > 0 {
			chip = styleSet.Tokens[i%len(styleSet.Tokens)].Render(chip)
		}
		w := lipgloss.Width(chip)
		if lineWidth > 0 && lineWidth+1+w > width {
			lines = append(lines, strings.Join(line, " "))
			line, lineWidth = nil, 0
		}
		if lineWidth > 0 {
			lineWidth++
		}
		line = append(line, chip)
		lineWidth += w
	}
	if len(line) > 0 {
		lines = append(lines, strings.Join(line, " "))
	}
	return strings.Join(lines, "\n")
}

// RenderInputEditor shows text being edited with a trailing cursor.
func RenderInputEditor(styleSet styles.Styles, label, text string, width int) string {
	header := styleSet.Focus.Render(label) + styleSet.Muted.Render("  enter done | esc cancel | ctrl+u clear")
	body := styleSet.Text.Copy().Width(max(width-1, 1)).Render(text + styleSet.Cursor.Render(" "))
	return header + "\n" + body
}
