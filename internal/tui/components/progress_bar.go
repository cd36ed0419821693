package components

import (
	"fmt"
	"strings"

	"github.com/folio-labs/explainer/internal/tui/styles"
)

// ProgressBar renders the share of stages reached.
type ProgressBar struct {
	Current int // zero-based stage index
	Total   int
	Width   int
}

// Ratio returns (Current+1)/Total clamped to [0, 1].
func (p ProgressBar) Ratio() float64 {
	if p.Total <= 0 {
		return 0
	}
	r := float64(p.Current+1) / float64(p.Total)
	return max(0, min(r, 1))
}

// Render renders the bar followed by a "k/N" counter.
func (p ProgressBar) Render(styleSet styles.Styles) string {
	width := p.Width
	if width < 4 {
		width = 4
	}
	filled := int(p.Ratio()*float64(width) + 0.5)
	bar := styleSet.ProgressFill.Render(strings.Repeat("█", filled)) +
		styleSet.ProgressEmpty.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %s", bar, styleSet.Muted.Render(fmt.Sprintf("%d/%d", min(p.Current+1, p.Total), p.Total)))
}
