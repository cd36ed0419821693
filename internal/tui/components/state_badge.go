package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/folio-labs/explainer/internal/player"
	"github.com/folio-labs/explainer/internal/tui/styles"
)

// RenderStatusBadge renders a playback snapshot as a short colored label.
func RenderStatusBadge(styleSet styles.Styles, snap player.Snapshot) string {
	icon, label, style := statusDescriptor(styleSet, snap)
	return style.Render(fmt.Sprintf("%s %s", icon, label))
}

func statusDescriptor(styleSet styles.Styles, snap player.Snapshot) (string, string, lipgloss.Style) {
	switch {
	case snap.Playing():
		return ">", "Playing", styleSet.StatusPlaying
	case snap.Cause == player.CauseCancel:
		return "x", "Stopped", styleSet.StatusIdle
	case snap.HasPlayedOnce:
		return "=", "Played", styleSet.StatusIdle
	default:
		return "-", "Ready", styleSet.StatusIdle
	}
}
