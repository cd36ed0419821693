package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/folio-labs/explainer/internal/player"
)

const (
	colorGreen  = "2"
	colorYellow = "3"
	colorCyan   = "6"
)

func colorize(value, color string) string {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return value
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(value)
}

func formatPlaybackStatus(snap player.Snapshot) string {
	label, color := statusLabelForSnapshot(snap)
	return colorize(fmt.Sprintf("%-4s %s", label, snap.Status), color)
}

func statusLabelForSnapshot(snap player.Snapshot) (string, string) {
	switch {
	case snap.Playing():
		return "PLAY", colorCyan
	case snap.Cause == player.CauseCancel:
		return "STOP", colorYellow
	default:
		return "DONE", colorGreen
	}
}
