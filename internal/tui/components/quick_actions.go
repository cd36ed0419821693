package components

import (
	"fmt"
	"strings"

	"github.com/folio-labs/explainer/internal/player"
	"github.com/folio-labs/explainer/internal/tui/styles"
)

// QuickAction represents a keyboard-triggered action.
type QuickAction struct {
	Key     string // Keyboard key (e.g., "r")
	Label   string // Display label (e.g., "Replay")
	Enabled bool   // Whether the action is available
	Hidden  bool   // Omit entirely instead of rendering disabled
}

// RenderQuickActionBar renders a horizontal bar of actions.
// Format: "[r] Replay  [1-7] Stage"
func RenderQuickActionBar(styleSet styles.Styles, actions []QuickAction) string {
	var parts []string
	for _, action := range actions {
		if action.Hidden {
			continue
		}
		keyStyle := styleSet.KeyEnabled
		labelStyle := styleSet.Muted
		if !action.Enabled {
			keyStyle = styleSet.KeyDisabled
			labelStyle = styleSet.KeyDisabled
		}
		parts = append(parts, fmt.Sprintf("%s %s", keyStyle.Render("["+action.Key+"]"), labelStyle.Render(action.Label)))
	}
	return strings.Join(parts, "  ")
}

// PlaybackActions returns the section controls for a snapshot of a
// sequencer with stages stages. Replay and stage selection are disabled
// while playing; Start only appears before the first playback.
func PlaybackActions(snap player.Snapshot, stages int) []QuickAction {
	idle := !snap.Playing()
	stageKey := "1"
	if stages > 1 {
		stageKey = fmt.Sprintf("1-%d", min(stages, 9))
	}
	return []QuickAction{
		{Key: "s", Label: "Start", Enabled: idle, Hidden: snap.HasPlayedOnce || snap.Playing()},
		{Key: "r", Label: "Replay", Enabled: idle},
		{Key: stageKey, Label: "Stage", Enabled: idle},
		{Key: "←/→", Label: "Step", Enabled: idle},
	}
}
