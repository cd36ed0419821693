package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/folio-labs/explainer/internal/tui/styles"
)

func TestRenderTokensWraps(t *testing.T) {
	styleSet := styles.DefaultStyles()
	out := RenderTokens(styleSet, []string{"aaaa", "bbbb", "cccc", "dddd"}, 14)

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out)
	}
	for _, line := range lines {
		if w := lipgloss.Width(line); w > 14 {
			t.Errorf("line %q is %d wide", line, w)
		}
	}
	for _, chip := range []string{"[aaaa]", "[dddd]"} {
		if !strings.Contains(out, chip) {
			t.Errorf("missing %s in %q", chip, out)
		}
	}
}

func TestRenderTokensEmpty(t *testing.T) {
	if got := RenderTokens(styles.DefaultStyles(), nil, 40); !strings.Contains(got, "no tokens") {
		t.Fatalf("RenderTokens(nil) = %q", got)
	}
}
