package components

import (
	"strings"
	"testing"

	"github.com/folio-labs/explainer/internal/tui/styles"
)

func TestEmptyStateRender(t *testing.T) {
	styleSet := styles.DefaultStyles()

	t.Run("basic empty state", func(t *testing.T) {
		es := EmptyState{Title: "Nothing here"}
		result := es.Render(styleSet)
		if !strings.Contains(result, "Nothing here") {
			t.Errorf("Expected title in output, got: %s", result)
		}
		if strings.Contains(result, "Try:") {
			t.Errorf("Expected no suggestions header, got: %s", result)
		}
	})

	t.Run("empty state with icon and subtitle", func(t *testing.T) {
		es := EmptyState{Icon: "*", Title: "Empty", Subtitle: "Check back later"}
		result := es.Render(styleSet)
		if !strings.Contains(result, "*  Empty") {
			t.Errorf("Expected icon before title, got: %s", result)
		}
		if !strings.Contains(result, "Check back later") {
			t.Errorf("Expected subtitle in output, got: %s", result)
		}
	})

	t.Run("empty state with suggestions", func(t *testing.T) {
		result := EmptyCatalogs().Render(styleSet)
		if !strings.Contains(result, "Try:") {
			t.Errorf("Expected 'Try:' header, got: %s", result)
		}
		if !strings.Contains(result, "explainer catalog list") {
			t.Errorf("Expected command in output, got: %s", result)
		}
	})
}

func TestEmptyCatalogsFiltered(t *testing.T) {
	result := EmptyCatalogsFiltered([]string{"foo", "bar"}).Render(styles.DefaultStyles())
	if !strings.Contains(result, "foo, bar") {
		t.Errorf("Expected requested names in output, got: %s", result)
	}
}
