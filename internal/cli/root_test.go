package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-labs/explainer/internal/catalog"
	"github.com/folio-labs/explainer/internal/logging"
)

func TestPreflightErrorMessage(t *testing.T) {
	err := &PreflightError{Message: "no tty", Hint: "use a terminal", NextStep: "explainer play nlp-flow"}
	msg := err.Error()
	assert.True(t, strings.HasPrefix(msg, "no tty"))
	assert.Contains(t, msg, "hint: use a terminal")
	assert.Contains(t, msg, "next: explainer play nlp-flow")

	assert.Equal(t, "bare", (&PreflightError{Message: "bare"}).Error())
}

func TestWriteOutput(t *testing.T) {
	items := []catalogSummary{{Name: "a", Stages: 1}, {Name: "b", Stages: 2}}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteOutput(&buf, items))
		assert.True(t, strings.HasPrefix(buf.String(), "[\n"))
	})

	t.Run("jsonl", func(t *testing.T) {
		jsonlOutput = true
		t.Cleanup(func() { jsonlOutput = false })

		var buf bytes.Buffer
		require.NoError(t, WriteOutput(&buf, items))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], `"name":"a"`)
		assert.Contains(t, lines[1], `"name":"b"`)
	})
}

func TestNonInteractiveEnv(t *testing.T) {
	t.Setenv("EXPLAINER_NON_INTERACTIVE", "1")
	assert.True(t, IsNonInteractive())
	assert.False(t, IsInteractive())
}

func TestUIRequiresTerminal(t *testing.T) {
	nonInteractive = true
	t.Cleanup(func() { nonInteractive = false })

	err := runTUI(uiCmd, nil)
	var preflight *PreflightError
	require.ErrorAs(t, err, &preflight)
	assert.Contains(t, preflight.NextStep, "explainer play")
}

func TestResolveUICatalogsLogsMissingNames(t *testing.T) {
	var buf bytes.Buffer
	release, err := logging.Init(logging.Config{Level: "warn", Format: "json", Output: &buf})
	require.NoError(t, err)
	t.Cleanup(func() { _ = release(); logging.Discard() })

	items := []*catalog.Catalog{mustCatalog(t, "nlp-flow")}
	selected, missing := resolveUICatalogs(items, []string{"nlp-flow", "vision"})

	require.Len(t, selected, 1)
	assert.Equal(t, []string{"vision"}, missing)
	assert.Contains(t, buf.String(), `"component":"cli"`)
	assert.Contains(t, buf.String(), "catalogs not found")
	assert.Contains(t, buf.String(), "vision")
}
