package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComponentTagsJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	release, err := Init(Config{Level: "debug", Format: "json", Output: &buf})
	require.NoError(t, err)
	defer func() { _ = release(); Discard() }()

	logger := Component("player")
	logger.Debug().Int("stage", 2).Msg("advanced")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "player", entry["component"])
	require.Equal(t, "advanced", entry["message"])
	require.EqualValues(t, 2, entry["stage"])
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	_, err := Init(Config{Level: "chatty"})
	require.Error(t, err)
}

func TestInitRejectsUnknownFormat(t *testing.T) {
	_, err := Init(Config{Format: "xml", Output: &bytes.Buffer{}})
	require.Error(t, err)
}

func TestLevelFiltersBelowThreshold(t *testing.T) {
	var buf bytes.Buffer
	release, err := Init(Config{Level: "warn", Format: "json", Output: &buf})
	require.NoError(t, err)
	defer func() { _ = release(); Discard() }()

	logger := Component("test")
	logger.Info().Msg("hidden")
	require.Zero(t, buf.Len())

	logger.Warn().Msg("shown")
	require.Contains(t, buf.String(), "shown")
}

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "explainer.log")
	release, err := Init(Config{Format: "json", File: path})
	require.NoError(t, err)

	logger := Component("cli")
	logger.Info().Msg("to file")
	require.NoError(t, release())
	Discard()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), "to file"))
}
