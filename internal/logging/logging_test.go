package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "wordwhiz.log")
	logger, err := New(Options{Level: "debug", File: path})
	require.NoError(t, err)

	logger.Debug("challenge fetch fell back to offline bank")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "challenge fetch fell back to offline bank", entry["msg"])
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Console: &buf})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.Contains(out, "shown"))
}

func TestNewNoSinks(t *testing.T) {
	logger, err := New(Options{Level: "info"})
	require.NoError(t, err)
	logger.Info("goes nowhere")
}

func TestNewBadLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}
