package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luki/hazard/internal/config"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hazard.log")

	log, err := New(config.LogConfig{Level: "info", Format: "json"}, path)
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("cycle")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "cycle", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Contains(t, entry, "timestamp")
}

func TestNewBadLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hazard.log")

	log, err := New(config.LogConfig{Level: "loud", Format: "console", Output: path}, "stderr")
	require.NoError(t, err)

	log.Debug("hidden")
	log.Warn("shown")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "WARN")
}

func TestNewUnwritablePath(t *testing.T) {
	_, err := New(config.LogConfig{Level: "info", Format: "json"}, filepath.Join(t.TempDir(), "missing", "x.log"))
	assert.Error(t, err)
}
