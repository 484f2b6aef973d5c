package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]slog.Level{
		"":      slog.LevelInfo,
		"info":  slog.LevelInfo,
		"DEBUG": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewFansOutToFile(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "constellation.log")

	logger, closer, err := New(&console, slog.LevelInfo, path)
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("field ready", "particles", 65)
	require.NoError(t, closer.Close())

	assert.Contains(t, console.String(), "field ready")
	assert.NotContains(t, console.String(), "hidden")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "field ready", rec["msg"])
	assert.Equal(t, float64(65), rec["particles"])
}

func TestNewConsoleOnly(t *testing.T) {
	var console bytes.Buffer
	logger, closer, err := New(&console, slog.LevelDebug, "")
	require.NoError(t, err)
	logger.Debug("tick")
	assert.NoError(t, closer.Close())
	assert.Contains(t, console.String(), "tick")
}
