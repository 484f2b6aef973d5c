package config

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesAndNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
window:
  width: 800
  height: -1
seed: 42
hud: false
palette:
  accent: "#ff0000"
  neutral: "not-a-color"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, WindowHeight, cfg.Window.Height)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.False(t, cfg.HUD)
	assert.Equal(t, "#ff0000", cfg.Palette.Accent)
	assert.Equal(t, "#ffffff", cfg.Palette.Neutral)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window: [1, 2"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#d6336c")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 214, G: 51, B: 108, A: 255}, c)

	c, err = ParseHex("#fff")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, c)

	_, err = ParseHex("d6336c")
	assert.Error(t, err)
}

func TestWatcherPublishesReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 1\n"), 0o600))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	w.debounce = 10 * time.Millisecond
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	require.NoError(t, os.WriteFile(path, []byte("seed: 7\n"), 0o600))

	select {
	case cfg := <-w.Updates():
		assert.Equal(t, int64(7), cfg.Seed)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload delivered")
	}
}
