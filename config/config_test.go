package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yitech/candlesleek/render"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, k := range []string{"CANDLES_FILE", "CANDLES_THEME", "LOG_LEVEL", "LOG_FILE",
		"SNAPSHOT_DIR", "SNAPSHOT_WIDTH", "SNAPSHOT_HEIGHT", "SNAPSHOT_PIXEL_RATIO", "SNAPSHOT_WORKERS"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.File)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "logs/candlesleek.log", cfg.LogFile)
	assert.Equal(t, "./snapshots", cfg.SnapshotDir)
	assert.Equal(t, 1280, cfg.SnapshotWidth)
	assert.Equal(t, 720, cfg.SnapshotHeight)
	assert.Equal(t, 2.0, cfg.SnapshotPixelRatio)
	assert.Equal(t, 4, cfg.SnapshotWorkers)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CANDLES_FILE", "prices.csv")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SNAPSHOT_WIDTH", "800")
	t.Setenv("SNAPSHOT_HEIGHT", "not-a-number")
	t.Setenv("SNAPSHOT_PIXEL_RATIO", "-3")
	t.Setenv("SNAPSHOT_WORKERS", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "prices.csv", cfg.File)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, 800, cfg.SnapshotWidth)
	assert.Equal(t, 720, cfg.SnapshotHeight)
	assert.Equal(t, 1.0, cfg.SnapshotPixelRatio)
	assert.Equal(t, 1, cfg.SnapshotWorkers)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("SNAPSHOT_DIR", "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SNAPSHOT_DIR=/tmp/shots\n"), 0o644))
	// godotenv does not override variables that are already set, even empty ones
	require.NoError(t, os.Unsetenv("SNAPSHOT_DIR"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/shots", cfg.SnapshotDir)
}

func TestTheme(t *testing.T) {
	cfg := &Config{}
	th, err := cfg.Theme(render.DefaultTheme())
	require.NoError(t, err)
	assert.Equal(t, render.DefaultTheme().Palette, th.Palette)

	path := filepath.Join(t.TempDir(), "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("palette:\n  background: \"#ffffff\"\n"), 0o644))
	cfg.ThemeFile = path
	th, err = cfg.Theme(render.TerminalTheme())
	require.NoError(t, err)
	assert.Equal(t, render.Color("#ffffff"), th.Palette.Background)
	assert.Equal(t, render.TerminalTheme().Metrics.BadgeWidth, th.Metrics.BadgeWidth)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
