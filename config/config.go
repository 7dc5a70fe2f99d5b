package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/yitech/candlesleek/render"
)

// Config holds settings for both hosts.
type Config struct {
	// File is the CSV opened at start-up when no argument is given.
	File string
	// ThemeFile is an optional YAML theme overlay.
	ThemeFile string

	LogLevel string
	LogFile  string

	SnapshotDir        string
	SnapshotWidth      int
	SnapshotHeight     int
	SnapshotPixelRatio float64
	SnapshotWorkers    int
}

// Load reads configuration from environment variables and an optional .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	}

	cfg := &Config{
		File:               os.Getenv("CANDLES_FILE"),
		ThemeFile:          os.Getenv("CANDLES_THEME"),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:            getEnvOrDefault("LOG_FILE", "logs/candlesleek.log"),
		SnapshotDir:        getEnvOrDefault("SNAPSHOT_DIR", "./snapshots"),
		SnapshotWidth:      getEnvIntOrDefault("SNAPSHOT_WIDTH", 1280),
		SnapshotHeight:     getEnvIntOrDefault("SNAPSHOT_HEIGHT", 720),
		SnapshotPixelRatio: getEnvFloatOrDefault("SNAPSHOT_PIXEL_RATIO", 2),
		SnapshotWorkers:    getEnvIntOrDefault("SNAPSHOT_WORKERS", 4),
	}

	if cfg.SnapshotPixelRatio <= 0 {
		cfg.SnapshotPixelRatio = 1
	}
	if cfg.SnapshotWorkers < 1 {
		cfg.SnapshotWorkers = 1
	}
	return cfg, nil
}

// Theme returns base, overlaid with ThemeFile when one is configured.
func (c *Config) Theme(base render.Theme) (render.Theme, error) {
	if c.ThemeFile == "" {
		return base, nil
	}
	return render.LoadTheme(c.ThemeFile, base)
}

// SlogLevel maps LogLevel onto slog levels, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloatOrDefault(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
