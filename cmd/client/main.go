package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/yitech/candlesleek/config"
	"github.com/yitech/candlesleek/render"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = io.WriteString(os.Stderr, "config: "+err.Error()+"\n")
		os.Exit(1)
	}

	// The TUI owns stdout, so logs only go to the rotating file.
	if err := setupLogger(cfg.SlogLevel(), cfg.LogFile); err != nil {
		_, _ = io.WriteString(os.Stderr, "logger setup failed: "+err.Error()+"\n")
		os.Exit(1)
	}

	path := cfg.File
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	theme, err := cfg.Theme(render.TerminalTheme())
	if err != nil {
		slog.Warn("theme not loaded, using default", "path", cfg.ThemeFile, "error", err)
	}

	slog.Info("client starting", "file", path, "theme", cfg.ThemeFile, "log_level", cfg.LogLevel)

	p := tea.NewProgram(
		newModel(path, theme),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)
	if _, err := p.Run(); err != nil {
		slog.Error("tui error", "error", err)
		_, _ = io.WriteString(os.Stderr, "tui error: "+err.Error()+"\n")
		os.Exit(1)
	}
}

func setupLogger(level slog.Level, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return err
	}

	logWriter := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    25,
		MaxBackups: 10,
		MaxAge:     14,
		Compress:   true,
	}

	h := slog.NewTextHandler(logWriter, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))
	return nil
}
