package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/yitech/candlesleek/chart"
	"github.com/yitech/candlesleek/config"
	"github.com/yitech/candlesleek/controller"
	"github.com/yitech/candlesleek/render"
	"github.com/yitech/candlesleek/snapshot"
	"github.com/yitech/candlesleek/surface/raster"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = io.WriteString(os.Stderr, "config: "+err.Error()+"\n")
		os.Exit(1)
	}

	if err := setupLogger(cfg.SlogLevel(), cfg.LogFile); err != nil {
		_, _ = io.WriteString(os.Stderr, "logger setup failed: "+err.Error()+"\n")
		os.Exit(1)
	}

	paths := os.Args[1:]
	if len(paths) == 0 && cfg.File != "" {
		paths = []string{cfg.File}
	}
	if len(paths) == 0 {
		_, _ = io.WriteString(os.Stderr, "usage: candlesleek-snapshot file.csv [file.csv ...]\n")
		os.Exit(2)
	}

	theme, err := cfg.Theme(render.DefaultTheme())
	if err != nil {
		slog.Warn("theme not loaded, using default", "path", cfg.ThemeFile, "error", err)
	}

	store, err := snapshot.NewStore(cfg.SnapshotDir)
	if err != nil {
		slog.Error("snapshot store", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("snapshot export starting",
		"files", len(paths),
		"dir", store.Dir(),
		"size", fmt.Sprintf("%dx%d@%gx", cfg.SnapshotWidth, cfg.SnapshotHeight, cfg.SnapshotPixelRatio),
		"workers", cfg.SnapshotWorkers,
	)

	e := exporter{cfg: cfg, theme: theme, store: store}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.SnapshotWorkers)

	failed := make([]bool, len(paths))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			meta, err := e.export(path)
			if err != nil {
				// one bad file does not stop the batch
				slog.Error("export failed", "file", path, "error", err)
				failed[i] = true
				return nil
			}
			slog.Info("exported",
				"file", path,
				"id", meta.ID,
				"candles", humanize.Comma(int64(meta.Candles)),
				"size", humanize.Bytes(uint64(meta.SizeBytes)),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		slog.Error("export interrupted", "error", err)
		os.Exit(1)
	}

	all, err := store.List()
	if err != nil {
		slog.Error("list snapshots", "error", err)
		os.Exit(1)
	}

	nFailed := 0
	for _, f := range failed {
		if f {
			nFailed++
		}
	}
	slog.Info("snapshot export done", "exported", len(paths)-nFailed, "failed", nFailed, "stored", len(all))
	if nFailed > 0 {
		os.Exit(1)
	}
}

type exporter struct {
	cfg   *config.Config
	theme render.Theme
	store *snapshot.Store
}

// export renders one CSV file to PNG and stores it with its metadata.
func (e exporter) export(path string) (snapshot.Meta, error) {
	g := chart.NewGeometry(float64(e.cfg.SnapshotWidth), float64(e.cfg.SnapshotHeight), e.cfg.SnapshotPixelRatio)
	ctrl := controller.New(g, nil)
	if err := ctrl.LoadFile(path); err != nil {
		return snapshot.Meta{}, err
	}

	s := raster.New()
	ctrl.Render(s, e.theme)

	var buf bytes.Buffer
	if err := s.EncodePNG(&buf); err != nil {
		return snapshot.Meta{}, fmt.Errorf("encode png: %w", err)
	}

	f := ctrl.Frame()
	meta := snapshot.NewMeta(filepath.Base(path))
	meta.Width = e.cfg.SnapshotWidth
	meta.Height = e.cfg.SnapshotHeight
	meta.PixelRatio = e.cfg.SnapshotPixelRatio
	meta.Candles = len(f.Candles)
	meta.First = f.Candles[0].Timestamp
	meta.Last = f.Candles[len(f.Candles)-1].Timestamp

	saved, err := e.store.Save(meta, buf.Bytes())
	if err != nil {
		return snapshot.Meta{}, err
	}
	// read the pair back so a reported export is known to be complete
	return e.store.Get(saved.ID)
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

	h := slog.NewTextHandler(io.MultiWriter(os.Stdout, logWriter), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))
	return nil
}
