package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/vmunix/medley/internal/catalog"
	"github.com/vmunix/medley/internal/config"
	"github.com/vmunix/medley/internal/events"
	"github.com/vmunix/medley/internal/imagecache"
	"github.com/vmunix/medley/internal/metrics"
	"github.com/vmunix/medley/internal/repo"
	"github.com/vmunix/medley/internal/scanner"
	"github.com/vmunix/medley/internal/server"
	"github.com/vmunix/medley/internal/userdata"
)

// Events older than this are pruned by the maintenance job.
const eventRetention = 30 * 24 * time.Hour

func runServer(configPath, logLevel string) error {
	if configPath == "" {
		discovered, err := config.Discover()
		if err != nil {
			return err
		}
		configPath = discovered
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	store, err := userdata.Open(cfg.Userdata.Database)
	if err != nil {
		return fmt.Errorf("open userdata: %w", err)
	}
	defer func() { _ = store.Close() }()

	eventLog := events.NewEventLog(store.DB())
	bus := events.NewBus(eventLog, logger.With("component", "bus"))
	defer bus.Close()

	defs := make([]repo.Definition, 0, len(cfg.Collections))
	for _, c := range cfg.Collections {
		kind, ok := catalog.ParseKind(c.Kind)
		if !ok {
			return fmt.Errorf("collection %q: unknown kind %q", c.Name, c.Kind)
		}
		defs = append(defs, repo.Definition{ID: c.ID, Name: c.Name, Kind: kind, Dir: c.Dir})
	}

	rep := repo.New(defs, scanner.New(logger.With("component", "scanner")), bus, logger)
	images := imagecache.New(cfg.Images.CacheDir, logger)

	metrics.SetAppInfo(version, runtime.Version())

	logger.Info("medleyd starting",
		"version", version,
		"listen", cfg.Server.Listen,
		"config", configPath,
		"collections", len(defs),
		"userdata", cfg.Userdata.Database,
		"image_cache", images.Enabled(),
		"rescan_interval", cfg.Scanner.Interval,
		"log_level", cfg.Log.Level,
	)

	runner := server.NewRunner(server.Deps{
		Repo:     rep,
		Users:    store,
		Bus:      bus,
		EventLog: eventLog,
		Images:   images,
	}, server.Config{
		Listen:         cfg.Server.Listen,
		Version:        version,
		RescanInterval: cfg.Scanner.RescanInterval(),
		EventRetention: eventRetention,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("server stopped")
	return nil
}
