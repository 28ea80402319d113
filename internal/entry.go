// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/laguz/internal/corpus"
	"github.com/starford/laguz/internal/flomo"
	"github.com/starford/laguz/internal/media"
	"github.com/starford/laguz/internal/syncer"
	"github.com/starford/laguz/internal/transform"
)

// Run executes one sync cycle with the given options. It returns a
// non-nil error when the run must count as failed at the process level.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	logger := newLogger(cfg)
	logger.Info("configuration loaded",
		slog.Any("tags", cfg.Tags),
		slog.String("output_dir", cfg.Sync.OutputDir),
		slog.Int("days_to_sync", cfg.Sync.DaysToSync),
		slog.Bool("dry_run", app.dryRun))

	creds, err := LoadCredentials()
	if err != nil {
		return fmt.Errorf("load credentials: %w", err)
	}

	client, err := flomo.NewClient(creds.Token, logger)
	if err != nil {
		return fmt.Errorf("init note client: %w", err)
	}

	rehoster, err := media.NewRehoster(cfg.OSS.Endpoint, cfg.OSS.Bucket, cfg.OSS.Prefix,
		creds.AccessKeyID, creds.AccessKeySecret, logger)
	if err != nil {
		return fmt.Errorf("init media rehoster: %w", err)
	}

	s := syncer.New(syncer.Config{
		Tags:       cfg.Tags,
		OutputDir:  cfg.Sync.OutputDir,
		DaysToSync: cfg.Sync.DaysToSync,
		Limit:      cfg.Sync.Limit,
		DryRun:     app.dryRun,
	}, client, transform.New(rehoster, logger), corpus.NewWriter(cfg.Sync.OutputDir, logger), logger)

	stats, err := s.Run(ctx)
	if err != nil {
		return fmt.Errorf("sync run: %w", err)
	}

	if !app.dryRun && !stats.Succeeded() {
		return fmt.Errorf("sync unsuccessful: %d of %d candidates failed", stats.Failed, stats.Total)
	}
	return nil
}

// Status scans the corpus and prints how many documents are synced and
// the most recent stored remote update time.
func Status(cfg *Config) error {
	logger := newLogger(cfg)

	state := corpus.Scan(cfg.Sync.OutputDir, logger)

	latest := ""
	for _, updatedAt := range state {
		if updatedAt > latest {
			latest = updatedAt
		}
	}

	fmt.Printf("Corpus: %s\n", cfg.Sync.OutputDir)
	fmt.Printf("Synced documents: %d\n", len(state))
	if latest != "" {
		fmt.Printf("Latest remote update: %s\n", latest)
	}
	return nil
}

// newLogger builds the structured JSON logger for the run and installs
// it as the default for stray callers.
func newLogger(cfg *Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}
