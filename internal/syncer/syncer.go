package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/starford/laguz/internal/corpus"
	"github.com/starford/laguz/internal/models"
)

// NoteFetcher retrieves notes updated after an epoch-second cursor.
type NoteFetcher interface {
	FetchUpdated(ctx context.Context, latestUpdatedAt string, limit int) ([]models.Note, error)
}

// NoteTransformer produces the document title and body for one note.
type NoteTransformer interface {
	Transform(ctx context.Context, note models.Note) (title, body string, err error)
}

// DocumentWriter persists a rendered document.
type DocumentWriter interface {
	Write(filename, content string) error
}

// Config bounds a sync run.
type Config struct {
	Tags       []string
	OutputDir  string
	DaysToSync int
	Limit      int
	DryRun     bool
}

// Syncer sequences the pipeline for one run. Execution is fully
// sequential; a failure on one candidate is counted, never fatal.
type Syncer struct {
	cfg         Config
	fetcher     NoteFetcher
	transformer NoteTransformer
	writer      DocumentWriter
	logger      *slog.Logger
	now         func() time.Time
}

// New creates a Syncer.
func New(cfg Config, fetcher NoteFetcher, transformer NoteTransformer, writer DocumentWriter, logger *slog.Logger) *Syncer {
	return &Syncer{
		cfg:         cfg,
		fetcher:     fetcher,
		transformer: transformer,
		writer:      writer,
		logger:      logger,
		now:         time.Now,
	}
}

// Run executes one sync cycle: recover state from the corpus, fetch the
// trailing window, classify, then transform and write each candidate in
// fetch order. The returned stats decide process-level success.
func (s *Syncer) Run(ctx context.Context) (models.SyncStats, error) {
	var stats models.SyncStats

	state := corpus.Scan(s.cfg.OutputDir, s.logger)

	cursor := fmt.Sprintf("%d", s.now().Add(-time.Duration(s.cfg.DaysToSync)*24*time.Hour).Unix())
	notes, err := s.fetcher.FetchUpdated(ctx, cursor, s.cfg.Limit)
	if err != nil {
		return stats, fmt.Errorf("fetch notes: %w", err)
	}

	candidates := Classify(notes, state, s.cfg.Tags, s.logger)
	stats.Total = len(candidates)
	if stats.Total == 0 {
		s.logger.Info("nothing to sync")
		return stats, nil
	}

	if s.cfg.DryRun {
		for _, c := range candidates {
			s.logger.Info("would sync",
				slog.String("slug", c.Note.Slug),
				slog.String("kind", c.Kind.String()),
				slog.String("file", corpus.Filename(c.Note)))
		}
		return stats, nil
	}

	for _, c := range candidates {
		if err := s.syncOne(ctx, c); err != nil {
			stats.Failed++
			s.logger.Error("note sync failed",
				slog.String("slug", c.Note.Slug),
				slog.String("error", err.Error()))
			continue
		}
		switch c.Kind {
		case models.New:
			stats.New++
		case models.Updated:
			stats.Updated++
		}
	}

	s.logger.Info("sync finished",
		slog.Int("total", stats.Total),
		slog.Int("new", stats.New),
		slog.Int("updated", stats.Updated),
		slog.Int("failed", stats.Failed))
	return stats, nil
}

// syncOne transforms and writes a single candidate.
func (s *Syncer) syncOne(ctx context.Context, c models.Candidate) error {
	title, body, err := s.transformer.Transform(ctx, c.Note)
	if err != nil {
		return err
	}
	return s.writer.Write(corpus.Filename(c.Note), corpus.Render(c.Note, title, body))
}
