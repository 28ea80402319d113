// Package testutil provides shared test helpers for building corpus
// directories and silent loggers.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

// Logger returns a logger that discards all output.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// WriteDocument writes a raw document file into dir and fails the test
// on error.
func WriteDocument(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

// SyncedDocument returns minimal document content carrying the stored
// remote update time, as the writer produces it.
func SyncedDocument(slug, updatedAt string) string {
	return "+++\n" +
		"title = \"t\"\n" +
		"date = 2025-01-01T00:00:00+08:00\n" +
		"draft = false\n" +
		"tags = [\"daily\"]\n" +
		"flomo_slug = \"" + slug + "\"\n" +
		"flomo_source = \"web\"\n" +
		"flomo_updated_at = \"" + updatedAt + "\"\n" +
		"+++\n\nbody\n"
}
