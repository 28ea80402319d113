// Package corpus manages the on-disk document corpus: recovering sync
// state from previously written files and writing new documents.
package corpus

import (
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
)

// LegacyUpdatedAt is recorded for documents written before the
// flomo_updated_at field existed. It sorts below any valid timestamp,
// so legacy documents are always treated as stale.
const LegacyUpdatedAt = "1970-01-01 00:00:00"

var (
	// filenameRe is the strict document filename grammar. Anything that
	// does not match is skipped so unrelated files in the corpus
	// directory are never misidentified. Group 4 is the slug.
	filenameRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})-(.+?)\.md$`)

	// updatedAtRe extracts the stored remote update time from the
	// front matter.
	updatedAtRe = regexp.MustCompile(`flomo_updated_at\s*=\s*"(.+?)"`)
)

// Scan reconstructs the slug → last-known remote updated_at map by
// re-reading the corpus directory. There is no side index; the output
// files are the only record. Per-file failures are logged and skipped.
func Scan(dir string, logger *slog.Logger) map[string]string {
	state := make(map[string]string)

	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("corpus directory not readable", slog.String("dir", dir), slog.String("error", err.Error()))
		return state
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := filenameRe.FindStringSubmatch(entry.Name())
		if m == nil {
			logger.Debug("skipping non-document file", slog.String("name", entry.Name()))
			continue
		}
		slug := m[4]

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			logger.Warn("failed to read document", slog.String("name", entry.Name()), slog.String("error", err.Error()))
			continue
		}

		if um := updatedAtRe.FindSubmatch(data); um != nil {
			state[slug] = string(um[1])
		} else {
			state[slug] = LegacyUpdatedAt
		}
	}

	logger.Info("recovered sync state", slog.Int("documents", len(state)))
	return state
}
