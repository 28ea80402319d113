// Package syncer orchestrates the incremental sync pipeline: state
// recovery, fetching, change classification, and per-note processing.
package syncer

import (
	"log/slog"

	"github.com/starford/laguz/internal/models"
)

// Classify decides which fetched notes need syncing. Soft-deleted notes
// and notes whose tags do not intersect targetTags are excluded. A note
// is New when its slug is absent from state, Updated when its remote
// updated_at is strictly greater (string comparison; the format is
// fixed-width and zero-padded), otherwise Unchanged and dropped.
// Candidates keep fetch order.
func Classify(notes []models.Note, state map[string]string, targetTags []string, logger *slog.Logger) []models.Candidate {
	target := make(map[string]struct{}, len(targetTags))
	for _, t := range targetTags {
		target[t] = struct{}{}
	}

	var candidates []models.Candidate
	for _, n := range notes {
		if n.Deleted() {
			logger.Debug("excluding deleted note", slog.String("slug", n.Slug))
			continue
		}
		if !tagsMatch(n.Tags, target) {
			logger.Debug("excluding note without target tags", slog.String("slug", n.Slug))
			continue
		}

		last, known := state[n.Slug]
		switch {
		case !known:
			logger.Info("new note", slog.String("slug", n.Slug))
			candidates = append(candidates, models.Candidate{Note: n, Kind: models.New})
		case n.UpdatedAt > last:
			logger.Info("updated note",
				slog.String("slug", n.Slug),
				slog.String("from", last),
				slog.String("to", n.UpdatedAt))
			candidates = append(candidates, models.Candidate{Note: n, Kind: models.Updated})
		default:
			logger.Debug("unchanged note", slog.String("slug", n.Slug))
		}
	}
	return candidates
}

// tagsMatch reports whether any note tag is in the target set.
func tagsMatch(tags []string, target map[string]struct{}) bool {
	for _, t := range tags {
		if _, ok := target[t]; ok {
			return true
		}
	}
	return false
}
