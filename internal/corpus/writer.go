package corpus

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/starford/laguz/internal/models"
)

// dateOffset is the fixed UTC offset of the remote timestamps.
const dateOffset = "+08:00"

// Writer persists documents into the corpus directory. Writes overwrite
// in place; last write wins, single-writer discipline is assumed.
type Writer struct {
	dir    string
	logger *slog.Logger
}

// NewWriter creates a Writer rooted at dir.
func NewWriter(dir string, logger *slog.Logger) *Writer {
	return &Writer{dir: dir, logger: logger}
}

// Filename derives the deterministic document filename for a note:
// {created_date}-{slug}.md. Collision-free as long as slugs are unique.
func Filename(n models.Note) string {
	return n.CreatedDate() + "-" + n.Slug + ".md"
}

// Render builds the full document: TOML front matter followed by the body.
// flomo_updated_at is required for state recovery on later runs.
func Render(n models.Note, title, body string) string {
	var b strings.Builder
	b.WriteString("+++\n")
	fmt.Fprintf(&b, "title = %s\n", tomlString(title))
	fmt.Fprintf(&b, "date = %s\n", isoDate(n.CreatedAt))
	b.WriteString("draft = false\n")
	fmt.Fprintf(&b, "tags = %s\n", tomlStringArray(n.Tags))
	fmt.Fprintf(&b, "flomo_slug = %s\n", tomlString(n.Slug))
	fmt.Fprintf(&b, "flomo_source = %s\n", tomlString(n.Source))
	fmt.Fprintf(&b, "flomo_updated_at = %s\n", tomlString(n.UpdatedAt))
	b.WriteString("+++\n\n")
	b.WriteString(body)
	b.WriteString("\n")
	return b.String()
}

// Write stores the document, creating the corpus directory if needed.
func (w *Writer) Write(filename, content string) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("corpus: create dir: %w", err)
	}
	path := filepath.Join(w.dir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("corpus: write %s: %w", filename, err)
	}
	w.logger.Info("wrote document", slog.String("file", filename))
	return nil
}

// isoDate converts "2025-10-24 18:45:35" to "2025-10-24T18:45:35+08:00".
// A value that does not parse is passed through with the separator swapped
// so the document still renders.
func isoDate(ts string) string {
	t, err := time.Parse("2006-01-02 15:04:05", ts)
	if err != nil {
		return strings.Replace(ts, " ", "T", 1) + dateOffset
	}
	return t.Format("2006-01-02T15:04:05") + dateOffset
}

func tomlString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

func tomlStringArray(items []string) string {
	quoted := make([]string, 0, len(items))
	for _, item := range items {
		quoted = append(quoted, tomlString(item))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
