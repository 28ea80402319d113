// Package transform converts remote note markup into portable Markdown
// documents: body conversion, title inference, and media rehosting.
package transform

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"github.com/starford/laguz/internal/models"
)

// FallbackTitle is used when no line of the converted body qualifies.
const FallbackTitle = "Untitled Note"

// titleMaxLen is the maximum title length in runes.
const titleMaxLen = 50

// decorativePrefixRe strips list bullets, emphasis markers, escapes, and
// whitespace from the front of a title candidate.
var decorativePrefixRe = regexp.MustCompile(`^[\\*\-_\s]+`)

// MediaRehoster copies one attachment to durable storage and returns its
// public URL.
type MediaRehoster interface {
	Rehost(ctx context.Context, att models.Attachment) (string, error)
}

// Transformer converts note content for writing. It is safe for reuse
// across notes within a run.
type Transformer struct {
	converter *md.Converter
	rehoster  MediaRehoster
	logger    *slog.Logger
}

// New creates a Transformer. rehoster handles image attachments; a
// failure on one attachment never aborts the note.
func New(rehoster MediaRehoster, logger *slog.Logger) *Transformer {
	return &Transformer{
		converter: md.NewConverter("", true, nil),
		rehoster:  rehoster,
		logger:    logger,
	}
}

// Transform produces the document title and body for a note: markup is
// converted to Markdown, tag-marker lines dropped, blank runs collapsed,
// a body line duplicating the title removed once, and rehosted image
// URLs appended as a combined marker.
func (t *Transformer) Transform(ctx context.Context, note models.Note) (title, body string, err error) {
	markdown, err := t.converter.ConvertString(note.Content)
	if err != nil {
		return "", "", fmt.Errorf("transform: convert markup: %w", err)
	}

	title = titleFromMarkdown(markdown)
	body = cleanBody(markdown)
	body = trimDuplicateTitle(body, title)

	if urls := t.rehostImages(ctx, note); len(urls) > 0 {
		marker := fmt.Sprintf(`{{< flomo images="%s" >}}`, strings.Join(urls, "|"))
		if body != "" {
			body += "\n\n"
		}
		body += marker
	}

	return title, body, nil
}

// rehostImages uploads every image attachment and returns the public
// URLs of the ones that succeeded, in attachment order.
func (t *Transformer) rehostImages(ctx context.Context, note models.Note) []string {
	var urls []string
	for _, att := range note.Files {
		if att.Type != "image" {
			continue
		}
		url, err := t.rehoster.Rehost(ctx, att)
		if err != nil {
			t.logger.Warn("skipping attachment",
				slog.String("slug", note.Slug),
				slog.String("name", att.Name),
				slog.String("error", err.Error()))
			continue
		}
		urls = append(urls, url)
	}
	return urls
}

// titleFromMarkdown takes the first line that is neither blank nor a
// tag-marker line, truncated and stripped of decorative punctuation.
func titleFromMarkdown(markdown string) string {
	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isTagLine(line) {
			continue
		}
		runes := []rune(line)
		if len(runes) > titleMaxLen {
			line = string(runes[:titleMaxLen])
		}
		line = decorativePrefixRe.ReplaceAllString(line, "")
		if line != "" {
			return line
		}
	}
	return FallbackTitle
}

// isTagLine reports whether a trimmed line is a tag marker line. The
// converter escapes a leading "#" in plain text as "\#", so both forms
// are recognized.
func isTagLine(trimmed string) bool {
	trimmed = strings.TrimPrefix(trimmed, `\`)
	return strings.HasPrefix(trimmed, "#")
}

// cleanBody drops tag-marker lines, collapses runs of blank lines to at
// most one, and trims the whole body.
func cleanBody(markdown string) string {
	lines := strings.Split(markdown, "\n")
	cleaned := make([]string, 0, len(lines))
	prevEmpty := false
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		switch {
		case isTagLine(stripped):
			prevEmpty = true
		case stripped != "":
			cleaned = append(cleaned, line)
			prevEmpty = false
		case !prevEmpty:
			cleaned = append(cleaned, "")
			prevEmpty = true
		}
	}
	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}

// trimDuplicateTitle removes the first body line once when it equals the
// title exactly, so the title is not duplicated between front matter and
// body.
func trimDuplicateTitle(body, title string) string {
	lines := strings.Split(body, "\n")
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == title {
		return strings.TrimSpace(strings.Join(lines[1:], "\n"))
	}
	return body
}
