package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/laguz/internal/models"
	"github.com/starford/laguz/internal/testutil"
)

func TestFilename_Deterministic(t *testing.T) {
	n := models.Note{CreatedAt: "2025-10-24 18:45:35", Slug: "ABC123"}
	if got := Filename(n); got != "2025-10-24-ABC123.md" {
		t.Errorf("Filename = %q, want %q", got, "2025-10-24-ABC123.md")
	}
}

func TestRender_FrontMatterFields(t *testing.T) {
	n := models.Note{
		Slug:      "XyZ",
		Tags:      []string{"daily", "reading"},
		CreatedAt: "2025-10-24 18:45:35",
		UpdatedAt: "2025-10-25 09:00:00",
		Source:    "web",
	}
	doc := Render(n, "My title", "Body line.")

	for _, want := range []string{
		"+++\n",
		`title = "My title"`,
		"date = 2025-10-24T18:45:35+08:00",
		"draft = false",
		`tags = ["daily", "reading"]`,
		`flomo_slug = "XyZ"`,
		`flomo_source = "web"`,
		`flomo_updated_at = "2025-10-25 09:00:00"`,
		"Body line.",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}
}

func TestRender_RoundTripsThroughScan(t *testing.T) {
	n := models.Note{
		Slug:      "RT1",
		Tags:      []string{"t"},
		CreatedAt: "2025-03-01 10:00:00",
		UpdatedAt: "2025-03-02 11:30:00",
		Source:    "ios",
	}
	dir := t.TempDir()
	w := NewWriter(dir, testutil.Logger())
	if err := w.Write(Filename(n), Render(n, "title", "body")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	state := Scan(dir, testutil.Logger())
	if got := state["RT1"]; got != "2025-03-02 11:30:00" {
		t.Errorf("recovered updated_at = %q, want the rendered value", got)
	}
}

func TestRender_EscapesQuotes(t *testing.T) {
	n := models.Note{Slug: "q", CreatedAt: "2025-01-01 00:00:00", UpdatedAt: "2025-01-01 00:00:00"}
	doc := Render(n, `say "hi"`, "")
	if !strings.Contains(doc, `title = "say \"hi\""`) {
		t.Errorf("title not escaped:\n%s", doc)
	}
}

func TestWriter_CreatesDirAndOverwrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "posts")
	w := NewWriter(dir, testutil.Logger())

	if err := w.Write("2025-01-01-S.md", "first"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Write("2025-01-01-S.md", "second"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "2025-01-01-S.md"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want last write to win", data)
	}
}
