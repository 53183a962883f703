package extractor_test

import (
	"errors"
	"strings"
	"testing"

	"custom-rss/internal/infra/extractor"

	"github.com/PuerkitoBio/goquery"
)

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestIsabelExtractor_Extract(t *testing.T) {
	html := `<!DOCTYPE html>
<html><body>
  <div class="blogsection">
    <h3 class="blogtitle"><a href="entrada-mar-menor.html">El Mar Menor respira</a></h3>
    <span class="blogdate">lunes, 13 de enero de 2024</span>
    <div class="blogcontent">Las praderas de fanerógamas vuelven a crecer.</div>
  </div>
  <div class="blogsection">
    <h3 class="blogtitle"><a href="entrada-anox.html">Episodio de anoxia</a></h3>
    <span class="blogdate">martes, 2 de abril de 2024</span>
    <div class="blogcontent">Crónica del episodio.</div>
  </div>
</body></html>`

	ex := &extractor.IsabelExtractor{}
	result, err := ex.Extract(parseHTML(t, html))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if len(result.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(result.Entries))
	}
	if result.Skipped != 0 {
		t.Errorf("skipped = %d, want 0", result.Skipped)
	}

	first := result.Entries[0]
	if first.Title != "El Mar Menor respira" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Link != "entrada-mar-menor.html" {
		t.Errorf("Link = %q", first.Link)
	}
	if first.Date != "lunes, 13 de enero de 2024" {
		t.Errorf("Date = %q", first.Date)
	}
	if first.Summary != "Las praderas de fanerógamas vuelven a crecer." {
		t.Errorf("Summary = %q", first.Summary)
	}
}

func TestIsabelExtractor_SkipsMalformedBlocks(t *testing.T) {
	// Second block has no title link, third has no date.
	html := `<html><body>
  <div class="blogsection">
    <h3 class="blogtitle"><a href="ok.html">Entrada buena</a></h3>
    <span class="blogdate">viernes, 1 de marzo de 2024</span>
  </div>
  <div class="blogsection">
    <span class="blogdate">viernes, 1 de marzo de 2024</span>
  </div>
  <div class="blogsection">
    <h3 class="blogtitle"><a href="sin-fecha.html">Entrada sin fecha</a></h3>
  </div>
</body></html>`

	ex := &extractor.IsabelExtractor{}
	result, err := ex.Extract(parseHTML(t, html))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(result.Entries))
	}
	if result.Skipped != 2 {
		t.Errorf("skipped = %d, want 2", result.Skipped)
	}
}

func TestIsabelExtractor_LayoutMismatch(t *testing.T) {
	html := `<html><body><div class="totally-different">nothing here</div></body></html>`

	ex := &extractor.IsabelExtractor{}
	_, err := ex.Extract(parseHTML(t, html))
	if err == nil {
		t.Fatal("Extract() error = nil, want layout error")
	}

	var layoutErr *extractor.LayoutError
	if !errors.As(err, &layoutErr) {
		t.Fatalf("Extract() error type = %T, want *LayoutError", err)
	}
	if layoutErr.Kind != extractor.KindIsabel {
		t.Errorf("LayoutError.Kind = %q, want %q", layoutErr.Kind, extractor.KindIsabel)
	}
}

func TestForKind(t *testing.T) {
	for _, kind := range extractor.Kinds() {
		if _, err := extractor.ForKind(kind); err != nil {
			t.Errorf("ForKind(%q) error = %v", kind, err)
		}
	}
	if _, err := extractor.ForKind("wordpress"); err == nil {
		t.Error("ForKind(wordpress) error = nil, want unknown kind error")
	}
}
