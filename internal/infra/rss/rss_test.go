package rss_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"custom-rss/internal/domain/entity"
	"custom-rss/internal/infra/rss"

	"github.com/mmcdole/gofeed"
)

func testDefinition() entity.FeedDefinition {
	return entity.FeedDefinition{
		Path:            "/verde/blog/feed",
		SourceURL:       "https://elclickverde.com/blog",
		ExtractorKind:   "verde-blog",
		Title:           "Blog | elclickverde",
		Description:     "Últimas entradas del blog de elclickverde",
		RefreshInterval: time.Hour,
	}
}

func testEntries() []entity.Entry {
	return []entity.Entry{
		{
			Title:       "Humedales en la huerta",
			Link:        "https://elclickverde.com/blog/humedales",
			PublishedAt: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
			Summary:     "Un paseo por los humedales.",
		},
		{
			Title:       "Aves esteparias",
			Link:        "https://elclickverde.com/blog/aves",
			PublishedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		},
	}
}

// The round-trip check uses gofeed, the same parser real readers are built
// on: whatever it can consume without error is a feed worth serving.
func TestMarshal_RoundTrip(t *testing.T) {
	body, err := rss.Marshal(testDefinition(), testEntries())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("gofeed.Parse() error = %v\ndocument:\n%s", err, body)
	}

	if parsed.Title != "Blog | elclickverde" {
		t.Errorf("channel title = %q", parsed.Title)
	}
	if parsed.Link != "https://elclickverde.com/blog" {
		t.Errorf("channel link = %q", parsed.Link)
	}
	if len(parsed.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(parsed.Items))
	}

	first := parsed.Items[0]
	if first.Title != "Humedales en la huerta" {
		t.Errorf("items[0].Title = %q", first.Title)
	}
	if first.Link != "https://elclickverde.com/blog/humedales" {
		t.Errorf("items[0].Link = %q", first.Link)
	}
	if first.GUID != "https://elclickverde.com/blog/humedales" {
		t.Errorf("items[0].GUID = %q, want permalink", first.GUID)
	}
	if first.PublishedParsed == nil {
		t.Fatal("items[0].PublishedParsed = nil, want parseable pubDate")
	}
	if got := first.PublishedParsed.UTC().Format("2006-01-02"); got != "2024-03-15" {
		t.Errorf("items[0] published = %s, want 2024-03-15", got)
	}
	if first.Description != "Un paseo por los humedales." {
		t.Errorf("items[0].Description = %q", first.Description)
	}
}

func TestMarshal_ItemOrderMatchesInput(t *testing.T) {
	entries := testEntries()
	body, err := rss.Marshal(testDefinition(), entries)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("gofeed.Parse() error = %v", err)
	}
	for i, want := range entries {
		if parsed.Items[i].Title != want.Title {
			t.Errorf("items[%d].Title = %q, want %q", i, parsed.Items[i].Title, want.Title)
		}
	}
}

func TestMarshal_EmptyFeedIsValid(t *testing.T) {
	body, err := rss.Marshal(testDefinition(), nil)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("gofeed.Parse() error = %v, empty feed must still be valid", err)
	}
	if len(parsed.Items) != 0 {
		t.Errorf("items = %d, want 0", len(parsed.Items))
	}
}

func TestMarshal_EscapesMarkup(t *testing.T) {
	entries := []entity.Entry{{
		Title:       `Dunas & "chiringuitos" <en peligro>`,
		Link:        "https://example.com/dunas?a=1&b=2",
		PublishedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Summary:     "El 5% < 10% & más",
	}}

	body, err := rss.Marshal(testDefinition(), entries)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(body), "<en peligro>") {
		t.Error("unescaped markup leaked into the document")
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("gofeed.Parse() error = %v", err)
	}
	if parsed.Items[0].Title != `Dunas & "chiringuitos" <en peligro>` {
		t.Errorf("round-tripped title = %q", parsed.Items[0].Title)
	}
}

func TestMarshal_XMLDeclaration(t *testing.T) {
	body, err := rss.Marshal(testDefinition(), nil)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.HasPrefix(string(body), "<?xml") {
		t.Errorf("document does not start with XML declaration:\n%.60s", body)
	}
}
