package entity

import (
	"testing"
	"time"
)

func validDefinition() FeedDefinition {
	return FeedDefinition{
		Path:            "/blog-isabel/feed",
		SourceURL:       "https://marmenormarmayor.es/El-blog-de-Isabel/archive.html",
		ExtractorKind:   "isabel",
		Title:           "El blog de Isabel",
		Description:     "Últimas entradas del blog de Isabel",
		RefreshInterval: 30 * time.Minute,
	}
}

func TestFeedDefinition_Validate(t *testing.T) {
	def := validDefinition()
	if err := def.Validate(); err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
}

func TestFeedDefinition_Validate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*FeedDefinition)
		field  string
	}{
		{"path without slash", func(d *FeedDefinition) { d.Path = "blog/feed" }, "path"},
		{"relative source URL", func(d *FeedDefinition) { d.SourceURL = "/archive.html" }, "source_url"},
		{"non-http scheme", func(d *FeedDefinition) { d.SourceURL = "ftp://example.com/x" }, "source_url"},
		{"empty extractor", func(d *FeedDefinition) { d.ExtractorKind = "" }, "extractor"},
		{"empty title", func(d *FeedDefinition) { d.Title = "" }, "title"},
		{"zero refresh interval", func(d *FeedDefinition) { d.RefreshInterval = 0 }, "refresh_interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := validDefinition()
			tt.modify(&def)

			err := def.Validate()
			if err == nil {
				t.Fatal("Validate() error = nil, want validation error")
			}
			var vErr *ValidationError
			if !asValidationError(err, &vErr) {
				t.Fatalf("Validate() error type = %T, want *ValidationError", err)
			}
			if vErr.Field != tt.field {
				t.Errorf("ValidationError.Field = %q, want %q", vErr.Field, tt.field)
			}
		})
	}
}

func asValidationError(err error, target **ValidationError) bool {
	v, ok := err.(*ValidationError)
	if ok {
		*target = v
	}
	return ok
}

func TestEntry_Identity(t *testing.T) {
	published := time.Date(2024, 1, 13, 12, 0, 0, 0, time.UTC)

	withLink := Entry{Title: "Marea verde", Link: "https://example.com/a", PublishedAt: published}
	if got := withLink.Identity(); got != "https://example.com/a" {
		t.Errorf("Identity() = %q, want link", got)
	}

	withoutLink := Entry{Title: "Marea verde", PublishedAt: published}
	if got := withoutLink.Identity(); got != "Marea verde|2024-01-13" {
		t.Errorf("Identity() = %q, want title|date fallback", got)
	}
}
