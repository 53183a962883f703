package normalize

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"custom-rss/internal/domain/entity"
)

func TestNormalize_Success(t *testing.T) {
	base, _ := url.Parse("https://elclickverde.com/blog")
	n := New(base, DefaultConfig(time.UTC))

	entry, err := n.Normalize(entity.RawEntry{
		Title:   "  Humedales en la huerta  ",
		Link:    "/blog/humedales",
		Date:    "2024-03-15",
		Summary: " Un paseo por los humedales. ",
	})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if entry.Title != "Humedales en la huerta" {
		t.Errorf("Title = %q, want trimmed", entry.Title)
	}
	if entry.Link != "https://elclickverde.com/blog/humedales" {
		t.Errorf("Link = %q, want resolved against base", entry.Link)
	}
	if got := entry.PublishedAt.Format("2006-01-02"); got != "2024-03-15" {
		t.Errorf("PublishedAt = %s, want 2024-03-15", got)
	}
	if entry.Summary != "Un paseo por los humedales." {
		t.Errorf("Summary = %q, want trimmed", entry.Summary)
	}
}

func TestNormalize_AbsoluteLinkKept(t *testing.T) {
	base, _ := url.Parse("https://marmenormarmayor.es/El-blog-de-Isabel/archive.html")
	n := New(base, DefaultConfig(time.UTC))

	entry, err := n.Normalize(entity.RawEntry{
		Title: "Entrada",
		Link:  "https://otra-web.example.com/articulo",
		Date:  "13 enero 2024",
	})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if entry.Link != "https://otra-web.example.com/articulo" {
		t.Errorf("Link = %q, want absolute link untouched", entry.Link)
	}
}

func TestNormalize_RelativeLinkAgainstPageURL(t *testing.T) {
	// Isabel entry hrefs are relative to the blog directory.
	base, _ := url.Parse("https://marmenormarmayor.es/El-blog-de-Isabel/archive.html")
	n := New(base, DefaultConfig(time.UTC))

	entry, err := n.Normalize(entity.RawEntry{
		Title: "Entrada",
		Link:  "entrada-mar-menor.html",
		Date:  "13 enero 2024",
	})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	want := "https://marmenormarmayor.es/El-blog-de-Isabel/entrada-mar-menor.html"
	if entry.Link != want {
		t.Errorf("Link = %q, want %q", entry.Link, want)
	}
}

func TestNormalize_EmptyTitle(t *testing.T) {
	base, _ := url.Parse("https://example.com/")
	n := New(base, DefaultConfig(time.UTC))

	_, err := n.Normalize(entity.RawEntry{Title: "   ", Link: "/x", Date: "2024-01-01"})
	if !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("Normalize() error = %v, want ErrEmptyTitle", err)
	}
}

func TestNormalize_BadLink(t *testing.T) {
	base, _ := url.Parse("https://example.com/")
	n := New(base, DefaultConfig(time.UTC))

	_, err := n.Normalize(entity.RawEntry{Title: "x", Link: "://bad", Date: "2024-01-01"})
	if !errors.Is(err, ErrBadLink) {
		t.Errorf("Normalize() error = %v, want ErrBadLink", err)
	}
}

func TestNormalize_EmptyLinkAllowed(t *testing.T) {
	base, _ := url.Parse("https://example.com/")
	n := New(base, DefaultConfig(time.UTC))

	entry, err := n.Normalize(entity.RawEntry{Title: "Sin enlace", Date: "2024-01-01"})
	if err != nil {
		t.Fatalf("Normalize() error = %v, want entry with identity fallback", err)
	}
	if entry.Link != "" {
		t.Errorf("Link = %q, want empty", entry.Link)
	}
	if entry.Identity() != "Sin enlace|2024-01-01" {
		t.Errorf("Identity() = %q, want title|date fallback", entry.Identity())
	}
}

func TestNormalize_UnparsableDateDropsEntry(t *testing.T) {
	base, _ := url.Parse("https://example.com/")
	n := New(base, DefaultConfig(time.UTC))

	_, err := n.Normalize(entity.RawEntry{Title: "x", Link: "/x", Date: "mañana, creo"})
	var dateErr *DateParseError
	if !errors.As(err, &dateErr) {
		t.Fatalf("Normalize() error = %v, want *DateParseError", err)
	}
	if dateErr.Raw != "mañana, creo" {
		t.Errorf("DateParseError.Raw = %q", dateErr.Raw)
	}
}
