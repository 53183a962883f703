package entity

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// FeedDefinition is the identity of one served feed: the route it is mounted
// on, the page it is scraped from, and the channel metadata emitted with it.
// Definitions are loaded once at startup and never mutated afterwards.
type FeedDefinition struct {
	Path            string        // route key, unique across the config
	SourceURL       string        // page the entries are extracted from
	ExtractorKind   string        // selects the site extractor (see extractor.Kinds)
	Title           string        // channel title
	Description     string        // channel description
	RefreshInterval time.Duration // maximum age of the cached document
}

// Validate checks the definition fields that the pipeline depends on.
// It does not check ExtractorKind against the registry; that is the
// extractor package's concern and is verified at wiring time.
func (d *FeedDefinition) Validate() error {
	if !strings.HasPrefix(d.Path, "/") {
		return &ValidationError{Field: "path", Message: fmt.Sprintf("must start with '/', got %q", d.Path)}
	}
	u, err := url.Parse(d.SourceURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ValidationError{Field: "source_url", Message: fmt.Sprintf("must be an absolute http(s) URL, got %q", d.SourceURL)}
	}
	if d.ExtractorKind == "" {
		return &ValidationError{Field: "extractor", Message: "is required"}
	}
	if d.Title == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if d.RefreshInterval <= 0 {
		return &ValidationError{Field: "refresh_interval", Message: "must be positive"}
	}
	return nil
}

// BaseURL returns the URL relative entry links are resolved against.
func (d *FeedDefinition) BaseURL() (*url.URL, error) {
	return url.Parse(d.SourceURL)
}

// RawEntry is one entry block as pulled out of the page, before any
// normalization. Field values are whatever text the site extractor found;
// dates in particular are free-form and may be malformed.
type RawEntry struct {
	Title   string
	Link    string // possibly relative
	Date    string // free-form text
	Summary string // optional
}

// Entry is one normalized record destined to become one RSS item.
type Entry struct {
	Title       string
	Link        string // absolute URL
	PublishedAt time.Time
	Summary     string // optional
}

// Identity returns the stable key used for deduplication and is recomputed
// on every fetch cycle. The normalized link is the natural key; entries
// without one fall back to title plus calendar date.
func (e Entry) Identity() string {
	if e.Link != "" {
		return e.Link
	}
	return e.Title + "|" + e.PublishedAt.Format("2006-01-02")
}

// Feed is a definition together with its ordered entries, newest first.
type Feed struct {
	Definition FeedDefinition
	Entries    []Entry
}
