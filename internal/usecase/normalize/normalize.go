// Package normalize turns raw extracted entry fields into canonical entries.
// It owns the tolerant date parsing that makes hand-authored Spanish dates
// (inconsistent separators, misspelled month names, missing leading zeros)
// resolve to real calendar dates, and it rejects entries it cannot
// confidently normalize rather than admitting sentinel values.
package normalize

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"custom-rss/internal/domain/entity"
)

// Sentinel errors for normalization failures. All of them are entry-level:
// the caller drops the entry and keeps building the feed.
var (
	// ErrEmptyTitle indicates the title was empty after trimming
	ErrEmptyTitle = errors.New("empty title after trimming")

	// ErrBadLink indicates the entry link could not be parsed as a URL
	ErrBadLink = errors.New("unparsable entry link")
)

// DateParseError indicates that no configured pattern matched the raw date
// text. It carries the offending text for diagnostics.
type DateParseError struct {
	Raw string
}

// Error implements the error interface.
func (e *DateParseError) Error() string {
	return fmt.Sprintf("unparsable date: %q", e.Raw)
}

// Config controls the tolerant parsing behavior per feed.
type Config struct {
	// DayFirst selects day-month-year field order for all-numeric dates.
	// All currently supported sites are Spanish and day-first.
	DayFirst bool

	// MonthDistance is the maximum edit distance allowed when matching
	// month names. Zero means exact matches only.
	MonthDistance int

	// Location is the timezone published timestamps are pinned to.
	// The source pages carry no time of day, so entries are stamped at
	// noon local time to stay on the right calendar date in any reader.
	Location *time.Location
}

// DefaultConfig returns the config used for the supported Spanish sites.
func DefaultConfig(loc *time.Location) Config {
	return Config{
		DayFirst:      true,
		MonthDistance: 1,
		Location:      loc,
	}
}

// Normalizer converts RawEntry values into canonical entries for one feed.
type Normalizer struct {
	base     *url.URL
	cfg      Config
	patterns []datePattern
}

// New creates a Normalizer that resolves relative links against base.
func New(base *url.URL, cfg Config) *Normalizer {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	n := &Normalizer{base: base, cfg: cfg}
	n.patterns = n.buildPatterns()
	return n
}

// Normalize converts one raw entry into a canonical Entry.
// It returns an error when the entry cannot be confidently normalized;
// such entries are dropped by the pipeline, never admitted with defaults.
func (n *Normalizer) Normalize(raw entity.RawEntry) (entity.Entry, error) {
	title := strings.TrimSpace(raw.Title)
	if title == "" {
		return entity.Entry{}, ErrEmptyTitle
	}

	link, err := n.resolveLink(raw.Link)
	if err != nil {
		return entity.Entry{}, err
	}

	publishedAt, err := n.ParseDate(raw.Date)
	if err != nil {
		return entity.Entry{}, err
	}

	return entity.Entry{
		Title:       title,
		Link:        link,
		PublishedAt: publishedAt,
		Summary:     strings.TrimSpace(raw.Summary),
	}, nil
}

// resolveLink resolves a possibly relative link against the feed base URL.
// An empty link is passed through: some layouts have no unique permalink and
// the entry identity falls back to title+date downstream.
func (n *Normalizer) resolveLink(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrBadLink, raw)
	}
	resolved := n.base.ResolveReference(u)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", fmt.Errorf("%w: %q resolves to scheme %q", ErrBadLink, raw, resolved.Scheme)
	}
	return resolved.String(), nil
}
