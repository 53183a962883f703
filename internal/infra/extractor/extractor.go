// Package extractor locates entry blocks in fetched HTML and pulls the raw
// field text out of them. One extractor exists per supported site layout,
// selected by the extractor kind on the feed definition.
//
// Extractors never fail on a single malformed block: blocks that do not match
// the expected sub-structure are skipped and counted. An extractor fails only
// when the page lacks its top-level structural marker entirely, which means
// the source site changed its markup and the selectors need operator attention.
package extractor

import (
	"fmt"

	"custom-rss/internal/domain/entity"

	"github.com/PuerkitoBio/goquery"
)

// Supported extractor kinds.
const (
	KindIsabel          = "isabel"
	KindVerdeBlog       = "verde-blog"
	KindVerdeReportajes = "verde-reportajes"
)

// Result holds the raw entries pulled from one page plus the number of
// blocks that matched the top-level marker but not the entry sub-structure.
type Result struct {
	Entries []entity.RawEntry
	Skipped int
}

// Extractor pulls raw entries from a parsed HTML document.
type Extractor interface {
	Extract(doc *goquery.Document) (Result, error)
}

// LayoutError indicates that the page did not contain the structural marker
// the extractor keys on. This is not retryable: the markup has changed.
type LayoutError struct {
	Kind   string // extractor kind
	Marker string // CSS selector that matched nothing
}

// Error implements the error interface.
func (e *LayoutError) Error() string {
	return fmt.Sprintf("layout mismatch for %s: no elements match %q", e.Kind, e.Marker)
}

// ForKind returns the extractor for the given kind.
// The kind set is closed; an unknown kind is a configuration error.
func ForKind(kind string) (Extractor, error) {
	switch kind {
	case KindIsabel:
		return &IsabelExtractor{}, nil
	case KindVerdeBlog:
		return &VerdeBlogExtractor{}, nil
	case KindVerdeReportajes:
		return &VerdeReportajesExtractor{}, nil
	default:
		return nil, fmt.Errorf("unknown extractor kind: %q", kind)
	}
}

// Kinds returns all registered extractor kinds.
func Kinds() []string {
	return []string{KindIsabel, KindVerdeBlog, KindVerdeReportajes}
}
