package extractor

import (
	"strings"

	"custom-rss/internal/domain/entity"

	"github.com/PuerkitoBio/goquery"
)

// Selectors for the elclickverde.com blog listing.
// Each .views-row holds the title link inside the header group and the
// description/date inside the right group; the date sits in a right-aligned
// paragraph span as YYYY-MM-DD.
const (
	verdeBlogRowSelector         = ".views-row"
	verdeBlogHeaderSelector      = ".group-header .field__item.even h2 a"
	verdeBlogRightSelector       = ".group-right"
	verdeBlogDescriptionSelector = "p:not(.rteright)"
	verdeBlogDateSelector        = "p.rteright span"
)

// VerdeBlogExtractor extracts entries from the blog listing at elclickverde.com.
type VerdeBlogExtractor struct{}

// Extract implements Extractor.
func (e *VerdeBlogExtractor) Extract(doc *goquery.Document) (Result, error) {
	rows := doc.Find(verdeBlogRowSelector)
	if rows.Length() == 0 {
		return Result{}, &LayoutError{Kind: KindVerdeBlog, Marker: verdeBlogRowSelector}
	}

	var result Result
	rows.Each(func(i int, row *goquery.Selection) {
		header := row.Find(verdeBlogHeaderSelector).First()
		title := strings.TrimSpace(header.Text())
		href, hasHref := header.Attr("href")

		right := row.Find(verdeBlogRightSelector).First()
		date := strings.TrimSpace(right.Find(verdeBlogDateSelector).First().Text())

		if title == "" || !hasHref || date == "" {
			result.Skipped++
			return
		}

		result.Entries = append(result.Entries, entity.RawEntry{
			Title:   title,
			Link:    strings.TrimSpace(href),
			Date:    date,
			Summary: strings.TrimSpace(right.Find(verdeBlogDescriptionSelector).First().Text()),
		})
	})

	return result, nil
}
