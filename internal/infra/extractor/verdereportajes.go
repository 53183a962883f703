package extractor

import (
	"strings"

	"custom-rss/internal/domain/entity"

	"github.com/PuerkitoBio/goquery"
)

// Selectors for the elclickverde.com reportajes listing. The markup is
// Drupal field soup: the title link carries a dc:title property, the teaser
// is the second paragraph of the content:encoded field, and the date
// ("13 Ene. 2024") hides inside the post-date field wrapper.
const (
	reportajesRowSelector         = ".views-row"
	reportajesHeaderSelector      = `div.field__item.even[property="dc:title"] h2 a`
	reportajesDescriptionSelector = `div.field__item.even[property="content:encoded"]`
	reportajesDateSelector        = "div.field.field--name-post-date"
	reportajesInnerDateSelector   = "div.field__item.even"
)

// VerdeReportajesExtractor extracts entries from the reportajes listing at elclickverde.com.
type VerdeReportajesExtractor struct{}

// Extract implements Extractor.
func (e *VerdeReportajesExtractor) Extract(doc *goquery.Document) (Result, error) {
	rows := doc.Find(reportajesRowSelector)
	if rows.Length() == 0 {
		return Result{}, &LayoutError{Kind: KindVerdeReportajes, Marker: reportajesRowSelector}
	}

	var result Result
	rows.Each(func(i int, row *goquery.Selection) {
		header := row.Find(reportajesHeaderSelector).First()
		title := strings.TrimSpace(header.Text())
		href, hasHref := header.Attr("href")

		date := strings.TrimSpace(row.Find(reportajesDateSelector).First().
			Find(reportajesInnerDateSelector).First().Text())

		if title == "" || !hasHref || date == "" {
			result.Skipped++
			return
		}

		// The first paragraph is the byline; the teaser is the second.
		summary := strings.TrimSpace(row.Find(reportajesDescriptionSelector).First().
			Find("p").Eq(1).Text())

		result.Entries = append(result.Entries, entity.RawEntry{
			Title:   title,
			Link:    strings.TrimSpace(href),
			Date:    date,
			Summary: summary,
		})
	})

	return result, nil
}
