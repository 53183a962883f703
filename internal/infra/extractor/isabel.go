package extractor

import (
	"strings"

	"custom-rss/internal/domain/entity"

	"github.com/PuerkitoBio/goquery"
)

// Selectors for the "El blog de Isabel" archive page.
// Entries are .blogsection blocks with the title link, long-form Spanish
// date ("lunes, 13 de enero de 2024") and body text as direct children.
const (
	isabelSectionSelector = ".blogsection"
	isabelTitleSelector   = "h3.blogtitle a"
	isabelDateSelector    = ".blogdate"
	isabelContentSelector = ".blogcontent"
)

// IsabelExtractor extracts entries from the blog archive at marmenormarmayor.es.
type IsabelExtractor struct{}

// Extract implements Extractor.
func (e *IsabelExtractor) Extract(doc *goquery.Document) (Result, error) {
	sections := doc.Find(isabelSectionSelector)
	if sections.Length() == 0 {
		return Result{}, &LayoutError{Kind: KindIsabel, Marker: isabelSectionSelector}
	}

	var result Result
	sections.Each(func(i int, section *goquery.Selection) {
		titleEl := section.Find(isabelTitleSelector).First()
		title := strings.TrimSpace(titleEl.Text())
		href, hasHref := titleEl.Attr("href")
		date := strings.TrimSpace(section.Find(isabelDateSelector).First().Text())

		if title == "" || !hasHref || date == "" {
			result.Skipped++
			return
		}

		result.Entries = append(result.Entries, entity.RawEntry{
			Title:   title,
			Link:    strings.TrimSpace(href),
			Date:    date,
			Summary: strings.TrimSpace(section.Find(isabelContentSelector).First().Text()),
		})
	})

	return result, nil
}
