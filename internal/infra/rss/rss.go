// Package rss serializes ordered entries into an RSS 2.0 document.
// Serialization is a pure function of the feed definition and entries:
// no I/O, no shared state, and all text content is escaped by encoding/xml.
package rss

import (
	"encoding/xml"
	"fmt"
	"time"

	"custom-rss/internal/domain/entity"
)

// ContentType is the MIME type served with the generated documents.
const ContentType = "application/xml"

// document is the root element of an RSS 2.0 feed.
type document struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel channel  `xml:"channel"`
}

// channel holds the feed-level metadata and the item list.
type channel struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Items       []item `xml:"item"`
}

// item is one feed entry on the wire.
type item struct {
	Title       string `xml:"title"`
	Link        string `xml:"link,omitempty"`
	GUID        *guid  `xml:"guid,omitempty"`
	PubDate     string `xml:"pubDate"`
	Description string `xml:"description,omitempty"`
}

// guid carries the permalink identity readers use for read-state tracking.
type guid struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// Marshal builds the RSS 2.0 document for a definition and its ordered
// entries. Item order follows the input slice exactly; publish dates are
// rendered RFC-822 compatible regardless of the source format.
func Marshal(def entity.FeedDefinition, entries []entity.Entry) ([]byte, error) {
	ch := channel{
		Title:       def.Title,
		Link:        def.SourceURL,
		Description: def.Description,
		Items:       make([]item, 0, len(entries)),
	}

	for _, e := range entries {
		it := item{
			Title:       e.Title,
			Link:        e.Link,
			PubDate:     e.PublishedAt.Format(time.RFC1123Z),
			Description: e.Summary,
		}
		if e.Link != "" {
			it.GUID = &guid{IsPermaLink: true, Value: e.Link}
		}
		ch.Items = append(ch.Items, it)
	}

	body, err := xml.MarshalIndent(document{Version: "2.0", Channel: ch}, "", "  ")
	if err != nil {
		// Defensive: the document is built from plain strings and should
		// always marshal.
		return nil, fmt.Errorf("marshal rss document: %w", err)
	}

	return append([]byte(xml.Header), body...), nil
}
