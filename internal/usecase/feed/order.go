package feed

import (
	"sort"

	"custom-rss/internal/domain/entity"
)

// Order removes duplicate entries and sorts the survivors for publication.
//
// Duplicates share an identity (permalink, or title+date when the link is
// empty); the first occurrence in extraction order wins. The sort is by
// published timestamp, newest first, and stable so entries from the same
// day keep their on-page order. Returns the ordered slice and the number
// of duplicates removed.
func Order(entries []entity.Entry) ([]entity.Entry, int) {
	seen := make(map[string]struct{}, len(entries))
	out := make([]entity.Entry, 0, len(entries))
	duplicates := 0
	for _, e := range entries {
		id := e.Identity()
		if _, ok := seen[id]; ok {
			duplicates++
			continue
		}
		seen[id] = struct{}{}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	return out, duplicates
}
