package feed

import (
	"testing"
	"time"

	"custom-rss/internal/domain/entity"

	"github.com/google/go-cmp/cmp"
)

func entryAt(title, link string, day int) entity.Entry {
	return entity.Entry{
		Title:       title,
		Link:        link,
		PublishedAt: time.Date(2024, 1, day, 12, 0, 0, 0, time.UTC),
	}
}

func TestOrder_SortsNewestFirst(t *testing.T) {
	got, duplicates := Order([]entity.Entry{
		entryAt("oldest", "https://example.com/a", 1),
		entryAt("newest", "https://example.com/b", 20),
		entryAt("middle", "https://example.com/c", 10),
	})
	if duplicates != 0 {
		t.Fatalf("duplicates = %d, want 0", duplicates)
	}

	want := []entity.Entry{
		entryAt("newest", "https://example.com/b", 20),
		entryAt("middle", "https://example.com/c", 10),
		entryAt("oldest", "https://example.com/a", 1),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Order() mismatch (-want +got):\n%s", diff)
	}
}

func TestOrder_StableWithinSameDay(t *testing.T) {
	got, _ := Order([]entity.Entry{
		entryAt("first on page", "https://example.com/a", 5),
		entryAt("second on page", "https://example.com/b", 5),
		entryAt("third on page", "https://example.com/c", 5),
	})

	want := []string{"first on page", "second on page", "third on page"}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("got[%d].Title = %q, want %q", i, got[i].Title, title)
		}
	}
}

func TestOrder_DedupeByLink_FirstWins(t *testing.T) {
	got, duplicates := Order([]entity.Entry{
		entryAt("kept", "https://example.com/same", 5),
		entryAt("dropped", "https://example.com/same", 9),
		entryAt("other", "https://example.com/other", 7),
	})
	if duplicates != 1 {
		t.Fatalf("duplicates = %d, want 1", duplicates)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Title != "other" || got[1].Title != "kept" {
		t.Errorf("got titles %q, %q; want \"other\", \"kept\"", got[0].Title, got[1].Title)
	}
}

func TestOrder_DedupeByTitleAndDateWhenLinkEmpty(t *testing.T) {
	same := entity.Entry{Title: "sin enlace", PublishedAt: time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)}
	otherDay := entity.Entry{Title: "sin enlace", PublishedAt: time.Date(2024, 1, 6, 12, 0, 0, 0, time.UTC)}

	got, duplicates := Order([]entity.Entry{same, same, otherDay})
	if duplicates != 1 {
		t.Fatalf("duplicates = %d, want 1", duplicates)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
}

func TestOrder_Empty(t *testing.T) {
	got, duplicates := Order(nil)
	if duplicates != 0 || len(got) != 0 {
		t.Fatalf("Order(nil) = %v, %d; want empty, 0", got, duplicates)
	}
}
