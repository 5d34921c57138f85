package search

import (
	"testing"
	"time"
)

func boolPtr(v bool) *bool    { return &v }
func intPtr(v int) *int       { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func filterFixture() []IndexRecord {
	return []IndexRecord{
		{
			ID: "a", Type: "blog", Status: "published", Featured: true,
			Category: "engineering", Tags: []string{"go", "golang"}, Author: "Ana Costa",
			BlockKinds: []string{"paragraph", "image"}, HasImages: true,
			WordCount: 500, ReadingTime: 3,
			CreatedAt: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "b", Type: "docs", Status: "draft",
			Category: "reference", Tags: []string{"api"}, Author: "Bruno",
			BlockKinds: []string{"paragraph", "code-block"}, HasCode: true,
			WordCount: 120, ReadingTime: 1,
			CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "c", Type: "blog", Status: "published",
			Category: "engineering", Tags: []string{"rust"}, Author: "Ana Costa",
			BlockKinds: []string{"quote"}, HasQuotes: true,
			WordCount: 900, ReadingTime: 5,
			CreatedAt: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2023, 6, 2, 0, 0, 0, 0, time.UTC),
		},
	}
}

func filteredIDs(records []IndexRecord) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}

func TestApplyFilters(t *testing.T) {
	records := filterFixture()

	tests := []struct {
		name    string
		filters Filters
		wantIDs []string
	}{
		{"no constraints", Filters{}, []string{"a", "b", "c"}},
		{"content type", Filters{Type: "blog"}, []string{"a", "c"}},
		{"status", Filters{Status: "draft"}, []string{"b"}},
		{"featured true", Filters{Featured: boolPtr(true)}, []string{"a"}},
		{"featured false", Filters{Featured: boolPtr(false)}, []string{"b", "c"}},
		{"category", Filters{Category: "reference"}, []string{"b"}},
		{"tag substring case-insensitive", Filters{Tags: []string{"GO"}}, []string{"a"}},
		{"tags AND semantics", Filters{Tags: []string{"go", "lang"}}, []string{"a"}},
		{"tag unmatched", Filters{Tags: []string{"python"}}, []string{}},
		{"author substring", Filters{Author: "ana"}, []string{"a", "c"}},
		{"block kinds AND semantics", Filters{BlockKinds: []string{"paragraph", "code-block"}}, []string{"b"}},
		{"block kind single", Filters{BlockKinds: []string{"paragraph"}}, []string{"a", "b"}},
		{"has media true", Filters{HasMedia: boolPtr(true)}, []string{"a"}},
		{"has media false", Filters{HasMedia: boolPtr(false)}, []string{"b", "c"}},
		{"word count range", Filters{WordCount: IntRange{Min: intPtr(200), Max: intPtr(800)}}, []string{"a"}},
		{"word count min only", Filters{WordCount: IntRange{Min: intPtr(500)}}, []string{"a", "c"}},
		{"word count inclusive bounds", Filters{WordCount: IntRange{Min: intPtr(120), Max: intPtr(120)}}, []string{"b"}},
		{"reading time range", Filters{ReadingTime: IntRange{Max: intPtr(3)}}, []string{"a", "b"}},
		{
			"created range",
			Filters{Created: DateRange{From: timePtr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))}},
			[]string{"a", "b"},
		},
		{
			"created range inclusive bound",
			Filters{Created: DateRange{
				From: timePtr(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)),
				To:   timePtr(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)),
			}},
			[]string{"a"},
		},
		{
			"updated range",
			Filters{Updated: DateRange{To: timePtr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))}},
			[]string{"c"},
		},
		{
			"combined constraints",
			Filters{Type: "blog", Author: "ana", Tags: []string{"rust"}},
			[]string{"c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filteredIDs(ApplyFilters(records, tt.filters))
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %v, want %v", got, tt.wantIDs)
			}
			for i := range got {
				if got[i] != tt.wantIDs[i] {
					t.Fatalf("got %v, want %v", got, tt.wantIDs)
				}
			}
		})
	}
}

func TestApplyFiltersMonotonic(t *testing.T) {
	// Adding a constraint never increases the result count.
	records := filterFixture()

	base := Filters{Type: "blog"}
	narrowed := base
	narrowed.Author = "ana"
	narrower := narrowed
	narrower.Tags = []string{"go"}

	n0 := len(ApplyFilters(records, Filters{}))
	n1 := len(ApplyFilters(records, base))
	n2 := len(ApplyFilters(records, narrowed))
	n3 := len(ApplyFilters(records, narrower))

	if n1 > n0 || n2 > n1 || n3 > n2 {
		t.Fatalf("filter counts must be monotonically non-increasing: %d %d %d %d", n0, n1, n2, n3)
	}
}

func TestApplyFiltersDoesNotMutateInput(t *testing.T) {
	records := filterFixture()
	before := filteredIDs(records)

	ApplyFilters(records, Filters{Type: "docs"})

	after := filteredIDs(records)
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("ApplyFilters mutated its input slice")
		}
	}
}
