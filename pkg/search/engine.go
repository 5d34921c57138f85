package search

import (
	"time"

	"github.com/inkwellcms/searchlight/pkg/content"
)

// DefaultSuggestionLimit caps autocomplete suggestions when the caller does
// not specify a limit.
const DefaultSuggestionLimit = 5

// Options control scoring, ordering and pagination of a search call.
type Options struct {
	// Sort selects the ordering; empty means SortRelevance.
	Sort SortKey

	// Order is OrderAsc or OrderDesc; empty means OrderDesc.
	Order string

	// Offset is the start of the pagination window (0-based).
	Offset int

	// Limit caps the number of returned results. A nil limit returns the
	// whole filtered window.
	Limit *int

	// Fuzzy toggles edit-distance scaling of match weights. A nil value
	// means enabled.
	Fuzzy *bool

	// Highlight requests highlight metadata on results. Accepted and
	// carried for API compatibility; highlight extraction is not
	// implemented.
	Highlight bool
}

// DefaultOptions returns the engine defaults: relevance sort, descending
// order, fuzzy enabled, no pagination window.
func DefaultOptions() Options {
	return Options{Sort: SortRelevance, Order: OrderDesc}
}

func (o Options) normalized() Options {
	if o.Sort == "" {
		o.Sort = SortRelevance
	}
	if o.Order == "" {
		o.Order = OrderDesc
	}
	return o
}

func (o Options) fuzzyEnabled() bool {
	return o.Fuzzy == nil || *o.Fuzzy
}

// Result is one ranked search hit: the original content item (not the index
// record), its relevance score, and reserved highlight metadata.
type Result struct {
	Item       *content.Item
	Score      float64
	Highlights []string

	record IndexRecord
}

// Record exposes the index record behind a result, giving callers access to
// the derived signals (word count, reading time, block kinds) without
// re-extracting them.
func (r Result) Record() IndexRecord {
	return r.record
}

// Results is the complete outcome of one search call.
type Results struct {
	// Results is the ranked, paginated hit list.
	Results []Result

	// TotalCount is the filtered result count before pagination slicing,
	// independent of Offset and Limit.
	TotalCount int

	// SearchTime is the wall-clock execution time of the call in
	// fractional milliseconds.
	SearchTime float64
}

// Search runs one complete search over a content collection: build a fresh
// index, apply filters, score against the query, sort, and slice to the
// requested window. The call is pure and synchronous; the input collection
// is never mutated and nothing is cached between calls.
//
// When the query is non-empty, records that score zero are dropped before
// sorting, so only items that actually match some query term are returned.
func Search(items []content.Item, filters Filters, opts Options) (*Results, error) {
	start := time.Now()
	opts = opts.normalized()

	records, err := BuildIndex(items)
	if err != nil {
		return nil, err
	}

	filtered := ApplyFilters(records, filters)

	// Map records back to the items they were built from. First occurrence
	// wins on duplicate ids, matching index order.
	byID := make(map[string]*content.Item, len(items))
	for i := range items {
		if _, seen := byID[items[i].ID]; !seen {
			byID[items[i].ID] = &items[i]
		}
	}

	fuzzy := opts.fuzzyEnabled()
	hasQuery := filters.Query != ""
	results := make([]Result, 0, len(filtered))
	for _, record := range filtered {
		score := Score(record, filters.Query, fuzzy)
		if hasQuery && score <= 0 {
			continue
		}
		results = append(results, Result{
			Item:   byID[record.ID],
			Score:  score,
			record: record,
		})
	}

	sortResults(results, opts.Sort, opts.Order)

	totalCount := len(results)
	results = paginate(results, opts.Offset, opts.Limit)

	return &Results{
		Results:    results,
		TotalCount: totalCount,
		SearchTime: float64(time.Since(start)) / float64(time.Millisecond),
	}, nil
}
