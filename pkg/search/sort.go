package search

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the ordering of search results.
type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortTitle     SortKey = "title"
	SortTitleDesc SortKey = "title-desc"
	SortStatus    SortKey = "status"
	SortType      SortKey = "type"
	SortAuthor    SortKey = "author"
)

// Sort orders.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// collator performs locale-aware string comparison for the lexicographic
// sort keys. Und gives language-neutral Unicode collation ordering.
var collator = collate.New(language.Und)

// sortResults orders results in place according to the sort key. Each key
// has a base direction (relevance is score-descending, newest is
// newest-first, the lexicographic keys are A-to-Z); OrderAsc inverts the
// base sign, OrderDesc keeps it. The inversion-on-asc quirk matches the
// engine's historical behavior and the default order is desc, so relevance
// and newest behave as expected out of the box.
func sortResults(results []Result, key SortKey, order string) {
	sort.SliceStable(results, func(i, j int) bool {
		cmp := compareResults(results[i], results[j], key)
		if order == OrderAsc {
			cmp = -cmp
		}
		return cmp < 0
	})
}

func compareResults(a, b Result, key SortKey) int {
	switch key {
	case SortNewest:
		return b.record.CreatedAt.Compare(a.record.CreatedAt)
	case SortOldest:
		return a.record.CreatedAt.Compare(b.record.CreatedAt)
	case SortTitle:
		return collator.CompareString(a.record.Title, b.record.Title)
	case SortTitleDesc:
		return collator.CompareString(b.record.Title, a.record.Title)
	case SortStatus:
		return collator.CompareString(a.record.Status, b.record.Status)
	case SortType:
		return collator.CompareString(a.record.Type, b.record.Type)
	case SortAuthor:
		return collator.CompareString(a.record.Author, b.record.Author)
	default: // SortRelevance
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	}
}

// paginate slices results to the window [offset, offset+limit). A nil limit
// returns everything from offset onward; out-of-range offsets yield an
// empty slice.
func paginate(results []Result, offset int, limit *int) []Result {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(results) {
		return []Result{}
	}
	end := len(results)
	if limit != nil {
		if *limit < 0 {
			return []Result{}
		}
		if offset+*limit < end {
			end = offset + *limit
		}
	}
	return results[offset:end]
}
