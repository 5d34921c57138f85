// Package search implements the in-memory content search and relevance
// ranking engine: index construction from block-based content items,
// multi-dimensional filtering, weighted relevance scoring with optional
// fuzzy matching, sorting, pagination, autocomplete suggestions and facet
// discovery.
//
// The engine is stateless and synchronous. Every entry point takes the full
// content collection as an argument, builds a fresh index, and returns a
// complete result - no background indexing, no persisted cache, no shared
// mutable state between calls. At the collection sizes a CMS admin UI deals
// with, a full rebuild per call is cheaper than any cache-invalidation
// scheme, and it makes concurrent callers trivially independent: each call
// operates on its own local index over an immutable snapshot of the input.
//
// Data flow:
//
//	items -> BuildIndex -> ApplyFilters -> Score -> sort -> paginate
//
// Suggestions and FilterOptions consume the same extraction layer
// independently of the search path.
//
// Basic usage:
//
//	results, err := search.Search(items, search.Filters{Query: "golang"}, search.DefaultOptions())
//	if err != nil {
//		return err
//	}
//	for _, r := range results.Results {
//		fmt.Printf("%.1f %s\n", r.Score, r.Item.Title)
//	}
//
// Search also reports its own wall-clock execution time in fractional
// milliseconds so callers can observe and alert on regressions relative to
// their debounce window.
package search
