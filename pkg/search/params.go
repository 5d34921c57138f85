package search

import (
	"fmt"
	"strconv"
	"time"
)

// ParseParams parses HTTP query parameters into a filter set and options.
// It handles type conversion and provides the engine defaults for missing
// or invalid parameters.
//
// Supported parameters:
//   - q: free-text query
//   - type, status, category: exact-match filters
//   - featured: tri-state boolean ("true"/"false", absent = unconstrained)
//   - tag: required tag (can be specified multiple times)
//   - author: author substring filter
//   - block: required block kind (can be specified multiple times)
//   - has_media: tri-state boolean on the has-images signal
//   - min_words, max_words: inclusive word-count bounds
//   - min_reading, max_reading: inclusive reading-time bounds (minutes)
//   - created_after, created_before: inclusive created-date bounds
//     (YYYY-MM-DD; the before bound is set to end of day)
//   - updated_after, updated_before: inclusive updated-date bounds
//   - sort: relevance|newest|oldest|title|title-desc|status|type|author
//   - order: asc|desc (defaults to desc)
//   - offset: pagination start (non-negative integer, defaults to 0)
//   - limit: page size (positive integer; absent = no slicing)
//   - fuzzy: "false" disables fuzzy scoring (enabled by default)
//   - highlight: "true" requests highlight metadata
//
// Invalid date formats return an error; invalid numbers and booleans fall
// back to their defaults.
func ParseParams(queryParams map[string][]string) (Filters, Options, error) {
	var filters Filters
	opts := DefaultOptions()

	first := func(key string) string {
		if vals := queryParams[key]; len(vals) > 0 {
			return vals[0]
		}
		return ""
	}

	filters.Query = first("q")
	filters.Type = first("type")
	filters.Status = first("status")
	filters.Category = first("category")
	filters.Author = first("author")
	filters.Tags = queryParams["tag"]
	filters.BlockKinds = queryParams["block"]

	filters.Featured = parseBoolParam(first("featured"))
	filters.HasMedia = parseBoolParam(first("has_media"))

	filters.WordCount.Min = parseIntParam(first("min_words"))
	filters.WordCount.Max = parseIntParam(first("max_words"))
	filters.ReadingTime.Min = parseIntParam(first("min_reading"))
	filters.ReadingTime.Max = parseIntParam(first("max_reading"))

	var err error
	if filters.Created, err = parseDateRange(first("created_after"), first("created_before")); err != nil {
		return filters, opts, err
	}
	if filters.Updated, err = parseDateRange(first("updated_after"), first("updated_before")); err != nil {
		return filters, opts, err
	}

	if sortKey := first("sort"); sortKey != "" {
		opts.Sort = SortKey(sortKey)
	}
	if order := first("order"); order == OrderAsc || order == OrderDesc {
		opts.Order = order
	}
	if offset, err := strconv.Atoi(first("offset")); err == nil && offset >= 0 {
		opts.Offset = offset
	}
	if limit, err := strconv.Atoi(first("limit")); err == nil && limit > 0 {
		opts.Limit = &limit
	}
	opts.Fuzzy = parseBoolParam(first("fuzzy"))
	opts.Highlight = first("highlight") == "true"

	return filters, opts, nil
}

func parseBoolParam(s string) *bool {
	switch s {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}

func parseIntParam(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func parseDateRange(after, before string) (DateRange, error) {
	var r DateRange
	if after != "" {
		parsed, err := time.Parse("2006-01-02", after)
		if err != nil {
			return r, fmt.Errorf("parsing date %q: %w", after, err)
		}
		r.From = &parsed
	}
	if before != "" {
		parsed, err := time.Parse("2006-01-02", before)
		if err != nil {
			return r, fmt.Errorf("parsing date %q: %w", before, err)
		}
		endOfDay := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 23, 59, 59, 999999999, parsed.Location())
		r.To = &endOfDay
	}
	return r, nil
}
