package search

import (
	"slices"
	"strings"
	"time"
)

// IntRange is an inclusive numeric range; a nil bound is unconstrained.
type IntRange struct {
	Min *int
	Max *int
}

func (r IntRange) contains(v int) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// DateRange is an inclusive time range; a nil bound is unconstrained.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

func (r DateRange) contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// Filters is the structured filter set evaluated against index records.
// Every field is optional; unset fields impose no constraint, and all
// supplied constraints must hold (logical AND).
type Filters struct {
	// Query is the free-text query. It does not participate in
	// ApplyFilters - the engine uses it for scoring and drops zero-score
	// records when it is non-empty.
	Query string

	Type     string
	Status   string
	Featured *bool
	Category string

	// Tags must each match at least one of the record's tags by
	// case-insensitive substring (AND across requested tags).
	Tags []string

	// Author matches by case-insensitive substring.
	Author string

	// BlockKinds must all appear in the record's block-kind list.
	BlockKinds []string

	// HasMedia constrains on the record's has-images signal.
	HasMedia *bool

	WordCount   IntRange
	ReadingTime IntRange
	Created     DateRange
	Updated     DateRange
}

// ApplyFilters returns the records matching every supplied constraint,
// preserving input order. The input slice is never mutated.
func ApplyFilters(records []IndexRecord, f Filters) []IndexRecord {
	filtered := make([]IndexRecord, 0, len(records))
	for _, record := range records {
		if matches(record, f) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

func matches(record IndexRecord, f Filters) bool {
	if f.Type != "" && record.Type != f.Type {
		return false
	}
	if f.Status != "" && record.Status != f.Status {
		return false
	}
	if f.Featured != nil && record.Featured != *f.Featured {
		return false
	}
	if f.Category != "" && record.Category != f.Category {
		return false
	}

	for _, want := range f.Tags {
		if !anyTagContains(record.Tags, want) {
			return false
		}
	}

	if f.Author != "" && !strings.Contains(strings.ToLower(record.Author), strings.ToLower(f.Author)) {
		return false
	}

	for _, kind := range f.BlockKinds {
		if !slices.Contains(record.BlockKinds, kind) {
			return false
		}
	}

	if f.HasMedia != nil && record.HasImages != *f.HasMedia {
		return false
	}

	if !f.WordCount.contains(record.WordCount) {
		return false
	}
	if !f.ReadingTime.contains(record.ReadingTime) {
		return false
	}
	if !f.Created.contains(record.CreatedAt) {
		return false
	}
	if !f.Updated.contains(record.UpdatedAt) {
		return false
	}

	return true
}

func anyTagContains(tags []string, want string) bool {
	want = strings.ToLower(want)
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), want) {
			return true
		}
	}
	return false
}
