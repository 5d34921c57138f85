package search

import (
	"strings"
	"unicode/utf8"

	"github.com/inkwellcms/searchlight/pkg/content"
)

// Suggestions returns up to limit unique autocomplete strings drawn from
// titles, tags and categories whose lowercase form contains the lowercase
// partial query. Candidates keep the order of first discovery; there is no
// ranking among them. Partial queries shorter than two characters return
// nothing - one character matches too much to be useful.
func Suggestions(items []content.Item, partial string, limit int) []string {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	partial = strings.ToLower(partial)
	if utf8.RuneCountInString(partial) < 2 {
		return []string{}
	}

	seen := make(map[string]bool)
	suggestions := []string{}

	add := func(candidate string) {
		if len(suggestions) >= limit || candidate == "" || seen[candidate] {
			return
		}
		if strings.Contains(strings.ToLower(candidate), partial) {
			seen[candidate] = true
			suggestions = append(suggestions, candidate)
		}
	}

	for _, item := range items {
		add(item.Title)
		for _, tag := range item.Tags {
			add(tag)
		}
		add(item.Category)
	}

	return suggestions
}

// Facets holds the distinct values observed across a collection for every
// filterable field, used to populate filter UI options. Each list keeps
// first-discovery order; empty values are excluded.
type Facets struct {
	ContentTypes []string `json:"contentTypes"`
	Statuses     []string `json:"statuses"`
	Categories   []string `json:"categories"`
	Tags         []string `json:"tags"`
	Authors      []string `json:"authors"`
	BlockKinds   []string `json:"blockTypes"`
}

// FilterOptions discovers the facet values present in a collection:
// content types, statuses, categories, flattened tags, authors and
// flattened block kinds.
func FilterOptions(items []content.Item) Facets {
	types := newDistinct()
	statuses := newDistinct()
	categories := newDistinct()
	tags := newDistinct()
	authors := newDistinct()
	kinds := newDistinct()

	for _, item := range items {
		types.add(item.Type)
		statuses.add(item.Status)
		categories.add(item.Category)
		for _, tag := range item.Tags {
			tags.add(tag)
		}
		authors.add(item.Author)
		for _, block := range item.Blocks {
			kinds.add(string(block.Kind))
		}
	}

	return Facets{
		ContentTypes: types.values,
		Statuses:     statuses.values,
		Categories:   categories.values,
		Tags:         tags.values,
		Authors:      authors.values,
		BlockKinds:   kinds.values,
	}
}

// distinct is an insertion-ordered string set.
type distinct struct {
	seen   map[string]bool
	values []string
}

func newDistinct() *distinct {
	return &distinct{seen: make(map[string]bool), values: []string{}}
}

func (d *distinct) add(v string) {
	if v == "" || d.seen[v] {
		return
	}
	d.seen[v] = true
	d.values = append(d.values, v)
}
