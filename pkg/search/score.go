package search

import "strings"

// Field weights for relevance scoring. Contributions are additive across
// query terms and across repeated fields (every matching tag and block text
// counts on its own, with no cap).
const (
	weightTitle       = 10
	weightTag         = 8
	weightCategory    = 6
	weightAuthor      = 6
	weightDescription = 5
	weightBlockText   = 2
)

// Score computes the relevance of one index record against a free-text
// query. An empty query returns exactly 1 - uniform, non-discriminating
// relevance - so sorting by relevance degenerates gracefully to "no
// reordering" instead of dropping everything to zero.
//
// The query is split on whitespace; each term is tested for
// case-insensitive substring containment against title, tags, category,
// author, description and every block text, accumulating the field weight
// on a hit. Fuzzy mode scales a matching field's weight by the normalized
// edit-distance similarity between the whole field and the term; it never
// relaxes the substring gate, so a term the field does not literally
// contain scores zero even with fuzzy enabled.
func Score(record IndexRecord, query string, fuzzy bool) float64 {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return 1
	}

	title := strings.ToLower(record.Title)
	category := strings.ToLower(record.Category)
	author := strings.ToLower(record.Author)
	description := strings.ToLower(record.Description)

	var score float64
	for _, term := range terms {
		score += fieldScore(title, term, weightTitle, fuzzy)
		for _, tag := range record.Tags {
			score += fieldScore(strings.ToLower(tag), term, weightTag, fuzzy)
		}
		score += fieldScore(category, term, weightCategory, fuzzy)
		score += fieldScore(author, term, weightAuthor, fuzzy)
		score += fieldScore(description, term, weightDescription, fuzzy)
		for _, text := range record.BlockTexts {
			score += fieldScore(strings.ToLower(text), term, weightBlockText, fuzzy)
		}
	}
	return score
}

// fieldScore returns the weighted contribution of a single lowered field
// for a single lowered term.
func fieldScore(field, term string, weight float64, fuzzy bool) float64 {
	if field == "" || !strings.Contains(field, term) {
		return 0
	}
	if fuzzy {
		return Similarity(field, term) * weight
	}
	return weight
}

// Similarity is the normalized inverse edit distance between two strings:
// 1 - lev(a,b)/max(runes(a),runes(b)), clamped to be non-negative.
// Identical strings score 1; completely disjoint strings approach 0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	ra := []rune(a)
	rb := []rune(b)
	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 1
	}
	sim := 1 - float64(levenshtein(ra, rb))/float64(longest)
	if sim < 0 {
		return 0
	}
	return sim
}

// levenshtein computes edit distance with the standard dynamic-programming
// table; insert, delete and substitute all cost 1. Distances are measured
// in runes so multibyte characters count as single edits.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
