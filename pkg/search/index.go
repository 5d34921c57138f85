package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/inkwellcms/searchlight/pkg/content"
)

// wordsPerMinute is the reading speed assumed for reading-time estimates.
const wordsPerMinute = 200

// IndexRecord is the flattened, denormalized representation of one content
// item used for filtering and scoring. Records are rebuilt fresh on every
// search call and discarded on return.
type IndexRecord struct {
	ID          string
	Title       string
	Description string
	Type        string
	Status      string
	Featured    bool
	Category    string
	Tags        []string
	Author      string

	CreatedAt   time.Time
	UpdatedAt   time.Time
	PublishedAt time.Time // zero when the item has never been published

	// BlockTexts holds the extracted text of every block; BlockKinds has
	// the same length and order as the source item's block list.
	BlockTexts []string
	BlockKinds []string

	// WordCount counts whitespace-delimited tokens across title,
	// description and block texts. It is floored at 1: an item with no
	// text at all still counts a single (empty) token, matching the
	// behavior callers already depend on for reading-time display.
	WordCount   int
	ReadingTime int // minutes, ceil(WordCount / wordsPerMinute)

	HasImages bool
	HasCode   bool
	HasQuotes bool
	HasLists  bool
}

// BuildIndex flattens a content collection into index records, one per item,
// preserving order. It returns an error when a required timestamp cannot be
// parsed: date-range filtering and newest/oldest sorting would silently
// misorder records on a coerced zero value, so malformed dates fail loudly
// at construction instead.
func BuildIndex(items []content.Item) ([]IndexRecord, error) {
	records := make([]IndexRecord, 0, len(items))
	for _, item := range items {
		record, err := buildRecord(item)
		if err != nil {
			return nil, fmt.Errorf("indexing item %s: %w", item.ID, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func buildRecord(item content.Item) (IndexRecord, error) {
	createdAt, err := parseTimestamp(item.CreatedAt, "created_at")
	if err != nil {
		return IndexRecord{}, err
	}
	updatedAt, err := parseTimestamp(item.UpdatedAt, "updated_at")
	if err != nil {
		return IndexRecord{}, err
	}

	// Drafts have no published timestamp; anything present must parse.
	var publishedAt time.Time
	if item.PublishedAt != "" {
		publishedAt, err = parseTimestamp(item.PublishedAt, "published_at")
		if err != nil {
			return IndexRecord{}, err
		}
	}

	sig := ExtractBlockText(item.Blocks)

	parts := append([]string{item.Title, item.Description}, sig.Texts...)
	fullText := strings.Join(parts, " ")

	wordCount := len(strings.Fields(fullText))
	if wordCount == 0 {
		wordCount = 1
	}
	readingTime := (wordCount + wordsPerMinute - 1) / wordsPerMinute

	return IndexRecord{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Type:        item.Type,
		Status:      item.Status,
		Featured:    item.Featured,
		Category:    item.Category,
		Tags:        item.Tags,
		Author:      item.Author,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
		PublishedAt: publishedAt,
		BlockTexts:  sig.Texts,
		BlockKinds:  sig.Kinds,
		WordCount:   wordCount,
		ReadingTime: readingTime,
		HasImages:   sig.HasImages,
		HasCode:     sig.HasCode,
		HasQuotes:   sig.HasQuotes,
		HasLists:    sig.HasLists,
	}, nil
}

func parseTimestamp(value, field string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("missing %s timestamp", field)
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s timestamp %q: %w", field, value, err)
	}
	return ts, nil
}
