// Package content defines the content model shared by the search engine and
// its callers: items as produced by the CMS API, and their ordered block
// lists modeled as a tagged union.
//
// Items are plain data. Timestamps stay in their wire form (RFC 3339
// strings) until the search layer parses them, so a malformed date is
// surfaced exactly where date ordering starts to matter and not before.
package content

import (
	"encoding/json"
	"fmt"

	"github.com/inkwellcms/searchlight/pkg/log"
)

// Item is a top-level searchable record: a blog post, a docs page, anything
// the CMS manages. Optional fields degrade to their zero value; only ID,
// Title and the created/updated timestamps are expected to be present.
type Item struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Type        string   `json:"type"`
	Status      string   `json:"status,omitempty"`
	Featured    bool     `json:"featured,omitempty"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Author      string   `json:"author,omitempty"`

	// Timestamps as delivered by the CMS API (RFC 3339). CreatedAt and
	// UpdatedAt are required; PublishedAt is empty for drafts.
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	PublishedAt string `json:"published_at,omitempty"`

	Blocks []Block `json:"blocks,omitempty"`
}

// rawItem mirrors Item with the block list left undecoded so a malformed
// blocks payload can degrade per item instead of failing the batch.
type rawItem struct {
	Item
	Blocks json.RawMessage `json:"blocks,omitempty"`
}

// DecodeItems decodes a JSON array of content items. Decoding is lenient at
// the block level: an item whose blocks payload is not a valid block array
// keeps all its metadata but ends up with no blocks, and the failure is
// logged as a warning. A top-level payload that is not an item array is an
// error.
func DecodeItems(data []byte) ([]Item, error) {
	var raws []rawItem
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decoding content items: %w", err)
	}

	logger := log.ForService("content")
	items := make([]Item, len(raws))
	for i, raw := range raws {
		item := raw.Item
		item.Blocks = nil
		if len(raw.Blocks) > 0 {
			var blocks []Block
			if err := json.Unmarshal(raw.Blocks, &blocks); err != nil {
				logger.Warnf("item %s: dropping malformed block list: %v", item.ID, err)
			} else {
				item.Blocks = blocks
			}
		}
		items[i] = item
	}

	return items, nil
}
