package search

import (
	"regexp"
	"strings"

	"github.com/inkwellcms/searchlight/pkg/content"
)

// BlockSignals is the result of walking an item's block list: the flattened
// searchable texts, the kind of every block (same length and order as the
// block list, duplicates preserved), and the derived media/structure flags.
type BlockSignals struct {
	Texts     []string
	Kinds     []string
	HasImages bool
	HasCode   bool
	HasQuotes bool
	HasLists  bool
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// StripHTML removes HTML tags from s and trims surrounding whitespace.
// It is a plain text transform, not a sanitizer.
func StripHTML(s string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(s, ""))
}

// ExtractBlockText walks a block list and collects searchable text per
// block kind. Paragraph, heading and custom markup are HTML-stripped; image
// alt/caption, quote text/author and list items are taken as-is; code is
// kept verbatim. Blocks of unknown kind contribute their kind tag but no
// text. The function is pure.
func ExtractBlockText(blocks []content.Block) BlockSignals {
	var sig BlockSignals
	for _, block := range blocks {
		sig.Kinds = append(sig.Kinds, string(block.Kind))

		// Structure flags follow the kind tag; an image block without a
		// payload still counts as an image.
		switch block.Kind {
		case content.KindParagraph:
			if data, ok := block.Data.(content.ParagraphData); ok {
				sig.Texts = append(sig.Texts, StripHTML(data.Text))
			}
		case content.KindHeading:
			if data, ok := block.Data.(content.HeadingData); ok {
				sig.Texts = append(sig.Texts, StripHTML(data.Text))
			}
		case content.KindImage:
			sig.HasImages = true
			if data, ok := block.Data.(content.ImageData); ok {
				if data.Alt != "" {
					sig.Texts = append(sig.Texts, data.Alt)
				}
				if data.Caption != "" {
					sig.Texts = append(sig.Texts, data.Caption)
				}
			}
		case content.KindCode:
			sig.HasCode = true
			if data, ok := block.Data.(content.CodeData); ok {
				sig.Texts = append(sig.Texts, data.Code)
			}
		case content.KindQuote:
			sig.HasQuotes = true
			if data, ok := block.Data.(content.QuoteData); ok {
				if data.Text != "" {
					sig.Texts = append(sig.Texts, data.Text)
				}
				if data.Author != "" {
					sig.Texts = append(sig.Texts, data.Author)
				}
			}
		case content.KindList:
			sig.HasLists = true
			if data, ok := block.Data.(content.ListData); ok {
				sig.Texts = append(sig.Texts, data.Items...)
			}
		case content.KindCustom:
			if data, ok := block.Data.(content.CustomData); ok {
				sig.Texts = append(sig.Texts, StripHTML(data.HTML))
			}
		}
	}
	return sig
}
