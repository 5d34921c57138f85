package content

import (
	"encoding/json"
	"fmt"
)

// BlockKind identifies the type of a content block. The set of kinds is
// closed: editors produce exactly these, and the search layer matches on
// them exhaustively. Unknown kinds survive decoding (forward compatibility
// with newer editors) but carry no searchable payload.
type BlockKind string

const (
	KindParagraph BlockKind = "paragraph"
	KindHeading   BlockKind = "heading"
	KindImage     BlockKind = "image"
	KindCode      BlockKind = "code-block"
	KindQuote     BlockKind = "quote"
	KindList      BlockKind = "list"
	KindCustom    BlockKind = "custom"
)

// Block is one ordered sub-unit of a content item's body. The payload is a
// tagged union: exactly one data variant per kind, each carrying only the
// fields that kind needs. On the wire a block is encoded as
// {"type": "...", "data": {...}}.
type Block struct {
	Kind BlockKind
	Data BlockData
}

// BlockData is implemented by every block payload variant.
type BlockData interface {
	blockData()
}

// ParagraphData carries the text of a paragraph block. Text may contain
// inline HTML produced by the editor.
type ParagraphData struct {
	Text string `json:"text"`
}

// HeadingData carries the text and level of a heading block.
type HeadingData struct {
	Text  string `json:"text"`
	Level int    `json:"level,omitempty"`
}

// ImageData carries the reference and captions of an image block.
type ImageData struct {
	URL     string `json:"url,omitempty"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// CodeData carries the verbatim source of a code block.
type CodeData struct {
	Code     string `json:"code"`
	Language string `json:"language,omitempty"`
}

// QuoteData carries the quoted text and its attribution.
type QuoteData struct {
	Text   string `json:"text"`
	Author string `json:"author,omitempty"`
}

// ListData carries the ordered item strings of a list block.
type ListData struct {
	Items   []string `json:"items"`
	Ordered bool     `json:"ordered,omitempty"`
}

// CustomData carries raw markup from a custom block.
type CustomData struct {
	HTML string `json:"html"`
}

func (ParagraphData) blockData() {}
func (HeadingData) blockData()   {}
func (ImageData) blockData()     {}
func (CodeData) blockData()      {}
func (QuoteData) blockData()     {}
func (ListData) blockData()      {}
func (CustomData) blockData()    {}

// blockEnvelope is the wire representation of a block.
type blockEnvelope struct {
	Type BlockKind       `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// UnmarshalJSON decodes the discriminated union. Blocks of an unknown kind
// decode to a Block with nil Data rather than failing, so one exotic block
// never sinks a whole item.
func (b *Block) UnmarshalJSON(data []byte) error {
	var env blockEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decoding block envelope: %w", err)
	}

	b.Kind = env.Type
	b.Data = nil
	if len(env.Data) == 0 {
		return nil
	}

	var payload BlockData
	switch env.Type {
	case KindParagraph:
		payload = &ParagraphData{}
	case KindHeading:
		payload = &HeadingData{}
	case KindImage:
		payload = &ImageData{}
	case KindCode:
		payload = &CodeData{}
	case KindQuote:
		payload = &QuoteData{}
	case KindList:
		payload = &ListData{}
	case KindCustom:
		payload = &CustomData{}
	default:
		// Unknown kind: keep the tag, drop the payload.
		return nil
	}

	if err := json.Unmarshal(env.Data, payload); err != nil {
		return fmt.Errorf("decoding %s block data: %w", env.Type, err)
	}
	b.Data = deref(payload)
	return nil
}

// MarshalJSON encodes the block back into its envelope form.
func (b Block) MarshalJSON() ([]byte, error) {
	env := blockEnvelope{Type: b.Kind}
	if b.Data != nil {
		data, err := json.Marshal(b.Data)
		if err != nil {
			return nil, fmt.Errorf("encoding %s block data: %w", b.Kind, err)
		}
		env.Data = data
	}
	return json.Marshal(env)
}

// deref converts the pointer variants used during decoding back to the
// value forms stored on Block.Data.
func deref(d BlockData) BlockData {
	switch v := d.(type) {
	case *ParagraphData:
		return *v
	case *HeadingData:
		return *v
	case *ImageData:
		return *v
	case *CodeData:
		return *v
	case *QuoteData:
		return *v
	case *ListData:
		return *v
	case *CustomData:
		return *v
	}
	return d
}
