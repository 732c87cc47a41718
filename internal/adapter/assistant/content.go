package assistant

import (
	"encoding/json"
	"strings"
)

// BlockKind discriminates content block variants.
type BlockKind int

const (
	// BlockOther covers non-text, malformed, and unrecognized blocks. They
	// contribute nothing to the flattened message.
	BlockOther BlockKind = iota
	// BlockText is a well-formed text block.
	BlockText
)

// Block is a tagged variant of one content block in a remote message.
// Anything that is not a well-formed text block decodes to BlockOther; a
// single malformed block must never abort the whole response.
type Block struct {
	Kind BlockKind
	Text string
}

// UnmarshalJSON implements json.Unmarshaler. It never returns an error:
// unknown and malformed shapes map to BlockOther.
func (b *Block) UnmarshalJSON(data []byte) error {
	*b = Block{Kind: BlockOther}

	var raw struct {
		Type string          `json:"type"`
		Text json.RawMessage `json:"text"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	if raw.Type != "text" || len(raw.Text) == 0 {
		return nil
	}

	var payload struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(raw.Text, &payload); err != nil {
		return nil
	}

	var value string
	if err := json.Unmarshal(payload.Value, &value); err != nil {
		return nil
	}

	*b = Block{Kind: BlockText, Text: value}
	return nil
}

// Flatten concatenates the text of well-formed text blocks in order.
func Flatten(blocks []Block) string {
	var sb strings.Builder
	for _, block := range blocks {
		if block.Kind == BlockText {
			sb.WriteString(block.Text)
		}
	}
	return sb.String()
}

// FlattenMessage flattens a remote message's content blocks.
func FlattenMessage(msg ThreadMessage) string {
	return Flatten(msg.Content)
}
