package assistant

import (
	"encoding/json"
	"testing"
)

func TestBlockUnmarshalText(t *testing.T) {
	var block Block
	data := `{"type":"text","text":{"value":"hello","annotations":[]}}`
	if err := json.Unmarshal([]byte(data), &block); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if block.Kind != BlockText || block.Text != "hello" {
		t.Fatalf("unexpected block: %+v", block)
	}
}

func TestBlockUnmarshalMalformed(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"non-text type", `{"type":"image_file","image_file":{"file_id":"f1"}}`},
		{"missing payload", `{"type":"text"}`},
		{"payload not an object", `{"type":"text","text":"raw"}`},
		{"value not a string", `{"type":"text","text":{"value":42}}`},
		{"not an object", `"just a string"`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var block Block
			if err := json.Unmarshal([]byte(tc.data), &block); err != nil {
				t.Fatalf("unmarshal should not fail: %v", err)
			}
			if block.Kind != BlockOther {
				t.Fatalf("expected BlockOther, got %+v", block)
			}
		})
	}
}

func TestFlattenSkipsMalformedBlocks(t *testing.T) {
	var msg ThreadMessage
	data := `{
		"id": "msg_1",
		"role": "assistant",
		"run_id": "run_1",
		"content": [
			{"type": "text", "text": {"value": "well-formed"}},
			{"type": "text", "text": {"value": null}},
			{"type": "image_file", "image_file": {"file_id": "f1"}}
		]
	}`
	if err := json.Unmarshal([]byte(data), &msg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if got := FlattenMessage(msg); got != "well-formed" {
		t.Fatalf("expected %q, got %q", "well-formed", got)
	}
}

func TestFlattenPreservesOrder(t *testing.T) {
	blocks := []Block{
		{Kind: BlockText, Text: "first "},
		{Kind: BlockOther},
		{Kind: BlockText, Text: "second"},
	}
	if got := Flatten(blocks); got != "first second" {
		t.Fatalf("expected %q, got %q", "first second", got)
	}
}

func TestFlattenEmpty(t *testing.T) {
	if got := Flatten(nil); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
