package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the wire format for timestamps in stored thread
// documents. Microsecond precision keeps strict ordering between messages
// produced within a single run.
const TimestampLayout = "2006-01-02 15:04:05.000000"

// Timestamp is a time.Time that marshals using TimestampLayout.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps a time.Time.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t}
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(TimestampLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

// Message is one turn in a conversation. Content is already flattened text.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	TimeState TimeState `json:"time_state"`
	TimeValue Timestamp `json:"time_value"`
}

// IsBlank reports whether the message carries no visible content. Blank
// messages are never persisted.
func (m Message) IsBlank() bool {
	return strings.TrimSpace(m.Content) == ""
}

// Thread is a persistent conversation. Created is set exactly once at first
// persistence; Messages is append-only and never reordered or deduplicated.
type Thread struct {
	ID          string    `json:"id"`
	Created     Timestamp `json:"created"`
	LastUpdated Timestamp `json:"last_updated"`
	Messages    []Message `json:"messages"`
}
