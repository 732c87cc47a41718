package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

// newMessageServer serves GET /threads/:id/messages with cursor pagination
// over the given messages (stored oldest first), the way the remote service
// pages: newest first, `after` pointing past the last returned id.
func newMessageServer(t *testing.T, messages []ThreadMessage) *httptest.Server {
	t.Helper()

	// Newest first.
	desc := make([]ThreadMessage, len(messages))
	for i, msg := range messages {
		desc[len(messages)-1-i] = msg
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("order") != "desc" {
			http.Error(w, `{"error":{"message":"expected order=desc"}}`, http.StatusBadRequest)
			return
		}
		limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
		if err != nil || limit <= 0 {
			http.Error(w, `{"error":{"message":"bad limit"}}`, http.StatusBadRequest)
			return
		}

		start := 0
		if after := r.URL.Query().Get("after"); after != "" {
			for i, msg := range desc {
				if msg.ID == after {
					start = i + 1
					break
				}
			}
		}

		end := start + limit
		if end > len(desc) {
			end = len(desc)
		}
		page := desc[start:end]

		resp := map[string]interface{}{
			"object":   "list",
			"data":     page,
			"has_more": end < len(desc),
		}
		if len(page) > 0 {
			resp["first_id"] = page[0].ID
			resp["last_id"] = page[len(page)-1].ID
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
}

func TestListMessagesPaginatesLongThreads(t *testing.T) {
	// 120 messages, oldest first; only the newest belongs to the latest run.
	var messages []ThreadMessage
	for i := 1; i <= 119; i++ {
		messages = append(messages, ThreadMessage{
			ID:    fmt.Sprintf("msg_%03d", i),
			Role:  "user",
			RunID: "run_old",
		})
	}
	messages = append(messages, ThreadMessage{
		ID:    "msg_120",
		Role:  "assistant",
		RunID: "run_new",
	})

	server := newMessageServer(t, messages)
	defer server.Close()

	client := NewClient(server.URL, "test-key", "asst_1", time.Second)

	got, err := client.ListMessages(context.Background(), "thread_1")
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(got) != 120 {
		t.Fatalf("expected all 120 messages, got %d", len(got))
	}
	if got[0].ID != "msg_001" || got[119].ID != "msg_120" {
		t.Fatalf("expected chronological order, got first=%s last=%s", got[0].ID, got[119].ID)
	}
	if got[119].RunID != "run_new" {
		t.Fatalf("newest run's message missing from the fetched list: %+v", got[119])
	}
}

func TestListMessagesSinglePage(t *testing.T) {
	messages := []ThreadMessage{
		{ID: "msg_001", Role: "user"},
		{ID: "msg_002", Role: "assistant", RunID: "run_1"},
	}
	server := newMessageServer(t, messages)
	defer server.Close()

	client := NewClient(server.URL, "test-key", "asst_1", time.Second)

	got, err := client.ListMessages(context.Background(), "thread_1")
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != "msg_001" || got[1].ID != "msg_002" {
		t.Fatalf("unexpected messages: %+v", got)
	}
}
