package service

import (
	"strings"
	"time"

	"github.com/coldcanuk/MyChatApp/internal/adapter/assistant"
	"github.com/coldcanuk/MyChatApp/internal/domain"
)

// newThreadBatch converts the full remote message list into the initial
// conversation of a brand-new thread. Messages that flatten to blank are
// dropped.
func newThreadBatch(remote []assistant.ThreadMessage, capturedAt domain.Timestamp) []domain.Message {
	return flattenBatch(remote, "", capturedAt)
}

// runBatch selects the remote messages produced by the given run, flattened
// and timestamped at merge capture time. Used on continuation, where older
// thread messages are already persisted.
func runBatch(remote []assistant.ThreadMessage, runID string, capturedAt domain.Timestamp) []domain.Message {
	return flattenBatch(remote, runID, capturedAt)
}

// flattenBatch flattens remote messages into domain messages. Each message
// gets a timestamp one microsecond after the previous so ordering inside a
// single run stays strict.
func flattenBatch(remote []assistant.ThreadMessage, runID string, capturedAt domain.Timestamp) []domain.Message {
	var batch []domain.Message
	at := capturedAt.Time

	for _, msg := range remote {
		if runID != "" && msg.RunID != runID {
			continue
		}
		content := assistant.FlattenMessage(msg)
		if strings.TrimSpace(content) == "" {
			continue
		}

		batch = append(batch, domain.Message{
			Role:      msg.Role,
			Content:   content,
			TimeState: domain.TimeStateForRole(msg.Role),
			TimeValue: domain.NewTimestamp(at),
		})
		at = at.Add(time.Microsecond)
	}
	return batch
}

// assistantReply concatenates, in order, the content of every assistant
// message in the newly added batch. An empty reply is a valid outcome, not
// an error.
func assistantReply(batch []domain.Message) string {
	var sb strings.Builder
	for _, msg := range batch {
		if msg.Role == domain.RoleAssistant {
			sb.WriteString(msg.Content)
		}
	}
	return sb.String()
}
