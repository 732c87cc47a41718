// Package assistant provides a client for the remote assistant service
// (OpenAI Assistants v2 REST API).
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/coldcanuk/MyChatApp/internal/domain"
)

// API is the contract the orchestrator depends on. The remote service owns
// threads and runs; this layer only submits work and reads state back.
type API interface {
	// CreateThreadAndRun creates a new remote thread seeded with the user's
	// message and starts a run in one step.
	CreateThreadAndRun(ctx context.Context, userMessage string) (*domain.Run, error)

	// CreateMessage appends a message to an existing remote thread.
	CreateMessage(ctx context.Context, threadID, role, content string) error

	// CreateRun starts a run in an existing thread. An unknown thread id is
	// reported as domain.ErrThreadNotFoundRemote.
	CreateRun(ctx context.Context, threadID string) (*domain.Run, error)

	// GetRun retrieves the current status of a run.
	GetRun(ctx context.Context, threadID, runID string) (*domain.Run, error)

	// ListMessages fetches the thread's messages in chronological order.
	ListMessages(ctx context.Context, threadID string) ([]ThreadMessage, error)
}

// Client is the Assistants API client.
type Client struct {
	baseURL     string
	apiKey      string
	assistantID string
	httpClient  *http.Client
}

// NewClient creates a new Assistants API client.
func NewClient(baseURL, apiKey, assistantID string, timeout time.Duration) *Client {
	return &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		apiKey:      apiKey,
		assistantID: assistantID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ThreadMessage is one raw message as returned by the remote service. RunID
// identifies the run that produced it, which lets the caller isolate the
// batch added by a just-completed run.
type ThreadMessage struct {
	ID        string  `json:"id"`
	Role      string  `json:"role"`
	RunID     string  `json:"run_id"`
	CreatedAt int64   `json:"created_at"`
	Content   []Block `json:"content"`
}

type runEnvelope struct {
	ID        string           `json:"id"`
	ThreadID  string           `json:"thread_id"`
	Status    domain.RunStatus `json:"status"`
	Usage     *domain.Usage    `json:"usage"`
	LastError *domain.RunError `json:"last_error"`
}

func (r *runEnvelope) toDomain() *domain.Run {
	return &domain.Run{
		ID:        r.ID,
		ThreadID:  r.ThreadID,
		Status:    r.Status,
		Usage:     r.Usage,
		LastError: r.LastError,
	}
}

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// APIError represents the error details.
type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
}

// CreateThreadAndRun implements API.
func (c *Client) CreateThreadAndRun(ctx context.Context, userMessage string) (*domain.Run, error) {
	body := map[string]interface{}{
		"assistant_id": c.assistantID,
		"thread": map[string]interface{}{
			"messages": []map[string]string{
				{"role": domain.RoleUser, "content": userMessage},
			},
		},
	}

	var run runEnvelope
	if err := c.do(ctx, http.MethodPost, "/threads/runs", body, &run); err != nil {
		return nil, err
	}
	return run.toDomain(), nil
}

// CreateMessage implements API.
func (c *Client) CreateMessage(ctx context.Context, threadID, role, content string) error {
	body := map[string]string{"role": role, "content": content}
	path := fmt.Sprintf("/threads/%s/messages", threadID)

	var msg ThreadMessage
	if err := c.do(ctx, http.MethodPost, path, body, &msg); err != nil {
		return c.mapThreadNotFound(err, threadID)
	}
	return nil
}

// CreateRun implements API.
func (c *Client) CreateRun(ctx context.Context, threadID string) (*domain.Run, error) {
	body := map[string]string{"assistant_id": c.assistantID}
	path := fmt.Sprintf("/threads/%s/runs", threadID)

	var run runEnvelope
	if err := c.do(ctx, http.MethodPost, path, body, &run); err != nil {
		return nil, c.mapThreadNotFound(err, threadID)
	}
	return run.toDomain(), nil
}

// GetRun implements API.
func (c *Client) GetRun(ctx context.Context, threadID, runID string) (*domain.Run, error) {
	path := fmt.Sprintf("/threads/%s/runs/%s", threadID, runID)

	var run runEnvelope
	if err := c.do(ctx, http.MethodGet, path, nil, &run); err != nil {
		return nil, err
	}
	return run.toDomain(), nil
}

// listPageSize is the per-page limit when fetching thread messages.
const listPageSize = 100

// ListMessages implements API. The remote service pages its message list;
// every page is followed so long threads are never truncated. Pages arrive
// newest first and are reversed into chronological order.
func (c *Client) ListMessages(ctx context.Context, threadID string) ([]ThreadMessage, error) {
	var all []ThreadMessage
	after := ""

	for {
		path := fmt.Sprintf("/threads/%s/messages?order=desc&limit=%d", threadID, listPageSize)
		if after != "" {
			path += "&after=" + after
		}

		var result struct {
			Data    []ThreadMessage `json:"data"`
			LastID  string          `json:"last_id"`
			HasMore bool            `json:"has_more"`
		}
		if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
			return nil, c.mapThreadNotFound(err, threadID)
		}

		all = append(all, result.Data...)
		if !result.HasMore || result.LastID == "" {
			break
		}
		after = result.LastID
	}

	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	return all, nil
}

// statusError carries the HTTP status of a failed API call.
type statusError struct {
	status  int
	message string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("assistant API error [%d]: %s", e.status, e.message)
}

func (c *Client) mapThreadNotFound(err error, threadID string) error {
	if se, ok := err.(*statusError); ok && se.status == http.StatusNotFound {
		return fmt.Errorf("%w: %s", domain.ErrThreadNotFoundRemote, threadID)
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != nil {
			return &statusError{status: resp.StatusCode, message: errResp.Error.Message}
		}
		return &statusError{status: resp.StatusCode, message: string(respBody)}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}

// setHeaders sets common request headers.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("OpenAI-Beta", "assistants=v2")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}
