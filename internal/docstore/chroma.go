package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// ChromaStore implements Store against a ChromaDB server's REST API. Each
// document lives in a single collection, keyed by its id.
type ChromaStore struct {
	baseURL    string
	collection string
	httpClient *http.Client

	mu           sync.Mutex
	collectionID string
}

// NewChromaStore creates a document store backed by the named ChromaDB
// collection. The collection is created on first use if it does not exist.
func NewChromaStore(baseURL, collection string, timeout time.Duration) *ChromaStore {
	return &ChromaStore{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		collection: collection,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Close implements Store. The HTTP client holds no resources to release.
func (s *ChromaStore) Close() error {
	return nil
}

// Get returns the document for the id, or ErrNotFound.
func (s *ChromaStore) Get(ctx context.Context, id string) (string, error) {
	docs, err := s.fetch(ctx, []string{id})
	if err != nil {
		return "", err
	}
	if len(docs) == 0 {
		return "", ErrNotFound
	}
	return docs[0].Blob, nil
}

// GetAll returns every document in the collection.
func (s *ChromaStore) GetAll(ctx context.Context) ([]Document, error) {
	return s.fetch(ctx, nil)
}

// Add upserts the blob under the id.
func (s *ChromaStore) Add(ctx context.Context, id, blob string) error {
	collectionID, err := s.resolveCollection(ctx)
	if err != nil {
		return err
	}

	body := map[string]interface{}{
		"ids":       []string{id},
		"documents": []string{blob},
	}
	path := fmt.Sprintf("/api/v1/collections/%s/upsert", collectionID)
	return s.do(ctx, http.MethodPost, path, body, nil)
}

// Delete removes the documents for the ids.
func (s *ChromaStore) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	collectionID, err := s.resolveCollection(ctx)
	if err != nil {
		return err
	}

	body := map[string]interface{}{"ids": ids}
	path := fmt.Sprintf("/api/v1/collections/%s/delete", collectionID)
	return s.do(ctx, http.MethodPost, path, body, nil)
}

func (s *ChromaStore) fetch(ctx context.Context, ids []string) ([]Document, error) {
	collectionID, err := s.resolveCollection(ctx)
	if err != nil {
		return nil, err
	}

	body := map[string]interface{}{
		"include": []string{"documents"},
	}
	if len(ids) > 0 {
		body["ids"] = ids
	}

	var result struct {
		IDs       []string `json:"ids"`
		Documents []string `json:"documents"`
	}
	path := fmt.Sprintf("/api/v1/collections/%s/get", collectionID)
	if err := s.do(ctx, http.MethodPost, path, body, &result); err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(result.IDs))
	for i, id := range result.IDs {
		if i >= len(result.Documents) {
			break
		}
		docs = append(docs, Document{ID: id, Blob: result.Documents[i]})
	}
	return docs, nil
}

// resolveCollection looks up (or creates) the collection and caches its id.
func (s *ChromaStore) resolveCollection(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.collectionID != "" {
		return s.collectionID, nil
	}

	body := map[string]interface{}{
		"name":          s.collection,
		"get_or_create": true,
	}
	var result struct {
		ID string `json:"id"`
	}
	if err := s.do(ctx, http.MethodPost, "/api/v1/collections", body, &result); err != nil {
		return "", fmt.Errorf("failed to resolve collection %s: %w", s.collection, err)
	}
	if result.ID == "" {
		return "", fmt.Errorf("chroma returned empty id for collection %s", s.collection)
	}

	s.collectionID = result.ID
	return s.collectionID, nil
}

func (s *ChromaStore) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("chroma API error [%d]: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}
