// Package store provides the thread persistence façade over a document store.
// Each thread is serialized as a single JSON blob keyed by its id.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/coldcanuk/MyChatApp/internal/docstore"
	"github.com/coldcanuk/MyChatApp/internal/domain"
)

// ThreadStore loads and saves whole-thread documents. Writes for the same
// thread id are serialized through a per-id mutex; the underlying append is
// read-modify-write, so concurrent unserialized writers could lose updates.
type ThreadStore struct {
	docs docstore.Store
	now  func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a ThreadStore over the given document store.
func New(docs docstore.Store) *ThreadStore {
	return &ThreadStore{
		docs:  docs,
		now:   time.Now,
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *ThreadStore) lockFor(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// Load returns the stored thread, or domain.ErrThreadNotFound. A corrupt
// document is logged and reported as not found rather than crashing the
// caller.
func (s *ThreadStore) Load(ctx context.Context, id string) (*domain.Thread, error) {
	blob, err := s.docs.Get(ctx, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrThreadNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load thread %s: %w", id, err)
	}

	var thread domain.Thread
	if err := json.Unmarshal([]byte(blob), &thread); err != nil {
		log.Printf("ERROR: corrupt thread document %s: %v", id, err)
		return nil, fmt.Errorf("%w: %s", domain.ErrThreadNotFound, id)
	}
	return &thread, nil
}

// Save appends newMessages to the thread, creating it if absent. Created is
// assigned exactly once; LastUpdated is refreshed on every save. Blank
// messages are dropped and messages missing timing metadata get defaults.
func (s *ThreadStore) Save(ctx context.Context, id string, newMessages []domain.Message) error {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	return s.save(ctx, id, newMessages)
}

// SaveIfAbsent saves the thread only if no document exists for the id yet.
// A second call for the same id is a silent no-op, so a retried first-reply
// save cannot duplicate the thread.
func (s *ThreadStore) SaveIfAbsent(ctx context.Context, id string, messages []domain.Message) error {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	_, err := s.docs.Get(ctx, id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, docstore.ErrNotFound) {
		return fmt.Errorf("failed to check thread %s: %w", id, err)
	}

	return s.save(ctx, id, messages)
}

// save appends-or-creates under an already-held per-id lock.
func (s *ThreadStore) save(ctx context.Context, id string, newMessages []domain.Message) error {
	now := domain.NewTimestamp(s.now())

	thread := &domain.Thread{ID: id, Created: now}
	blob, err := s.docs.Get(ctx, id)
	switch {
	case err == nil:
		var existing domain.Thread
		if jsonErr := json.Unmarshal([]byte(blob), &existing); jsonErr != nil {
			log.Printf("ERROR: corrupt thread document %s, starting fresh: %v", id, jsonErr)
		} else {
			thread = &existing
		}
	case errors.Is(err, docstore.ErrNotFound):
		// First save for this id.
	default:
		return fmt.Errorf("failed to load thread %s: %w", id, err)
	}

	for _, msg := range newMessages {
		if msg.IsBlank() {
			continue
		}
		if msg.TimeState == "" {
			msg.TimeState = domain.TimeStateForRole(msg.Role)
		}
		if msg.TimeValue.IsZero() {
			msg.TimeValue = now
		}
		thread.Messages = append(thread.Messages, msg)
	}
	thread.LastUpdated = now

	data, err := json.Marshal(thread)
	if err != nil {
		return fmt.Errorf("failed to serialize thread %s: %w", id, err)
	}
	if err := s.docs.Add(ctx, id, string(data)); err != nil {
		return fmt.Errorf("failed to save thread %s: %w", id, err)
	}
	return nil
}

// Delete removes the thread. Absence of the id is not an error.
func (s *ThreadStore) Delete(ctx context.Context, id string) error {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	if err := s.docs.Delete(ctx, []string{id}); err != nil {
		return fmt.Errorf("failed to delete thread %s: %w", id, err)
	}
	return nil
}

// ListAll returns every stored thread id, in store-defined order.
func (s *ThreadStore) ListAll(ctx context.Context) ([]string, error) {
	docs, err := s.docs.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}

	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	return ids, nil
}
