package service

import (
	"context"
	"fmt"

	"github.com/coldcanuk/MyChatApp/internal/domain"
)

// LoadThread returns the full persisted thread document.
func (s *Service) LoadThread(ctx context.Context, id string) (*domain.Thread, error) {
	return s.threads.Load(ctx, id)
}

// ListThreads returns every stored thread id.
func (s *Service) ListThreads(ctx context.Context) ([]string, error) {
	ids, err := s.threads.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}
	return ids, nil
}

// DeleteThread removes a stored thread. Absence is not an error.
func (s *Service) DeleteThread(ctx context.Context, id string) error {
	return s.threads.Delete(ctx, id)
}
