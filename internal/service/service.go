// Package service implements the conversation run orchestrator.
package service

import (
	"time"

	"github.com/coldcanuk/MyChatApp/internal/adapter/assistant"
	"github.com/coldcanuk/MyChatApp/internal/config"
	"github.com/coldcanuk/MyChatApp/internal/store"
)

type Service struct {
	assistant assistant.API
	threads   *store.ThreadStore
	poller    *RunPoller
	config    *config.Config
	now       func() time.Time
}

func New(assistantClient assistant.API, threads *store.ThreadStore, cfg *config.Config) *Service {
	return &Service{
		assistant: assistantClient,
		threads:   threads,
		poller:    NewRunPoller(assistantClient, cfg.PollInterval, cfg.PollMaxAttempts),
		config:    cfg,
		now:       time.Now,
	}
}
