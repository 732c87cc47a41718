package service

import (
	"context"
	"fmt"
	"time"

	"github.com/coldcanuk/MyChatApp/internal/adapter/assistant"
	"github.com/coldcanuk/MyChatApp/internal/domain"
)

// RunPoller drives a remote run to a terminal state by querying its status
// at a fixed interval. The interval is a deliberate trade-off between
// responsiveness and remote-service load, not adaptive backoff. The attempt
// budget bounds the total wait; exhausting it yields ErrRunTimedOut.
type RunPoller struct {
	client      assistant.API
	interval    time.Duration
	maxAttempts int
	sleep       func(ctx context.Context, d time.Duration) error
}

// NewRunPoller creates a poller. maxAttempts <= 0 means unbounded.
func NewRunPoller(client assistant.API, interval time.Duration, maxAttempts int) *RunPoller {
	return &RunPoller{
		client:      client,
		interval:    interval,
		maxAttempts: maxAttempts,
		sleep:       sleepContext,
	}
}

// Wait blocks until the run reaches a terminal state. Only completed is
// success. Any transport error aborts immediately without retrying; retries
// of transient failures belong to the transport layer.
func (p *RunPoller) Wait(ctx context.Context, threadID, runID string) (*domain.Run, error) {
	for attempt := 0; p.maxAttempts <= 0 || attempt < p.maxAttempts; attempt++ {
		run, err := p.client.GetRun(ctx, threadID, runID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrRunNotCompleted, err)
		}

		if run.Status == domain.RunStatusCompleted {
			return run, nil
		}
		if run.Status.IsTerminal() {
			if run.LastError != nil {
				return nil, fmt.Errorf("%w: status %s: %s", domain.ErrRunNotCompleted, run.Status, run.LastError.Message)
			}
			return nil, fmt.Errorf("%w: status %s", domain.ErrRunNotCompleted, run.Status)
		}

		if err := p.sleep(ctx, p.interval); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrRunNotCompleted, err)
		}
	}
	return nil, fmt.Errorf("%w after %d attempts", domain.ErrRunTimedOut, p.maxAttempts)
}

// sleepContext waits for the duration without busy-waiting, honoring
// context cancellation.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
