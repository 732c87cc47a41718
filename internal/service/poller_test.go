package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/coldcanuk/MyChatApp/internal/adapter/assistant"
	"github.com/coldcanuk/MyChatApp/internal/domain"
)

// fakeAssistant is a scripted assistant.API for tests.
type fakeAssistant struct {
	run          *domain.Run
	statuses     []domain.RunStatus
	statusIdx    int
	getRunErr    error
	messages     []assistant.ThreadMessage
	listErr      error
	submitErr    error
	createMsgErr error

	submitCalls    int
	createMsgCalls int
}

func (f *fakeAssistant) CreateThreadAndRun(ctx context.Context, userMessage string) (*domain.Run, error) {
	f.submitCalls++
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return f.run, nil
}

func (f *fakeAssistant) CreateMessage(ctx context.Context, threadID, role, content string) error {
	f.createMsgCalls++
	return f.createMsgErr
}

func (f *fakeAssistant) CreateRun(ctx context.Context, threadID string) (*domain.Run, error) {
	f.submitCalls++
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return f.run, nil
}

func (f *fakeAssistant) GetRun(ctx context.Context, threadID, runID string) (*domain.Run, error) {
	if f.getRunErr != nil {
		return nil, f.getRunErr
	}
	status := f.statuses[len(f.statuses)-1]
	if f.statusIdx < len(f.statuses) {
		status = f.statuses[f.statusIdx]
		f.statusIdx++
	}
	run := *f.run
	run.Status = status
	return &run, nil
}

func (f *fakeAssistant) ListMessages(ctx context.Context, threadID string) ([]assistant.ThreadMessage, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.messages, nil
}

func newTestPoller(client assistant.API, maxAttempts int) (*RunPoller, *int) {
	p := NewRunPoller(client, 2*time.Second, maxAttempts)
	sleeps := 0
	p.sleep = func(ctx context.Context, d time.Duration) error {
		sleeps++
		return nil
	}
	return p, &sleeps
}

func TestPollerCompletes(t *testing.T) {
	fake := &fakeAssistant{
		run:      &domain.Run{ID: "run_1", ThreadID: "thread_1"},
		statuses: []domain.RunStatus{domain.RunStatusQueued, domain.RunStatusInProgress, domain.RunStatusCompleted},
	}
	p, sleeps := newTestPoller(fake, 10)

	run, err := p.Wait(context.Background(), "thread_1", "run_1")
	if err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if run.Status != domain.RunStatusCompleted {
		t.Fatalf("expected completed, got %s", run.Status)
	}
	if *sleeps != 2 {
		t.Fatalf("expected 2 sleeps, got %d", *sleeps)
	}
}

func TestPollerTerminalFailures(t *testing.T) {
	for _, status := range []domain.RunStatus{domain.RunStatusFailed, domain.RunStatusCancelled, domain.RunStatusExpired} {
		t.Run(string(status), func(t *testing.T) {
			fake := &fakeAssistant{
				run:      &domain.Run{ID: "run_1", ThreadID: "thread_1"},
				statuses: []domain.RunStatus{domain.RunStatusInProgress, status},
			}
			p, _ := newTestPoller(fake, 10)

			_, err := p.Wait(context.Background(), "thread_1", "run_1")
			if !errors.Is(err, domain.ErrRunNotCompleted) {
				t.Fatalf("expected ErrRunNotCompleted, got %v", err)
			}
		})
	}
}

func TestPollerTimesOut(t *testing.T) {
	fake := &fakeAssistant{
		run:      &domain.Run{ID: "run_1", ThreadID: "thread_1"},
		statuses: []domain.RunStatus{domain.RunStatusInProgress},
	}
	p, sleeps := newTestPoller(fake, 3)

	_, err := p.Wait(context.Background(), "thread_1", "run_1")
	if !errors.Is(err, domain.ErrRunTimedOut) {
		t.Fatalf("expected ErrRunTimedOut, got %v", err)
	}
	if *sleeps != 3 {
		t.Fatalf("expected 3 sleeps, got %d", *sleeps)
	}
}

func TestPollerTransportErrorAbortsImmediately(t *testing.T) {
	fake := &fakeAssistant{
		run:       &domain.Run{ID: "run_1", ThreadID: "thread_1"},
		statuses:  []domain.RunStatus{domain.RunStatusInProgress},
		getRunErr: fmt.Errorf("connection refused"),
	}
	p, sleeps := newTestPoller(fake, 10)

	_, err := p.Wait(context.Background(), "thread_1", "run_1")
	if !errors.Is(err, domain.ErrRunNotCompleted) {
		t.Fatalf("expected ErrRunNotCompleted, got %v", err)
	}
	if *sleeps != 0 {
		t.Fatalf("transport error should not retry, slept %d times", *sleeps)
	}
}

func TestPollerHonorsCancellation(t *testing.T) {
	fake := &fakeAssistant{
		run:      &domain.Run{ID: "run_1", ThreadID: "thread_1"},
		statuses: []domain.RunStatus{domain.RunStatusInProgress},
	}
	p := NewRunPoller(fake, time.Hour, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Wait(ctx, "thread_1", "run_1")
	if !errors.Is(err, domain.ErrRunNotCompleted) {
		t.Fatalf("expected ErrRunNotCompleted on cancellation, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled in chain, got %v", err)
	}
}
