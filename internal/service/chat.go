package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/coldcanuk/MyChatApp/internal/domain"
)

// Chat runs one full conversation cycle: submit the run, poll it to
// completion, fetch and flatten the thread's messages, persist the new
// batch, and return the assistant's reply.
func (s *Service) Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, domain.ErrInvalidInput
	}

	reqID := "chat_" + uuid.New().String()[:8]
	isContinuation := req.ThreadID != ""
	submittedAt := domain.NewTimestamp(s.now())

	run, err := s.submit(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrThreadNotFoundRemote) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrRemoteSubmissionFailed, err)
	}
	log.Printf("%s: submitted run %s on thread %s", reqID, run.ID, run.ThreadID)

	completed, err := s.poller.Wait(ctx, run.ThreadID, run.ID)
	if err != nil {
		return nil, err
	}

	remote, err := s.assistant.ListMessages(ctx, run.ThreadID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNoMessagesFound, err)
	}
	if len(remote) == 0 {
		return nil, fmt.Errorf("%w: thread %s", domain.ErrNoMessagesFound, run.ThreadID)
	}

	capturedAt := domain.NewTimestamp(s.now())
	var batch []domain.Message
	if isContinuation {
		userMsg := domain.Message{
			Role:      domain.RoleUser,
			Content:   req.Message,
			TimeState: domain.TimeStateSent,
			TimeValue: submittedAt,
		}
		batch = append([]domain.Message{userMsg}, runBatch(remote, run.ID, capturedAt)...)
	} else {
		batch = newThreadBatch(remote, capturedAt)
	}
	reply := assistantReply(batch)

	// Persistence failure must not cost the user their answer; the reply is
	// already computed, so log and carry on.
	if isContinuation {
		err = s.threads.Save(ctx, run.ThreadID, batch)
	} else {
		err = s.threads.SaveIfAbsent(ctx, run.ThreadID, batch)
	}
	if err != nil {
		log.Printf("ERROR: %s: failed to persist thread %s: %v", reqID, run.ThreadID, err)
	}

	tokensUsed := "Tokens used: unknown"
	if completed.Usage != nil {
		tokensUsed = fmt.Sprintf("Tokens used: %d", completed.Usage.TotalTokens)
	}

	return &domain.ChatResponse{
		Response:   reply,
		TokensUsed: tokensUsed,
		ThreadID:   run.ThreadID,
	}, nil
}

// submit starts the run: one-shot thread-and-run for a fresh conversation,
// append-message-then-run for a continuation.
func (s *Service) submit(ctx context.Context, req domain.ChatRequest) (*domain.Run, error) {
	if req.ThreadID == "" {
		return s.assistant.CreateThreadAndRun(ctx, req.Message)
	}

	if err := s.assistant.CreateMessage(ctx, req.ThreadID, domain.RoleUser, req.Message); err != nil {
		return nil, err
	}
	return s.assistant.CreateRun(ctx, req.ThreadID)
}
