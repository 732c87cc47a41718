package domain

import "errors"

// Failure taxonomy for a chat cycle. Handlers map these onto HTTP statuses;
// everything else surfaces as a generic orchestrator failure.
var (
	// ErrInvalidInput means the user message was missing or blank.
	ErrInvalidInput = errors.New("no message provided")

	// ErrRemoteSubmissionFailed means the run could not be submitted to the
	// assistant service.
	ErrRemoteSubmissionFailed = errors.New("failed to interact with assistant")

	// ErrRunNotCompleted means the run reached a terminal state other than
	// completed, or polling hit a transport error.
	ErrRunNotCompleted = errors.New("run did not complete successfully")

	// ErrRunTimedOut means the poll attempt budget was exhausted before the
	// run reached a terminal state.
	ErrRunTimedOut = errors.New("timed out waiting for run completion")

	// ErrNoMessagesFound means the completed run's thread held no messages.
	ErrNoMessagesFound = errors.New("no messages found in thread")

	// ErrThreadNotFound means no stored thread exists for the id. A corrupt
	// stored document is reported the same way, after being logged.
	ErrThreadNotFound = errors.New("thread not found")

	// ErrThreadNotFoundRemote means a continuation referenced a thread id the
	// assistant service no longer recognizes. It is surfaced distinctly and
	// never silently converted into a new thread.
	ErrThreadNotFoundRemote = errors.New("thread not found on assistant service")
)
