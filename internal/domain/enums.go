// Package domain defines the core domain models for the chat orchestrator.
package domain

// RunStatus represents the status of a remote assistant run.
type RunStatus string

const (
	RunStatusQueued     RunStatus = "queued"
	RunStatusInProgress RunStatus = "in_progress"
	RunStatusCompleted  RunStatus = "completed"
	RunStatusFailed     RunStatus = "failed"
	RunStatusCancelled  RunStatus = "cancelled"
	RunStatusExpired    RunStatus = "expired"
)

// IsTerminal reports whether the status is final. Only completed is success;
// any other terminal status means the run produced no usable reply.
func (s RunStatus) IsTerminal() bool {
	switch s {
	case RunStatusCompleted, RunStatusFailed, RunStatusCancelled, RunStatusExpired:
		return true
	}
	return false
}

// Message roles. The set is open: unrecognized roles pass through unchanged.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// TimeState tags a message as outgoing or incoming.
type TimeState string

const (
	TimeStateSent     TimeState = "Sent"
	TimeStateReceived TimeState = "Received"
)

// TimeStateForRole derives the time_state tag from a message role.
func TimeStateForRole(role string) TimeState {
	if role == RoleUser {
		return TimeStateSent
	}
	return TimeStateReceived
}
