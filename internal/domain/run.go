package domain

// Run is one asynchronous unit of remote assistant work. The remote service
// owns the run; we hold a read-only handle plus the last polled status.
type Run struct {
	ID        string    `json:"id"`
	ThreadID  string    `json:"thread_id"`
	Status    RunStatus `json:"status"`
	Usage     *Usage    `json:"usage,omitempty"`
	LastError *RunError `json:"last_error,omitempty"`
}

// Usage is the token accounting the remote service reports on completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// RunError describes why a run ended in a non-completed terminal state.
type RunError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
