package domain

// ChatRequest is the body of POST /chat. ThreadID is empty for a new
// conversation and carries the id returned by a previous reply otherwise.
type ChatRequest struct {
	Message  string `json:"message"`
	ThreadID string `json:"thread_id,omitempty"`
}

// ChatResponse is the reply to a successful chat cycle.
type ChatResponse struct {
	Response   string `json:"response"`
	TokensUsed string `json:"tokens_used"`
	ThreadID   string `json:"thread_id"`
}

// ThreadListResponse is the reply to GET /get_threads.
type ThreadListResponse struct {
	Threads []string `json:"threads"`
}
