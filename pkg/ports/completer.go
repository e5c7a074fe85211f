package ports

import "context"

// CompletionRequest is a single system+user exchange with a language model.
type CompletionRequest struct {
	System string
	User   string
	// JSON asks the backend for a strict JSON object response.
	JSON bool
}

// Completer sends one completion request and returns the raw message content.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
