// Package llm provides chat-completion clients for follow-up suggestion
// generation, with automatic fallback from the current OpenAI SDK to the
// legacy client when the primary request fails.
package llm

import "context"

// Request describes a single chat completion call.
type Request struct {
	Model       string
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// Client executes a chat completion and returns the raw assistant text.
type Client interface {
	// Complete sends the request and returns the first choice's content.
	Complete(ctx context.Context, req Request) (string, error)

	// Name identifies the client in logs and metrics.
	Name() string
}
