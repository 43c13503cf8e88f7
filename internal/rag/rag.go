// Package rag talks to the retrieval-augmented answering service that
// produces grounded answers for campus questions. The service exposes a
// synchronous answer endpoint and a server-sent-events variant that
// streams the answer token by token.
package rag

import "context"

// Answer is the synchronous response from the answering service.
type Answer struct {
	Text       string   `json:"answer"`
	Confidence float64  `json:"confidence,omitempty"`
	Sources    []Source `json:"sources,omitempty"`
}

// Source identifies a document the answer was grounded on.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
}

// AnswerProvider produces answers for user questions.
type AnswerProvider interface {
	// GetAnswer returns the complete answer for the question.
	GetAnswer(ctx context.Context, question string) (*Answer, error)

	// StreamAnswer streams the answer incrementally, invoking fn for each
	// text chunk as it arrives. A non-nil error from fn aborts the stream
	// and is returned unchanged. StreamAnswer returns the text accumulated
	// so far even when the stream fails partway through.
	StreamAnswer(ctx context.Context, question string, fn func(chunk string) error) (string, error)
}
