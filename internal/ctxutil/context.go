// Package ctxutil provides type-safe context value management.
// Uses private key types to prevent collisions.
package ctxutil

import (
	"context"
)

type contextKey string

const (
	requestIDKey contextKey = "ctxutil.requestID"
	questionKey  contextKey = "ctxutil.question"
)

// WithRequestID adds a request ID to the context for tracing.
// Request ID is generated (or propagated from upstream headers) per HTTP
// request for log correlation.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
// Returns the request ID and true if found, empty string and false otherwise.
func GetRequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(requestIDKey).(string)
	return requestID, ok
}

// WithQuestionHash adds a short fingerprint of the user question to the
// context so downstream log lines can be correlated to a conversation turn
// without logging the full question text.
func WithQuestionHash(ctx context.Context, hash string) context.Context {
	return context.WithValue(ctx, questionKey, hash)
}

// GetQuestionHash retrieves the question fingerprint from the context.
// Returns empty string when not set.
func GetQuestionHash(ctx context.Context) string {
	if v, ok := ctx.Value(questionKey).(string); ok {
		return v
	}
	return ""
}

// PreserveTracing creates a detached context that preserves tracing values.
// The new context is independent of the parent's cancellation and deadlines.
//
// This creates a fresh context.Background() and copies only tracing values,
// avoiding memory leaks from retaining parent context references
// (Go issue #64478). Use for async work that must outlive the request.
func PreserveTracing(ctx context.Context) context.Context {
	newCtx := context.Background()

	if requestID, ok := GetRequestID(ctx); ok && requestID != "" {
		newCtx = WithRequestID(newCtx, requestID)
	}
	if hash := GetQuestionHash(ctx); hash != "" {
		newCtx = WithQuestionHash(newCtx, hash)
	}

	return newCtx
}
