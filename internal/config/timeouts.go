// Package config provides application configuration management.
// This file centralizes timeout constants so their relationships stay visible.
package config

import "time"

const (
	// HTTPReadHeader bounds how long a client may take to send headers.
	HTTPReadHeader = 10 * time.Second

	// HTTPRead bounds the full request read. Chat requests are small forms
	// or JSON bodies, so this stays short.
	HTTPRead = 15 * time.Second

	// HTTPIdle bounds keep-alive connections between requests.
	HTTPIdle = 120 * time.Second

	// AnswerRequest is the default timeout for a synchronous answer call to
	// the RAG pipeline service. Generation can be slow under load.
	AnswerRequest = 60 * time.Second

	// SearchRequest bounds a single knowledge-store query.
	SearchRequest = 5 * time.Second

	// FollowupRequest bounds the whole follow-up generation step, including
	// the legacy-client retry. Kept below AnswerRequest so follow-ups never
	// dominate a chat turn.
	FollowupRequest = 20 * time.Second

	// ReadinessCheckTimeout bounds the dependency probes behind /readyz.
	ReadinessCheckTimeout = 5 * time.Second
)
