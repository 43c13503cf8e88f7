// Package knowledge provides search over the campus knowledge base used to
// ground follow-up question suggestions. The primary store is an
// Elasticsearch index; an in-memory BM25 store over a seeded FAQ corpus
// serves deployments without Elasticsearch.
package knowledge

import "context"

// Hit is a single knowledge base search result.
type Hit struct {
	Title    string  `json:"title"`
	Category string  `json:"category,omitempty"`
	URL      string  `json:"url,omitempty"`
	Score    float64 `json:"score,omitempty"`
}

// Store searches the knowledge base.
type Store interface {
	// Search returns up to limit hits relevant to the query, best first.
	// A blank query returns no hits and no error.
	Search(ctx context.Context, query string, limit int) ([]Hit, error)

	// Name identifies the store in logs and metrics.
	Name() string
}
