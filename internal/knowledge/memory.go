package knowledge

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	bm25 "github.com/iwilltry42/bm25-go/bm25"

	"github.com/smartassist/campus-assistant-go/internal/logger"
	"github.com/smartassist/campus-assistant-go/internal/metrics"
)

// MemoryStore is an in-process BM25 index over a fixed document set. It
// backs deployments without Elasticsearch and keeps follow-up generation
// working offline.
type MemoryStore struct {
	okapi   *bm25.BM25Okapi
	docs    []Document
	log     *logger.Logger
	metrics *metrics.Metrics
	mu      sync.RWMutex
}

// Document is one indexable knowledge base entry.
type Document struct {
	Title    string
	Category string
	URL      string
	Content  string
}

// NewMemoryStore builds the index over docs. Pass SeedDocuments for the
// built-in FAQ corpus. log and m may be nil.
func NewMemoryStore(docs []Document, log *logger.Logger, m *metrics.Metrics) (*MemoryStore, error) {
	if log == nil {
		log = logger.New("info")
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("memory store requires at least one document")
	}

	corpus := make([]string, len(docs))
	for i, doc := range docs {
		corpus[i] = doc.Title + " " + doc.Category + " " + doc.Content
	}

	okapi, err := bm25.NewBM25Okapi(corpus, tokenize, 1.5, 0.75, nil)
	if err != nil {
		return nil, fmt.Errorf("build bm25 index: %w", err)
	}

	log.WithModule("knowledge").WithField("documents", len(docs)).Infof("in-memory knowledge index ready")
	return &MemoryStore{
		okapi:   okapi,
		docs:    docs,
		log:     log.WithModule("knowledge"),
		metrics: m,
	}, nil
}

// Name implements Store.
func (s *MemoryStore) Name() string { return "memory" }

// Search implements Store.
func (s *MemoryStore) Search(_ context.Context, query string, limit int) ([]Hit, error) {
	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 {
		return nil, nil
	}

	start := time.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	tokens := tokenize(query)
	if len(tokens) == 0 {
		return nil, nil
	}

	scores, err := s.okapi.GetScores(tokens)
	if err != nil {
		s.metrics.RecordSearch(s.Name(), "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("bm25 scoring: %w", err)
	}

	type scored struct {
		idx   int
		score float64
	}
	ranked := make([]scored, 0, len(scores))
	for i, score := range scores {
		if score > 0 {
			ranked = append(ranked, scored{idx: i, score: score})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	hits := make([]Hit, 0, len(ranked))
	for _, r := range ranked {
		doc := s.docs[r.idx]
		hits = append(hits, Hit{
			Title:    doc.Title,
			Category: doc.Category,
			URL:      doc.URL,
			Score:    r.score,
		})
	}

	s.metrics.RecordSearch(s.Name(), "ok", time.Since(start).Seconds())
	return hits, nil
}

// tokenize lowercases and splits on non-alphanumeric runs.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
}
