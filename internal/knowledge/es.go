package knowledge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	apperrors "github.com/smartassist/campus-assistant-go/internal/errors"
	"github.com/smartassist/campus-assistant-go/internal/logger"
	"github.com/smartassist/campus-assistant-go/internal/metrics"
)

// indexMapping defines the knowledge base index schema. Title is boosted
// at query time, so it only needs a plain text mapping here.
const indexMapping = `{
  "mappings": {
    "properties": {
      "title":    {"type": "text"},
      "content":  {"type": "text"},
      "category": {"type": "keyword"},
      "url":      {"type": "keyword"}
    }
  }
}`

// ESStore searches the knowledge base in Elasticsearch.
type ESStore struct {
	client  *elasticsearch.Client
	index   string
	log     *logger.Logger
	metrics *metrics.Metrics
}

// ESConfig configures the Elasticsearch connection.
type ESConfig struct {
	Addresses []string
	Username  string
	Password  string
	Index     string
}

// NewESStore creates the store. It does not contact the cluster; call
// EnsureIndex or Ping to verify connectivity.
func NewESStore(cfg ESConfig, log *logger.Logger, m *metrics.Metrics) (*ESStore, error) {
	if len(cfg.Addresses) == 0 {
		return nil, fmt.Errorf("elasticsearch addresses are required")
	}
	if cfg.Index == "" {
		return nil, fmt.Errorf("elasticsearch index is required")
	}
	if log == nil {
		log = logger.New("info")
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	return &ESStore{
		client:  client,
		index:   cfg.Index,
		log:     log.WithModule("knowledge"),
		metrics: m,
	}, nil
}

// Name implements Store.
func (s *ESStore) Name() string { return "elasticsearch" }

// Ping checks cluster reachability.
func (s *ESStore) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(s.client.Ping.WithContext(ctx))
	if err != nil {
		return apperrors.NewUpstreamError("elasticsearch", "", 0, err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return apperrors.NewUpstreamError("elasticsearch", "", resp.StatusCode, fmt.Errorf("ping failed"))
	}
	return nil
}

// EnsureIndex creates the knowledge base index if it does not exist.
func (s *ESStore) EnsureIndex(ctx context.Context) error {
	exists, err := s.client.Indices.Exists([]string{s.index}, s.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return apperrors.NewUpstreamError("elasticsearch", "", 0, fmt.Errorf("check index: %w", err))
	}
	defer exists.Body.Close()

	if exists.StatusCode == 200 {
		return nil
	}

	create, err := s.client.Indices.Create(
		s.index,
		s.client.Indices.Create.WithContext(ctx),
		s.client.Indices.Create.WithBody(strings.NewReader(indexMapping)),
	)
	if err != nil {
		return apperrors.NewUpstreamError("elasticsearch", "", 0, fmt.Errorf("create index: %w", err))
	}
	defer create.Body.Close()

	if create.IsError() {
		body, _ := io.ReadAll(io.LimitReader(create.Body, 4<<10))
		return apperrors.NewUpstreamError("elasticsearch", "", create.StatusCode,
			fmt.Errorf("create index %s: %s", s.index, bytes.TrimSpace(body)))
	}

	s.log.WithField("index", s.index).Infof("created knowledge base index")
	return nil
}

type searchEnvelope struct {
	Hits struct {
		Hits []struct {
			Score  float64 `json:"_score"`
			Source struct {
				Title    string `json:"title"`
				Category string `json:"category"`
				URL      string `json:"url"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search implements Store using a multi_match query with the title field
// boosted over body content.
func (s *ESStore) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 {
		return nil, nil
	}

	start := time.Now()

	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"title^3", "content", "category"},
			},
		},
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode search query: %w", err)
	}

	resp, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(encoded)),
		s.client.Search.WithSize(limit),
	)
	if err != nil {
		s.metrics.RecordSearch(s.Name(), "error", time.Since(start).Seconds())
		return nil, apperrors.NewUpstreamError("elasticsearch", "", 0, err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		s.metrics.RecordSearch(s.Name(), "error", time.Since(start).Seconds())
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, apperrors.NewUpstreamError("elasticsearch", "", resp.StatusCode,
			fmt.Errorf("search failed: %s", bytes.TrimSpace(snippet)))
	}

	var envelope searchEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		s.metrics.RecordSearch(s.Name(), "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	hits := make([]Hit, 0, len(envelope.Hits.Hits))
	for _, h := range envelope.Hits.Hits {
		hits = append(hits, Hit{
			Title:    h.Source.Title,
			Category: h.Source.Category,
			URL:      h.Source.URL,
			Score:    h.Score,
		})
	}

	s.metrics.RecordSearch(s.Name(), "ok", time.Since(start).Seconds())
	return hits, nil
}

// IndexDocuments bulk-indexes docs, refreshing the index so they are
// immediately searchable. Used to seed a fresh index at startup.
func (s *ESStore) IndexDocuments(ctx context.Context, docs []Document) error {
	var buf bytes.Buffer
	for _, doc := range docs {
		meta := map[string]any{"index": map[string]any{"_index": s.index}}
		if err := json.NewEncoder(&buf).Encode(meta); err != nil {
			return fmt.Errorf("encode bulk meta: %w", err)
		}
		line := map[string]any{
			"title":    doc.Title,
			"content":  doc.Content,
			"category": doc.Category,
			"url":      doc.URL,
		}
		if err := json.NewEncoder(&buf).Encode(line); err != nil {
			return fmt.Errorf("encode bulk document: %w", err)
		}
	}

	resp, err := s.client.Bulk(
		bytes.NewReader(buf.Bytes()),
		s.client.Bulk.WithContext(ctx),
		s.client.Bulk.WithRefresh("true"),
	)
	if err != nil {
		return apperrors.NewUpstreamError("elasticsearch", "", 0, fmt.Errorf("bulk index: %w", err))
	}
	defer resp.Body.Close()

	if resp.IsError() {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return apperrors.NewUpstreamError("elasticsearch", "", resp.StatusCode,
			fmt.Errorf("bulk index failed: %s", bytes.TrimSpace(snippet)))
	}
	return nil
}

// Count returns the number of documents in the index.
func (s *ESStore) Count(ctx context.Context) (int, error) {
	resp, err := s.client.Count(
		s.client.Count.WithContext(ctx),
		s.client.Count.WithIndex(s.index),
	)
	if err != nil {
		return 0, apperrors.NewUpstreamError("elasticsearch", "", 0, err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return 0, apperrors.NewUpstreamError("elasticsearch", "", resp.StatusCode, fmt.Errorf("count failed"))
	}

	var out struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode count response: %w", err)
	}
	return out.Count, nil
}
