package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Chat metrics
	ChatRequestsTotal   *prometheus.CounterVec
	ChatDurationSeconds *prometheus.HistogramVec
	StreamEventsTotal   *prometheus.CounterVec

	// Follow-up metrics
	FollowupsTotal   *prometheus.CounterVec
	EscalationsTotal *prometheus.CounterVec

	// LLM metrics
	LLMRequestsTotal *prometheus.CounterVec
	LLMFallbackTotal prometheus.Counter

	// Knowledge store metrics
	SearchTotal           *prometheus.CounterVec
	SearchDurationSeconds *prometheus.HistogramVec

	// Ticket metrics
	TicketAnalysisTotal *prometheus.CounterVec

	// Campus lookup metrics
	MapLookupsTotal   *prometheus.CounterVec
	RouteLookupsTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		ChatRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "sa_chat_requests_total",
				Help: "Total number of chat requests by mode and status",
			},
			[]string{"mode", "status"}, // mode: sync, stream; status: ok, error, bad_request
		),

		ChatDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sa_chat_duration_seconds",
				Help:    "Chat request duration in seconds by mode",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60}, // Matches answer provider timeout
			},
			[]string{"mode"},
		),

		StreamEventsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "sa_stream_events_total",
				Help: "Total number of SSE events emitted by event type",
			},
			[]string{"type"}, // type: chunk, followups, done
		),

		FollowupsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "sa_followups_total",
				Help: "Total number of follow-up generations by source",
			},
			[]string{"source"}, // source: openai, fallback, fallback_error
		),

		EscalationsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "sa_escalations_total",
				Help: "Total number of live-chat escalations by trigger",
			},
			[]string{"trigger"}, // trigger: keyword, low_confidence
		),

		LLMRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "sa_llm_requests_total",
				Help: "Total number of LLM chat-completion attempts by client and status",
			},
			[]string{"client", "status"}, // client: openai, openai_legacy; status: ok, error
		),

		LLMFallbackTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "sa_llm_fallback_total",
				Help: "Total number of fallbacks from the current client to the legacy client",
			},
		),

		SearchTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "sa_knowledge_search_total",
				Help: "Total number of knowledge-store searches by store and status",
			},
			[]string{"store", "status"}, // store: elasticsearch, memory
		),

		SearchDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sa_knowledge_search_duration_seconds",
				Help:    "Knowledge-store search duration in seconds by store",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"store"},
		),

		TicketAnalysisTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "sa_ticket_analysis_total",
				Help: "Total number of ticket analyses by outcome",
			},
			[]string{"outcome"}, // outcome: extracted, defaults
		),

		MapLookupsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "sa_map_lookups_total",
				Help: "Total number of map-location lookups by result",
			},
			[]string{"result"}, // result: found, not_found
		),

		RouteLookupsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "sa_route_lookups_total",
				Help: "Total number of routing lookups by result",
			},
			[]string{"result"}, // result: found, not_found
		),
	}

	return m
}

// RecordChat records a chat request with status
func (m *Metrics) RecordChat(mode, status string, duration float64) {
	if m == nil {
		return
	}
	m.ChatRequestsTotal.WithLabelValues(mode, status).Inc()
	m.ChatDurationSeconds.WithLabelValues(mode).Observe(duration)
}

// RecordStreamEvent records an emitted SSE event
func (m *Metrics) RecordStreamEvent(eventType string) {
	if m == nil {
		return
	}
	m.StreamEventsTotal.WithLabelValues(eventType).Inc()
}

// RecordFollowups records a follow-up generation by source
func (m *Metrics) RecordFollowups(source string) {
	if m == nil {
		return
	}
	m.FollowupsTotal.WithLabelValues(source).Inc()
}

// RecordEscalation records a live-chat escalation
func (m *Metrics) RecordEscalation(trigger string) {
	if m == nil {
		return
	}
	m.EscalationsTotal.WithLabelValues(trigger).Inc()
}

// RecordLLMRequest records a chat-completion attempt
func (m *Metrics) RecordLLMRequest(client, status string) {
	if m == nil {
		return
	}
	m.LLMRequestsTotal.WithLabelValues(client, status).Inc()
}

// RecordLLMFallback records a fallback to the legacy client
func (m *Metrics) RecordLLMFallback() {
	if m == nil {
		return
	}
	m.LLMFallbackTotal.Inc()
}

// RecordSearch records a knowledge-store search
func (m *Metrics) RecordSearch(store, status string, duration float64) {
	if m == nil {
		return
	}
	m.SearchTotal.WithLabelValues(store, status).Inc()
	m.SearchDurationSeconds.WithLabelValues(store).Observe(duration)
}

// RecordTicketAnalysis records a ticket analysis outcome
func (m *Metrics) RecordTicketAnalysis(outcome string) {
	if m == nil {
		return
	}
	m.TicketAnalysisTotal.WithLabelValues(outcome).Inc()
}

// RecordMapLookup records a map-location lookup result
func (m *Metrics) RecordMapLookup(found bool) {
	if m == nil {
		return
	}
	m.MapLookupsTotal.WithLabelValues(lookupResult(found)).Inc()
}

// RecordRouteLookup records a routing lookup result
func (m *Metrics) RecordRouteLookup(found bool) {
	if m == nil {
		return
	}
	m.RouteLookupsTotal.WithLabelValues(lookupResult(found)).Inc()
}

func lookupResult(found bool) string {
	if found {
		return "found"
	}
	return "not_found"
}
