package followup

import (
	"context"
	"fmt"
	"strings"

	"github.com/smartassist/campus-assistant-go/internal/knowledge"
	"github.com/smartassist/campus-assistant-go/internal/llm"
	"github.com/smartassist/campus-assistant-go/internal/logger"
	"github.com/smartassist/campus-assistant-go/internal/metrics"
	"github.com/smartassist/campus-assistant-go/internal/sliceutil"
)

const (
	searchLimit     = 8
	maxPromptHits   = 10
	maxFallbackScan = 6
	llmTemperature  = 0.4
	llmMaxTokens    = 180
)

const systemPrompt = `You suggest follow-up questions for a university campus-services chatbot. ` +
	`Given the student's question, the bot's answer, and related knowledge base articles, ` +
	`return a JSON array of 3 to 5 short natural follow-up questions a student would ask next. ` +
	`Return ONLY the JSON array, no prose and no code fences.`

// Generator produces follow-up chips for an answered question.
type Generator struct {
	store   knowledge.Store
	client  llm.Client
	model   string
	useLLM  bool
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewGenerator wires the generator. store is required; client may be nil,
// which disables the LLM path. log and m may be nil.
func NewGenerator(store knowledge.Store, client llm.Client, model string, useLLM bool, log *logger.Logger, m *metrics.Metrics) *Generator {
	if log == nil {
		log = logger.New("info")
	}
	return &Generator{
		store:   store,
		client:  client,
		model:   model,
		useLLM:  useLLM && client != nil,
		log:     log.WithModule("followup"),
		metrics: m,
	}
}

// Build returns up to k follow-up chips for the question/answer pair, an
// escalation flag, and the source the suggestions came from. It never
// returns an error: every failure degrades to search titles or the generic
// defaults.
func (g *Generator) Build(ctx context.Context, question, answer string, k int) ([]Chip, bool, string) {
	if k <= 0 {
		k = 4
	}

	escalate := WantsEscalation(question) || LowConfidence(answer)
	if escalate {
		g.metrics.RecordEscalation(escalationTrigger(question))
	}

	hits := g.search(ctx, question, answer)

	source := SourceFallback
	var suggestions []string

	if g.useLLM {
		parsed, err := g.generateLLM(ctx, question, answer, hits)
		switch {
		case err != nil:
			g.log.WithError(err).Warnf("llm follow-up generation failed, using fallback")
			source = SourceFallbackError
		default:
			// Only model output is post-processed; search titles pass
			// through verbatim below.
			parsed = normalize(parsed, k)
			if len(parsed) > 0 {
				source = SourceOpenAI
				suggestions = parsed
			}
		}
	}

	if len(suggestions) == 0 {
		suggestions = fallbackSuggestions(hits, k)
	}

	g.metrics.RecordFollowups(source)

	chips := make([]Chip, 0, len(suggestions))
	for _, s := range suggestions {
		chips = append(chips, FAQChip(s))
	}
	return chips, escalate, source
}

// search queries the store with the question, retrying with the answer text
// when the question surfaces nothing.
func (g *Generator) search(ctx context.Context, question, answer string) []knowledge.Hit {
	if g.store == nil {
		return nil
	}

	hits, err := g.store.Search(ctx, question, searchLimit)
	if err != nil {
		g.log.WithError(err).Warnf("knowledge search failed for question")
		hits = nil
	}
	if len(hits) > 0 {
		return hits
	}

	if strings.TrimSpace(answer) == "" {
		return nil
	}
	hits, err = g.store.Search(ctx, answer, searchLimit)
	if err != nil {
		g.log.WithError(err).Warnf("knowledge search failed for answer")
		return nil
	}
	return hits
}

func (g *Generator) generateLLM(ctx context.Context, question, answer string, hits []knowledge.Hit) ([]string, error) {
	raw, err := g.client.Complete(ctx, llm.Request{
		Model:       g.model,
		System:      systemPrompt,
		User:        buildUserPrompt(question, answer, hits),
		Temperature: llmTemperature,
		MaxTokens:   llmMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("complete follow-up prompt: %w", err)
	}
	return ParseSuggestionList(raw), nil
}

func buildUserPrompt(question, answer string, hits []knowledge.Hit) string {
	var b strings.Builder
	b.WriteString("Student question: ")
	b.WriteString(question)
	b.WriteString("\n\nBot answer: ")
	b.WriteString(answer)
	b.WriteString("\n\nRelated knowledge base articles:\n")

	if len(hits) == 0 {
		b.WriteString("(no candidates)\n")
		return b.String()
	}

	n := len(hits)
	if n > maxPromptHits {
		n = maxPromptHits
	}
	for _, hit := range hits[:n] {
		b.WriteString("- ")
		b.WriteString(hit.Title)
		if hit.Category != "" {
			b.WriteString(" [")
			b.WriteString(hit.Category)
			b.WriteString("]")
		}
		if hit.URL != "" {
			b.WriteString(" ")
			b.WriteString(hit.URL)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// fallbackSuggestions takes hit titles verbatim from the first few search
// results, falling back to the generic defaults when search came up empty.
// The list is capped at k.
func fallbackSuggestions(hits []knowledge.Hit, k int) []string {
	out := make([]string, 0, maxFallbackScan)
	for i, hit := range hits {
		if i >= maxFallbackScan {
			break
		}
		title := strings.TrimSpace(hit.Title)
		if title != "" {
			out = append(out, title)
		}
	}
	if len(out) == 0 {
		out = append(out, DefaultSuggestions...)
	}
	if len(out) > k {
		out = out[:k]
	}
	return out
}

// normalize cleans up model output: strips trailing question marks,
// deduplicates case-insensitively preserving order, and caps the list at k.
func normalize(suggestions []string, k int) []string {
	cleaned := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "?"))
		if s != "" {
			cleaned = append(cleaned, s)
		}
	}

	cleaned = sliceutil.Deduplicate(cleaned, strings.ToLower)
	if len(cleaned) > k {
		cleaned = cleaned[:k]
	}
	return cleaned
}

func escalationTrigger(question string) string {
	if WantsEscalation(question) {
		return "keyword"
	}
	return "low_confidence"
}
