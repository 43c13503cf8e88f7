// Package ticket extracts structured support-ticket fields from a free-form
// user message by prompting the answer service and parsing its labeled
// response. Parsing never fails: missing or malformed fields fall back to
// safe defaults so ticket creation is never blocked by model output.
package ticket

import (
	"context"
	"regexp"
	"strings"

	"github.com/smartassist/campus-assistant-go/internal/logger"
	"github.com/smartassist/campus-assistant-go/internal/metrics"
	"github.com/smartassist/campus-assistant-go/internal/rag"
	"github.com/smartassist/campus-assistant-go/internal/stringutil"
)

// Draft holds the extracted ticket fields.
type Draft struct {
	Subject     string `json:"subject"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
}

// Field defaults used whenever extraction cannot do better.
const (
	DefaultSubject  = "Support Request"
	DefaultCategory = "Other"
	DefaultPriority = "Medium"

	maxSubjectLen = 100
)

// Categories accepted from the model; anything else becomes DefaultCategory.
var validCategories = []string{
	"Technical Support",
	"Academic",
	"Financial",
	"Housing",
	"Registration",
	"Other",
}

// Priorities accepted from the model; anything else becomes DefaultPriority.
var validPriorities = []string{"Low", "Medium", "High"}

var (
	subjectPattern     = regexp.MustCompile(`SUBJECT:\s*(.+)`)
	categoryPattern    = regexp.MustCompile(`CATEGORY:\s*(.+)`)
	priorityPattern    = regexp.MustCompile(`PRIORITY:\s*(.+)`)
	descriptionPattern = regexp.MustCompile(`(?s)DESCRIPTION:\s*(.+)`)
)

const promptTemplate = `Analyze this support request and extract ticket information.

Respond in this exact format:
SUBJECT: <short summary of the issue>
CATEGORY: <one of: Technical Support, Academic, Financial, Housing, Registration, Other>
PRIORITY: <one of: Low, Medium, High>
DESCRIPTION: <detailed description of the issue>

Support request: `

// Analyzer extracts ticket drafts from user messages.
type Analyzer struct {
	provider rag.AnswerProvider
	log      *logger.Logger
	metrics  *metrics.Metrics
}

// NewAnalyzer wires the analyzer. log and m may be nil.
func NewAnalyzer(provider rag.AnswerProvider, log *logger.Logger, m *metrics.Metrics) *Analyzer {
	if log == nil {
		log = logger.New("info")
	}
	return &Analyzer{
		provider: provider,
		log:      log.WithModule("ticket"),
		metrics:  m,
	}
}

// Analyze extracts a ticket draft from message. Provider failures and
// malformed output both yield the all-defaults draft with the original
// message as description.
func (a *Analyzer) Analyze(ctx context.Context, message string) Draft {
	draft := defaultDraft(message)

	answer, err := a.provider.GetAnswer(ctx, promptTemplate+message)
	if err != nil {
		a.log.WithError(err).Warnf("ticket extraction failed, using defaults")
		a.metrics.RecordTicketAnalysis("defaults")
		return draft
	}

	parsed := parseDraft(answer.Text, message)
	if parsed == draft {
		a.metrics.RecordTicketAnalysis("defaults")
	} else {
		a.metrics.RecordTicketAnalysis("extracted")
	}
	return parsed
}

func defaultDraft(message string) Draft {
	return Draft{
		Subject:     DefaultSubject,
		Category:    DefaultCategory,
		Priority:    DefaultPriority,
		Description: message,
	}
}

// parseDraft pulls labeled fields out of the model response, coercing
// enumerated fields to their whitelists.
func parseDraft(text, message string) Draft {
	draft := defaultDraft(message)

	if m := subjectPattern.FindStringSubmatch(text); m != nil {
		if subject := strings.TrimSpace(m[1]); subject != "" {
			draft.Subject = stringutil.TruncateRunes(subject, maxSubjectLen)
		}
	}
	if m := categoryPattern.FindStringSubmatch(text); m != nil {
		draft.Category = coerce(strings.TrimSpace(m[1]), validCategories, DefaultCategory)
	}
	if m := priorityPattern.FindStringSubmatch(text); m != nil {
		draft.Priority = coerce(strings.TrimSpace(m[1]), validPriorities, DefaultPriority)
	}
	if m := descriptionPattern.FindStringSubmatch(text); m != nil {
		if description := strings.TrimSpace(m[1]); description != "" {
			draft.Description = description
		}
	}
	return draft
}

// coerce matches value against allowed values case-insensitively, returning
// the canonical spelling or fallback.
func coerce(value string, allowed []string, fallback string) string {
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return a
		}
	}
	return fallback
}
