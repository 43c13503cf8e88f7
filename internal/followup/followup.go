// Package followup generates follow-up question chips shown under each
// chatbot answer. Candidates come from knowledge base search; an LLM turns
// them into natural questions, with a search-title fallback when the LLM
// is unavailable or misbehaves.
package followup

import (
	"github.com/smartassist/campus-assistant-go/internal/stringutil"
)

// Suggestion sources, recorded in metrics and surfaced in debug responses.
const (
	SourceOpenAI        = "openai"
	SourceFallback      = "fallback"
	SourceFallbackError = "fallback_error"
)

// Chip is a tappable suggestion rendered under an answer.
type Chip struct {
	Label   string  `json:"label"`
	Payload Payload `json:"payload"`
}

// Payload tells the frontend what tapping a chip does.
type Payload struct {
	Type   string `json:"type"`
	Query  string `json:"query,omitempty"`
	Action string `json:"action,omitempty"`
}

// FAQChip creates a chip that submits label as the next question.
func FAQChip(label string) Chip {
	return Chip{
		Label:   label,
		Payload: Payload{Type: "faq", Query: label},
	}
}

// EscalationChip creates the chip offering a handoff to a human.
func EscalationChip() Chip {
	return Chip{
		Label:   "Talk to an admin",
		Payload: Payload{Type: "action", Action: "escalate"},
	}
}

// escalationKeywords mark messages where the user is asking for a person
// rather than an answer.
var escalationKeywords = []string{
	"agent",
	"human",
	"person",
	"representative",
	"talk to someone",
	"talk to admin",
	"live chat",
	"connect me",
	"escalate",
	"call",
	"phone",
	"help desk",
	"support",
}

// lowConfidencePhrases mark answers where the bot admitted it doesn't know.
var lowConfidencePhrases = []string{
	"i'm not sure",
	"no information",
	"could not find",
	"not available",
	"i don't have",
	"unable to find",
}

// WantsEscalation reports whether the user message asks for a human.
func WantsEscalation(message string) bool {
	return stringutil.ContainsAnyFold(message, escalationKeywords...)
}

// LowConfidence reports whether the answer admits uncertainty, which also
// warrants offering the escalation chip.
func LowConfidence(answer string) bool {
	return stringutil.ContainsAnyFold(answer, lowConfidencePhrases...)
}

// DefaultSuggestions are served when neither search nor the LLM produced
// anything usable.
var DefaultSuggestions = []string{
	"application deadlines for scholarships",
	"GPA needed for freshman admission",
	"who is my admissions counselor",
	"how to apply for scholarships",
}
