package ticket

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/smartassist/campus-assistant-go/internal/logger"
	"github.com/smartassist/campus-assistant-go/internal/rag"
)

type fakeProvider struct {
	text string
	err  error
}

func (f *fakeProvider) GetAnswer(_ context.Context, _ string) (*rag.Answer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &rag.Answer{Text: f.text}, nil
}

func (f *fakeProvider) StreamAnswer(_ context.Context, _ string, _ func(string) error) (string, error) {
	return "", errors.New("not implemented")
}

func newTestAnalyzer(p rag.AnswerProvider) *Analyzer {
	return NewAnalyzer(p, logger.NewWithWriter("error", io.Discard), nil)
}

func TestAnalyzeWellFormed(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{text: `SUBJECT: Wi-Fi not working in dorm
CATEGORY: Technical Support
PRIORITY: High
DESCRIPTION: Student cannot connect to IslanderNet from their residence hall room.
The problem started yesterday evening.`}

	draft := newTestAnalyzer(p).Analyze(context.Background(), "my wifi is broken in the dorm")
	if draft.Subject != "Wi-Fi not working in dorm" {
		t.Errorf("subject = %q", draft.Subject)
	}
	if draft.Category != "Technical Support" {
		t.Errorf("category = %q", draft.Category)
	}
	if draft.Priority != "High" {
		t.Errorf("priority = %q", draft.Priority)
	}
	if !strings.Contains(draft.Description, "started yesterday evening") {
		t.Errorf("description lost multi-line tail: %q", draft.Description)
	}
}

func TestAnalyzeProviderError(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{err: errors.New("service down")}
	draft := newTestAnalyzer(p).Analyze(context.Background(), "help with my bill")

	want := Draft{
		Subject:     DefaultSubject,
		Category:    DefaultCategory,
		Priority:    DefaultPriority,
		Description: "help with my bill",
	}
	if draft != want {
		t.Errorf("draft = %+v, want all defaults", draft)
	}
}

func TestAnalyzeJunkResponse(t *testing.T) {
	t.Parallel()

	for _, text := range []string{
		"I'm sorry, I can't help with that.",
		"",
		"subject category priority description",
	} {
		p := &fakeProvider{text: text}
		draft := newTestAnalyzer(p).Analyze(context.Background(), "original message")
		if draft.Subject != DefaultSubject || draft.Category != DefaultCategory ||
			draft.Priority != DefaultPriority || draft.Description != "original message" {
			t.Errorf("Analyze with %q = %+v, want all defaults", text, draft)
		}
	}
}

func TestAnalyzeInvalidEnums(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{text: `SUBJECT: Billing question
CATEGORY: Payments
PRIORITY: Urgent
DESCRIPTION: Needs help with an invoice.`}

	draft := newTestAnalyzer(p).Analyze(context.Background(), "msg")
	if draft.Category != DefaultCategory {
		t.Errorf("category = %q, want %q for unrecognized value", draft.Category, DefaultCategory)
	}
	if draft.Priority != DefaultPriority {
		t.Errorf("priority = %q, want %q for unrecognized value", draft.Priority, DefaultPriority)
	}
	if draft.Subject != "Billing question" {
		t.Errorf("subject = %q, valid fields must survive invalid ones", draft.Subject)
	}
}

func TestAnalyzeEnumCaseInsensitive(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{text: "SUBJECT: Dorm move\nCATEGORY: housing\nPRIORITY: low\nDESCRIPTION: Moving rooms."}
	draft := newTestAnalyzer(p).Analyze(context.Background(), "msg")
	if draft.Category != "Housing" {
		t.Errorf("category = %q, want canonical %q", draft.Category, "Housing")
	}
	if draft.Priority != "Low" {
		t.Errorf("priority = %q, want canonical %q", draft.Priority, "Low")
	}
}

func TestAnalyzeSubjectTruncated(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 150)
	p := &fakeProvider{text: "SUBJECT: " + long + "\nCATEGORY: Other\nPRIORITY: Medium\nDESCRIPTION: d"}
	draft := newTestAnalyzer(p).Analyze(context.Background(), "msg")
	if len([]rune(draft.Subject)) != 100 {
		t.Errorf("subject length = %d runes, want 100", len([]rune(draft.Subject)))
	}
}

func TestAnalyzePartialFields(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{text: "PRIORITY: High"}
	draft := newTestAnalyzer(p).Analyze(context.Background(), "printer jammed")
	if draft.Priority != "High" {
		t.Errorf("priority = %q", draft.Priority)
	}
	if draft.Subject != DefaultSubject || draft.Category != DefaultCategory || draft.Description != "printer jammed" {
		t.Errorf("missing fields must default: %+v", draft)
	}
}
