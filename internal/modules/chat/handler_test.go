package chat

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "github.com/smartassist/campus-assistant-go/internal/errors"
	"github.com/smartassist/campus-assistant-go/internal/followup"
	"github.com/smartassist/campus-assistant-go/internal/logger"
	"github.com/smartassist/campus-assistant-go/internal/rag"
)

type fakeProvider struct {
	answer    string
	err       error
	chunks    []string
	streamErr error
}

func (f *fakeProvider) GetAnswer(_ context.Context, _ string) (*rag.Answer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &rag.Answer{Text: f.answer}, nil
}

func (f *fakeProvider) StreamAnswer(_ context.Context, _ string, fn func(string) error) (string, error) {
	var b strings.Builder
	for _, chunk := range f.chunks {
		b.WriteString(chunk)
		if err := fn(chunk); err != nil {
			return b.String(), err
		}
	}
	return b.String(), f.streamErr
}

func newTestRouter(t *testing.T, provider rag.AnswerProvider, debug bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewWithWriter("error", io.Discard)
	gen := followup.NewGenerator(nil, nil, "", false, log, nil)
	h := NewHandler(provider, gen, 4, debug, log, nil)

	r := gin.New()
	h.RegisterRoutes(r)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChatQuestion(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, &fakeProvider{answer: "The library closes at midnight."}, false)
	w := postJSON(r, "/chat_question", `{"question": "library hours"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Answer          string          `json:"answer"`
		SuggestLiveChat bool            `json:"suggest_live_chat"`
		Followups       []followup.Chip `json:"suggested_followups"`
		Generator       string          `json:"followup_generator"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Answer != "The library closes at midnight." {
		t.Errorf("answer = %q", resp.Answer)
	}
	if resp.SuggestLiveChat {
		t.Error("unexpected live chat suggestion")
	}
	if len(resp.Followups) == 0 {
		t.Error("expected fallback follow-up chips")
	}
	if resp.Generator != "" {
		t.Errorf("followup_generator leaked without debug flag: %q", resp.Generator)
	}
}

func TestChatQuestionFormEncoded(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, &fakeProvider{answer: "ok"}, false)
	req := httptest.NewRequest(http.MethodPost, "/chat_question", strings.NewReader("question=library+hours"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestChatQuestionEmpty(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, &fakeProvider{answer: "ok"}, false)
	for _, body := range []string{`{"question": ""}`, `{"question": "   "}`, `{}`} {
		w := postJSON(r, "/chat_question", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, w.Code)
		}
		if !strings.Contains(w.Body.String(), apperrors.ErrEmptyQuestion.Error()) {
			t.Errorf("body %q: error detail = %s, want %q", body, w.Body.String(), apperrors.ErrEmptyQuestion)
		}
	}
}

func TestChatQuestionProviderError(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, &fakeProvider{err: errors.New("upstream down")}, false)
	w := postJSON(r, "/chat_question", `{"question": "anything"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "upstream down") {
		t.Error("internal error detail leaked to client")
	}
}

func TestChatQuestionEscalation(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, &fakeProvider{answer: "Sure."}, false)
	w := postJSON(r, "/chat_question", `{"question": "I want to talk to someone"}`)

	var resp struct {
		SuggestLiveChat bool            `json:"suggest_live_chat"`
		Followups       []followup.Chip `json:"suggested_followups"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.SuggestLiveChat {
		t.Error("suggest_live_chat = false, want true")
	}
	if len(resp.Followups) != 1 || resp.Followups[0].Payload.Action != "escalate" {
		t.Errorf("followups = %+v, want single escalation chip", resp.Followups)
	}
}

func TestChatQuestionDebugExposesGenerator(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, &fakeProvider{answer: "ok"}, true)
	w := postJSON(r, "/chat_question", `{"question": "library hours"}`)

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["followup_generator"] != followup.SourceFallback {
		t.Errorf("followup_generator = %v, want %q", resp["followup_generator"], followup.SourceFallback)
	}
}

// decodeSSE parses "data: <json>" frames into stream events.
func decodeSSE(t *testing.T, body string) []streamEvent {
	t.Helper()
	var events []streamEvent
	for _, line := range strings.Split(body, "\n") {
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var ev streamEvent
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev); err != nil {
			t.Fatalf("decode frame %q: %v", line, err)
		}
		events = append(events, ev)
	}
	return events
}

func TestChatQuestionStream(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{chunks: []string{"The library ", "is open late."}}
	r := newTestRouter(t, provider, false)
	w := postJSON(r, "/chat_question_stream", `{"question": "library hours"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Errorf("Content-Type = %q", ct)
	}
	if w.Header().Get("X-Accel-Buffering") != "no" {
		t.Error("missing X-Accel-Buffering header")
	}

	events := decodeSSE(t, w.Body.String())
	wantTypes := []string{"chunk", "chunk", "followups", "done"}
	if len(events) != len(wantTypes) {
		t.Fatalf("got %d events, want %d: %+v", len(events), len(wantTypes), events)
	}
	for i, want := range wantTypes {
		if events[i].Type != want {
			t.Errorf("event[%d].Type = %q, want %q", i, events[i].Type, want)
		}
	}
	if events[0].Content != "The library " || events[1].Content != "is open late." {
		t.Errorf("chunk contents = %q, %q", events[0].Content, events[1].Content)
	}
	if events[2].SuggestLiveChat == nil || len(events[2].Followups) == 0 {
		t.Errorf("followups event incomplete: %+v", events[2])
	}
}

func TestChatQuestionStreamProviderError(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{chunks: []string{"partial "}, streamErr: errors.New("stream cut")}
	r := newTestRouter(t, provider, false)
	w := postJSON(r, "/chat_question_stream", `{"question": "anything"}`)

	events := decodeSSE(t, w.Body.String())
	if len(events) < 3 {
		t.Fatalf("got %d events, want chunk + followups + done", len(events))
	}
	last := events[len(events)-1]
	if last.Type != "done" {
		t.Errorf("last event = %q, want done even after a stream error", last.Type)
	}
	if events[len(events)-2].Type != "followups" {
		t.Errorf("penultimate event = %q, want followups", events[len(events)-2].Type)
	}
}

func TestChatQuestionStreamEmpty(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, &fakeProvider{}, false)
	if w := postJSON(r, "/chat_question_stream", `{"question": ""}`); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
