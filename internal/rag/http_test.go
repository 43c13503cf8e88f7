package rag

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/smartassist/campus-assistant-go/internal/errors"
	"github.com/smartassist/campus-assistant-go/internal/logger"
)

func testLogger() *logger.Logger {
	return logger.NewWithWriter("error", io.Discard)
}

func TestGetAnswer(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/answer" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req struct {
			Question string `json:"question"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Question != "when is registration" {
			t.Errorf("question = %q", req.Question)
		}
		json.NewEncoder(w).Encode(Answer{
			Text:       "Registration opens in April.",
			Confidence: 0.92,
			Sources:    []Source{{Title: "Registrar", URL: "https://example.edu/registrar"}},
		})
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, srv.Client(), testLogger())
	answer, err := p.GetAnswer(context.Background(), "when is registration")
	if err != nil {
		t.Fatalf("GetAnswer: %v", err)
	}
	if answer.Text != "Registration opens in April." {
		t.Errorf("answer = %q", answer.Text)
	}
	if len(answer.Sources) != 1 || answer.Sources[0].Title != "Registrar" {
		t.Errorf("sources = %+v", answer.Sources)
	}
}

func TestGetAnswerUpstreamError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, srv.Client(), testLogger())
	_, err := p.GetAnswer(context.Background(), "q")
	if err == nil {
		t.Fatal("expected error on 503")
	}

	var upstream *apperrors.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("error type = %T, want *UpstreamError", err)
	}
	if upstream.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", upstream.StatusCode)
	}
	if upstream.Service != "rag" {
		t.Errorf("service = %q, want rag", upstream.Service)
	}
}

func TestGetAnswerConnectionRefused(t *testing.T) {
	t.Parallel()

	p := NewHTTPProvider("http://127.0.0.1:1", http.DefaultClient, testLogger())
	_, err := p.GetAnswer(context.Background(), "q")

	var upstream *apperrors.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("error type = %T, want *UpstreamError", err)
	}
	if upstream.StatusCode != 0 {
		t.Errorf("status = %d, want 0 for transport failure", upstream.StatusCode)
	}
}

func TestStreamAnswer(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/answer/stream" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"chunk\": \"The library \"}\n\n")
		fmt.Fprint(w, "data: {\"chunk\": \"is open until midnight.\"}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, srv.Client(), testLogger())

	var chunks []string
	full, err := p.StreamAnswer(context.Background(), "library hours", func(chunk string) error {
		chunks = append(chunks, chunk)
		return nil
	})
	if err != nil {
		t.Fatalf("StreamAnswer: %v", err)
	}
	if full != "The library is open until midnight." {
		t.Errorf("accumulated = %q", full)
	}
	if len(chunks) != 2 {
		t.Errorf("chunks = %v, want 2 entries", chunks)
	}
}

func TestStreamAnswerCallbackError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data: {\"chunk\": \"first\"}\n\n")
		fmt.Fprint(w, "data: {\"chunk\": \"second\"}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, srv.Client(), testLogger())

	sentinel := errors.New("client went away")
	partial, err := p.StreamAnswer(context.Background(), "q", func(chunk string) error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want sentinel", err)
	}
	if partial != "first" {
		t.Errorf("partial = %q, want text up to the failing chunk", partial)
	}
}

func TestStreamAnswerSkipsMalformedFrames(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, ": keepalive comment\n\n")
		fmt.Fprint(w, "data: not-json\n\n")
		fmt.Fprint(w, "data: {\"chunk\": \"usable\"}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, srv.Client(), testLogger())
	full, err := p.StreamAnswer(context.Background(), "q", func(string) error { return nil })
	if err != nil {
		t.Fatalf("StreamAnswer: %v", err)
	}
	if full != "usable" {
		t.Errorf("accumulated = %q, want %q", full, "usable")
	}
}

func TestStreamAnswerTruncatedStream(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Connection closes without a [DONE] marker.
		fmt.Fprint(w, "data: {\"chunk\": \"partial answer\"}\n\n")
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, srv.Client(), testLogger())
	full, err := p.StreamAnswer(context.Background(), "q", func(string) error { return nil })
	if err != nil {
		t.Fatalf("StreamAnswer: %v", err)
	}
	if full != "partial answer" {
		t.Errorf("accumulated = %q", full)
	}
}

func TestPing(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound) // any response means reachable
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, srv.Client(), testLogger())
	if err := p.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}

	down := NewHTTPProvider("http://127.0.0.1:1", http.DefaultClient, testLogger())
	if err := down.Ping(context.Background()); err == nil {
		t.Error("expected error for unreachable service")
	}
}

func TestNewHTTPProviderTrimsTrailingSlash(t *testing.T) {
	t.Parallel()

	p := NewHTTPProvider("http://rag.internal/", http.DefaultClient, testLogger())
	if strings.HasSuffix(p.baseURL, "/") {
		t.Errorf("baseURL = %q, want trailing slash trimmed", p.baseURL)
	}
}
