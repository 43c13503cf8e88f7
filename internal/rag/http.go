package rag

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/smartassist/campus-assistant-go/internal/errors"
	"github.com/smartassist/campus-assistant-go/internal/logger"
)

const (
	answerPath = "/answer"
	streamPath = "/answer/stream"

	ssePrefix = "data: "
	sseDone   = "[DONE]"

	// maxErrorBody caps how much of an upstream error response is read for
	// diagnostics.
	maxErrorBody = 4 << 10
)

// HTTPProvider implements AnswerProvider against the answering service's
// HTTP API.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
	log     *logger.Logger
}

// NewHTTPProvider creates a provider for the service at baseURL. The
// client's timeout bounds synchronous requests; streaming requests rely on
// the caller's context instead, so the client timeout is dropped for them.
func NewHTTPProvider(baseURL string, client *http.Client, log *logger.Logger) *HTTPProvider {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = logger.New("info")
	}
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		log:     log.WithModule("rag"),
	}
}

type answerRequest struct {
	Question string `json:"question"`
}

// GetAnswer implements AnswerProvider.
func (p *HTTPProvider) GetAnswer(ctx context.Context, question string) (*Answer, error) {
	url := p.baseURL + answerPath
	resp, err := p.post(ctx, p.client, url, question)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, p.upstreamError(url, resp)
	}

	var answer Answer
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return nil, fmt.Errorf("decode answer response: %w", err)
	}
	return &answer, nil
}

// StreamAnswer implements AnswerProvider. The service emits SSE frames of
// the form "data: {\"chunk\": \"...\"}" terminated by "data: [DONE]".
func (p *HTTPProvider) StreamAnswer(ctx context.Context, question string, fn func(chunk string) error) (string, error) {
	url := p.baseURL + streamPath

	// Streams can legitimately outlive the synchronous request timeout.
	client := &http.Client{Transport: p.client.Transport}

	resp, err := p.post(ctx, client, url, question)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", p.upstreamError(url, resp)
	}

	var accumulated strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, ssePrefix) {
			continue
		}
		payload := strings.TrimPrefix(line, ssePrefix)
		if payload == sseDone {
			return accumulated.String(), nil
		}

		var frame struct {
			Chunk string `json:"chunk"`
		}
		if err := json.Unmarshal([]byte(payload), &frame); err != nil {
			p.log.WithError(err).Warnf("skipping malformed stream frame")
			continue
		}
		if frame.Chunk == "" {
			continue
		}

		accumulated.WriteString(frame.Chunk)
		if err := fn(frame.Chunk); err != nil {
			return accumulated.String(), err
		}
	}

	if err := scanner.Err(); err != nil {
		return accumulated.String(), fmt.Errorf("read answer stream: %w", err)
	}
	// Stream ended without a [DONE] marker; treat what we got as the answer.
	return accumulated.String(), nil
}

// Ping checks that the answering service is reachable. Any HTTP response
// counts as reachable; only transport failures are errors.
func (p *HTTPProvider) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("build ping request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return &apperrors.UpstreamError{Service: "rag", URL: p.baseURL, Err: err}
	}
	resp.Body.Close()
	return nil
}

func (p *HTTPProvider) post(ctx context.Context, client *http.Client, url, question string) (*http.Response, error) {
	body, err := json.Marshal(answerRequest{Question: question})
	if err != nil {
		return nil, fmt.Errorf("marshal answer request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build answer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &apperrors.UpstreamError{
			Service: "rag",
			URL:     url,
			Err:     err,
		}
	}
	return resp, nil
}

func (p *HTTPProvider) upstreamError(url string, resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &apperrors.UpstreamError{
		Service:    "rag",
		URL:        url,
		StatusCode: resp.StatusCode,
		Err:        fmt.Errorf("unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet)),
	}
}
