package llm

import (
	"context"
	"fmt"

	"github.com/smartassist/campus-assistant-go/internal/logger"
	"github.com/smartassist/campus-assistant-go/internal/metrics"
)

// FallbackClient tries the primary client first and retries the request on
// the secondary client when the primary fails for any reason. The secondary
// attempt swaps in the legacy model identifier, since the legacy API shape
// pairs with older model names. Either client may be nil; a request only
// fails outright when every configured client has failed.
type FallbackClient struct {
	primary     Client
	secondary   Client
	legacyModel string
	log         *logger.Logger
	metrics     *metrics.Metrics
}

// NewFallbackClient wires the primary/secondary pair. legacyModel overrides
// the request model on the secondary attempt when non-empty. log and m may
// be nil.
func NewFallbackClient(primary, secondary Client, legacyModel string, log *logger.Logger, m *metrics.Metrics) *FallbackClient {
	if log == nil {
		log = logger.New("info")
	}
	return &FallbackClient{
		primary:     primary,
		secondary:   secondary,
		legacyModel: legacyModel,
		log:         log.WithModule("llm"),
		metrics:     m,
	}
}

// Name implements Client.
func (f *FallbackClient) Name() string { return "fallback" }

type fallbackAttempt struct {
	client Client
	model  string
}

// Complete implements Client.
func (f *FallbackClient) Complete(ctx context.Context, req Request) (string, error) {
	attempts := make([]fallbackAttempt, 0, 2)
	if f.primary != nil {
		attempts = append(attempts, fallbackAttempt{client: f.primary})
	}
	if f.secondary != nil {
		attempts = append(attempts, fallbackAttempt{client: f.secondary, model: f.legacyModel})
	}
	if len(attempts) == 0 {
		return "", fmt.Errorf("no llm client configured")
	}

	var errs []error
	for i, attempt := range attempts {
		attemptReq := req
		if attempt.model != "" {
			attemptReq.Model = attempt.model
		}

		text, err := attempt.client.Complete(ctx, attemptReq)
		if err == nil {
			f.metrics.RecordLLMRequest(attempt.client.Name(), "ok")
			return text, nil
		}
		f.metrics.RecordLLMRequest(attempt.client.Name(), "error")
		errs = append(errs, fmt.Errorf("%s: %w", attempt.client.Name(), err))

		// Canceled contexts fail every client the same way; bail early.
		if ctx.Err() != nil {
			break
		}
		if i < len(attempts)-1 {
			f.metrics.RecordLLMFallback()
			f.log.WithError(err).Warnf("%s client failed, falling back to %s", attempt.client.Name(), attempts[i+1].client.Name())
		}
	}

	if len(errs) == 1 {
		return "", errs[0]
	}
	return "", fmt.Errorf("all llm clients failed: %v; %v", errs[0], errs[1])
}
