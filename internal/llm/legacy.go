package llm

import (
	"context"
	"fmt"

	legacyopenai "github.com/sashabaranov/go-openai"
)

// LegacyClient wraps the community OpenAI SDK. It is kept as a fallback
// path for deployments where the current SDK's endpoint behavior
// regresses; the two SDKs negotiate requests differently enough that one
// occasionally succeeds where the other fails.
type LegacyClient struct {
	client *legacyopenai.Client
}

// NewLegacyClient creates the fallback client. baseURL overrides the
// endpoint when non-empty. Returns nil when apiKey is empty.
func NewLegacyClient(apiKey, baseURL string) *LegacyClient {
	if apiKey == "" {
		return nil
	}

	cfg := legacyopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &LegacyClient{client: legacyopenai.NewClientWithConfig(cfg)}
}

// Name implements Client.
func (c *LegacyClient) Name() string { return "openai_legacy" }

// Complete implements Client.
func (c *LegacyClient) Complete(ctx context.Context, req Request) (string, error) {
	if c == nil {
		return "", fmt.Errorf("legacy openai client not configured")
	}

	resp, err := c.client.CreateChatCompletion(ctx, legacyopenai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []legacyopenai.ChatCompletionMessage{
			{Role: legacyopenai.ChatMessageRoleSystem, Content: req.System},
			{Role: legacyopenai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("legacy openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("legacy openai completion: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
