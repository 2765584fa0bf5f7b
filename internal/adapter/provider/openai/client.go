// Package openai completes prompts through the OpenAI chat completions API
// or any server compatible with it.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sdk "github.com/sashabaranov/go-openai"
)

const defaultMaxTokens = 2048

// Config holds the client settings.
type Config struct {
	APIKey    string
	Model     string
	MaxTokens int
	BaseURL   string
}

// Client sends single-turn chat completions.
type Client struct {
	client    *sdk.Client
	model     string
	maxTokens int
	log       *slog.Logger
}

// NewClient creates a Client. An empty model selects GPT-4o.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	conf := sdk.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = sdk.GPT4o
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return &Client{
		client:    sdk.NewClientWithConfig(conf),
		model:     model,
		maxTokens: maxTokens,
		log:       logger.With("adapter", "openai"),
	}
}

// Complete sends a system and a user message and returns the first choice.
func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	var messages []sdk.ChatCompletionMessage
	if system != "" {
		messages = append(messages, sdk.ChatCompletionMessage{
			Role:    sdk.ChatMessageRoleSystem,
			Content: system,
		})
	}
	messages = append(messages, sdk.ChatCompletionMessage{
		Role:    sdk.ChatMessageRoleUser,
		Content: prompt,
	})

	c.log.DebugContext(ctx, "openai request", slog.String("model", c.model))

	resp, err := c.client.CreateChatCompletion(ctx, sdk.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.3,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("openai: empty response")
	}

	c.log.DebugContext(ctx, "openai response",
		slog.String("finish_reason", string(resp.Choices[0].FinishReason)),
		slog.Int("completion_tokens", resp.Usage.CompletionTokens),
	)

	return resp.Choices[0].Message.Content, nil
}
