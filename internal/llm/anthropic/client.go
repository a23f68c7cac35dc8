// Package anthropic implements text generation on the Anthropic Messages API.
package anthropic

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/geosense/geosense/internal/llm"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "claude-haiku-4-5-20251001"

	// defaultTimeout bounds a single generation call. Generation sits on
	// the request path ahead of a deterministic fallback, so the bound is
	// tight.
	defaultTimeout = 8 * time.Second

	defaultTemperature = 0.7
)

// ClientConfig holds configuration for the Anthropic client.
type ClientConfig struct {
	// APIKey is the Anthropic API key (required).
	APIKey string

	// Model is the model ID (defaults to DefaultModel).
	Model string

	// Timeout for individual generation calls (default: 8s).
	Timeout time.Duration
}

// Client generates text with the Anthropic Messages API.
type Client struct {
	client  sdk.Client
	model   string
	timeout time.Duration
}

// NewClient creates a new Anthropic client.
func NewClient(cfg ClientConfig) *Client {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		client: sdk.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithMaxRetries(0),
		),
		model:   model,
		timeout: timeout,
	}
}

// Generate sends a single user message and returns the concatenated text
// blocks of the reply.
func (c *Client) Generate(ctx context.Context, system, prompt string, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := sdk.MessageNewParams{
		Model:       sdk.Model(c.model),
		MaxTokens:   int64(maxTokens),
		Messages:    []sdk.MessageParam{sdk.NewUserMessage(sdk.NewTextBlock(prompt))},
		Temperature: sdk.Float(defaultTemperature),
	}
	if system != "" {
		params.System = []sdk.TextBlockParam{{Text: system}}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: %w", llm.ErrGenerationFailed, err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: empty completion", llm.ErrGenerationFailed)
	}

	return text, nil
}
