// Package llm adapts hosted language models to the LLM port. Credentials
// arrive through an explicit Config built by the composition root; the
// adapter never reads the environment itself.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	defaultModel     = "claude-sonnet-4-20250514"
	defaultMaxTokens = 2048
	defaultTimeout   = 60 * time.Second
)

// Config carries everything the Claude adapter needs. APIKey is required.
type Config struct {
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
	// RequestsPerMinute throttles outgoing calls; 0 disables throttling.
	RequestsPerMinute int
}

// ClaudeClient implements port.LLM on the Anthropic Messages API. Calls are
// never retried here; retry policy belongs to the caller.
type ClaudeClient struct {
	client    anthropic.Client
	model     string
	maxTokens int
	timeout   time.Duration
	limiter   *rate.Limiter
	log       zerolog.Logger
}

func NewClaudeClient(cfg Config, log zerolog.Logger) (*ClaudeClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1)
	}

	return &ClaudeClient{
		client:    anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		timeout:   cfg.Timeout,
		limiter:   limiter,
		log:       log,
	}, nil
}

func (c *ClaudeClient) Generate(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, "", prompt)
}

func (c *ClaudeClient) GenerateWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return c.generate(ctx, systemPrompt, userPrompt)
}

func (c *ClaudeClient) ModelName() string {
	return c.model
}

func (c *ClaudeClient) generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if strings.TrimSpace(userPrompt) == "" {
		return "", fmt.Errorf("llm: prompt cannot be empty")
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("llm: rate limit wait: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(c.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}
	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemPrompt}}
	}

	start := time.Now()
	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		c.log.Error().Err(err).Str("model", c.model).Msg("claude call failed")
		return "", fmt.Errorf("llm: claude call failed: %w", err)
	}

	var out strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("llm: empty response from model")
	}

	c.log.Debug().
		Str("model", c.model).
		Int("response_chars", out.Len()).
		Dur("duration", time.Since(start)).
		Msg("claude call completed")

	return out.String(), nil
}
