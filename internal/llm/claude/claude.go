package claude

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"cognito-terminal/internal/api"
	"cognito-terminal/internal/store"
	"cognito-terminal/internal/trace"
)

// Generator implements interfaces.TextGenerator using the Anthropic Messages API
type Generator struct {
	cfg    *store.Config
	client *api.Client
}

// NewGenerator creates a Claude-backed generator.
// CLAUDE_API_ENDPOINT overrides the public endpoint for proxies.
func NewGenerator(cfg *store.Config) *Generator {
	endpoint := "https://api.anthropic.com"
	if cfg.Oracle.Endpoint != "" {
		endpoint = cfg.Oracle.Endpoint
	}
	if ep := os.Getenv("CLAUDE_API_ENDPOINT"); ep != "" {
		endpoint = ep
	}
	return &Generator{
		cfg: cfg,
		client: api.NewClient(
			api.WithBaseURL(strings.TrimRight(endpoint, "/")),
			api.WithTimeout(cfg.Oracle.Timeout),
			api.WithHeader("anthropic-version", "2023-06-01"),
		),
	}
}

// Generate sends prompt as a single user turn and returns the concatenated text blocks
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "claude-api-call")
	defer span.End()

	apiKey := os.Getenv("CLAUDE_API_KEY")
	if apiKey == "" {
		return "", errors.New("CLAUDE_API_KEY missing")
	}

	reqBody := map[string]any{
		"model": g.cfg.Oracle.Model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"max_tokens":  g.cfg.Oracle.MaxTokens,
		"temperature": g.cfg.Oracle.Temperature,
	}
	if g.cfg.Oracle.System != "" {
		reqBody["system"] = g.cfg.Oracle.System
	}

	resp, err := g.client.POST(ctx, "/v1/messages", reqBody, map[string]string{"x-api-key": apiKey})
	if err != nil {
		return "", fmt.Errorf("claude messages: %w", err)
	}

	var r struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := resp.ParseJSON(&r); err != nil {
		return "", fmt.Errorf("claude messages: %w", err)
	}

	var sb strings.Builder
	for _, block := range r.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", errors.New("claude messages: empty content")
	}
	return out, nil
}
