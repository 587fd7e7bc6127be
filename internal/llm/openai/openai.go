package openai

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

const defaultEndpoint = "https://api.openai.com"

type Generator struct {
	cfg    *store.Config
	client *api.Client
}

func NewGenerator(cfg *store.Config) *Generator {
	endpoint := cfg.Oracle.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Generator{
		cfg: cfg,
		client: api.NewClient(
			api.WithBaseURL(strings.TrimRight(endpoint, "/")),
			api.WithTimeout(cfg.Oracle.Timeout),
		),
	}
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "openai-api-call")
	defer span.End()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return "", errors.New("OPENAI_API_KEY missing")
	}

	messages := []map[string]string{}
	if g.cfg.Oracle.System != "" {
		messages = append(messages, map[string]string{"role": "system", "content": g.cfg.Oracle.System})
	}
	messages = append(messages, map[string]string{"role": "user", "content": prompt})

	body := map[string]any{
		"model":       g.cfg.Oracle.Model,
		"messages":    messages,
		"temperature": g.cfg.Oracle.Temperature,
		"max_tokens":  g.cfg.Oracle.MaxTokens,
	}
	resp, err := g.client.POST(ctx, "/v1/chat/completions", body, map[string]string{
		"Authorization": "Bearer " + apiKey,
	})
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := resp.ParseJSON(&r); err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(r.Choices) == 0 {
		return "", errors.New("openai completion: no choices")
	}

	out := strings.TrimSpace(r.Choices[0].Message.Content)
	if out == "" {
		return "", errors.New("openai completion: empty content")
	}
	return out, nil
}
