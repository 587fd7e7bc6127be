package ollama

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cognito-terminal/internal/api"
	"cognito-terminal/internal/store"
	"cognito-terminal/internal/trace"
)

const defaultEndpoint = "http://localhost:11434"

// Generator talks to a local Ollama server through its non-streaming chat endpoint.
type Generator struct {
	cfg    *store.Config
	client *api.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string         `json:"model"`
	Messages []chatMessage  `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  map[string]any `json:"options,omitempty"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
	Error   string      `json:"error"`
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
			api.WithLogging(true),
		),
	}
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "ollama-api-call")
	defer span.End()

	messages := make([]chatMessage, 0, 2)
	if g.cfg.Oracle.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: g.cfg.Oracle.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	resp, err := g.client.POST(ctx, "/api/chat", chatRequest{
		Model:    g.cfg.Oracle.Model,
		Messages: messages,
		Stream:   false,
		Options: map[string]any{
			"temperature": g.cfg.Oracle.Temperature,
			"num_predict": g.cfg.Oracle.MaxTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}

	var r chatResponse
	if err := resp.ParseJSON(&r); err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}
	if r.Error != "" {
		return "", fmt.Errorf("ollama chat: %s", r.Error)
	}
	out := strings.TrimSpace(r.Message.Content)
	if out == "" {
		return "", errors.New("ollama chat: empty completion")
	}
	return out, nil
}
