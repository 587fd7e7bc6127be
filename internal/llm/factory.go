package llm

import (
	"context"

	"cognito-terminal/internal/interfaces"
	"cognito-terminal/internal/llm/claude"
	"cognito-terminal/internal/llm/llmobs"
	"cognito-terminal/internal/llm/noop"
	"cognito-terminal/internal/llm/ollama"
	"cognito-terminal/internal/llm/openai"
	"cognito-terminal/internal/logger"
	"cognito-terminal/internal/store"
)

// New returns the configured text generator wrapped with observability.
func New(ctx context.Context, cfg *store.Config, m interfaces.Metrics) interfaces.TextGenerator {
	var gen interfaces.TextGenerator

	switch cfg.Oracle.Provider {
	case "OLLAMA":
		gen = ollama.NewGenerator(cfg)
	case "OPENAI":
		gen = openai.NewGenerator(cfg)
	case "CLAUDE":
		gen = claude.NewGenerator(cfg)
	default:
		gen = noop.NewGenerator()
		logger.Warn(ctx, "No LLM provider configured - every oracle call will use its fallback")
	}

	logger.Info(ctx, "Text oracle provider selected", "provider", cfg.Oracle.Provider, "model", cfg.Oracle.Model)
	return llmobs.Wrap(gen, cfg.Oracle.Provider, m)
}
