package noop

import (
	"context"
	"errors"

	"cognito-terminal/internal/logger"
)

// ErrNoProvider is returned for every prompt so callers take their fallback path.
var ErrNoProvider = errors.New("no text generation provider configured")

// Generator is used when no LLM is configured
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	logger.Debug(ctx, "Noop generator called - caller falls back", "prompt_length", len(prompt))
	return "", ErrNoProvider
}
