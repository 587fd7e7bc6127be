package llmobs

import (
	"context"
	"time"

	"cognito-terminal/internal/interfaces"
	"cognito-terminal/internal/logger"
	"cognito-terminal/internal/trace"
)

// observableGenerator wraps a TextGenerator with logging & tracing
type observableGenerator struct {
	gen      interfaces.TextGenerator
	provider string
	metrics  interfaces.Metrics
}

var _ interfaces.TextGenerator = (*observableGenerator)(nil)

// Wrap wraps a generator with observability middleware
func Wrap(gen interfaces.TextGenerator, provider string, m interfaces.Metrics) interfaces.TextGenerator {
	return &observableGenerator{gen: gen, provider: provider, metrics: m}
}

func (og *observableGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Generate")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Requesting completion",
		"provider", og.provider,
		"prompt_length", len(prompt),
	)

	start := time.Now()
	out, err := og.gen.Generate(ctx, prompt)
	latency := time.Since(start)
	og.metrics.RecordLatency("llm."+og.provider, latency.Seconds())

	if err != nil {
		logger.DebugSkip(ctx, 1, "Completion failed",
			"provider", og.provider,
			"latency_ms", latency.Milliseconds(),
			"error", err,
		)
		return "", err
	}

	logger.DebugSkip(ctx, 1, "Completion received",
		"provider", og.provider,
		"latency_ms", latency.Milliseconds(),
		"response_length", len(out),
	)
	return out, nil
}
