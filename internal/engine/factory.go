package engine

import (
	"context"

	"cognito-terminal/internal/engine/engineobs"
	"cognito-terminal/internal/interfaces"
	"cognito-terminal/internal/market"
	"cognito-terminal/internal/oracle"
)

// NewObserved builds an Engine wrapped with tracing, timing and step metrics.
func NewObserved(ctx context.Context, opts Options, prices interfaces.PriceSource, orc *oracle.Oracle, rng market.Rand, m interfaces.Metrics) interfaces.Engine {
	return engineobs.Wrap(New(ctx, opts, prices, orc, rng), m)
}
