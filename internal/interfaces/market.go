package interfaces

import (
	"context"

	"cognito-terminal/internal/types"
)

// PriceSource resolves a ticker to its current quote-currency price.
type PriceSource interface {
	StartPrice(ctx context.Context, symbol string) (float64, error)
}

// MarketData is the wider market-data collaborator used by the audit and scanner views.
type MarketData interface {
	PriceSource
	Quote(ctx context.Context, asset string) (types.Quote, error)
	Scanner(ctx context.Context, limit int) ([]types.MarketRow, error)
	History(ctx context.Context, asset string, days int) ([]types.PricePoint, error)
}
