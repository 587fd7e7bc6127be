package interfaces

import (
	"context"

	"cognito-terminal/internal/types"
)

// NewsFeed scores recent real-world coverage of an asset.
type NewsFeed interface {
	Sentiment(ctx context.Context, asset string) (types.NewsSentiment, error)
}
