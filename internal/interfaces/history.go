package interfaces

import (
	"context"

	"cognito-terminal/internal/types"
)

// HistoryStore persists completed runs, newest first.
type HistoryStore interface {
	Append(ctx context.Context, entry types.HistoryEntry) error
	LoadAll(ctx context.Context) ([]types.HistoryEntry, error)
	Clear(ctx context.Context) error
}
