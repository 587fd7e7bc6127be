package interfaces

import (
	"context"
	"time"
)

// EodSummarizer rolls a day's journaled fills up into a CSV report.
type EodSummarizer interface {
	// SummarizeDay returns the CSV path, or "" when the day has no fills.
	SummarizeDay(ctx context.Context, day time.Time) (string, error)
}
