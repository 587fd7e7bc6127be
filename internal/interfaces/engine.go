package interfaces

import (
	"context"

	"cognito-terminal/internal/types"
)

// Engine advances a simulation by one day at a time.
type Engine interface {
	Step(ctx context.Context, day int) types.DailyStepRecord
	FinalReport(ctx context.Context, logs string) string
	Symbol() string
	Cash() float64
	Holdings() float64
	Price() float64
	InitialValue() float64
	State() types.EngineState
}
