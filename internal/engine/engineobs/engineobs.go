package engineobs

import (
	"context"
	"time"

	"cognito-terminal/internal/interfaces"
	"cognito-terminal/internal/logger"
	"cognito-terminal/internal/trace"
	"cognito-terminal/internal/types"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

type observableEngine struct {
	engine  interfaces.Engine
	metrics interfaces.Metrics
}

var _ interfaces.Engine = (*observableEngine)(nil)

func Wrap(eng interfaces.Engine, m interfaces.Metrics) interfaces.Engine {
	return &observableEngine{
		engine:  eng,
		metrics: m,
	}
}

func (oe *observableEngine) Step(ctx context.Context, day int) types.DailyStepRecord {
	ctx, span := trace.StartSpan(ctx, "engine.Step", oteltrace.WithAttributes(
		attribute.String("symbol", oe.engine.Symbol()),
		attribute.Int("day", day),
	))
	defer span.End()

	start := time.Now()

	logger.DebugSkip(ctx, 1, "Starting simulation day",
		"symbol", oe.engine.Symbol(),
		"day", day,
	)

	rec := oe.engine.Step(ctx, day)
	elapsed := time.Since(start)

	oe.metrics.RecordStep(oe.engine.Symbol(), string(rec.Action), rec.Price, rec.PortfolioValue)
	oe.metrics.RecordLatency("engine.step", elapsed.Seconds())

	span.SetAttributes(
		attribute.String("action", string(rec.Action)),
		attribute.Float64("avg_score", rec.Scores.Avg),
	)

	logger.InfoSkip(ctx, 1, "Simulation day completed",
		"symbol", oe.engine.Symbol(),
		"day", day,
		"action", rec.Action,
		"reason", rec.Reason,
		"price", rec.Price,
		"portfolio_value", rec.PortfolioValue,
		"pnl_day", rec.PnLDay,
		"duration_ms", elapsed.Milliseconds(),
	)

	return rec
}

func (oe *observableEngine) FinalReport(ctx context.Context, logs string) string {
	ctx, span := trace.StartSpan(ctx, "engine.FinalReport")
	defer span.End()

	start := time.Now()
	report := oe.engine.FinalReport(ctx, logs)
	oe.metrics.RecordLatency("engine.final_report", time.Since(start).Seconds())

	logger.InfoSkip(ctx, 1, "Final report compiled",
		"symbol", oe.engine.Symbol(),
		"report_len", len(report),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return report
}

func (oe *observableEngine) Symbol() string           { return oe.engine.Symbol() }
func (oe *observableEngine) Cash() float64            { return oe.engine.Cash() }
func (oe *observableEngine) Holdings() float64        { return oe.engine.Holdings() }
func (oe *observableEngine) Price() float64           { return oe.engine.Price() }
func (oe *observableEngine) InitialValue() float64    { return oe.engine.InitialValue() }
func (oe *observableEngine) State() types.EngineState { return oe.engine.State() }
