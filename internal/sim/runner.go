// Package sim drives an engine through a whole run and records the outcome.
package sim

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"cognito-terminal/internal/engine"
	"cognito-terminal/internal/interfaces"
	"cognito-terminal/internal/logger"
	"cognito-terminal/internal/market"
	"cognito-terminal/internal/oracle"
	"cognito-terminal/internal/store"
	"cognito-terminal/internal/tradelog"
	"cognito-terminal/internal/types"
)

const dateLayout = "2006-01-02 15:04"

var ErrInvalidParams = errors.New("invalid simulation parameters")

type Params struct {
	Asset string  `json:"asset"`
	Cash  float64 `json:"cash"`
	Qty   float64 `json:"qty"`
	Days  int     `json:"days"`
}

func (p Params) validate() error {
	switch {
	case strings.TrimSpace(p.Asset) == "":
		return fmt.Errorf("%w: asset is required", ErrInvalidParams)
	case p.Cash < 0:
		return fmt.Errorf("%w: cash must be >= 0", ErrInvalidParams)
	case p.Qty < 0:
		return fmt.Errorf("%w: qty must be >= 0", ErrInvalidParams)
	case p.Days < 1:
		return fmt.Errorf("%w: days must be >= 1", ErrInvalidParams)
	}
	return nil
}

type Result struct {
	RunID        string                  `json:"run_id"`
	Asset        string                  `json:"asset"`
	Records      []types.DailyStepRecord `json:"records"`
	Curve        []types.CurvePoint      `json:"curve"`
	Report       string                  `json:"report"`
	InitialValue float64                 `json:"initial_value"`
	FinalValue   float64                 `json:"final_value"`
	PnLPercent   float64                 `json:"pnl_percent"`
	Entry        types.HistoryEntry      `json:"history_entry"`
}

type Runner struct {
	cfg     *store.Config
	prices  interfaces.PriceSource
	oracle  *oracle.Oracle
	history interfaces.HistoryStore
	metrics interfaces.Metrics
	journal *tradelog.Journal
	newRand func() market.Rand
	now     func() time.Time
}

type Option func(*Runner)

// WithRand sets the random source factory; each run gets a fresh source.
func WithRand(f func() market.Rand) Option {
	return func(r *Runner) { r.newRand = f }
}

func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

func WithJournal(j *tradelog.Journal) Option {
	return func(r *Runner) { r.journal = j }
}

// NewRunner wires a runner. history may be nil, in which case runs are not persisted.
func NewRunner(cfg *store.Config, prices interfaces.PriceSource, orc *oracle.Oracle, history interfaces.HistoryStore, m interfaces.Metrics, opts ...Option) *Runner {
	r := &Runner{
		cfg:     cfg,
		prices:  prices,
		oracle:  orc,
		history: history,
		metrics: m,
		newRand: market.NewRand,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run simulates p.Days days, calling onDay after each step when non-nil.
// Context cancellation stops the run between days.
func (r *Runner) Run(ctx context.Context, p Params, onDay func(types.DailyStepRecord)) (*Result, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	runID := uuid.NewString()
	op := logger.StartOperation(ctx, "sim.Run", "run_id", runID, "asset", p.Asset, "days", p.Days)
	ctx = op.GetContext()

	eng := engine.NewObserved(ctx, engine.Options{
		Symbol:         p.Asset,
		Cash:           p.Cash,
		Qty:            p.Qty,
		PriceFloor:     r.cfg.Simulation.PriceFloor,
		ParallelScores: r.cfg.Simulation.ParallelScores,
		Journal:        r.journal.WithRun(runID),
	}, r.prices, r.oracle, r.newRand(), r.metrics)

	res := &Result{
		RunID:        runID,
		Asset:        eng.Symbol(),
		Records:      make([]types.DailyStepRecord, 0, p.Days),
		Curve:        make([]types.CurvePoint, 0, p.Days),
		InitialValue: eng.InitialValue(),
	}

	var logs strings.Builder
	for day := 1; day <= p.Days; day++ {
		if err := ctx.Err(); err != nil {
			op.EndWithError(err, "completed_days", day-1)
			return nil, err
		}
		rec := eng.Step(ctx, day)
		res.Records = append(res.Records, rec)
		res.Curve = append(res.Curve, types.CurvePoint{Day: day, TotalValue: rec.PortfolioValue, Baseline: res.InitialValue})
		logs.WriteString(rec.Explanation)
		logs.WriteString("\n")
		if onDay != nil {
			onDay(rec)
		}
	}

	res.Report = eng.FinalReport(ctx, logs.String())
	res.FinalValue = res.Records[len(res.Records)-1].PortfolioValue
	res.PnLPercent = engine.PnLPercent(res.InitialValue, res.FinalValue)
	res.Entry = types.HistoryEntry{
		ID:       runID,
		Date:     r.now().Format(dateLayout),
		Asset:    strings.ToUpper(p.Asset),
		Duration: fmt.Sprintf("%d Days", p.Days),
		Initial:  res.InitialValue,
		Final:    res.FinalValue,
		PnL:      res.PnLPercent,
		Summary:  res.Report,
	}
	r.metrics.RecordRun(res.Asset, res.PnLPercent)

	if r.history != nil {
		if err := r.history.Append(ctx, res.Entry); err != nil {
			logger.ErrorWithErr(ctx, "Failed to save run history", err, "run_id", runID)
		}
	}

	op.End("final_value", res.FinalValue, "pnl_percent", res.PnLPercent)
	return res, nil
}
