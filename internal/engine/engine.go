package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"cognito-terminal/internal/interfaces"
	"cognito-terminal/internal/logger"
	"cognito-terminal/internal/market"
	"cognito-terminal/internal/oracle"
	"cognito-terminal/internal/tradelog"
	"cognito-terminal/internal/types"
)

// DefaultStartPrice is used for any asset whose price cannot be fetched.
const DefaultStartPrice = 50000.0

type Options struct {
	Symbol         string
	Cash           float64
	Qty            float64
	PriceFloor     float64 // 0 disables the floor
	ParallelScores bool
	Journal        *tradelog.Journal
}

// Engine owns the portfolio and price state of one simulation. It is driven
// by a single caller and is not safe for concurrent Step calls.
type Engine struct {
	opts   Options
	symbol string
	oracle *oracle.Oracle
	rng    market.Rand
	noise  *market.NoiseGenerator
	chaos  *market.ChaosAgent

	book         portfolio
	price        float64
	initialValue float64
	state        types.EngineState
}

var _ interfaces.Engine = (*Engine)(nil)

var errNoPriceSource = errors.New("no price source configured")

// New fetches a starting price for opts.Symbol, falling back to DefaultStartPrice.
func New(ctx context.Context, opts Options, prices interfaces.PriceSource, orc *oracle.Oracle, rng market.Rand) *Engine {
	symbol := strings.ToUpper(strings.TrimSpace(opts.Symbol))
	e := &Engine{
		opts:   opts,
		symbol: symbol,
		oracle: orc,
		rng:    rng,
		noise:  market.NewNoiseGenerator(rng),
		chaos:  market.NewChaosAgent(rng),
		book:   portfolio{cash: opts.Cash, holdings: opts.Qty},
		state:  types.StateIdle,
	}
	e.price = startPrice(ctx, prices, symbol)
	e.initialValue = e.book.value(e.price)

	logger.Info(ctx, "Engine initialized",
		"symbol", symbol,
		"cash", opts.Cash,
		"qty", opts.Qty,
		"start_price", e.price,
		"initial_value", e.initialValue,
	)
	return e
}

func startPrice(ctx context.Context, prices interfaces.PriceSource, symbol string) float64 {
	if prices == nil {
		logger.Fallback(ctx, "start_price", errNoPriceSource, "symbol", symbol, "fallback", DefaultStartPrice)
		return DefaultStartPrice
	}
	p, err := prices.StartPrice(ctx, symbol)
	if err == nil && p <= 0 {
		err = fmt.Errorf("non-positive price %v", p)
	}
	if err != nil {
		logger.Fallback(ctx, "start_price", err, "symbol", symbol, "fallback", DefaultStartPrice)
		return DefaultStartPrice
	}
	return p
}

// Step advances the simulation by one day and returns that day's record.
func (e *Engine) Step(ctx context.Context, day int) types.DailyStepRecord {
	mood := market.PickMood(e.rng)
	headline := e.oracle.Narrate(ctx, oracle.KindHeadline,
		oracle.HeadlinePrompt(e.symbol, mood), oracle.HeadlineFallback(e.symbol))

	impact, noiseLabel := e.noise.Generate()
	move := impact + market.NewsBias(headline)*e.rng.Float64()
	e.applyMove(ctx, move)

	scores := e.collectScores(ctx, move, headline)

	prevValue := e.book.value(e.price)
	d := Decide(scores.Avg, e.book.cash, e.book.holdings, e.price)
	e.book.apply(d)
	e.journal(ctx, day, d, scores)

	curValue := e.book.value(e.price)
	pnlDay := PnLPercent(prevValue, curValue)

	explanation := e.oracle.Narrate(ctx, oracle.KindDailySummary,
		oracle.DailySummaryPrompt(e.symbol, headline, string(d.Action), pnlDay),
		oracle.DailySummaryFallback(day, string(d.Action)))

	e.state = types.StateStepComplete

	return types.DailyStepRecord{
		Day:            day,
		Price:          e.price,
		Mood:           mood,
		Headline:       headline,
		NoiseLabel:     noiseLabel,
		Move:           move,
		Scores:         scores,
		Action:         d.Action,
		Reason:         d.Reason,
		PortfolioValue: curValue,
		Cash:           e.book.cash,
		HoldingsValue:  e.book.holdings * e.price,
		PnLDay:         pnlDay,
		Explanation:    explanation,
	}
}

func (e *Engine) applyMove(ctx context.Context, move float64) {
	next := e.price * (1 + move)
	if e.opts.PriceFloor > 0 && next < e.opts.PriceFloor {
		logger.Risk(ctx, e.symbol, "PRICE_FLOOR_CLAMP",
			"unclamped_price", next,
			"floor", e.opts.PriceFloor,
			"move", move,
		)
		next = e.opts.PriceFloor
	}
	e.price = next
}

// collectScores gathers the four agent votes. Portfolio inputs are read before
// any concurrent work starts so the risk context matches the sequential path.
func (e *Engine) collectScores(ctx context.Context, move float64, headline string) types.Scores {
	techCtx := oracle.TechnicalContext(move)
	newsCtx := oracle.NewsContext(headline)
	riskCtx := oracle.RiskContext(e.book.cash, e.book.holdings)

	var s types.Scores
	if e.opts.ParallelScores {
		var wg sync.WaitGroup
		wg.Add(3)
		go func() { defer wg.Done(); s.Tech = e.oracle.Score(ctx, oracle.RoleTechnical, techCtx) }()
		go func() { defer wg.Done(); s.News = e.oracle.Score(ctx, oracle.RoleNews, newsCtx) }()
		go func() { defer wg.Done(); s.Risk = e.oracle.Score(ctx, oracle.RoleRisk, riskCtx) }()
		s.Chaos = e.chaos.Vote()
		wg.Wait()
	} else {
		s.Tech = e.oracle.Score(ctx, oracle.RoleTechnical, techCtx)
		s.News = e.oracle.Score(ctx, oracle.RoleNews, newsCtx)
		s.Risk = e.oracle.Score(ctx, oracle.RoleRisk, riskCtx)
		s.Chaos = e.chaos.Vote()
	}
	s.Avg = float64(s.Tech+s.News+s.Risk+s.Chaos) / 4
	return s
}

func (e *Engine) journal(ctx context.Context, day int, d Decision, s types.Scores) {
	logger.Decision(ctx, e.symbol, string(d.Action), s.Avg, d.Reason, "day", day, "price", e.price)
	if err := e.opts.Journal.AppendDecision(tradelog.DecisionEntry{
		Day:      day,
		Symbol:   e.symbol,
		Action:   string(d.Action),
		Reason:   d.Reason,
		AvgScore: s.Avg,
		Price:    e.price,
		Scores:   map[string]int{"tech": s.Tech, "news": s.News, "risk": s.Risk, "chaos": s.Chaos},
	}); err != nil {
		logger.ErrorWithErr(ctx, "Failed to journal decision", err, "symbol", e.symbol, "day", day)
	}

	if d.Action == types.ActionHold {
		return
	}
	notional := d.Qty * e.price
	logger.Trade(ctx, e.symbol, string(d.Action), d.Qty, e.price, "day", day, "notional", notional)
	if err := e.opts.Journal.AppendFill(tradelog.Fill{
		Day:      day,
		Symbol:   e.symbol,
		Side:     string(d.Action),
		Qty:      d.Qty,
		Price:    e.price,
		Notional: notional,
		Reason:   d.Reason,
	}); err != nil {
		logger.ErrorWithErr(ctx, "Failed to journal fill", err, "symbol", e.symbol, "day", day)
	}
}

// FinalReport compiles the run's daily explanations into a free-text report.
func (e *Engine) FinalReport(ctx context.Context, logs string) string {
	report := e.oracle.Narrate(ctx, oracle.KindFinalReport, oracle.FinalReportPrompt(logs), oracle.FinalReportFallback)
	e.state = types.StateFinished
	return report
}

func (e *Engine) Symbol() string           { return e.symbol }
func (e *Engine) Cash() float64            { return e.book.cash }
func (e *Engine) Holdings() float64        { return e.book.holdings }
func (e *Engine) Price() float64           { return e.price }
func (e *Engine) InitialValue() float64    { return e.initialValue }
func (e *Engine) State() types.EngineState { return e.state }
