// Package quant holds the deterministic single-row scoring formulas used by
// the asset audit and market scanner views.
package quant

import (
	"math"

	"cognito-terminal/internal/types"
)

const (
	rsiBase  = 50.0
	rsiSlope = 2.0
	rsiMin   = 20.0
	rsiMax   = 90.0

	scoreBase = 5.0
	scoreMin  = 1.0
	scoreMax  = 10.0
)

// Signals.
const (
	SignalStrongBuy  = "STRONG BUY"
	SignalBuy        = "BUY"
	SignalNeutral    = "NEUTRAL"
	SignalSell       = "SELL"
	SignalStrongSell = "STRONG SELL"
	SignalHold       = "HOLD"
	SignalNA         = "N/A"
)

type Indicators struct {
	RSI    float64 `json:"rsi"`
	Score  float64 `json:"score"`
	Signal string  `json:"signal"`
}

// Unavailable is reported when no market data could be fetched.
var Unavailable = Indicators{RSI: rsiBase, Score: scoreBase, Signal: SignalNA}

// RSI approximates a relative strength index from the 24h percent change.
func RSI(change24h float64) float64 {
	return clamp(rsiBase+change24h*rsiSlope, rsiMin, rsiMax)
}

// DeepIndicators scores a single asset for the audit view.
func DeepIndicators(change24h float64) Indicators {
	score := scoreBase
	switch {
	case change24h > 5:
		score += 2.5
	case change24h > 2:
		score += 1.5
	case change24h < -5:
		score -= 2.5
	case change24h < -2:
		score -= 1.5
	}
	score = clamp(score, scoreMin, scoreMax)

	var signal string
	switch {
	case score >= 8:
		signal = SignalStrongBuy
	case score >= 6:
		signal = SignalBuy
	case score <= 3:
		signal = SignalStrongSell
	case score <= 4:
		signal = SignalSell
	default:
		signal = SignalNeutral
	}
	return Indicators{RSI: round(RSI(change24h), 2), Score: score, Signal: signal}
}

// ScoredRow is a scanner row with its technical score attached.
type ScoredRow struct {
	types.MarketRow
	RSI       float64 `json:"rsi"`
	TechScore float64 `json:"tech_score"`
	Signal    string  `json:"signal"`
}

// BatchScore scores every row of a market snapshot. Rows are independent.
func BatchScore(rows []types.MarketRow) []ScoredRow {
	out := make([]ScoredRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, scoreRow(r))
	}
	return out
}

func scoreRow(r types.MarketRow) ScoredRow {
	change := r.Change24h
	score := scoreBase
	switch {
	case change > 10:
		score += 3
	case change > 5:
		score += 2
	case change > 0:
		score += 1
	case change < -10:
		score -= 3
	case change < -5:
		score -= 2
	}

	rsi := RSI(change)
	signal := SignalHold
	switch {
	case rsi > 75:
		signal = SignalSell
	case rsi < 35:
		signal = SignalBuy
	}
	return ScoredRow{
		MarketRow: r,
		RSI:       round(rsi, 1),
		TechScore: clamp(score, scoreMin, scoreMax),
		Signal:    signal,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
