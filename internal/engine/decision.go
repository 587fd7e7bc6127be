package engine

import (
	"fmt"

	"cognito-terminal/internal/types"
)

// Consensus thresholds are inclusive toward action.
const (
	BuyThreshold  = 60.0
	SellThreshold = 40.0
	BuyFraction   = 0.30
	SellFraction  = 0.50
)

const reasonHold = "Neutral Consensus"

// Decision is the trade implied by a consensus score, expressed as portfolio deltas.
type Decision struct {
	Action    types.Action
	Reason    string
	Qty       float64 // traded asset quantity, always >= 0
	CashDelta float64
	QtyDelta  float64
}

// Decide applies the threshold rule; the first matching branch wins.
// BUY spends 30% of cash, SELL liquidates 50% of holdings, anything in the
// open band (40,60) is HOLD.
func Decide(avg, cash, holdings, price float64) Decision {
	switch {
	case avg >= BuyThreshold && cash > 0 && price > 0:
		spend := cash * BuyFraction
		qty := spend / price
		return Decision{
			Action:    types.ActionBuy,
			Reason:    fmt.Sprintf("Buy (%.0f)", avg),
			Qty:       qty,
			CashDelta: -spend,
			QtyDelta:  qty,
		}
	case avg <= SellThreshold && holdings > 0:
		qty := holdings * SellFraction
		return Decision{
			Action:    types.ActionSell,
			Reason:    fmt.Sprintf("Sell (%.0f)", avg),
			Qty:       qty,
			CashDelta: qty * price,
			QtyDelta:  -qty,
		}
	default:
		return Decision{Action: types.ActionHold, Reason: reasonHold}
	}
}

// PnLPercent is the percent change from prev to cur, or 0 when prev <= 0.
func PnLPercent(prev, cur float64) float64 {
	if prev <= 0 {
		return 0
	}
	return (cur - prev) / prev * 100
}
