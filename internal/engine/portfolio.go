package engine

// portfolio is the single-asset cash/holdings book owned by an Engine.
type portfolio struct {
	cash     float64
	holdings float64
}

func (p *portfolio) value(price float64) float64 {
	return p.cash + p.holdings*price
}

// apply books a decision. Fractional sizing keeps both sides non-negative;
// the clamp only absorbs floating-point residue.
func (p *portfolio) apply(d Decision) {
	p.cash += d.CashDelta
	p.holdings += d.QtyDelta
	if p.cash < 0 {
		p.cash = 0
	}
	if p.holdings < 0 {
		p.holdings = 0
	}
}
