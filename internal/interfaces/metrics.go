package interfaces

// Metrics receives simulation counters. A nil Metrics is never passed around; use metrics.Nop.
type Metrics interface {
	RecordStep(symbol string, action string, price, portfolioValue float64)
	RecordFallback(call string)
	RecordLatency(op string, seconds float64)
	RecordRun(symbol string, pnlPct float64)
}
