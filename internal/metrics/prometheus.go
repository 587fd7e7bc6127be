package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"cognito-terminal/internal/interfaces"
	"cognito-terminal/internal/marketdata"
)

// OtherSymbol labels every asset outside the listed tickers, keeping series bounded.
const OtherSymbol = "OTHER"

func symbolLabel(symbol string) string {
	if ticker, ok := marketdata.KnownTicker(symbol); ok {
		return ticker
	}
	return OtherSymbol
}

// Recorder implements interfaces.Metrics using Prometheus.
type Recorder struct {
	stepsTotal     *prometheus.CounterVec
	fallbacksTotal *prometheus.CounterVec
	runsTotal      *prometheus.CounterVec
	lastPrice      *prometheus.GaugeVec
	portfolioValue *prometheus.GaugeVec
	runPnL         *prometheus.GaugeVec
	latency        *prometheus.HistogramVec
}

var _ interfaces.Metrics = (*Recorder)(nil)

// New creates a recorder whose collectors are registered on reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		stepsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cognito_steps_total",
				Help: "Total number of simulated days by resulting action",
			},
			[]string{"symbol", "action"},
		),
		fallbacksTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cognito_oracle_fallbacks_total",
				Help: "Total number of external calls answered by a fallback value",
			},
			[]string{"call"},
		),
		runsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cognito_runs_total",
				Help: "Total number of completed simulation runs",
			},
			[]string{"symbol"},
		),
		lastPrice: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cognito_last_price",
				Help: "Simulated asset price after the most recent step",
			},
			[]string{"symbol"},
		),
		portfolioValue: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cognito_portfolio_value",
				Help: "Portfolio value after the most recent step",
			},
			[]string{"symbol"},
		),
		runPnL: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cognito_run_pnl_percent",
				Help: "Final PnL percent of the most recent run",
			},
			[]string{"symbol"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cognito_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

func (r *Recorder) RecordStep(symbol, action string, price, portfolioValue float64) {
	symbol = symbolLabel(symbol)
	r.stepsTotal.WithLabelValues(symbol, action).Inc()
	r.lastPrice.WithLabelValues(symbol).Set(price)
	r.portfolioValue.WithLabelValues(symbol).Set(portfolioValue)
}

func (r *Recorder) RecordFallback(call string) {
	r.fallbacksTotal.WithLabelValues(call).Inc()
}

func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

func (r *Recorder) RecordRun(symbol string, pnlPct float64) {
	symbol = symbolLabel(symbol)
	r.runsTotal.WithLabelValues(symbol).Inc()
	r.runPnL.WithLabelValues(symbol).Set(pnlPct)
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordStep(string, string, float64, float64) {}
func (Nop) RecordFallback(string)                       {}
func (Nop) RecordLatency(string, float64)               {}
func (Nop) RecordRun(string, float64)                   {}
