package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordStep("BTC", "BUY", 50000, 10000)
	r.RecordStep("BTC", "BUY", 50500, 10100)
	r.RecordStep("BTC", "HOLD", 50200, 10050)
	r.RecordFallback("score")
	r.RecordRun("BTC", 1.5)

	if got := testutil.ToFloat64(r.stepsTotal.WithLabelValues("BTC", "BUY")); got != 2 {
		t.Errorf("Expected 2 BUY steps, got %v", got)
	}
	if got := testutil.ToFloat64(r.lastPrice.WithLabelValues("BTC")); got != 50200 {
		t.Errorf("Expected last price 50200, got %v", got)
	}
	if got := testutil.ToFloat64(r.fallbacksTotal.WithLabelValues("score")); got != 1 {
		t.Errorf("Expected 1 fallback, got %v", got)
	}
	if got := testutil.ToFloat64(r.runPnL.WithLabelValues("BTC")); got != 1.5 {
		t.Errorf("Expected run pnl 1.5, got %v", got)
	}
}

func TestRecordersOnSeparateRegistries(t *testing.T) {
	// two recorders must not collide when each has its own registry
	New(prometheus.NewRegistry())
	New(prometheus.NewRegistry())
}

func TestUnlistedAssetsShareOneLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordStep("bitcoin", "HOLD", 50000, 10000)
	for _, sym := range []string{"PEPE", "NOTACOIN", "ZZZ-123"} {
		r.RecordStep(sym, "HOLD", 50000, 10000)
		r.RecordRun(sym, 0)
	}

	if got := testutil.ToFloat64(r.stepsTotal.WithLabelValues("BTC", "HOLD")); got != 1 {
		t.Errorf("Expected coin id to be labelled BTC, got %v", got)
	}
	if got := testutil.ToFloat64(r.stepsTotal.WithLabelValues(OtherSymbol, "HOLD")); got != 3 {
		t.Errorf("Expected 3 steps under %s, got %v", OtherSymbol, got)
	}
	if got := testutil.CollectAndCount(r.runsTotal); got != 1 {
		t.Errorf("Expected a single runs series, got %d", got)
	}
}
