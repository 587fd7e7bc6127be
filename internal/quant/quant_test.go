package quant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cognito-terminal/internal/types"
)

func TestRSIClamped(t *testing.T) {
	assert.Equal(t, 50.0, RSI(0))
	assert.Equal(t, 60.0, RSI(5))
	assert.Equal(t, 90.0, RSI(40))
	assert.Equal(t, 20.0, RSI(-40))
}

func TestDeepIndicators(t *testing.T) {
	tests := []struct {
		change float64
		score  float64
		signal string
	}{
		{6, 7.5, SignalBuy},
		{3, 6.5, SignalBuy},
		{2, 5, SignalNeutral},
		{-2, 5, SignalNeutral},
		{-3, 3.5, SignalSell},
		{-6, 2.5, SignalStrongSell},
	}
	for _, tt := range tests {
		got := DeepIndicators(tt.change)
		assert.Equal(t, tt.score, got.Score, "change %v", tt.change)
		assert.Equal(t, tt.signal, got.Signal, "change %v", tt.change)
	}
	assert.Equal(t, 52.47, DeepIndicators(1.234).RSI)
}

func TestBatchScore(t *testing.T) {
	rows := []types.MarketRow{
		{Symbol: "btc", Change24h: 12.6},
		{Symbol: "eth", Change24h: 3},
		{Symbol: "sol", Change24h: -8},
		{Symbol: "doge", Change24h: -20},
		{Symbol: "usdt", Change24h: 0},
	}
	got := BatchScore(rows)

	assert.Len(t, got, len(rows))
	assert.Equal(t, ScoredRow{MarketRow: rows[0], RSI: 75.2, TechScore: 8, Signal: SignalSell}, got[0])
	assert.Equal(t, 6.0, got[1].TechScore)
	assert.Equal(t, SignalHold, got[1].Signal)
	assert.Equal(t, 3.0, got[2].TechScore)
	assert.Equal(t, SignalBuy, got[2].Signal)
	assert.Equal(t, 2.0, got[3].TechScore)
	assert.Equal(t, 20.0, got[3].RSI)
	assert.Equal(t, 5.0, got[4].TechScore)
	assert.Empty(t, BatchScore(nil))
}
