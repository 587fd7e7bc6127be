package ta

import (
	"math"
	"testing"
)

func ramp(n int, start float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)
	}
	return out
}

func TestSMA(t *testing.T) {
	if got := SMA([]float64{1, 2, 3, 4}, 2); got != 3.5 {
		t.Errorf("Expected 3.5, got %f", got)
	}
	if !math.IsNaN(SMA([]float64{1}, 2)) {
		t.Error("Expected NaN for short series")
	}
}

func TestRSI(t *testing.T) {
	if got := RSI(ramp(20, 100), 14); got != 100 {
		t.Errorf("Expected 100 for a steady rise, got %f", got)
	}
	// +2, -1 alternating: gains 14, losses 7 over 14 changes
	closes := []float64{10}
	for i := 0; i < 14; i++ {
		if i%2 == 0 {
			closes = append(closes, closes[len(closes)-1]+2)
		} else {
			closes = append(closes, closes[len(closes)-1]-1)
		}
	}
	if got := RSI(closes, 14); math.Abs(got-66.6667) > 0.001 {
		t.Errorf("Expected ~66.67, got %f", got)
	}
	if !math.IsNaN(RSI(ramp(14, 1), 14)) {
		t.Error("Expected NaN without period+1 closes")
	}
}

func TestBollinger(t *testing.T) {
	mid, up, low := Bollinger([]float64{2, 4, 4, 4, 5, 5, 7, 9}, 8, 2)
	if mid != 5 || up != 9 || low != 1 {
		t.Errorf("Expected 5/9/1, got %f/%f/%f", mid, up, low)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(ramp(30, 100))
	if s.Last != 129 {
		t.Errorf("Expected last 129, got %f", s.Last)
	}
	if s.SMA == nil || *s.SMA != 119.5 {
		t.Errorf("Expected SMA 119.5, got %v", s.SMA)
	}
	if s.RSI == nil || *s.RSI != 100 {
		t.Errorf("Expected RSI 100, got %v", s.RSI)
	}
	if s.BollingerUpper == nil || math.Abs(*s.BollingerUpper-131.03) > 0.01 {
		t.Errorf("unexpected upper band %v", s.BollingerUpper)
	}

	short := Summarize(ramp(5, 1))
	if short.SMA != nil || short.RSI != nil || short.BollingerLower != nil {
		t.Errorf("Expected nil indicators for a short series, got %+v", short)
	}
	if empty := Summarize(nil); empty.Last != 0 {
		t.Errorf("Expected zero summary, got %+v", empty)
	}
}
