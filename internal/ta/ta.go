// Package ta computes classic indicators over a close-price series.
package ta

import "math"

const (
	SMAPeriod       = 20
	RSIPeriod       = 14
	BollingerStdDev = 2.0
)

// SMA is the mean of the last n closes, or NaN when there are fewer than n.
func SMA(closes []float64, n int) float64 {
	if len(closes) < n || n <= 0 {
		return math.NaN()
	}
	sum := 0.0
	for i := len(closes) - n; i < len(closes); i++ {
		sum += closes[i]
	}
	return sum / float64(n)
}

// RSI is the simple-average relative strength index over the last period changes.
func RSI(closes []float64, period int) float64 {
	if len(closes) < period+1 || period <= 0 {
		return math.NaN()
	}
	gain, loss := 0.0, 0.0
	for i := len(closes) - period; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	if loss == 0 {
		return 100.0
	}
	rs := gain / loss
	return 100.0 - (100.0 / (1.0 + rs))
}

func StdDev(vals []float64, n int) float64 {
	if len(vals) < n || n <= 0 {
		return math.NaN()
	}
	m := SMA(vals, n)
	s := 0.0
	for i := len(vals) - n; i < len(vals); i++ {
		d := vals[i] - m
		s += d * d
	}
	return math.Sqrt(s / float64(n))
}

func Bollinger(closes []float64, n int, k float64) (mid, up, low float64) {
	mid = SMA(closes, n)
	sd := StdDev(closes, n)
	up = mid + k*sd
	low = mid - k*sd
	return
}

// Summary holds the indicators for a series; fields are nil when the series is too short.
type Summary struct {
	Last           float64  `json:"last"`
	SMA            *float64 `json:"sma_20,omitempty"`
	RSI            *float64 `json:"rsi_14,omitempty"`
	BollingerUpper *float64 `json:"bollinger_upper,omitempty"`
	BollingerLower *float64 `json:"bollinger_lower,omitempty"`
}

func Summarize(closes []float64) Summary {
	var s Summary
	if len(closes) == 0 {
		return s
	}
	s.Last = closes[len(closes)-1]
	s.RSI = finite(RSI(closes, RSIPeriod))
	mid, up, low := Bollinger(closes, SMAPeriod, BollingerStdDev)
	s.SMA = finite(mid)
	s.BollingerUpper = finite(up)
	s.BollingerLower = finite(low)
	return s
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	r := math.Round(v*100) / 100
	return &r
}
