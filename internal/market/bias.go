package market

import "strings"

// NewsBiasMagnitude is the maximum fractional move contributed by a headline.
const NewsBiasMagnitude = 0.04

var (
	bullishCues = []string{"bull", "high"}
	bearishCues = []string{"bear", "low"}
)

// NewsBias reads lexical cues in a headline. Bullish cues are checked first.
func NewsBias(headline string) float64 {
	h := strings.ToLower(headline)
	if containsAny(h, bullishCues) {
		return NewsBiasMagnitude
	}
	if containsAny(h, bearishCues) {
		return -NewsBiasMagnitude
	}
	return 0
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
