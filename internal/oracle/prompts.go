package oracle

import (
	"fmt"
	"strings"
)

// Roles of the three oracle-backed agents.
const (
	RoleTechnical = "Technical Analyst"
	RoleNews      = "News Sentiment Analyst"
	RoleRisk      = "Risk Manager"
)

// FinalReportFallback is returned when the final report cannot be generated.
const FinalReportFallback = "Simulation Completed."

func ScorePrompt(role, situation string) string {
	return fmt.Sprintf(`Act as a %s.
Context: %s
Task: Analyze the situation. Should we BUY or SELL?
Output ONLY a single integer score from 0 (Strong Sell) to 100 (Strong Buy).
No text, just the number.`, role, situation)
}

func HeadlinePrompt(symbol, mood string) string {
	return fmt.Sprintf("Generate a 1-sentence crypto headline about %s. The mood must be: %s.", symbol, mood)
}

func HeadlineFallback(symbol string) string {
	return fmt.Sprintf("Market is unpredictable regarding %s.", symbol)
}

func DailySummaryPrompt(symbol, headline, action string, pnlDay float64) string {
	return fmt.Sprintf("Summarize this trading day in 1 short English sentence: Asset %s, News '%s', Action %s, PnL %.2f%%.",
		symbol, headline, action, pnlDay)
}

func DailySummaryFallback(day int, action string) string {
	return fmt.Sprintf("Day %d: %s executed.", day, action)
}

func FinalReportPrompt(logs string) string {
	return fmt.Sprintf("Write a short financial report based on these logs: %s", logs)
}

// TechnicalContext describes the day's move for the technical analyst.
func TechnicalContext(move float64) string {
	volatility := "Low"
	if move > HighVolatilityMove || move < -HighVolatilityMove {
		volatility = "High"
	}
	return fmt.Sprintf("Price changed by %.2f%%. Volatility is %s.", move*100, volatility)
}

// HighVolatilityMove is the absolute fractional move above which volatility is labelled High.
const HighVolatilityMove = 0.03

func NewsContext(headline string) string {
	return fmt.Sprintf("The current headline is: '%s'.", headline)
}

func RiskContext(cash, holdings float64) string {
	return fmt.Sprintf("We have $%.0f in cash and %.2f coins.", cash, holdings)
}

func ChatPrompt(question string) string {
	return fmt.Sprintf("Answer shortly in English only about crypto, otherwise reply that you can only answer questions about crypto: %s", question)
}

// HeadlinesContext feeds scraped headlines to the news analyst.
func HeadlinesContext(symbol string, titles []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Recent headlines about %s:", symbol)
	for _, t := range titles {
		b.WriteString("\n- ")
		b.WriteString(t)
	}
	return b.String()
}
