package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"cognito-terminal/internal/types"
)

var (
	buyColor     = lipgloss.Color("#10B981")
	sellColor    = lipgloss.Color("#EF4444")
	neutralColor = lipgloss.Color("#6B7280")
	borderColor  = lipgloss.Color("#374151")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#9CA3AF")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	reportStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)
)

const summaryWidth = 60

func actionColor(a types.Action) lipgloss.Color {
	switch a {
	case types.ActionBuy:
		return buyColor
	case types.ActionSell:
		return sellColor
	default:
		return neutralColor
	}
}

// renderLedger draws one row per simulated day.
func renderLedger(records []types.DailyStepRecord) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.Day),
			fmt.Sprintf("$%.2f", r.Price),
			string(r.Action),
			r.Reason,
			fmt.Sprintf("$%.2f", r.Cash),
			fmt.Sprintf("$%.2f", r.PortfolioValue),
			truncate(r.Explanation, summaryWidth),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(borderColor)).
		Headers("Day", "Price", "Action", "Reason", "Cash", "Total Value", "AI Summary").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 2 && row >= 0 && row < len(records) {
				return cellStyle.Foreground(actionColor(records[row].Action))
			}
			return cellStyle
		})
	return t.Render()
}

func renderReport(asset string, initial, final, pnl float64, report string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("MISSION REPORT: " + asset))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Initial: $%.2f  Final: $%.2f  PnL: %+.2f%%\n", initial, final, pnl)
	b.WriteString(reportStyle.Render(report))
	return b.String()
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
