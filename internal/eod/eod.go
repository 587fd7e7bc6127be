// Package eod aggregates a day of journaled simulated fills into a per-symbol CSV.
package eod

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"cognito-terminal/internal/interfaces"
	"cognito-terminal/internal/tradelog"
)

type aggRow struct {
	Symbol      string
	Runs        map[string]struct{}
	Fills       int
	BuyQty      float64
	BuyValue    float64
	SellQty     float64
	SellValue   float64
	RealizedPnL float64
}

type summarizer struct {
	dir string
}

var _ interfaces.EodSummarizer = (*summarizer)(nil)

// NewSummarizer reads fills from the journal directory dir.
func NewSummarizer(dir string) interfaces.EodSummarizer {
	return &summarizer{dir: dir}
}

func (s *summarizer) fillsPath(t time.Time) string {
	return filepath.Join(s.dir, t.Format("2006-01-02")+".txt")
}

func (s *summarizer) csvPath(t time.Time) string {
	return filepath.Join(s.dir, "eod", t.Format("2006-01-02")+".csv")
}

func (s *summarizer) SummarizeDay(_ context.Context, t time.Time) (string, error) {
	aggs, err := s.aggregate(t)
	if err != nil || len(aggs) == 0 {
		return "", err
	}

	keys := make([]string, 0, len(aggs))
	for k := range aggs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	outPath := s.csvPath(t)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}
	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	headers := []string{"symbol", "runs", "fills", "buy_qty", "buy_avg", "sell_qty", "sell_avg", "realized_pnl", "gross_buy_value", "gross_sell_value"}
	if err := w.Write(headers); err != nil {
		return "", err
	}
	var totalBuy, totalSell, totalPnL float64
	for _, k := range keys {
		r := aggs[k]
		var buyAvg, sellAvg float64
		if r.BuyQty > 0 {
			buyAvg = r.BuyValue / r.BuyQty
		}
		if r.SellQty > 0 {
			sellAvg = r.SellValue / r.SellQty
		}
		if matched := math.Min(r.BuyQty, r.SellQty); matched > 0 {
			r.RealizedPnL = matched * (sellAvg - buyAvg)
		}
		rec := []string{
			r.Symbol,
			strconv.Itoa(len(r.Runs)),
			strconv.Itoa(r.Fills),
			fmt.Sprintf("%.8f", r.BuyQty),
			fmt.Sprintf("%.4f", buyAvg),
			fmt.Sprintf("%.8f", r.SellQty),
			fmt.Sprintf("%.4f", sellAvg),
			fmt.Sprintf("%.2f", r.RealizedPnL),
			fmt.Sprintf("%.2f", r.BuyValue),
			fmt.Sprintf("%.2f", r.SellValue),
		}
		if err := w.Write(rec); err != nil {
			return "", err
		}
		totalBuy += r.BuyValue
		totalSell += r.SellValue
		totalPnL += r.RealizedPnL
	}
	_ = w.Write([]string{"TOTAL", "", "", "", "", "", "", fmt.Sprintf("%.2f", totalPnL), fmt.Sprintf("%.2f", totalBuy), fmt.Sprintf("%.2f", totalSell)})
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return outPath, nil
}

// aggregate skips lines that do not decode as fills.
func (s *summarizer) aggregate(t time.Time) (map[string]*aggRow, error) {
	f, err := os.Open(s.fillsPath(t))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	aggs := map[string]*aggRow{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var fill tradelog.Fill
		if err := json.Unmarshal(sc.Bytes(), &fill); err != nil || fill.Symbol == "" {
			continue
		}
		row := aggs[fill.Symbol]
		if row == nil {
			row = &aggRow{Symbol: fill.Symbol, Runs: map[string]struct{}{}}
			aggs[fill.Symbol] = row
		}
		row.Fills++
		row.Runs[fill.RunID] = struct{}{}
		switch fill.Side {
		case "BUY":
			row.BuyQty += fill.Qty
			row.BuyValue += fill.Qty * fill.Price
		case "SELL":
			row.SellQty += fill.Qty
			row.SellValue += fill.Qty * fill.Price
		}
	}
	return aggs, sc.Err()
}
