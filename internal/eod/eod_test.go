package eod

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cognito-terminal/internal/eod/eodobs"
	"cognito-terminal/internal/tradelog"
)

func TestSummarizeDayNoJournal(t *testing.T) {
	s := eodobs.Wrap(NewSummarizer(t.TempDir()))
	p, err := s.SummarizeDay(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, p)
}

func TestSummarizeDayAggregatesFills(t *testing.T) {
	dir := t.TempDir()
	j := tradelog.New(dir)
	for _, f := range []tradelog.Fill{
		{RunID: "a", Symbol: "BTC", Side: "BUY", Qty: 0.1, Price: 40000},
		{RunID: "a", Symbol: "BTC", Side: "BUY", Qty: 0.1, Price: 42000},
		{RunID: "b", Symbol: "BTC", Side: "SELL", Qty: 0.1, Price: 45000},
		{RunID: "b", Symbol: "ETH", Side: "BUY", Qty: 1, Price: 2000},
	} {
		require.NoError(t, j.AppendFill(f))
	}
	// noise in the journal is skipped
	fills := filepath.Join(dir, time.Now().Format("2006-01-02")+".txt")
	fh, err := os.OpenFile(fills, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, _ = fh.WriteString("not json\n")
	fh.Close()

	p, err := NewSummarizer(dir).SummarizeDay(context.Background(), time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, p)

	f, err := os.Open(p)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 4)
	assert.Equal(t, "symbol", rows[0][0])
	assert.Equal(t, []string{"BTC", "2", "3", "0.20000000", "41000.0000", "0.10000000", "45000.0000", "400.00", "8200.00", "4500.00"}, rows[1])
	assert.Equal(t, "ETH", rows[2][0])
	assert.Equal(t, "0.00", rows[2][7])
	assert.Equal(t, "TOTAL", rows[3][0])
	assert.Equal(t, "400.00", rows[3][7])
}
