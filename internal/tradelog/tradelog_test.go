package tradelog

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func fixedJournal(t *testing.T, now time.Time) *Journal {
	t.Helper()
	j := New(t.TempDir())
	j.now = func() time.Time { return now }
	return j
}

func readLines(t *testing.T, p string) []string {
	t.Helper()
	f, err := os.Open(p)
	if err != nil {
		t.Fatalf("open %s: %v", p, err)
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out
}

func TestNilJournalIsNoop(t *testing.T) {
	var j *Journal
	if err := j.AppendFill(Fill{Symbol: "BTC"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if New("") != nil {
		t.Error("Expected nil journal for empty dir")
	}
	if j.WithRun("x") != nil {
		t.Error("Expected nil from WithRun on nil journal")
	}
}

func TestAppendFillAndDecision(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	j := fixedJournal(t, now).WithRun("run-1")

	if err := j.AppendFill(Fill{Day: 2, Symbol: "ETH", Side: "BUY", Qty: 0.1, Price: 3000, Notional: 300, Reason: "Buy (72)"}); err != nil {
		t.Fatal(err)
	}
	if err := j.AppendFill(Fill{Day: 3, Symbol: "ETH", Side: "SELL", Qty: 0.05, Price: 3100}); err != nil {
		t.Fatal(err)
	}
	if err := j.AppendDecision(DecisionEntry{Day: 2, Symbol: "ETH", Action: "BUY", AvgScore: 72, Scores: map[string]int{"tech": 80}}); err != nil {
		t.Fatal(err)
	}

	fills := readLines(t, filepath.Join(j.Dir(), "2026-03-14.txt"))
	if len(fills) != 2 {
		t.Fatalf("Expected 2 fills, got %d", len(fills))
	}
	var f Fill
	if err := json.Unmarshal([]byte(fills[0]), &f); err != nil {
		t.Fatal(err)
	}
	if f.RunID != "run-1" || f.Time != "2026-03-14 09:30:00" || f.Notional != 300 {
		t.Errorf("unexpected fill %+v", f)
	}

	decisions := readLines(t, filepath.Join(j.Dir(), "decisions", "2026-03-14.txt"))
	if len(decisions) != 1 {
		t.Fatalf("Expected 1 decision, got %d", len(decisions))
	}
}

func TestCompressOlder(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	j := fixedJournal(t, now)
	old := filepath.Join(j.Dir(), "2026-03-01.txt")
	fresh := filepath.Join(j.Dir(), "2026-03-14.txt")
	for _, p := range []string{old, fresh} {
		if err := os.WriteFile(p, []byte(`{"symbol":"BTC"}`+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	oldTime := now.AddDate(0, 0, -10)
	if err := os.Chtimes(old, oldTime, oldTime); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(fresh, now, now); err != nil {
		t.Fatal(err)
	}

	if err := j.CompressOlder(7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("Expected old journal to be removed")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("Expected fresh journal to be kept")
	}
	f, err := os.Open(old + ".gz")
	if err != nil {
		t.Fatalf("Expected gzip file: %v", err)
	}
	defer f.Close()
	gr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatal(err)
	}
	gr.Close()
}
