// Package tradelog journals simulated fills and consensus decisions as
// JSON lines, one file per calendar day.
package tradelog

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const timeLayout = "2006-01-02 15:04:05"

type Fill struct {
	Time     string  `json:"time"`
	RunID    string  `json:"run_id,omitempty"`
	Day      int     `json:"day"`
	Symbol   string  `json:"symbol"`
	Side     string  `json:"side"`
	Qty      float64 `json:"qty"`
	Price    float64 `json:"price"`
	Notional float64 `json:"notional"`
	Reason   string  `json:"reason"`
}

type DecisionEntry struct {
	Time     string         `json:"time"`
	RunID    string         `json:"run_id,omitempty"`
	Day      int            `json:"day"`
	Symbol   string         `json:"symbol"`
	Action   string         `json:"action"`
	Reason   string         `json:"reason"`
	AvgScore float64        `json:"avg_score"`
	Price    float64        `json:"price"`
	Scores   map[string]int `json:"scores"`
}

// Journal appends entries under dir. A nil *Journal discards everything.
type Journal struct {
	dir   string
	runID string
	now   func() time.Time
}

// New returns nil when dir is empty, disabling journaling.
func New(dir string) *Journal {
	if dir == "" {
		return nil
	}
	return &Journal{dir: dir, now: time.Now}
}

// WithRun returns a journal sharing dir that stamps entries with runID.
func (j *Journal) WithRun(runID string) *Journal {
	if j == nil {
		return nil
	}
	return &Journal{dir: j.dir, runID: runID, now: j.now}
}

func (j *Journal) Dir() string {
	if j == nil {
		return ""
	}
	return j.dir
}

func (j *Journal) fillsPath(t time.Time) string {
	return filepath.Join(j.dir, t.Format("2006-01-02")+".txt")
}

func (j *Journal) decisionsPath(t time.Time) string {
	return filepath.Join(j.dir, "decisions", t.Format("2006-01-02")+".txt")
}

func (j *Journal) AppendFill(f Fill) error {
	if j == nil {
		return nil
	}
	now := j.now()
	f.Time = now.Format(timeLayout)
	if f.RunID == "" {
		f.RunID = j.runID
	}
	return j.appendLine(j.fillsPath(now), f)
}

func (j *Journal) AppendDecision(e DecisionEntry) error {
	if j == nil {
		return nil
	}
	now := j.now()
	e.Time = now.Format(timeLayout)
	if e.RunID == "" {
		e.RunID = j.runID
	}
	return j.appendLine(j.decisionsPath(now), e)
}

var fileMu sync.Mutex

func (j *Journal) appendLine(p string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	// journals derived via WithRun share files, so writes serialise globally
	fileMu.Lock()
	defer fileMu.Unlock()
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = fmt.Fprintln(f, string(b))
	return err
}

// CompressOlder gzips journal files last modified more than retentionDays ago.
func (j *Journal) CompressOlder(retentionDays int) error {
	if j == nil || retentionDays <= 0 {
		return nil
	}
	cutoff := j.now().AddDate(0, 0, -retentionDays)
	return filepath.WalkDir(j.dir, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(p) != ".txt" {
			return nil
		}
		info, err := d.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			return nil
		}
		gz := p + ".gz"
		if _, err := os.Stat(gz); err == nil {
			_ = os.Remove(p)
			return nil
		}
		return compressFile(p, gz)
	})
}

func compressFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return nil
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil
	}
	gw := gzip.NewWriter(out)
	_, copyErr := io.Copy(gw, in)
	_ = gw.Close()
	_ = out.Close()
	if copyErr != nil {
		_ = os.Remove(dst)
		return nil
	}
	in.Close()
	return os.Remove(src)
}
