// Package oracle turns an unreliable text-generation service into values the
// simulation can always use: a bounded integer score or a piece of narrative.
// Failures never leave this package; they are converted to NeutralScore or a
// caller-supplied fallback text at this single boundary.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cognito-terminal/internal/interfaces"
	"cognito-terminal/internal/logger"
)

// NeutralScore is the abstain value used whenever a score cannot be obtained.
const NeutralScore = 50

const (
	MinScore = 0
	MaxScore = 100
)

var (
	ErrTransport     = errors.New("oracle transport failure")
	ErrEmptyResponse = errors.New("oracle returned an empty response")
	ErrNoScore       = errors.New("oracle response contains no integer score")
)

// Kind names a narrative call site; each has its own fallback text.
type Kind string

const (
	KindHeadline     Kind = "headline"
	KindDailySummary Kind = "daily_summary"
	KindFinalReport  Kind = "final_report"
)

// ScoreResult carries either a validated score or the reason there is none.
type ScoreResult struct {
	Score int
	Raw   string
	Err   error
}

func (r ScoreResult) OK() bool { return r.Err == nil }

// Value returns the score, or NeutralScore on failure.
func (r ScoreResult) Value() int {
	if r.Err != nil {
		return NeutralScore
	}
	return r.Score
}

// TextResult carries either generated text or the reason there is none.
type TextResult struct {
	Text string
	Err  error
}

func (r TextResult) OK() bool { return r.Err == nil }

// Or returns the text, or fallback on failure.
func (r TextResult) Or(fallback string) string {
	if r.Err != nil {
		return fallback
	}
	return r.Text
}

// Oracle is safe for concurrent use.
type Oracle struct {
	gen     interfaces.TextGenerator
	metrics interfaces.Metrics
}

func New(gen interfaces.TextGenerator, m interfaces.Metrics) *Oracle {
	return &Oracle{gen: gen, metrics: m}
}

// Ask requests a 0..100 score from the oracle acting as role.
func (o *Oracle) Ask(ctx context.Context, role, situation string) ScoreResult {
	raw, err := o.call(ctx, ScorePrompt(role, situation))
	if err != nil {
		return ScoreResult{Err: err}
	}
	score, err := ParseScore(raw)
	if err != nil {
		return ScoreResult{Raw: raw, Err: err}
	}
	return ScoreResult{Score: score, Raw: raw}
}

// Score is Ask with the neutral fallback applied.
func (o *Oracle) Score(ctx context.Context, role, situation string) int {
	res := o.Ask(ctx, role, situation)
	if !res.OK() {
		o.metrics.RecordFallback("score")
		logger.Fallback(ctx, "score", res.Err, "role", role, "fallback", NeutralScore)
	}
	return res.Value()
}

// Compose requests free text for prompt.
func (o *Oracle) Compose(ctx context.Context, prompt string) TextResult {
	raw, err := o.call(ctx, prompt)
	if err != nil {
		return TextResult{Err: err}
	}
	return TextResult{Text: raw}
}

// Narrate is Compose with fallback applied; kind labels logs and metrics.
func (o *Oracle) Narrate(ctx context.Context, kind Kind, prompt, fallback string) string {
	res := o.Compose(ctx, prompt)
	if !res.OK() {
		o.metrics.RecordFallback(string(kind))
		logger.Fallback(ctx, string(kind), res.Err, "fallback", fallback)
	}
	return res.Or(fallback)
}

// call performs a single attempt. No retries: a failed call goes straight to fallback.
func (o *Oracle) call(ctx context.Context, prompt string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("%w: generator panic: %v", ErrTransport, r)
		}
	}()

	start := time.Now()
	raw, err := o.gen.Generate(ctx, prompt)
	o.metrics.RecordLatency("oracle.call", time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTransport, err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyResponse
	}
	return raw, nil
}

// ParseScore extracts the first run of ASCII digits from text and clamps it to [0,100].
func ParseScore(text string) (int, error) {
	start := strings.IndexFunc(text, isDigit)
	if start < 0 {
		return 0, ErrNoScore
	}
	end := start
	for end < len(text) && isDigit(rune(text[end])) {
		end++
	}
	digits := text[start:end]

	n, err := strconv.Atoi(digits)
	if err != nil {
		// only overflow can fail on a pure digit run
		return MaxScore, nil
	}
	if n > MaxScore {
		return MaxScore, nil
	}
	return n, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
