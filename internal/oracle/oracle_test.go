package oracle

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cognito-terminal/internal/metrics"
)

type generatorFunc func(ctx context.Context, prompt string) (string, error)

func (f generatorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

func replying(text string, err error) generatorFunc {
	return func(context.Context, string) (string, error) { return text, err }
}

type countingMetrics struct {
	metrics.Nop
	fallbacks map[string]int
}

func (c *countingMetrics) RecordFallback(call string) {
	if c.fallbacks == nil {
		c.fallbacks = map[string]int{}
	}
	c.fallbacks[call]++
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr error
	}{
		{"bare number", "73", 73, nil},
		{"number in sentence", "I would say 64 out of 100", 64, nil},
		{"first run wins", "Score 12, maybe 90", 12, nil},
		{"zero", "0", 0, nil},
		{"clamped high", "150", 100, nil},
		{"overflow", "99999999999999999999999", 100, nil},
		{"negative sign ignored", "-20", 20, nil},
		{"no digits", "Strong buy!", 0, ErrNoScore},
		{"empty", "", 0, ErrNoScore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseScore(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseScore(%q) error = %v, want %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseScore(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestScoreFallsBackToNeutralOnTransportError(t *testing.T) {
	m := &countingMetrics{}
	o := New(replying("", errors.New("connection refused")), m)

	res := o.Ask(context.Background(), RoleTechnical, "ctx")
	if res.OK() || !errors.Is(res.Err, ErrTransport) {
		t.Fatalf("Expected transport failure, got %+v", res)
	}
	if got := o.Score(context.Background(), RoleTechnical, "ctx"); got != 50 {
		t.Errorf("Expected neutral 50, got %d", got)
	}
	if m.fallbacks["score"] != 1 {
		t.Errorf("Expected one score fallback recorded, got %d", m.fallbacks["score"])
	}
}

func TestScoreFallsBackWhenNoDigits(t *testing.T) {
	o := New(replying("I cannot answer that.", nil), metrics.Nop{})

	res := o.Ask(context.Background(), RoleNews, "ctx")
	if !errors.Is(res.Err, ErrNoScore) {
		t.Fatalf("Expected ErrNoScore, got %v", res.Err)
	}
	if res.Raw != "I cannot answer that." {
		t.Errorf("Expected raw text to be kept, got %q", res.Raw)
	}
	if got := res.Value(); got != NeutralScore {
		t.Errorf("Expected %d, got %d", NeutralScore, got)
	}
}

func TestScoreFallsBackOnEmptyResponse(t *testing.T) {
	o := New(replying("   \n", nil), metrics.Nop{})
	res := o.Ask(context.Background(), RoleRisk, "ctx")
	if !errors.Is(res.Err, ErrEmptyResponse) {
		t.Fatalf("Expected ErrEmptyResponse, got %v", res.Err)
	}
}

func TestScoreSurvivesGeneratorPanic(t *testing.T) {
	o := New(generatorFunc(func(context.Context, string) (string, error) {
		panic("boom")
	}), metrics.Nop{})

	if got := o.Score(context.Background(), RoleRisk, "ctx"); got != NeutralScore {
		t.Errorf("Expected neutral score after panic, got %d", got)
	}
}

func TestScorePromptCarriesRoleAndContext(t *testing.T) {
	var seen string
	o := New(generatorFunc(func(_ context.Context, p string) (string, error) {
		seen = p
		return "81", nil
	}), metrics.Nop{})

	if got := o.Score(context.Background(), RoleRisk, RiskContext(1000, 2)); got != 81 {
		t.Fatalf("Expected 81, got %d", got)
	}
	if !strings.Contains(seen, "Act as a Risk Manager.") {
		t.Errorf("prompt missing role framing: %q", seen)
	}
	if !strings.Contains(seen, "We have $1000 in cash and 2.00 coins.") {
		t.Errorf("prompt missing context: %q", seen)
	}
}

func TestNarrateFallbacks(t *testing.T) {
	m := &countingMetrics{}
	o := New(replying("", errors.New("timeout")), m)
	ctx := context.Background()

	if got := o.Narrate(ctx, KindHeadline, HeadlinePrompt("BTC", "Neutral"), HeadlineFallback("BTC")); got != "Market is unpredictable regarding BTC." {
		t.Errorf("unexpected headline fallback %q", got)
	}
	if got := o.Narrate(ctx, KindDailySummary, "p", DailySummaryFallback(3, "BUY")); got != "Day 3: BUY executed." {
		t.Errorf("unexpected summary fallback %q", got)
	}
	if got := o.Narrate(ctx, KindFinalReport, FinalReportPrompt("logs"), FinalReportFallback); got != "Simulation Completed." {
		t.Errorf("unexpected report fallback %q", got)
	}
	for _, k := range []Kind{KindHeadline, KindDailySummary, KindFinalReport} {
		if m.fallbacks[string(k)] != 1 {
			t.Errorf("Expected one fallback for %s, got %d", k, m.fallbacks[string(k)])
		}
	}
}

func TestNarrateReturnsTrimmedText(t *testing.T) {
	o := New(replying("  Bulls run wild on BTC.  ", nil), metrics.Nop{})
	if got := o.Narrate(context.Background(), KindHeadline, "p", "fallback"); got != "Bulls run wild on BTC." {
		t.Errorf("unexpected narrative %q", got)
	}
}

func TestTechnicalContextVolatilityLabel(t *testing.T) {
	if got := TechnicalContext(0.035); got != "Price changed by 3.50%. Volatility is High." {
		t.Errorf("unexpected context %q", got)
	}
	if got := TechnicalContext(-0.031); !strings.HasSuffix(got, "High.") {
		t.Errorf("Expected High for large negative move, got %q", got)
	}
	if got := TechnicalContext(0.03); !strings.HasSuffix(got, "Low.") {
		t.Errorf("Expected Low at exactly 3%%, got %q", got)
	}
}
