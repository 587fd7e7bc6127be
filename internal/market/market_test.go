package market

import (
	"math"
	"testing"

	"cognito-terminal/internal/market/markettest"
)

func TestNoiseGenerateScripted(t *testing.T) {
	tests := []struct {
		name       string
		pick       int
		u          float64
		wantImpact float64
		wantLabel  string
	}{
		{"bearish max", 0, 1.0, -0.04, NoisePanic},
		{"bullish min", 1, 0.0, 0.005, NoiseCalm},
		{"neutral", 2, 0.7, 0, NoiseCalm},
		{"bullish mid high", 4, 0.6, 0.005 + 0.6*0.035, NoiseFOMO},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := markettest.New().Ints(tt.pick).Floats(tt.u)
			impact, label := NewNoiseGenerator(rng).Generate()
			if math.Abs(impact-tt.wantImpact) > 1e-12 {
				t.Errorf("impact = %v, want %v", impact, tt.wantImpact)
			}
			if label != tt.wantLabel {
				t.Errorf("label = %q, want %q", label, tt.wantLabel)
			}
		})
	}
}

func TestNoiseLabelBoundaries(t *testing.T) {
	if NoiseLabel(0.02) != NoiseCalm {
		t.Error("0.02 is not above the FOMO band")
	}
	if NoiseLabel(0.0201) != NoiseFOMO {
		t.Error("Expected FOMO just above 0.02")
	}
	if NoiseLabel(-0.02) != NoiseCalm {
		t.Error("-0.02 is not below the Panic band")
	}
	if NoiseLabel(-0.0201) != NoisePanic {
		t.Error("Expected Panic just below -0.02")
	}
}

func TestNoiseDistribution(t *testing.T) {
	gen := NewNoiseGenerator(NewSeededRand(7))
	const n = 20000
	var up, down, flat int
	for i := 0; i < n; i++ {
		impact, _ := gen.Generate()
		mag := math.Abs(impact)
		if impact != 0 && (mag < 0.005 || mag > 0.04) {
			t.Fatalf("magnitude out of range: %v", impact)
		}
		switch {
		case impact > 0:
			up++
		case impact < 0:
			down++
		default:
			flat++
		}
	}
	// expected 2/5, 1/5, 2/5
	check := func(name string, got int, want float64) {
		frac := float64(got) / n
		if math.Abs(frac-want) > 0.03 {
			t.Errorf("%s fraction = %.3f, want about %.2f", name, frac, want)
		}
	}
	check("up", up, 0.4)
	check("down", down, 0.2)
	check("flat", flat, 0.4)
}

func TestChaosVoteRange(t *testing.T) {
	agent := NewChaosAgent(NewSeededRand(1))
	seenLow, seenHigh := false, false
	for i := 0; i < 5000; i++ {
		v := agent.Vote()
		if v < 0 || v > 100 {
			t.Fatalf("vote out of range: %d", v)
		}
		seenLow = seenLow || v == 0
		seenHigh = seenHigh || v == 100
	}
	if !seenLow || !seenHigh {
		t.Errorf("Expected both endpoints to be reachable (0:%v 100:%v)", seenLow, seenHigh)
	}
}

func TestPickMood(t *testing.T) {
	for i, want := range Moods {
		if got := PickMood(markettest.New().Ints(i)); got != want {
			t.Errorf("PickMood(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestNewsBias(t *testing.T) {
	tests := []struct {
		headline string
		want     float64
	}{
		{"Bitcoin BULLS take control", 0.04},
		{"ETH hits new all-time HIGH", 0.04},
		{"Bear market deepens for SOL", -0.04},
		{"DOGE sinks to yearly low", -0.04},
		{"Bulls and bears clash", 0.04},
		{"Regulators meet on Tuesday", 0},
		// "slowly" contains the bearish cue
		{"Markets drift slowly", -0.04},
	}
	for _, tt := range tests {
		if got := NewsBias(tt.headline); got != tt.want {
			t.Errorf("NewsBias(%q) = %v, want %v", tt.headline, got, tt.want)
		}
	}
}
