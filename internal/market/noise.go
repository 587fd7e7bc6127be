package market

const (
	noiseMinMagnitude = 0.005
	noiseMaxMagnitude = 0.04
	noiseLabelBand    = 0.02
)

// Noise labels.
const (
	NoiseFOMO  = "FOMO (+)"
	NoisePanic = "Panic (-)"
	NoiseCalm  = "Calm"
)

// sentiments is sampled uniformly: P(+1)=2/5, P(-1)=1/5, P(0)=2/5.
var sentiments = [...]float64{-1, 1, 0, 0, 1}

// NoiseGenerator models background market noise as a small signed fractional move.
type NoiseGenerator struct {
	rng Rand
}

func NewNoiseGenerator(rng Rand) *NoiseGenerator {
	return &NoiseGenerator{rng: rng}
}

// Generate returns the fractional price impact and a label describing it.
func (n *NoiseGenerator) Generate() (impact float64, label string) {
	sentiment := sentiments[n.rng.IntN(len(sentiments))]
	magnitude := noiseMinMagnitude + n.rng.Float64()*(noiseMaxMagnitude-noiseMinMagnitude)
	impact = sentiment * magnitude
	return impact, NoiseLabel(impact)
}

// NoiseLabel classifies an impact value.
func NoiseLabel(impact float64) string {
	switch {
	case impact > noiseLabelBand:
		return NoiseFOMO
	case impact < -noiseLabelBand:
		return NoisePanic
	default:
		return NoiseCalm
	}
}
