package market

import (
	"math/rand/v2"
	"sync"
)

// Rand is the randomness the simulation draws from. Tests inject scripted sources.
type Rand interface {
	// Float64 returns a value in [0,1).
	Float64() float64
	// IntN returns a value in [0,n).
	IntN(n int) int
}

// lockedRand makes a *rand.Rand safe for the concurrent scoring path.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRand returns a randomly seeded source.
func NewRand() Rand {
	return &lockedRand{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeededRand returns a reproducible source.
func NewSeededRand(seed uint64) Rand {
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}
