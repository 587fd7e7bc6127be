package market

// ChaosAgent casts the irrational vote in the consensus.
type ChaosAgent struct {
	rng Rand
}

func NewChaosAgent(rng Rand) *ChaosAgent {
	return &ChaosAgent{rng: rng}
}

// Vote returns an integer uniformly drawn from [0,100].
func (c *ChaosAgent) Vote() int {
	return c.rng.IntN(101)
}
