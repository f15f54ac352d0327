package game

import (
	"math/rand"

	"committed/pkg/random"
)

// Rand is the source of randomness for spawn choices, loot rolls and HP
// growth. *math/rand.Rand satisfies it; tests supply scripted
// implementations to force outcomes.
type Rand interface {
	// Intn returns a uniform integer in [0, n).
	Intn(n int) int
	// Float64 returns a uniform float in [0.0, 1.0).
	Float64() float64
}

// newDefaultRand builds the PRNG used when no source is injected.
func newDefaultRand() Rand {
	return rand.New(rand.NewSource(random.NewSeed()))
}
