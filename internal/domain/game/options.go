package game

// Option applies a configuration option to a Character.
type Option func(*Character)

// WithRand sets the randomness source used for spawn choices, loot rolls
// and level-up HP growth.
func WithRand(r Rand) Option {
	return func(c *Character) {
		if r != nil {
			c.rng = r
		}
	}
}
