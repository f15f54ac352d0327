// Package game implements the character progression and combat engine:
// levelling, class/race assignment, mob spawning, damage accounting and
// loot generation.
//
// The engine is single-owner and synchronous. All randomness flows through
// the injectable Rand source so callers (and tests) control outcomes.
package game

import "math"

// Default starting values for a fresh character.
const (
	DefaultClass = "Commoner"
	DefaultRace  = "Unknown"

	startingHP    = 100
	startingLevel = 1
)

// Level-up HP growth bounds (inclusive).
const (
	minHPGain = 5
	maxHPGain = 15
)

// xpCurveBase scales the level-up threshold: 100 * level^1.5.
const xpCurveBase = 100

// Stats tracks lifetime activity counters. The schema is fixed: all five
// counters always exist and never decrease.
type Stats struct {
	TotalCommits          int `json:"total_commits"`
	TotalDamageDealt      int `json:"total_damage_dealt"`
	MobsDefeated          int `json:"mobs_defeated"`
	ItemsCollected        int `json:"items_collected"`
	MergeRequestsApproved int `json:"merge_requests_approved"`
}

// Character is the aggregate root of the game state. Field names mirror
// the save document layout.
type Character struct {
	Name       string  `json:"name"`
	Level      int     `json:"level"`
	XP         float64 `json:"xp"`
	HP         int     `json:"hp"`
	MaxHP      int     `json:"max_hp"`
	Class      string  `json:"character_class"`
	Race       string  `json:"race"`
	Inventory  []Item  `json:"inventory"`
	Stats      Stats   `json:"stats"`
	CurrentMob *Mob    `json:"current_mob"`

	rng Rand
}

// NewCharacter creates a level-1 character with default stats and an empty
// inventory. No mob is spawned until combat starts.
func NewCharacter(name string, opts ...Option) *Character {
	c := &Character{
		Name:      name,
		Level:     startingLevel,
		HP:        startingHP,
		MaxHP:     startingHP,
		Class:     DefaultClass,
		Race:      DefaultRace,
		Inventory: []Item{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.rng == nil {
		c.rng = newDefaultRand()
	}

	return c
}

// XPForNextLevel returns the XP threshold for the next level-up:
// 100 * level^1.5.
func (c *Character) XPForNextLevel() float64 {
	return xpCurveBase * math.Pow(float64(c.Level), 1.5)
}

// AddXP grants experience and resolves any resulting level-ups. The loop
// runs once per level gained so every level gets its own HP roll; on
// return XP is always strictly below the next threshold.
func (c *Character) AddXP(amount int) error {
	if amount < 0 {
		return ErrNegativeXP
	}

	c.XP += float64(amount)
	for c.XP >= c.XPForNextLevel() {
		c.levelUp()
	}
	return nil
}

// levelUp consumes the current threshold, bumps the level and rolls HP
// growth. HP is fully restored.
func (c *Character) levelUp() {
	c.XP -= math.Floor(c.XPForNextLevel())
	c.Level++

	gain := c.rng.Intn(maxHPGain-minHPGain+1) + minHPGain
	c.MaxHP += gain
	c.HP = c.MaxHP
}
