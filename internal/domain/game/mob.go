package game

// Mob is the enemy a character is currently fighting. A character owns at
// most one mob at a time; defeated mobs are replaced, never kept.
type Mob struct {
	Name  string `json:"name"`
	HP    int    `json:"hp"`
	MaxHP int    `json:"max_hp"`
	Level int    `json:"level"`
}

// TakeDamage applies damage to the mob, flooring HP at zero.
// It reports whether the mob was defeated by this hit.
func (m *Mob) TakeDamage(damage int) bool {
	m.HP -= damage
	if m.HP < 0 {
		m.HP = 0
	}
	return m.HP <= 0
}

// mobArchetype is a spawn template. Base HP is scaled by character level
// when a mob is spawned from it.
type mobArchetype struct {
	name   string
	baseHP int
	level  int
}

// mobCatalog holds every spawnable archetype, weakest first.
var mobCatalog = []mobArchetype{
	{"Goblin", 20, 1},
	{"Skeleton", 30, 2},
	{"Orc", 50, 3},
	{"Troll", 80, 4},
	{"Dragon", 150, 5},
}

// hpPerLevel is the per-character-level bonus added to an archetype's base
// HP at spawn time.
const hpPerLevel = 5
