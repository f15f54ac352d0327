package game

// Combat XP reward per mob level.
const xpPerMobLevel = 25

// SpawnMob replaces the current mob with a fresh one drawn uniformly from
// the catalog entries whose archetype level is at most character level+1.
// Spawned HP is the archetype's base plus 5 per character level. An
// undefeated current mob is discarded; there is no partial-kill carryover.
func (c *Character) SpawnMob() {
	suitable := make([]mobArchetype, 0, len(mobCatalog))
	for _, a := range mobCatalog {
		if a.level <= c.Level+1 {
			suitable = append(suitable, a)
		}
	}
	// Goblin is level 1, so this only trips if the catalog changes.
	if len(suitable) == 0 {
		return
	}

	chosen := suitable[c.rng.Intn(len(suitable))]
	hp := chosen.baseHP + c.Level*hpPerLevel
	c.CurrentMob = &Mob{
		Name:  chosen.name,
		HP:    hp,
		MaxHP: hp,
		Level: chosen.level,
	}
}

// AttackMob deals damage to the current mob, spawning one first if none
// exists. The full damage counts toward total_damage_dealt, overkill
// included. On defeat the character gains mob level * 25 XP, has a 30%
// chance of a loot drop, and a replacement mob spawns immediately.
// Returns the dropped item, or nil when nothing dropped or the mob
// survived.
func (c *Character) AttackMob(damage int) (*Item, error) {
	if damage < 0 {
		return nil, ErrNegativeDamage
	}

	if c.CurrentMob == nil {
		c.SpawnMob()
	}

	defeated := c.CurrentMob.TakeDamage(damage)
	c.Stats.TotalDamageDealt += damage

	if !defeated {
		return nil, nil
	}

	c.Stats.MobsDefeated++
	if err := c.AddXP(c.CurrentMob.Level * xpPerMobLevel); err != nil {
		return nil, err
	}

	var drop *Item
	if c.rng.Float64() < dropChance {
		item := c.randomItem()
		c.AddItem(item)
		drop = &item
	}

	c.SpawnMob()
	return drop, nil
}
