package game

// dropChance is the probability a defeated mob drops loot.
const dropChance = 0.3

// Power roll bounds.
const (
	lootPowerMin = 1
	lootPowerMax = 10

	specialPowerMin      = 5
	specialPowerMax      = 20
	specialPowerPerLevel = 2
)

// maxTitleChars bounds how much of a merge request title ends up in a
// special item's description.
const maxTitleChars = 50

// lootNames are the plain combat-drop names per item type.
var lootNames = map[ItemType][]string{
	ItemTypeWeapon:     {"Rusty Sword", "Wooden Staff", "Short Bow", "Iron Dagger"},
	ItemTypeArmor:      {"Leather Cap", "Cloth Armor", "Wooden Shield", "Iron Boots"},
	ItemTypeConsumable: {"Health Potion", "Mana Potion", "Scroll of Knowledge", "Elixir of Vigor"},
}

// specialPrefixes decorate items forged from merge request approvals.
var specialPrefixes = []string{"Legendary", "Epic", "Rare", "Magical", "Enchanted"}

// specialBaseNames are the approval-forged base names per item type.
var specialBaseNames = map[ItemType][]string{
	ItemTypeWeapon:     {"Sword", "Axe", "Staff", "Bow", "Dagger"},
	ItemTypeArmor:      {"Helmet", "Chestplate", "Boots", "Shield", "Gauntlets"},
	ItemTypeConsumable: {"Potion", "Elixir", "Scroll", "Tome", "Amulet"},
}

// AddItem appends an item to the inventory and bumps items_collected.
// Inventory is unbounded and never deduplicated.
func (c *Character) AddItem(item Item) {
	c.Inventory = append(c.Inventory, item)
	c.Stats.ItemsCollected++
}

// AddSpecialItem forges an item from a merge request approval. Unlike
// combat drops there is no chance gate: every approval yields an item. The
// description embeds the first 50 characters of the title.
func (c *Character) AddSpecialItem(title string) Item {
	itemType := itemTypes[c.rng.Intn(len(itemTypes))]
	power := c.rollPower(specialPowerMin, specialPowerMax) + c.Level*specialPowerPerLevel

	prefix := specialPrefixes[c.rng.Intn(len(specialPrefixes))]
	names := specialBaseNames[itemType]
	name := prefix + " " + names[c.rng.Intn(len(names))]

	item := Item{
		Name:        name,
		Type:        itemType,
		Power:       power,
		Description: "Forged from the approval: " + truncate(title, maxTitleChars),
	}

	c.AddItem(item)
	c.Stats.MergeRequestsApproved++
	return item
}

// randomItem rolls a plain combat drop.
func (c *Character) randomItem() Item {
	itemType := itemTypes[c.rng.Intn(len(itemTypes))]
	names := lootNames[itemType]

	return Item{
		Name:        names[c.rng.Intn(len(names))],
		Type:        itemType,
		Power:       c.rollPower(lootPowerMin, lootPowerMax) + c.Level,
		Description: "A " + string(itemType) + " found after battle",
	}
}

// rollPower returns a uniform integer in [min, max].
func (c *Character) rollPower(min, max int) int {
	return c.rng.Intn(max-min+1) + min
}

// truncate returns the first n characters of s, rune-safe.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
