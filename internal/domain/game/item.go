package game

// ItemType categorizes an item. The string values double as the wire
// representation in the save document.
type ItemType string

// Known item types.
const (
	ItemTypeWeapon     ItemType = "weapon"
	ItemTypeArmor      ItemType = "armor"
	ItemTypeConsumable ItemType = "consumable"
)

// itemTypes lists every type loot generation can pick from.
var itemTypes = []ItemType{ItemTypeWeapon, ItemTypeArmor, ItemTypeConsumable}

// Item is an immutable inventory entry. Items have no identity beyond
// field equality; once created they belong to a single character's
// inventory.
type Item struct {
	Name        string   `json:"name"`
	Type        ItemType `json:"type"`
	Power       int      `json:"power"`
	Description string   `json:"description"`
}
