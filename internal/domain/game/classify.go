package game

import "sort"

// Fallbacks for a primary language with no table entry.
const (
	fallbackClass = "Adventurer"
	fallbackRace  = "Human"
)

// languageClasses maps a primary programming language to a character class.
var languageClasses = map[string]string{
	"Python":     "Wizard",
	"JavaScript": "Rogue",
	"TypeScript": "Rogue",
	"Java":       "Paladin",
	"C++":        "Warrior",
	"C":          "Warrior",
	"Go":         "Ranger",
	"Rust":       "Blacksmith",
	"Ruby":       "Bard",
	"PHP":        "Necromancer",
	"C#":         "Cleric",
	"Swift":      "Monk",
	"Kotlin":     "Samurai",
}

// languageRaces maps a primary programming language to a character race.
var languageRaces = map[string]string{
	"Python":     "Human",
	"JavaScript": "Halfling",
	"TypeScript": "Halfling",
	"Java":       "Dwarf",
	"C++":        "Orc",
	"C":          "Orc",
	"Go":         "Elf",
	"Rust":       "Dwarf",
	"Ruby":       "Gnome",
	"PHP":        "Undead",
	"C#":         "Human",
	"Swift":      "Elf",
	"Kotlin":     "Half-Elf",
}

// DetermineClassRace assigns class and race from the language with the
// strictly greatest weight. Ties break to the lexicographically smallest
// language name so the result is deterministic. Unknown languages fall
// back to Adventurer/Human. Empty stats are a no-op; re-running
// reclassifies an already-classified character.
func (c *Character) DetermineClassRace(languageStats map[string]float64) {
	if len(languageStats) == 0 {
		return
	}

	names := make([]string, 0, len(languageStats))
	for name := range languageStats {
		names = append(names, name)
	}
	sort.Strings(names)

	primary := names[0]
	for _, name := range names[1:] {
		if languageStats[name] > languageStats[primary] {
			primary = name
		}
	}

	class, ok := languageClasses[primary]
	if !ok {
		class = fallbackClass
	}
	race, ok := languageRaces[primary]
	if !ok {
		race = fallbackRace
	}

	c.Class = class
	c.Race = race
}
