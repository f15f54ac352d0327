package cli

import (
	"fmt"
	"strings"

	service "committed/internal/app"
)

// hpBarWidth is the rendered width of the enemy HP bar.
const hpBarWidth = 20

func (m *Menu) printCharacter() {
	c := m.svc.Character()

	fmt.Fprintln(m.out, "\n📜 CHARACTER INFO:")
	fmt.Fprintf(m.out, "   Name: %s\n", c.Name)
	fmt.Fprintf(m.out, "   Race: %s | Class: %s\n", c.Race, c.Class)
	fmt.Fprintf(m.out, "   Level: %d | XP: %.0f/%d\n", c.Level, c.XP, int(c.XPForNextLevel()))
	fmt.Fprintf(m.out, "   HP: %d/%d\n", c.HP, c.MaxHP)
}

func (m *Menu) printCurrentMob() {
	mob := m.svc.Character().CurrentMob
	if mob == nil {
		fmt.Fprintln(m.out, "\n   No enemy in sight.")
		return
	}

	fmt.Fprintln(m.out, "\n⚔️  CURRENT ENEMY:")
	fmt.Fprintf(m.out, "   %s (Level %d)\n", mob.Name, mob.Level)
	fmt.Fprintf(m.out, "   HP: [%s] %d/%d\n", hpBar(mob.HP, mob.MaxHP), mob.HP, mob.MaxHP)
}

func (m *Menu) printStats() {
	stats := m.svc.Character().Stats

	fmt.Fprintln(m.out, "\n📊 STATISTICS:")
	fmt.Fprintf(m.out, "   Total Commits: %d\n", stats.TotalCommits)
	fmt.Fprintf(m.out, "   Total Damage Dealt: %d\n", stats.TotalDamageDealt)
	fmt.Fprintf(m.out, "   Mobs Defeated: %d\n", stats.MobsDefeated)
	fmt.Fprintf(m.out, "   Merge Requests Approved: %d\n", stats.MergeRequestsApproved)
	fmt.Fprintf(m.out, "   Items Collected: %d\n", stats.ItemsCollected)
}

func (m *Menu) printInventory() {
	inventory := m.svc.Character().Inventory

	fmt.Fprintln(m.out, "\n🎒 INVENTORY:")
	if len(inventory) == 0 {
		fmt.Fprintln(m.out, "   (empty)")
		return
	}

	start := 0
	if len(inventory) > inventoryViewSize {
		start = len(inventory) - inventoryViewSize
	}
	for i, item := range inventory[start:] {
		fmt.Fprintf(m.out, "   %d. %s (%s) - Power: %d\n", i+1, item.Name, item.Type, item.Power)
		if item.Description != "" {
			fmt.Fprintf(m.out, "      %s\n", item.Description)
		}
	}
}

func (m *Menu) printReport(report *service.Report) {
	if report.ClassAssigned {
		c := m.svc.Character()
		fmt.Fprintf(m.out, "   ✨ Your class has been determined: %s %s\n", c.Race, c.Class)
	}

	if report.TotalCommits > 0 {
		fmt.Fprintf(m.out, "\n   📝 Found %d new commit(s)!\n", report.TotalCommits)
		level := report.StartLevel
		for _, attack := range report.Attacks {
			if attack.Defeated {
				fmt.Fprintf(m.out, "   💥 You dealt %d damage and defeated the %s!\n", attack.Damage, attack.MobName)
				if attack.Drop != nil {
					fmt.Fprintf(m.out, "   🎁 Item dropped: %s\n", attack.Drop.Name)
				}
			} else {
				fmt.Fprintf(m.out, "   ⚔️  You dealt %d damage to the %s! (HP: %d/%d)\n",
					attack.Damage, attack.MobName, attack.MobHP, attack.MobMaxHP)
			}
			if attack.LevelsGained > 0 {
				level += attack.LevelsGained
				fmt.Fprintf(m.out, "   🎉 LEVEL UP! You are now level %d!\n", level)
			}
		}
	}

	if len(report.SpecialItems) > 0 {
		fmt.Fprintf(m.out, "\n   ✅ Found %d approved merge request(s)!\n", len(report.SpecialItems))
		for _, item := range report.SpecialItems {
			fmt.Fprintf(m.out, "   🌟 Special item obtained: %s (Power: %d)\n", item.Name, item.Power)
		}
	}

	if report.Empty() {
		fmt.Fprintln(m.out, "   No new activity found.")
	}

	fmt.Fprintln(m.out, "\n✓ Sync complete!")
}

// hpBar renders hp/maxHP as a fixed-width bar.
func hpBar(hp, maxHP int) string {
	if maxHP <= 0 {
		return strings.Repeat("░", hpBarWidth)
	}
	filled := hpBarWidth * hp / maxHP
	return strings.Repeat("█", filled) + strings.Repeat("░", hpBarWidth-filled)
}
