package game_test

import (
	"testing"

	"committed/internal/domain/game"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAttackMob(t *testing.T) {
	Convey("Given a level-1 character with scripted lowest rolls", t, func() {
		c := game.NewCharacter("hero", game.WithRand(zeroRand()))

		Convey("When attacking with no current mob", func() {
			drop, err := c.AttackMob(5)

			Convey("Then a mob spawns first and takes the hit", func() {
				So(err, ShouldBeNil)
				So(drop, ShouldBeNil)
				So(c.CurrentMob, ShouldNotBeNil)
				So(c.CurrentMob.Name, ShouldEqual, "Goblin")
				So(c.CurrentMob.HP, ShouldEqual, 20)
				So(c.Stats.TotalDamageDealt, ShouldEqual, 5)
				So(c.Stats.MobsDefeated, ShouldEqual, 0)
			})
		})

		Convey("When a hit does not defeat the mob", func() {
			c.SpawnMob()
			before := c.CurrentMob
			drop, err := c.AttackMob(10)

			Convey("Then the damaged mob persists as current", func() {
				So(err, ShouldBeNil)
				So(drop, ShouldBeNil)
				So(c.CurrentMob, ShouldEqual, before)
				So(c.CurrentMob.HP, ShouldEqual, 15)
			})
		})

		Convey("When an overkill hit lands", func() {
			c.SpawnMob()
			So(c.CurrentMob.MaxHP, ShouldBeLessThanOrEqualTo, 155)
			drop, err := c.AttackMob(10000)

			Convey("Then defeat, stats, XP, loot and respawn all resolve", func() {
				So(err, ShouldBeNil)
				So(c.Stats.TotalDamageDealt, ShouldEqual, 10000)
				So(c.Stats.MobsDefeated, ShouldEqual, 1)
				// Goblin is level 1: 25 XP, not enough to level.
				So(c.XP, ShouldAlmostEqual, 25, 1e-9)
				So(c.Level, ShouldEqual, 1)
				// Scripted roll guarantees the 30% drop.
				So(drop, ShouldNotBeNil)
				So(drop.Name, ShouldEqual, "Rusty Sword")
				So(drop.Type, ShouldEqual, game.ItemTypeWeapon)
				So(c.Inventory, ShouldHaveLength, 1)
				So(c.Stats.ItemsCollected, ShouldEqual, 1)
				// A replacement mob is already waiting.
				So(c.CurrentMob, ShouldNotBeNil)
				So(c.CurrentMob.HP, ShouldEqual, c.CurrentMob.MaxHP)
			})
		})

		Convey("When the damage is negative", func() {
			c.SpawnMob()
			drop, err := c.AttackMob(-1)

			Convey("Then the call is rejected with no state change", func() {
				So(err, ShouldEqual, game.ErrNegativeDamage)
				So(drop, ShouldBeNil)
				So(c.Stats.TotalDamageDealt, ShouldEqual, 0)
				So(c.CurrentMob.HP, ShouldEqual, c.CurrentMob.MaxHP)
			})
		})
	})

	Convey("Given scripted rolls that miss the drop chance", t, func() {
		c := game.NewCharacter("hero", game.WithRand(&scriptRand{floats: []float64{0.9}}))
		c.SpawnMob()
		drop, err := c.AttackMob(10000)

		Convey("Then the defeat yields no loot", func() {
			So(err, ShouldBeNil)
			So(drop, ShouldBeNil)
			So(c.Stats.MobsDefeated, ShouldEqual, 1)
			So(c.Inventory, ShouldBeEmpty)
			So(c.Stats.ItemsCollected, ShouldEqual, 0)
		})
	})

	Convey("Given repeated defeats", t, func() {
		c := game.NewCharacter("hero", game.WithRand(zeroRand()))

		Convey("When four Goblins fall", func() {
			for i := 0; i < 4; i++ {
				_, err := c.AttackMob(10000)
				So(err, ShouldBeNil)
			}

			Convey("Then accumulated XP levels the character up", func() {
				// 4 * 25 XP crosses the level-1 threshold of 100.
				So(c.Level, ShouldEqual, 2)
				So(c.XP, ShouldAlmostEqual, 0, 1e-9)
				So(c.MaxHP, ShouldEqual, 105)
				So(c.HP, ShouldEqual, 105)
				So(c.Stats.MobsDefeated, ShouldEqual, 4)
				So(c.Stats.TotalDamageDealt, ShouldEqual, 40000)
			})
		})
	})
}
