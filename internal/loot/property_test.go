package loot

import (
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/konopkja/dungeon-link-sub001/internal/catalog"
	"github.com/konopkja/dungeon-link-sub001/internal/model"
	"github.com/konopkja/dungeon-link-sub001/internal/rng"
)

// TestCanUpgradeRankMonotonicInFloor checks testable property §8.7: once a
// rank becomes upgradeable on some floor, it stays upgradeable on every
// later floor.
func TestCanUpgradeRankMonotonicInFloor(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		rank := rapid.IntRange(0, 20).Draw(rt, "rank")
		floorLo := rapid.IntRange(1, 30).Draw(rt, "floorLo")
		floorHi := rapid.IntRange(1, 30).Draw(rt, "floorHi")
		if floorLo > floorHi {
			floorLo, floorHi = floorHi, floorLo
		}

		if CanUpgradeRank(rank, floorLo) && !CanUpgradeRank(rank, floorHi) {
			rt.Fatalf("rank %d upgradeable on floor %d but not later floor %d", rank, floorLo, floorHi)
		}
	})
}

// TestCanUpgradeRankMatchesExactThreshold cross-checks the n+1 boundary
// spec §4.8 names, for every rank/floor combination.
func TestCanUpgradeRankMatchesExactThreshold(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		rank := rapid.IntRange(0, 20).Draw(rt, "rank")
		floor := rapid.IntRange(0, 40).Draw(rt, "floor")

		got := CanUpgradeRank(rank, floor)
		want := floor >= rank+1
		if got != want {
			rt.Fatalf("CanUpgradeRank(%d, %d) = %v, want %v", rank, floor, got, want)
		}
	})
}

// TestKillTimeBonusNeverBelowOne checks the kill-time bonus multiplier
// never discounts a drop chance, only ever boosts or leaves it unchanged.
func TestKillTimeBonusNeverBelowOne(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ms := rapid.Int64Range(0, 10*60*1000).Draw(rt, "elapsedMs")
		bonus := KillTimeBonus(time.Duration(ms) * time.Millisecond)
		if bonus < 1.0 {
			rt.Fatalf("KillTimeBonus returned %v, want >= 1.0", bonus)
		}
	})
}

// TestRollEnemyDropsChanceNeverExceedsOne checks that RollEnemyDrops never
// panics or misbehaves when kill-time bonus and boss doubling would push
// an entry's effective chance over 1.0 — the clamp in RollEnemyDrops must
// hold regardless of how the entry chance, bonus, and boss flag combine.
func TestRollEnemyDropsChanceNeverExceedsOne(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		entryChance := rapid.Float64Range(0, 1).Draw(rt, "entryChance")
		elapsedMs := rapid.Int64Range(0, 10*60*1000).Draw(rt, "elapsedMs")
		isBossOrRare := rapid.Bool().Draw(rt, "isBossOrRare")
		seed := rapid.StringMatching(`[a-z0-9]{1,12}`).Draw(rt, "seed")

		def := &catalog.EnemyDef{
			Drops: []catalog.DropEntry{{ItemID: "prop_item", Chance: entryChance, Rarity: catalog.RarityCommon}},
		}
		source := rng.New(seed)
		drops := RollEnemyDrops(source, def, 1, time.Duration(elapsedMs)*time.Millisecond, isBossOrRare, "test")
		if len(drops) > 1 {
			rt.Fatalf("expected at most one drop for a single drop-table entry, got %d", len(drops))
		}
	})
}

// TestAutoEquipNeverDestroysDisplacedItem checks testable property §8.8:
// AutoEquip either equips the new item or leaves the player's gear and
// backpack unchanged — it never silently discards the displaced item.
func TestAutoEquipNeverDestroysDisplacedItem(t *testing.T) {
	cat := catalog.Load()
	rapid.Check(t, func(rt *rapid.T) {
		fillBackpack := rapid.Bool().Draw(rt, "fillBackpack")

		p := model.NewPlayer(1, "hero", "warrior", cat)
		weaker := cat.Items["rusty_sword"]
		stronger := cat.Items["iron_sword"]
		if catalog.ItemPower(weaker.Stats) >= catalog.ItemPower(stronger.Stats) {
			rt.Fatalf("fixture assumption violated: rusty_sword power %v >= iron_sword power %v",
				catalog.ItemPower(weaker.Stats), catalog.ItemPower(stronger.Stats))
		}

		if !AutoEquip(p, cat, 1, weaker) {
			rt.Fatal("expected the first item to equip into an empty slot")
		}

		if fillBackpack {
			for len(p.Backpack) < model.BackpackCap {
				if !p.AddToBackpack(&model.ItemInstance{ID: 2000 + uint64(len(p.Backpack)), ItemDef: "rusty_sword"}) {
					break
				}
			}
		}

		before := p.Equipment[weaker.Slot]
		ok := AutoEquip(p, cat, 2, stronger)
		if !ok {
			if p.Equipment[weaker.Slot] != before {
				rt.Fatal("AutoEquip reported failure but mutated the equipped item anyway")
			}
			return
		}
		if p.Equipment[weaker.Slot].ItemDef != stronger.ID {
			rt.Fatal("expected the stronger item equipped after a successful AutoEquip")
		}
	})
}
