// Package loot resolves drop tables, auto-equip comparisons, ability
// rank gating, and vendor pricing (spec §4.8 Loot & Progression).
//
// Grounded on the teacher's drop-handling shape in
// internal/gameserver/clientpackets/request_drop_item.go and
// internal/data/npc_loader.go (weighted per-entry drop rolls against an
// NPC template's static drop table), generalized from a single flat
// roll-per-entry to spec §4.8's kill-time-bonus-scaled chance plus an
// independent rarity-upgrade roll.
package loot

import (
	"time"

	"github.com/konopkja/dungeon-link-sub001/internal/catalog"
	"github.com/konopkja/dungeon-link-sub001/internal/model"
	"github.com/konopkja/dungeon-link-sub001/internal/rng"
)

// ItemPickupDistance is the max distance a player may be from a ground
// item and still collect it (spec §4.7 step 4: "LOOT_PICKUP_DISTANCE = 100").
const ItemPickupDistance = 100

// ChestInteractDistance is the max distance for OPEN_CHEST (spec §6).
const ChestInteractDistance = 80

// rarityUpgradeChance is the single independent roll spec §4.8 names
// ("rolls once for rarity upgrade") applied to every drop that passes its
// base chance check.
const rarityUpgradeChance = 0.15

// setDropBaseChance is the independent per-floor set-piece check spec
// §4.8 names ("Sets drop via an independent check per floor, doubled for
// bosses/rares"). spec.md does not fix a number; this follows the
// catalog's own per-enemy SetChance convention (enemies.go) scaled down
// since it is rolled once per kill rather than per-entry.
const setDropBaseChance = 0.03

// KillTimeBonus returns the drop-chance multiplier for a kill finished in
// elapsed time (spec §4.7 step 14 / §4.8: "<30s=+50%, <60s=+25%, <90s=+10%").
func KillTimeBonus(elapsed time.Duration) float64 {
	switch {
	case elapsed < 30*time.Second:
		return 1.5
	case elapsed < 60*time.Second:
		return 1.25
	case elapsed < 90*time.Second:
		return 1.10
	default:
		return 1.0
	}
}

// RollEnemyDrops resolves one enemy's drop table into pending loot
// awards for killerID, given how long the fight took (spec §4.8: "boss
// and rare entries have per-type drop chances; a kill-time bonus
// multiplies drop chance and rolls once for rarity upgrade").
func RollEnemyDrops(source *rng.Source, def *catalog.EnemyDef, killerID uint64, elapsed time.Duration, isBossOrRare bool, srcLabel string) []model.LootDrop {
	bonus := KillTimeBonus(elapsed)
	var drops []model.LootDrop
	for _, entry := range def.Drops {
		chance := entry.Chance * bonus
		if isBossOrRare {
			chance *= 2
		}
		if chance > 1 {
			chance = 1
		}
		if !source.Chance(chance) {
			continue
		}
		rarity := entry.Rarity
		if source.Chance(rarityUpgradeChance) {
			rarity = rarity.Upgrade()
		}
		drops = append(drops, model.LootDrop{
			PlayerID: killerID,
			ItemID:   entry.ItemID,
			Rarity:   int(rarity),
			Source:   srcLabel,
		})
	}
	return drops
}

// RollSetPiece resolves the independent per-kill set-piece check (spec
// §4.8), returning an item ID belonging to some catalog set, or "" if the
// roll missed or the catalog has no set items.
func RollSetPiece(source *rng.Source, cat *catalog.Catalog, isBossOrRare bool) string {
	chance := setDropBaseChance
	if isBossOrRare {
		chance *= 2
	}
	if !source.Chance(chance) {
		return ""
	}
	var candidates []string
	for id, def := range cat.Items {
		if def.SetID != "" {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	return rng.Pick(source, candidates)
}

// AutoEquip compares item against whatever currently occupies its slot
// and equips it if stronger (spec §4.8: "an item with itemPower >
// currently equipped in that slot is equipped; displaced item goes to
// backpack"). Returns false (leaving item untouched by the caller) if
// the backpack is full and the item could not be equipped either.
func AutoEquip(p *model.Player, cat *catalog.Catalog, itemID uint64, def *catalog.ItemDef) bool {
	current := p.Equipment[def.Slot]
	var currentPower int
	if current != nil {
		if curDef := cat.Items[current.ItemDef]; curDef != nil {
			currentPower = catalog.ItemPower(curDef.Stats)
		}
	}
	newPower := catalog.ItemPower(def.Stats)
	if current != nil && newPower <= currentPower {
		return p.AddToBackpack(&model.ItemInstance{ID: itemID, ItemDef: def.ID})
	}

	displaced := p.EquipSlotSwap(def.Slot, &model.ItemInstance{ID: itemID, ItemDef: def.ID})
	p.RecomputeStats(cat)
	if displaced == nil {
		return true
	}
	if !p.AddToBackpack(displaced) {
		// Backpack is full: swap back rather than discarding the
		// previously-equipped item (spec invariant 7's cap must never
		// silently destroy gear).
		p.EquipSlotSwap(def.Slot, displaced)
		p.RecomputeStats(cat)
		return false
	}
	return true
}

// ConvertToFallbackReward resolves spec §4.8's ability-gating fallback:
// "rank N can be upgraded only on floor >= N+1; otherwise convert to
// fallback reward (gold/tokens)". Returns the gold awarded in place of
// the rank-up.
func ConvertToFallbackReward(rank int) int {
	return rank * 25
}

// CanUpgradeRank re-exports the catalog gating rule under the loot
// package's vocabulary for callers that don't otherwise need catalog.
func CanUpgradeRank(rank, floor int) bool {
	return catalog.CanUpgradeAbilityRank(rank, floor)
}
