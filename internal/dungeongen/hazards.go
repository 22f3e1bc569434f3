package dungeongen

import (
	"github.com/konopkja/dungeon-link-sub001/internal/catalog"
	"github.com/konopkja/dungeon-link-sub001/internal/model"
	"github.com/konopkja/dungeon-link-sub001/internal/rng"
)

const (
	spikesBaseDamage      = 10
	flamethrowerBaseDamage = 18
)

// placeHazards seeds traps and chests per room (spec §4.2 step 8): spikes
// from floor 2, flamethrowers from floor 4 (or boss rooms floor 3+),
// scaled by the theme's trapMultiplier; chest tier follows room type, and
// Treasure-theme non-boss chests roll as mimics.
func placeHazards(cat *catalog.Catalog, source *rng.Source, idGen *model.IDGenerator, theme *catalog.ThemeDef, rooms []*model.Room, floor int) {
	for _, r := range rooms {
		if r.Type == model.RoomStart {
			continue
		}
		placeTraps(source, idGen, theme, r, floor)
		placeChests(source, idGen, theme, r, floor)
	}
}

func placeTraps(source *rng.Source, idGen *model.IDGenerator, theme *catalog.ThemeDef, r *model.Room, floor int) {
	if floor >= 2 && source.Chance(0.5) {
		r.Traps = append(r.Traps, &model.Trap{
			ID:               idGen.Next(),
			Kind:             model.TrapSpikes,
			Position:         randomPointIn(source, r),
			Damage:           int(float64(spikesBaseDamage) * theme.TrapMultiplier),
			ActiveDuration:   1500,
			InactiveDuration: 2500,
		})
	}

	flameEligible := floor >= 4 || (r.Type == model.RoomBoss && floor >= 3)
	if flameEligible && source.Chance(0.35) {
		dir := model.Point{X: 1, Y: 0}
		r.Traps = append(r.Traps, &model.Trap{
			ID:               idGen.Next(),
			Kind:             model.TrapFlamethrower,
			Position:         randomPointIn(source, r),
			Direction:        &dir,
			Damage:           int(float64(flamethrowerBaseDamage) * theme.TrapMultiplier),
			ActiveDuration:   2000,
			InactiveDuration: 3000,
		})
	}
}

func placeChests(source *rng.Source, idGen *model.IDGenerator, theme *catalog.ThemeDef, r *model.Room, floor int) {
	tier := model.LootCommon
	switch r.Type {
	case model.RoomBoss:
		tier = model.LootEpic
	case model.RoomRare:
		tier = model.LootRare
	}

	baseChance := 0.3 * theme.ChestDensity
	if r.Type == model.RoomBoss {
		baseChance = 1.0
	}
	if !source.Chance(baseChance) {
		return
	}

	chest := &model.Chest{
		ID:       idGen.Next(),
		LootTier: tier,
		Position: randomPointIn(source, r),
		IsLocked: r.Type == model.RoomBoss,
	}
	if theme.IsTreasure && r.Type != model.RoomBoss {
		chest.IsMimic = source.Chance(0.4)
	}
	r.Chests = append(r.Chests, chest)

	// In Treasure theme, a second "extra" chest can also appear and rolls
	// its own independent mimic chance (spec §4.2 step 8: "40% base / 50%
	// extra-chest probability").
	if theme.IsTreasure && r.Type != model.RoomBoss && source.Chance(0.25) {
		extra := &model.Chest{
			ID:       idGen.Next(),
			LootTier: tier,
			Position: randomPointIn(source, r),
			IsMimic:  source.Chance(0.5),
		}
		r.Chests = append(r.Chests, extra)
	}
}

func randomPointIn(source *rng.Source, r *model.Room) model.Point {
	return model.Point{
		X: r.Rect.X + source.NextInt(20, r.Rect.W-20+1),
		Y: r.Rect.Y + source.NextInt(20, r.Rect.H-20+1),
	}
}
