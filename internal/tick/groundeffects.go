package tick

import (
	"time"

	"github.com/konopkja/dungeon-link-sub001/internal/ai"
	"github.com/konopkja/dungeon-link-sub001/internal/catalog"
	"github.com/konopkja/dungeon-link-sub001/internal/combat"
	"github.com/konopkja/dungeon-link-sub001/internal/loot"
	"github.com/konopkja/dungeon-link-sub001/internal/model"
)

const (
	groundEffectGrowDuration = 3500 * time.Millisecond
	beamRotationRadPerSec    = 1.5

	gravityWellBaseStrength = 80.0
	gravityWellMaxBonus     = 40.0

	petFollowDistance = 120
	petFollowSpeed    = 260.0
)

// collectGroundItems runs spec §4.7 step 4: every alive player picks up
// any ground item in their room within LOOT_PICKUP_DISTANCE, respecting
// the backpack cap via loot.AutoEquip/AddToBackpack.
func collectGroundItems(run *model.Run, cat *catalog.Catalog, res *Result) {
	if run.Dungeon == nil {
		return
	}
	for _, room := range run.Dungeon.Rooms {
		if len(room.GroundItems) == 0 {
			continue
		}
		for _, p := range run.AllAlivePlayersInRoom(room.ID) {
			room.GroundItems = collectForPlayer(run, cat, p, room.GroundItems, res)
		}
	}
}

func collectForPlayer(run *model.Run, cat *catalog.Catalog, p *model.Player, items []*model.GroundItem, res *Result) []*model.GroundItem {
	remaining := items[:0]
	for _, item := range items {
		if model.DistSq(p.Position, item.Position) > loot.ItemPickupDistance*loot.ItemPickupDistance {
			remaining = append(remaining, item)
			continue
		}
		def := cat.Items[item.ItemID]
		if def == nil {
			continue // unknown item id: drop it rather than keep it stuck on the floor forever
		}

		var collected bool
		if def.IsPotion {
			collected = p.AddToBackpack(&model.ItemInstance{ID: item.ID, ItemDef: item.ItemID})
		} else {
			collected = loot.AutoEquip(p, cat, item.ID, def)
		}

		if !collected {
			remaining = append(remaining, item)
			continue
		}
		res.ItemsCollected = append(res.ItemsCollected, ItemCollected{PlayerID: p.ID, ItemID: item.ItemID})
	}
	return remaining
}

// advanceGroundEffects runs spec §4.7 step 15: expire, grow, translate,
// rotate, and pull every active ground effect, applying per-player
// per-effect-gated damage.
func advanceGroundEffects(run *model.Run, dt time.Duration, res *Result) {
	var live []*model.GroundEffect
	for _, g := range run.GroundEffects {
		g.Age(dt)
		if g.Expired() {
			continue
		}

		switch g.Kind {
		case catalog.EffectExpandingCircle, catalog.EffectVoidZone, catalog.EffectFirePool:
			g.AdvanceRadius(groundEffectGrowDuration)
		case catalog.EffectMovingWave:
			translateWave(g, dt)
		case catalog.EffectRotatingBeam:
			g.Angle += beamRotationRadPerSec * dt.Seconds()
		case catalog.EffectGravityWell:
			pullPlayers(run, g, dt)
		}

		applyGroundEffectDamage(run, g, res)
		live = append(live, g)
	}
	run.GroundEffects = live
}

func translateWave(g *model.GroundEffect, dt time.Duration) {
	if g.Direction == nil {
		return
	}
	dx, dy := float64(g.Direction.X), float64(g.Direction.Y)
	mag := vecLen(model.Vector2{X: dx, Y: dy})
	if mag == 0 {
		return
	}
	step := g.Speed * dt.Seconds()
	g.Position.X += int(dx / mag * step)
	g.Position.Y += int(dy / mag * step)
}

func pullPlayers(run *model.Run, g *model.GroundEffect, dt time.Duration) {
	for _, p := range run.Players {
		if !p.IsAlive {
			continue
		}
		distSq := model.DistSq(g.Position, p.Position)
		if g.Radius <= 0 || distSq > int64(g.Radius*g.Radius) {
			continue
		}
		dist := sqrt(float64(distSq))
		proximity := 1.0
		if dist > 0 {
			proximity = 1 - dist/g.Radius
		}
		strength := gravityWellBaseStrength + gravityWellMaxBonus*proximity

		dx, dy := float64(g.Position.X-p.Position.X), float64(g.Position.Y-p.Position.Y)
		mag := vecLen(model.Vector2{X: dx, Y: dy})
		if mag == 0 {
			continue
		}
		step := strength * dt.Seconds()
		p.Position.X += int(dx / mag * step)
		p.Position.Y += int(dy / mag * step)
	}
}

func applyGroundEffectDamage(run *model.Run, g *model.GroundEffect, res *Result) {
	if g.Damage <= 0 {
		return
	}
	for _, p := range run.Players {
		if !p.IsAlive || !g.Contains(p.Position) {
			continue
		}
		if !g.ReadyToTick(p.ID, run.Clock) {
			continue
		}
		applyFlatDamage(p, g.Damage)
		res.CombatEvents = append(res.CombatEvents, combat.Event{
			SourceID: g.SourceID,
			TargetID: p.ID,
			Damage:   g.Damage,
			Killed:   !p.IsAlive,
		})
	}
}

// followOwners runs spec §4.7 step 16: every non-totem pet moves toward
// its owner once it falls more than petFollowDistance away, stopping at
// the dungeon bounds like a player would.
func followOwners(run *model.Run, dt time.Duration) {
	if run.Dungeon == nil {
		return
	}
	bounds := run.Dungeon.Bounds()
	for _, pet := range run.Pets {
		if !pet.IsAlive || pet.Kind.IsStationary() {
			continue
		}
		owner := run.PlayerByID(pet.OwnerID)
		if owner == nil || !owner.IsAlive {
			continue
		}
		pet.RoomID = owner.RoomID

		distSq := model.DistSq(pet.Position, owner.Position)
		if distSq <= petFollowDistance*petFollowDistance {
			continue
		}
		dx, dy := float64(owner.Position.X-pet.Position.X), float64(owner.Position.Y-pet.Position.Y)
		mag := vecLen(model.Vector2{X: dx, Y: dy})
		if mag == 0 {
			continue
		}
		step := petFollowSpeed * dt.Seconds()
		next := model.Point{X: pet.Position.X + int(dx/mag*step), Y: pet.Position.Y + int(dy/mag*step)}
		if bounds.ContainsLoose(next) {
			pet.Position = next
		}
	}
}

// respawnDeadPlayers runs spec §4.7 step 17: a dead player respawns after
// RespawnDelay (instantly, at their death position, with a Soulstone
// buff), snapping to the start room, clearing aggro, clearing boss AoE
// cooldowns, returning displaced enemies home, and purging nearby ground
// effects.
func respawnDeadPlayers(run *model.Run, cat *catalog.Catalog, dt time.Duration) {
	if run.Dungeon == nil {
		return
	}
	for _, p := range run.Players {
		if p.IsAlive {
			continue
		}
		soulstone := p.Buffs.Remove("warlock_soulstone") != nil
		if !soulstone {
			deathTime, tracked := run.Tracking.PlayerDeathTime[p.ID]
			if !tracked {
				run.Tracking.PlayerDeathTime[p.ID] = run.Clock
				continue
			}
			if run.Clock-deathTime < RespawnDelay {
				continue
			}
		}
		respawnPlayer(run, cat, p, soulstone)
	}
}

func respawnPlayer(run *model.Run, cat *catalog.Catalog, p *model.Player, soulstone bool) {
	respawnPos := p.Position
	if !soulstone {
		start := run.Dungeon.StartRoom()
		if start != nil {
			respawnPos = start.Rect.Center()
			p.RoomID = start.ID
		}
	}

	p.Position = respawnPos
	p.IsAlive = true
	p.Stats.Health = p.Stats.MaxHealth
	if soulstone {
		p.Stats.Mana = p.Stats.MaxMana / 2
	} else {
		p.Stats.Mana = p.Stats.MaxMana
	}
	p.RecomputeStats(cat)

	run.Tracking.ClearOnRespawn(p.ID)

	var displaced []*model.Enemy
	for _, room := range run.Dungeon.Rooms {
		for _, e := range room.Enemies {
			if e.TargetID == p.ID {
				e.TargetID = 0
				e.HasAggroStart = false
				e.AttackCooldown = 0
			}
			if e.IsBoss {
				e.AoECooldown = 0
			}
			if e.CurrentRoomID != e.OriginalRoomID {
				displaced = append(displaced, e)
			}
		}
	}
	// Moved in a second pass: MoveEnemyToRoom mutates the source room's
	// enemy slice, which would corrupt the range above mid-iteration.
	for _, e := range displaced {
		ai.MoveEnemyToRoom(run, e, e.OriginalRoomID)
	}

	var keep []*model.GroundEffect
	for _, g := range run.GroundEffects {
		if model.DistSq(g.Position, respawnPos) <= respawnPurgeRadius*respawnPurgeRadius {
			continue
		}
		keep = append(keep, g)
	}
	run.GroundEffects = keep
}
