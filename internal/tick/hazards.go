package tick

import (
	"math"
	"time"

	"github.com/konopkja/dungeon-link-sub001/internal/catalog"
	"github.com/konopkja/dungeon-link-sub001/internal/combat"
	"github.com/konopkja/dungeon-link-sub001/internal/model"
)

const (
	trapHitRadius       = 50
	trapDamageCooldown  = 1 * time.Second
	trapConeHalfWidth   = 0.5 // radians, flamethrower facing cone

	roomModifierDamage = 6 // burning room flat tick damage when theme leaves HazardDamage unset
)

// applyHazardDamage runs spec §4.7 step 5: trap damage (per-player
// cooldown gated) plus the theme's ambient per-tick hazard roll (spec §9:
// "Inferno hazard damage fires on ~8% chance per 5s check").
func applyHazardDamage(run *model.Run, cat *catalog.Catalog, dt time.Duration, res *Result) {
	if run.Dungeon == nil {
		return
	}
	theme := run.Dungeon.ThemeModifiers

	for _, room := range run.Dungeon.Rooms {
		players := run.AllAlivePlayersInRoom(room.ID)
		if len(players) == 0 {
			continue
		}
		for _, trap := range room.Traps {
			if !trap.IsActive {
				continue
			}
			for _, p := range players {
				if !trapHits(trap, p.Position) {
					continue
				}
				key := model.TrapCooldownKey(trap.ID, p.ID)
				if remaining := run.Tracking.TrapCooldowns[key]; remaining > 0 {
					continue
				}
				dmg := trap.Damage
				if theme != nil {
					dmg = int(float64(dmg)*theme.TrapMultiplier + 0.5)
				}
				applyFlatDamage(p, dmg)
				run.Tracking.TrapCooldowns[key] = trapDamageCooldown
				res.CombatEvents = append(res.CombatEvents, combat.Event{
					SourceID: trap.ID,
					TargetID: p.ID,
					Damage:   dmg,
					Killed:   !p.IsAlive,
				})
			}
		}

		if theme == nil || theme.HazardChancePer5s <= 0 {
			continue
		}
		perTickChance := theme.HazardChancePer5s * (dt.Seconds() / 5.0)
		for _, p := range players {
			if !run.CombatRNG.Chance(perTickChance) {
				continue
			}
			applyFlatDamage(p, theme.HazardDamage)
			res.CombatEvents = append(res.CombatEvents, combat.Event{
				TargetID: p.ID,
				Damage:   theme.HazardDamage,
				Killed:   !p.IsAlive,
			})
		}
	}

	for key, remaining := range run.Tracking.TrapCooldowns {
		remaining -= dt
		if remaining <= 0 {
			delete(run.Tracking.TrapCooldowns, key)
		} else {
			run.Tracking.TrapCooldowns[key] = remaining
		}
	}
}

// trapHits reports whether pos is within a spikes trap's blast radius, or
// within a flamethrower trap's forward cone (Direction set) of the same
// radius (spec §3 Trap: "Direction... flamethrower cone").
func trapHits(trap *model.Trap, pos model.Point) bool {
	if model.DistSq(trap.Position, pos) > trapHitRadius*trapHitRadius {
		return false
	}
	if trap.Direction == nil {
		return true
	}
	dx, dy := float64(pos.X-trap.Position.X), float64(pos.Y-trap.Position.Y)
	fx, fy := float64(trap.Direction.X), float64(trap.Direction.Y)
	if dx == 0 && dy == 0 {
		return true
	}
	angleTo := math.Atan2(dy, dx)
	facing := math.Atan2(fy, fx)
	diff := angleTo - facing
	for diff > math.Pi {
		diff -= 2 * math.Pi
	}
	for diff < -math.Pi {
		diff += 2 * math.Pi
	}
	if diff < 0 {
		diff = -diff
	}
	return diff <= trapConeHalfWidth
}

func applyFlatDamage(p *model.Player, dmg int) {
	if dmg <= 0 {
		return
	}
	p.Stats.Health -= dmg
	if p.Stats.Health <= 0 {
		p.Stats.Health = 0
		p.Kill()
	}
}

// advanceTrapPhases runs spec §4.7 step 6: every trap's active/inactive
// duty cycle advances by dt.
func advanceTrapPhases(run *model.Run, dt time.Duration) {
	if run.Dungeon == nil {
		return
	}
	deltaMs := int(dt.Milliseconds())
	for _, room := range run.Dungeon.Rooms {
		for _, trap := range room.Traps {
			trap.AdvancePhase(deltaMs)
		}
	}
}

// triggerAmbush runs spec §4.7 step 8: the first time a player reaches the
// center neighborhood of an untriggered ambush room, its hidden enemies
// are revealed once.
func triggerAmbush(run *model.Run) {
	if run.Dungeon == nil {
		return
	}
	for _, room := range run.Dungeon.Rooms {
		if room.Variant != model.VariantAmbush || run.Tracking.AmbushTriggered[room.ID] {
			continue
		}
		center := room.Rect.Center()
		triggered := false
		for _, p := range run.AllAlivePlayersInRoom(room.ID) {
			if model.DistSq(p.Position, center) <= ambushTriggerDistance*ambushTriggerDistance {
				triggered = true
				break
			}
		}
		if !triggered {
			continue
		}
		run.Tracking.AmbushTriggered[room.ID] = true
		for _, e := range room.Enemies {
			e.IsHidden = false
		}
	}
}

// roomModifierIcon returns the stable buff icon a room's ambient modifier
// applies while a player stands in it (spec §4.7 step 9; the "crypt_relic"
// 2pc set bonus intentionally shares the "room_blessed" icon, spec §4.4
// set-bonus note).
func roomModifierIcon(mod catalog.RoomModifier) string {
	return "room_" + string(mod)
}

// applyRoomModifiers runs spec §4.7 step 9: a `burning` room ticks damage
// every 2s; `cursed`/`blessed` apply a delta-tracked buff once on entry
// (testable property §8.2 depends on the delta being exactly reversed on
// exit via stripRoomModifierBuff in movement.go); `dark` is visual only.
func applyRoomModifiers(run *model.Run, cat *catalog.Catalog, dt time.Duration, res *Result) {
	if run.Dungeon == nil {
		return
	}
	theme := run.Dungeon.ThemeModifiers
	for _, room := range run.Dungeon.Rooms {
		if room.Modifier == catalog.ModifierNone {
			continue
		}
		players := run.AllAlivePlayersInRoom(room.ID)
		if len(players) == 0 {
			continue
		}

		switch room.Modifier {
		case catalog.ModifierCursed:
			for _, p := range players {
				applyModifierBuffOnce(p, cat, room.Modifier, model.Stats{Armor: -10, Resist: -5})
			}
		case catalog.ModifierBlessed:
			for _, p := range players {
				applyModifierBuffOnce(p, cat, room.Modifier, model.Stats{Armor: 5, Resist: 5, Crit: 2})
			}
		case catalog.ModifierBurning:
			dmg := roomModifierDamage
			if theme != nil && theme.HazardDamage > 0 {
				dmg = theme.HazardDamage
			}
			for _, p := range players {
				elapsed := run.Tracking.ModifierTickTimes[p.ID] + dt
				if elapsed < burningTickInterval {
					run.Tracking.ModifierTickTimes[p.ID] = elapsed
					continue
				}
				run.Tracking.ModifierTickTimes[p.ID] = elapsed - burningTickInterval
				applyFlatDamage(p, dmg)
				res.CombatEvents = append(res.CombatEvents, combat.Event{
					TargetID: p.ID,
					Damage:   dmg,
					Killed:   !p.IsAlive,
				})
			}
		case catalog.ModifierDark:
			// visual only (spec §4.7 step 9): no stat or damage effect.
		}
	}
}

func applyModifierBuffOnce(p *model.Player, cat *catalog.Catalog, mod catalog.RoomModifier, delta model.Stats) {
	icon := roomModifierIcon(mod)
	if p.Buffs.Has(icon) {
		return
	}
	p.Buffs.Apply(&model.Buff{
		Icon:          icon,
		Duration:      24 * time.Hour, // cleared explicitly on room exit, not by expiry
		IsDebuff:      mod == catalog.ModifierCursed,
		StatModifiers: delta,
	})
	p.RecomputeStats(cat)
}
