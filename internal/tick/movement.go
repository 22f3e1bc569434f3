package tick

import (
	"time"

	"github.com/konopkja/dungeon-link-sub001/internal/catalog"
	"github.com/konopkja/dungeon-link-sub001/internal/combat"
	"github.com/konopkja/dungeon-link-sub001/internal/model"
)

// PlayerBaseSpeed is the unmodified player movement speed in world units
// per second, scaled by the dungeon theme's MovementModifier (spec §4.7
// step 2). spec.md does not fix a number; this is a little above the
// enemy-AI package's non-combat pace (ai.returnToSpawnSpeed, 200).
const PlayerBaseSpeed = 220.0

const (
	frozenAccel        = 0.15
	frozenFriction      = 0.02
	frozenWallBounce    = -0.5
	frozenCornerBounce  = -0.3
)

// updatePlayerCooldownsAndBuffs runs spec §4.7 step 1: ability cooldowns
// and mana regen tick down/up, buffs advance (firing DoT ticks and
// expiring), and stats are recomputed whenever the buff set changed.
func updatePlayerCooldownsAndBuffs(run *model.Run, cat *catalog.Catalog, dt time.Duration, res *Result) {
	for _, p := range run.Players {
		if !p.IsAlive {
			continue
		}
		for _, state := range p.Abilities {
			if state.CooldownRemaining > 0 {
				state.CooldownRemaining -= dt
				if state.CooldownRemaining < 0 {
					state.CooldownRemaining = 0
				}
			}
		}
		if p.AutoAttackCooldown > 0 {
			p.AutoAttackCooldown -= dt
		}

		regen := int(float64(p.Stats.MaxMana) * manaRegenFractionPerSecond * dt.Seconds())
		if regen > 0 {
			p.Stats.Mana += regen
			if p.Stats.Mana > p.Stats.MaxMana {
				p.Stats.Mana = p.Stats.MaxMana
			}
		}

		expired, dots := p.Buffs.Tick(dt)
		for _, b := range dots {
			res.CombatEvents = append(res.CombatEvents, applyDotTick(p, b))
		}
		if len(expired) > 0 {
			p.RecomputeStats(cat)
		}
	}
}

// applyDotTick applies one DamagePerTick hit from an already-mitigated
// DoT buff (Hellfire's burn is seeded from a mitigated hit at cast time —
// spec §4.4 — so the per-tick application itself needs no further
// mitigation).
func applyDotTick(e model.Entity, b *model.Buff) combat.Event {
	stats := e.EntityStats()
	stats.Health -= b.DamagePerTick
	killed := stats.Health <= 0
	if killed {
		stats.Health = 0
	}
	e.SetEntityStats(stats)
	if killed {
		switch t := e.(type) {
		case *model.Player:
			t.Kill()
		case *model.Enemy:
			t.IsAlive = false
			t.TargetID = 0
		}
	}
	return combat.Event{SourceID: b.SourceID, TargetID: e.EntityID(), Damage: b.DamagePerTick, AbilityID: b.Icon, Killed: killed}
}

// applyPlayerMovement runs spec §4.7 step 2: normal-mode players move at
// speed*deltaTime with axis-slide collision against the dungeon bounds;
// Frozen-theme players instead accumulate momentum (accel 0.15, friction
// 0.02) and bounce off walls.
func applyPlayerMovement(run *model.Run, cat *catalog.Catalog, dt time.Duration) {
	if run.Dungeon == nil {
		return
	}
	bounds := run.Dungeon.Bounds()
	theme := run.Dungeon.ThemeModifiers
	isFrozen := theme != nil && theme.ID == "frozen"
	modifier := 1.0
	if theme != nil {
		modifier = theme.MovementModifier
	}

	for _, p := range run.Players {
		if !p.IsAlive {
			continue
		}
		intent := run.Tracking.PlayerMoveIntent[p.ID]
		if isFrozen {
			moveFrozen(run, p, intent, bounds, dt)
		} else {
			moveNormal(p, intent, bounds, modifier, dt)
		}
	}
}

func moveNormal(p *model.Player, intent model.Vector2, bounds model.Rect, modifier float64, dt time.Duration) {
	mag := vecLen(intent)
	if mag == 0 {
		return
	}
	step := PlayerBaseSpeed * modifier * dt.Seconds()
	dx := int(intent.X / mag * step)
	dy := int(intent.Y / mag * step)

	combined := model.Point{X: p.Position.X + dx, Y: p.Position.Y + dy}
	if bounds.ContainsLoose(combined) {
		p.Position = combined
		return
	}
	// Reject the combined move; attempt x-only then y-only slide (spec
	// §4.7 step 2).
	xOnly := model.Point{X: p.Position.X + dx, Y: p.Position.Y}
	if bounds.ContainsLoose(xOnly) {
		p.Position = xOnly
		return
	}
	yOnly := model.Point{X: p.Position.X, Y: p.Position.Y + dy}
	if bounds.ContainsLoose(yOnly) {
		p.Position = yOnly
	}
}

func moveFrozen(run *model.Run, p *model.Player, intent model.Vector2, bounds model.Rect, dt time.Duration) {
	vel := run.Tracking.PlayerMomentum[p.ID]
	vel = vel.Add(intent.Scale(frozenAccel))
	vel = vel.Scale(1 - frozenFriction)

	step := PlayerBaseSpeed * dt.Seconds()
	next := model.Point{
		X: p.Position.X + int(vel.X*step),
		Y: p.Position.Y + int(vel.Y*step),
	}

	outX := next.X < bounds.X || next.X > bounds.X+bounds.W
	outY := next.Y < bounds.Y || next.Y > bounds.Y+bounds.H
	switch {
	case outX && outY:
		vel.X *= frozenCornerBounce
		vel.Y *= frozenCornerBounce
	case outX:
		vel.X *= frozenWallBounce
	case outY:
		vel.Y *= frozenWallBounce
	default:
		p.Position = next
	}
	run.Tracking.PlayerMomentum[p.ID] = vel
}

func vecLen(v model.Vector2) float64 {
	return sqrt(v.X*v.X + v.Y*v.Y)
}

func sqrt(v float64) float64 {
	if v <= 0 {
		return 0
	}
	x := v
	for i := 0; i < 20; i++ {
		x = 0.5 * (x + v/x)
	}
	return x
}

// handleRoomTransitions runs spec §4.7 step 3: a player whose position has
// left their current room's rectangle transitions into the first room
// whose rectangle (boundary included) contains them, or, if none does and
// the current room is already cleared, into a room connected to it. On
// transition: modifier buffs from the previous room are stripped, the new
// room's enemy aggro is reset, boss cooldowns on entry are staggered, and
// any enemy sitting outside the new room's bounds is clamped to its
// center.
func handleRoomTransitions(run *model.Run, cat *catalog.Catalog) {
	if run.Dungeon == nil {
		return
	}
	for _, p := range run.Players {
		if !p.IsAlive {
			continue
		}
		current := run.Dungeon.RoomByID(p.RoomID)
		if current != nil && current.Rect.ContainsLoose(p.Position) {
			continue
		}
		target := roomFor(run, p, current)
		if target == nil || target.ID == p.RoomID {
			continue
		}
		transitionPlayerInto(run, cat, p, current, target)
	}
}

// roomFor finds the room a player's new position actually lies in,
// preferring an explicit containment match and falling back to any room
// connected to (or already cleared alongside) the player's prior room.
func roomFor(run *model.Run, p *model.Player, current *model.Room) *model.Room {
	for _, r := range run.Dungeon.Rooms {
		if r.Rect.ContainsLoose(p.Position) {
			return r
		}
	}
	if current == nil {
		return nil
	}
	if current.Cleared {
		for id := range current.ConnectedTo {
			if r := run.Dungeon.RoomByID(id); r != nil {
				return r
			}
		}
	}
	return nil
}

func transitionPlayerInto(run *model.Run, cat *catalog.Catalog, p *model.Player, from, to *model.Room) {
	if from != nil {
		stripRoomModifierBuff(p, cat, from)
	}
	p.RoomID = to.ID
	run.Dungeon.CurrentRoomID = to.ID

	for _, e := range to.Enemies {
		e.HasAggroStart = false
		e.AttackCooldown = 0
		e.TargetID = 0
		if e.IsBoss {
			staggerBossCooldowns(run, e)
		}
		if !to.Rect.ContainsLoose(e.Position) {
			e.Position = to.Rect.Center()
		}
	}
}

func stripRoomModifierBuff(p *model.Player, cat *catalog.Catalog, room *model.Room) {
	icon := "room_" + string(room.Modifier)
	if room.Modifier == "" {
		return
	}
	if removed := p.Buffs.Remove(icon); removed != nil {
		p.RecomputeStats(cat)
	}
}

func staggerBossCooldowns(run *model.Run, boss *model.Enemy) {
	i := 0
	for id := range boss.AbilityCooldowns {
		boss.AbilityCooldowns[id] = time.Duration(4+3*i) * time.Second
		i++
	}
	boss.AoECooldown = time.Duration(run.CombatRNG.NextInt(6000, 8001)) * time.Millisecond
}
