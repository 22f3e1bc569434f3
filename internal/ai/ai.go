// Package ai drives enemy behavior inside the player's current room (spec
// §4.5) plus the cross-room patrol reassignment rule (§4.6) and idle-room
// upkeep the tick scheduler calls once per tick.
//
// Grounded on the teacher's internal/ai (AttackableAI.thinkActive/
// thinkAttack state machine, random-walk-near-spawn, hate-decay-at-full-hp,
// return-to-spawn-on-drift) generalized from a goroutine-per-NPC/atomic
// intention model to the single-writer-per-Run synchronous tick model this
// server uses (spec §5): one Update call per Run-tick replaces the
// teacher's independent per-NPC Tick() goroutine.
package ai

import (
	"math"
	"time"

	"github.com/konopkja/dungeon-link-sub001/internal/catalog"
	"github.com/konopkja/dungeon-link-sub001/internal/combat"
	"github.com/konopkja/dungeon-link-sub001/internal/model"
)

const (
	// AggroDelay gates an enemy's first attack after acquiring a target
	// (spec §4.5 step 4); ex-patrollers use the shorter delay.
	AggroDelay         = 1000 * time.Millisecond
	AggroDelayExPatrol = 300 * time.Millisecond
	aggroStaggerMaxMs  = 500

	MeleeRange  = 60
	RangedRange = 300
	KiteRange   = 120

	roomPadding  = 24 // "physically inside the room with padding" (§4.5 step 3)
	losStepUnits = 20

	chargeTriggerMin  = 200
	chargeTriggerMax  = 400
	chargeChance      = 0.02
	ChargeSpeed       = 450.0 // units/sec
	ChargeDamageBonus = 25
	chargeAbortAfter  = 3 * time.Second

	LeashDistance   = 900
	LeashResetDelay = 5 * time.Second

	basicAttackCooldown = 1500 * time.Millisecond
)

// RunTick executes spec §4.5 for every living enemy in the party's current
// room, plus the boss-specific ability/AoE cooldown tracks, returning the
// combat events produced this tick (attacks, stun no-ops produce none).
func RunTick(run *model.Run, cat *catalog.Catalog, dt time.Duration) []combat.Event {
	room := run.Dungeon.CurrentRoom()
	if room == nil {
		return nil
	}

	var events []combat.Event

	for _, e := range room.Enemies {
		if !e.IsAlive {
			continue
		}
		if e.Debuffs.HasStun() {
			continue
		}
		if e.IsHidden {
			continue
		}

		if e.IsPatrolling {
			e.ClearPatrol()
			e.HasAggroStart = false
			e.AttackCooldown = 0
		}

		tickEnemy(run, cat, room, e, dt, &events)
	}

	return events
}

func tickEnemy(run *model.Run, cat *catalog.Catalog, room *model.Room, e *model.Enemy, dt time.Duration, events *[]combat.Event) {
	if e.AttackCooldown > 0 {
		e.AttackCooldown -= dt
	}
	if e.IsBoss {
		tickBoss(run, cat, room, e, dt, events)
	}

	target := acquireTarget(run, room, e)
	if target == nil {
		tryLeash(run, e, dt)
		return
	}
	e.LeashTimer = 0

	if !e.HasAggroStart {
		e.HasAggroStart = true
		jitter := time.Duration(run.CombatRNG.NextInt(0, aggroStaggerMaxMs+1)) * time.Millisecond
		e.AggroStartAt = run.Clock + jitter
	}
	delay := AggroDelay
	if e.WasPatrolling {
		delay = AggroDelayExPatrol
	}
	if run.Clock-e.AggroStartAt < delay {
		return
	}

	if e.IsCharging {
		advanceCharge(run, e, target, dt, events)
		return
	}

	atkRange := attackRange(e)
	dist := math.Sqrt(float64(model.DistSq(e.Position, target.Position)))

	if dist > atkRange {
		if dist >= chargeTriggerMin && dist <= chargeTriggerMax && e.Kind == catalog.EnemyMelee && !e.IsBoss && run.CombatRNG.Chance(chargeChance) {
			startCharge(e, target)
		}
		return
	}

	if !hasLineOfSight(room, e.Position, target.Position) {
		return
	}

	if e.AttackCooldown <= 0 {
		attack(run, cat, e, target, events)
		e.AttackCooldown = basicAttackCooldown
		if e.Kind != catalog.EnemyMelee {
			kiteIfClose(room, e, target)
		}
	}
}

// acquireTarget implements spec §4.5 step 3: a taunting pet in the room
// takes priority over scanning for the nearest non-stealthed alive player
// physically inside the room (with padding).
func acquireTarget(run *model.Run, room *model.Room, e *model.Enemy) *model.Player {
	for _, pet := range run.Pets {
		if pet.IsAlive && pet.IsTaunting && pet.RoomID == room.ID {
			if owner := run.PlayerByID(pet.OwnerID); owner != nil && owner.IsAlive {
				e.TargetID = owner.ID
				return owner
			}
		}
	}

	var nearest *model.Player
	var nearestDist int64 = -1
	for _, p := range run.AllAlivePlayersInRoom(room.ID) {
		if p.Buffs.Has("rogue_stealth") || p.Buffs.Has("rogue_vanish") {
			continue
		}
		if !room.Rect.Contains(p.Position, roomPadding) {
			continue
		}
		d := model.DistSq(e.Position, p.Position)
		if nearestDist < 0 || d < nearestDist {
			nearestDist = d
			nearest = p
		}
	}
	if nearest != nil {
		e.TargetID = nearest.ID
	}
	return nearest
}

func attackRange(e *model.Enemy) float64 {
	if e.Kind == catalog.EnemyMelee {
		return MeleeRange
	}
	return RangedRange
}

// hasLineOfSight skips the check entirely when the target is within melee
// range or inside the room rectangle; otherwise it segment-samples the
// straight path at 20-unit steps, rejecting if any sample falls outside
// the room (spec §4.5 step 5). Rooms carry no interior wall geometry, so
// "walkable" here means "inside the current room's rect".
func hasLineOfSight(room *model.Room, from, to model.Point) bool {
	if model.DistSq(from, to) <= MeleeRange*MeleeRange {
		return true
	}
	if room.Rect.ContainsLoose(to) {
		return true
	}

	dx, dy := float64(to.X-from.X), float64(to.Y-from.Y)
	dist := math.Sqrt(dx*dx + dy*dy)
	steps := int(dist / losStepUnits)
	if steps < 1 {
		steps = 1
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		sample := model.Point{
			X: from.X + int(dx*t),
			Y: from.Y + int(dy*t),
		}
		if !room.Rect.ContainsLoose(sample) {
			return false
		}
	}
	return true
}

// attack runs the basic-attack damage pipeline through the shared incoming-
// damage pipeline (rejection, mitigation, crit, Shield Wall, Retaliation,
// Retribution Aura, Ancestral Spirit — spec §4.4 "incoming pipeline").
// Kiting for ranged/caster enemies (spec §4.5 step 6) is done by the
// caller, tickEnemy, via kiteIfClose after the attack.
func attack(run *model.Run, cat *catalog.Catalog, e *model.Enemy, target *model.Player, events *[]combat.Event) {
	ability := catalog.Ability("basic_attack")
	if ability == nil {
		return
	}
	base := float64(ability.BaseDamage) + 0.5*math.Max(float64(e.Stats.SpellPower), float64(e.Stats.AttackPower))
	isMagical := e.Kind == catalog.EnemyCaster
	ev := combat.ProcessEnemyAttack(run.CombatRNG, e, target, base, isMagical, ability.ID)
	*events = append(*events, ev...)
}

func kiteIfClose(room *model.Room, e *model.Enemy, target *model.Player) {
	if model.DistSq(e.Position, target.Position) > KiteRange*KiteRange {
		return
	}
	dx, dy := float64(e.Position.X-target.Position.X), float64(e.Position.Y-target.Position.Y)
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist == 0 {
		return
	}
	step := 30.0
	e.Position.X = clampInt(e.Position.X+int(dx/dist*step), room.Rect.X, room.Rect.X+room.Rect.W)
	e.Position.Y = clampInt(e.Position.Y+int(dy/dist*step), room.Rect.Y, room.Rect.Y+room.Rect.H)
}

func startCharge(e *model.Enemy, target *model.Player) {
	e.IsCharging = true
	e.ChargeElapsed = 0
	e.ChargeTarget = target.Position
}

// advanceCharge moves a charging enemy at ChargeSpeed toward its locked
// target point; impact at melee range deals the charge damage bonus and
// ends the charge. Charges abort after 3s or if the target died (spec
// §4.5 step 7).
func advanceCharge(run *model.Run, e *model.Enemy, target *model.Player, dt time.Duration, events *[]combat.Event) {
	e.ChargeElapsed += dt
	if e.ChargeElapsed >= chargeAbortAfter || !target.IsAlive {
		e.IsCharging = false
		return
	}

	dx, dy := float64(e.ChargeTarget.X-e.Position.X), float64(e.ChargeTarget.Y-e.Position.Y)
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist <= MeleeRange {
		ability := catalog.Ability("basic_attack")
		base := float64(ability.BaseDamage+ChargeDamageBonus) + 0.5*float64(e.Stats.AttackPower)
		ev := combat.ProcessEnemyAttack(run.CombatRNG, e, target, base, false, ability.ID)
		*events = append(*events, ev...)
		e.IsCharging = false
		e.AttackCooldown = basicAttackCooldown
		return
	}

	step := ChargeSpeed * dt.Seconds()
	e.Position.X += int(dx / dist * step)
	e.Position.Y += int(dy / dist * step)
}

// tryLeash runs spec §4.5 step 8: a non-boss enemy with no valid target
// that has drifted beyond LeashDistance from spawn starts a timer; after
// LeashResetDelay it snaps back to spawn, fully heals, and returns to its
// original room.
func tryLeash(run *model.Run, e *model.Enemy, dt time.Duration) {
	if e.IsBoss {
		return
	}
	e.DistFromSpawn = model.DistSq(e.Position, e.SpawnPosition)
	if e.DistFromSpawn <= LeashDistance*LeashDistance {
		e.LeashTimer = 0
		return
	}

	e.LeashTimer += dt
	if e.LeashTimer < LeashResetDelay {
		return
	}

	e.Position = e.SpawnPosition
	e.FullHeal()
	e.LeashTimer = 0
	e.HasAggroStart = false
	e.WasPatrolling = false
	if e.CurrentRoomID != e.OriginalRoomID {
		MoveEnemyToRoom(run, e, e.OriginalRoomID)
	}
}

// MoveEnemyToRoom relocates e from its current room's enemy slice into
// destRoomID's, updating CurrentRoomID and both rooms' Cleared flags.
// Exported for the tick scheduler's respawn step (spec §4.7 step 17:
// "return displaced enemies to their originalRoomId").
func MoveEnemyToRoom(run *model.Run, e *model.Enemy, destRoomID uint64) {
	if run.Dungeon == nil {
		return
	}
	var from *model.Room
	for _, r := range run.Dungeon.Rooms {
		if r.ID == e.CurrentRoomID {
			from = r
			break
		}
	}
	dest := run.Dungeon.RoomByID(destRoomID)
	if dest == nil {
		return
	}
	if from != nil {
		for i, other := range from.Enemies {
			if other.ID == e.ID {
				from.Enemies = append(from.Enemies[:i], from.Enemies[i+1:]...)
				break
			}
		}
		from.RecomputeCleared()
	}
	dest.Enemies = append(dest.Enemies, e)
	e.CurrentRoomID = destRoomID
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
