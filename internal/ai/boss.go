package ai

import (
	"math"
	"time"

	"github.com/konopkja/dungeon-link-sub001/internal/catalog"
	"github.com/konopkja/dungeon-link-sub001/internal/combat"
	"github.com/konopkja/dungeon-link-sub001/internal/model"
)

const (
	aoeInitialMinMs = 6000
	aoeInitialMaxMs = 8000
	aoeMinRecurrence = 4 * time.Second
)

// tickBoss advances a boss's two independent cooldown tracks (spec §4.5
// "Bosses additionally run..."): the per-ability track (each ability in
// getBossAbilitiesForFloor ticks down independently; every ability whose
// cooldown has run out fires that tick against the nearest non-stealthed
// player) and the AoE
// track (spawns one of the boss's GroundEffect kinds at a non-stealthed
// target, then resets on a floor-scaled recurrence).
func tickBoss(run *model.Run, cat *catalog.Catalog, room *model.Room, boss *model.Enemy, dt time.Duration, events *[]combat.Event) {
	def := cat.Bosses[boss.BossID]
	if def == nil {
		return
	}

	target := nearestTargetablePlayer(run, room, boss)

	for id, remaining := range boss.AbilityCooldowns {
		remaining -= dt
		boss.AbilityCooldowns[id] = remaining
		if remaining <= 0 && target != nil {
			castBossAbility(run, boss, target, id, events)
			boss.AbilityCooldowns[id] = abilityCooldownFor(def, id)
		}
	}

	boss.AoECooldown -= dt
	if boss.AoECooldown <= 0 && target != nil && len(def.AoEKinds) > 0 {
		spawnBossAoE(run, boss, def, target)
		recurrence := aoeMinRecurrence
		if scaled := time.Duration(10-float64(run.Floor)*0.5) * time.Second; scaled > recurrence {
			recurrence = scaled
		}
		boss.AoECooldown = recurrence
	}
}

func abilityCooldownFor(def *catalog.BossDef, abilityID string) time.Duration {
	for _, a := range def.Abilities {
		if a.AbilityID == abilityID {
			return time.Duration(a.CooldownSecs) * time.Second
		}
	}
	return 10 * time.Second
}

func nearestTargetablePlayer(run *model.Run, room *model.Room, boss *model.Enemy) *model.Player {
	var nearest *model.Player
	var nearestDist int64 = -1
	for _, p := range run.AllAlivePlayersInRoom(room.ID) {
		if p.Buffs.Has("rogue_stealth") || p.Buffs.Has("rogue_vanish") {
			continue
		}
		d := model.DistSq(boss.Position, p.Position)
		if nearestDist < 0 || d < nearestDist {
			nearestDist = d
			nearest = p
		}
	}
	return nearest
}

// castBossAbility runs the same damage/stun/DoT shapes the player-facing
// combat resolver uses (spec §4.4), but against a player target from an
// enemy caster: AbilityDebuff abilities with no DamagePerTick are
// always-apply stuns (Judgment/Pyroblast); AbilityDebuff with a
// DamagePerTick seeds a burn DoT off a notional hit (Hellfire); everything
// else runs the standard incoming-damage pipeline.
func castBossAbility(run *model.Run, boss *model.Enemy, target *model.Player, abilityID string, events *[]combat.Event) {
	ability := catalog.Ability(abilityID)
	if ability == nil {
		return
	}

	switch {
	case ability.Type == catalog.AbilityDebuff && ability.DamagePerTick == 0 && ability.StunDuration > 0:
		buff := &model.Buff{
			Icon:        ability.IconKey(),
			Duration:    catalog.ScaleDuration(ability.StunDuration, 1),
			MaxDuration: catalog.ScaleDuration(ability.StunDuration, 1),
			IsDebuff:    true,
			IsStun:      true,
			SourceID:    boss.ID,
		}
		if removed := target.Buffs.Apply(buff); removed != nil {
			target.Stats = model.SubStats(target.Stats, removed.Delta)
		}
		*events = append(*events, combat.Event{SourceID: boss.ID, TargetID: target.ID, AbilityID: ability.ID})
	case ability.ID == "warlock_hellfire":
		base := float64(ability.BaseDamage) + 0.5*math.Max(float64(boss.Stats.SpellPower), float64(boss.Stats.AttackPower))
		mitigator := target.Stats.Resist
		notional := int(math.Round(base * model.Mitigation(mitigator)))
		perTick := notional / 2 / max1(ability.TickCount)
		buff := &model.Buff{
			Icon:          ability.IconKey(),
			Duration:      ability.TickInterval * time.Duration(ability.TickCount),
			MaxDuration:   ability.TickInterval * time.Duration(ability.TickCount),
			IsDebuff:      true,
			DamagePerTick: perTick,
			TickInterval:  ability.TickInterval,
			SourceID:      boss.ID,
		}
		target.Buffs.Apply(buff)
		*events = append(*events, combat.Event{SourceID: boss.ID, TargetID: target.ID, AbilityID: ability.ID})
	default:
		base := float64(ability.BaseDamage) + 0.5*math.Max(float64(boss.Stats.SpellPower), float64(boss.Stats.AttackPower))
		isMagical := ability.Type == catalog.AbilityDamage && boss.Stats.SpellPower >= boss.Stats.AttackPower
		ev := combat.ProcessEnemyAttack(run.CombatRNG, boss, target, base, isMagical, ability.ID)
		*events = append(*events, ev...)
	}
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// spawnBossAoE drops one of the boss's GroundEffect kinds (picked
// uniformly at random from def.AoEKinds via the run's combat stream) at
// the target player's position (spec §4.5: "targeted at a
// non-stealthed player inside the room").
func spawnBossAoE(run *model.Run, boss *model.Enemy, def *catalog.BossDef, target *model.Player) {
	kind := def.AoEKinds[run.CombatRNG.NextInt(0, len(def.AoEKinds))]
	effect := model.NewGroundEffect(run.IDGen.Next(), kind, target.Position)
	effect.SourceID = boss.ID
	effect.Damage = 15 + run.Floor*2

	switch kind {
	case catalog.EffectExpandingCircle, catalog.EffectVoidZone:
		effect.MaxRadius = 150
		effect.Duration = 4 * time.Second
		effect.TickInterval = 500 * time.Millisecond
	case catalog.EffectFirePool:
		effect.Radius = 80
		effect.Duration = 6 * time.Second
		effect.TickInterval = time.Second
	case catalog.EffectMovingWave:
		effect.Radius = 60
		effect.Speed = 120
		dir := model.Point{X: 1, Y: 0}
		effect.Direction = &dir
		effect.Duration = 3 * time.Second
		effect.TickInterval = 500 * time.Millisecond
	case catalog.EffectRotatingBeam:
		effect.Radius = 250
		effect.Duration = 6 * time.Second
		effect.TickInterval = 500 * time.Millisecond
	case catalog.EffectGravityWell:
		effect.Radius = 200
		effect.Duration = 4 * time.Second
		effect.TickInterval = 500 * time.Millisecond
	}

	run.GroundEffects = append(run.GroundEffects, effect)
}
