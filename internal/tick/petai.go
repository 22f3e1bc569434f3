package tick

import (
	"time"

	"github.com/konopkja/dungeon-link-sub001/internal/combat"
	"github.com/konopkja/dungeon-link-sub001/internal/model"
)

const petAttackCritPercent = 5 // pets don't carry a Crit stat; spec.md leaves pet crit unspecified

// runPetAI runs spec §4.7 step 13: non-totem pets taunt every 5s
// (redirecting nearby enemy aggro, handled by ai's target-acquisition
// step) and attack their nearest in-range enemy every 1.5s.
func runPetAI(run *model.Run, dt time.Duration, res *Result) {
	if run.Dungeon == nil {
		return
	}
	nowMs := run.Clock.Milliseconds()

	for _, pet := range run.Pets {
		if !pet.IsAlive {
			continue
		}
		room := run.Dungeon.RoomByID(pet.RoomID)
		if room == nil {
			continue
		}

		pet.IsTaunting = pet.ReadyToTaunt(nowMs)
		if pet.IsTaunting {
			res.TauntEvents = append(res.TauntEvents, TauntEvent{PetID: pet.ID, OwnerID: pet.OwnerID})
		}

		if !pet.ReadyToAttack(nowMs) {
			continue
		}
		target := nearestEnemyInRange(room, pet.Position, pet.Kind.Range())
		if target == nil {
			continue
		}
		res.CombatEvents = append(res.CombatEvents, resolvePetAttack(run, pet, target))
	}
}

func nearestEnemyInRange(room *model.Room, from model.Point, rng int) *model.Enemy {
	rangeSq := int64(rng) * int64(rng)
	var best *model.Enemy
	var bestDist int64
	for _, e := range room.Enemies {
		if !e.IsAlive {
			continue
		}
		d := model.DistSq(from, e.Position)
		if d > rangeSq {
			continue
		}
		if best == nil || d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

// resolvePetAttack runs a flat armor-mitigated hit, the same
// mitigation+crit shape the combat package uses for every other attacker,
// duplicated here in miniature since Pet does not implement model.Entity
// (spec §3 Pet carries no buffs/target state, unlike Player/Enemy).
func resolvePetAttack(run *model.Run, pet *model.Pet, target *model.Enemy) combat.Event {
	base := float64(pet.Stats.AttackPower) + float64(pet.Stats.SpellPower)
	mitigator := target.Stats.Armor
	if pet.Stats.SpellPower > pet.Stats.AttackPower {
		mitigator = target.Stats.Resist
	}
	dmg := int(base * model.Mitigation(mitigator))

	isCrit := combat.CritRoll(run.CombatRNG, petAttackCritPercent)
	if isCrit {
		dmg = int(float64(dmg) * combat.CritMultiplier)
	}
	if dmg < 0 {
		dmg = 0
	}

	target.ApplyDamage(dmg)
	return combat.Event{
		SourceID: pet.ID,
		TargetID: target.ID,
		Damage:   dmg,
		IsCrit:   isCrit,
		Killed:   !target.IsAlive,
	}
}
