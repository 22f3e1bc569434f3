package combat

import (
	"math"

	"github.com/konopkja/dungeon-link-sub001/internal/catalog"
	"github.com/konopkja/dungeon-link-sub001/internal/model"
	"github.com/konopkja/dungeon-link-sub001/internal/rng"
)

// CritMultiplier is the fixed damage multiplier on a critical hit (spec
// §4.3: "crit multiplier is a fixed constant").
const CritMultiplier = 1.5

// applyLifestealHeal guards lifesteal healing from ever exceeding the healer's
// max health (spec §4.3: "clamped to maxHealth").
func applyLifestealHeal(source model.Entity, damageDealt int, lifestealPercent int) int {
	if lifestealPercent <= 0 || damageDealt <= 0 {
		return 0
	}
	heal := damageDealt * lifestealPercent / 100
	stats := source.EntityStats()
	stats.Health += heal
	if stats.Health > stats.MaxHealth {
		heal -= stats.Health - stats.MaxHealth
		stats.Health = stats.MaxHealth
	}
	source.SetEntityStats(stats)
	return heal
}

// mitigatedDamage applies the armor/resist reduction formula (spec §4.3:
// "reduction = 100 / (100 + value)"; testable property §8.1): identical
// shape for physical (armor) and magical (resist) damage.
func mitigatedDamage(base float64, mitigatorValue int) int {
	return int(math.Round(base * model.Mitigation(mitigatorValue)))
}

// dominantPower picks which of a caster's two power stats governs this
// hit, and the mitigator value on defender that pairs with it (spec
// §4.4: "Choose armor or resist based on which caster power dominates").
func dominantPower(caster, defender model.Entity) (power float64, mitigator int, isPhysical bool) {
	cs := caster.EntityStats()
	ds := defender.EntityStats()
	if cs.AttackPower >= cs.SpellPower {
		return float64(cs.AttackPower), ds.Armor, true
	}
	return float64(cs.SpellPower), ds.Resist, false
}

// CritRoll reports whether an attack with the given crit percent (0-100)
// rolls a critical hit (spec §4.3: "random() * 100 < crit").
func CritRoll(source *rng.Source, critPercent int) bool {
	return source.Next()*100 < float64(critPercent)
}

// baseDamageFor computes "scaled(baseDamage, rank) + 0.5 * max(spellPower,
// attackPower) of caster" (spec §4.4 damage pipeline, step 1).
func baseDamageFor(ability *catalog.AbilityDef, rank int, caster model.Entity) float64 {
	scaled := catalog.ScaleByRank(ability.BaseDamage, rank)
	cs := caster.EntityStats()
	bonus := 0.5 * math.Max(float64(cs.SpellPower), float64(cs.AttackPower))
	return float64(scaled) + bonus
}

// computeHitDamage runs the mitigation+crit portion of the damage pipeline
// without applying it, so callers that need "the dealt damage" as an input
// to something else (a DoT seeded off it, a combo that drains a *second*
// target for a percentage of it) can derive the number without committing
// a hit that was never actually struck.
func computeHitDamage(
	source *rng.Source,
	caster model.Entity,
	target model.Entity,
	ability *catalog.AbilityDef,
	rank int,
	comboMultiplier float64,
) (final int, isCrit bool) {
	if comboMultiplier <= 0 {
		comboMultiplier = 1.0
	}

	base := baseDamageFor(ability, rank, caster)
	_, mitigator, _ := dominantPower(caster, target)

	final = mitigatedDamage(base*comboMultiplier, mitigator)

	cs := caster.EntityStats()
	isCrit = CritRoll(source, cs.Crit)
	if isCrit {
		final = int(math.Round(float64(final) * CritMultiplier))
	}
	if final < 0 {
		final = 0
	}
	return final, isCrit
}

// ResolveDamage runs the full outgoing damage pipeline against one target
// (spec §4.4 "Damage pipeline (per target)"): mitigation, crit, damage
// application, lifesteal, and bloodlust healing. The returned dealt value
// is the final applied amount, for combo logic that needs a percentage of
// "the dealt damage" against a second target.
func ResolveDamage(
	cat *catalog.Catalog,
	source *rng.Source,
	caster model.Entity,
	target model.Entity,
	ability *catalog.AbilityDef,
	rank int,
	comboMultiplier float64,
) (ev Event, dealt int) {
	final, isCrit := computeHitDamage(source, caster, target, ability, rank, comboMultiplier)

	applyDamageTo(target, final)

	ev = Event{
		SourceID:  caster.EntityID(),
		TargetID:  target.EntityID(),
		Damage:    final,
		AbilityID: ability.ID,
		IsCrit:    isCrit,
		Killed:    !target.IsEntityAlive(),
	}

	cs := caster.EntityStats()
	lifesteal := applyLifestealHeal(caster, final, cs.Lifesteal)
	ev.Heal += lifesteal

	if b := caster.EntityBuffs().Get("warrior_bloodlust"); b != nil {
		bloodlustHeal := final * (5 * b.Rank) / 100
		if b.Rank == 0 {
			bloodlustHeal = final * 5 / 100
		}
		bloodlustHeal = healEntity(caster, bloodlustHeal)
		ev.Heal += bloodlustHeal
	}

	return ev, final
}

func applyDamageTo(target model.Entity, dmg int) {
	stats := target.EntityStats()
	stats.Health -= dmg
	if stats.Health <= 0 {
		stats.Health = 0
	}
	target.SetEntityStats(stats)
	switch t := target.(type) {
	case *model.Player:
		if stats.Health <= 0 {
			t.Kill()
		}
	case *model.Enemy:
		if stats.Health <= 0 {
			t.IsAlive = false
			t.TargetID = 0
		}
	}
}

func healEntity(e model.Entity, amount int) int {
	if amount <= 0 {
		return 0
	}
	stats := e.EntityStats()
	room := stats.MaxHealth - stats.Health
	if room < 0 {
		room = 0
	}
	if amount > room {
		amount = room
	}
	stats.Health += amount
	e.SetEntityStats(stats)
	return amount
}
