package combat

import (
	"math"

	"github.com/konopkja/dungeon-link-sub001/internal/catalog"
	"github.com/konopkja/dungeon-link-sub001/internal/model"
	"github.com/konopkja/dungeon-link-sub001/internal/rng"
)

// retributionBaseFlat is the rank-1 flat reflect amount for Retribution
// Aura (spec §4.4 step 5: "reflect a rank-scaled flat amount").
const retributionBaseFlat = 10

// ancestralSpiritHeal is the flat heal Ancestral Spirit grants per
// consumed stack (spec §4.4 step 6).
const ancestralSpiritHeal = 30

// IsAttackRejected reports whether target's current buffs reject an
// incoming attack outright (spec §4.4 incoming pipeline step 1; testable
// properties §8.4-5): stealth/vanish reject everything, Ice Block rejects
// everything, and Blessing of Protection rejects only physical attacks.
func IsAttackRejected(target *model.Player, isMagical bool) bool {
	if target.Buffs.Has("rogue_stealth") || target.Buffs.Has("rogue_vanish") {
		return true
	}
	if target.Buffs.Has("mage_ice_block") {
		return true
	}
	if !isMagical && target.Buffs.Has("paladin_blessing_protection") {
		return true
	}
	return false
}

// ProcessEnemyAttack runs the full enemy->player incoming damage pipeline
// (spec §4.4): rejection check, mitigation+crit, Shield Wall refund,
// Retaliation reflect, Retribution Aura reflect, Ancestral Spirit heal.
// Returns nil if the attack was rejected outright (zero cost, zero
// events, per spec §7 no-op semantics).
func ProcessEnemyAttack(
	source *rng.Source,
	attacker *model.Enemy,
	target *model.Player,
	rawBase float64,
	isMagical bool,
	abilityID string,
) []Event {
	if IsAttackRejected(target, isMagical) {
		return nil
	}

	mitigator := target.Stats.Armor
	if isMagical {
		mitigator = target.Stats.Resist
	}
	final := mitigatedDamage(rawBase, mitigator)

	isCrit := CritRoll(source, attacker.Stats.Crit)
	if isCrit {
		final = int(math.Round(float64(final) * CritMultiplier))
	}
	if final < 0 {
		final = 0
	}

	blocked := 0
	if target.Buffs.Has("warrior_shield") {
		halved := final / 2
		blocked = final - halved
		final = halved
	}

	applyDamageTo(target, final)

	primary := Event{
		SourceID:  attacker.ID,
		TargetID:  target.ID,
		Damage:    final,
		AbilityID: abilityID,
		IsCrit:    isCrit,
		Blocked:   blocked,
		Killed:    !target.IsAlive,
	}

	events := []Event{primary}

	if target.Buffs.Has("warrior_retaliation") && final > 0 {
		applyDamageTo(attacker, final)
		events = append(events, Event{
			SourceID: target.ID,
			TargetID: attacker.ID,
			Damage:   final,
			Killed:   !attacker.IsAlive,
		})
	}

	if b := target.Buffs.Get("paladin_retribution_aura"); b != nil {
		reflect := catalog.ScaleByRank(retributionBaseFlat, b.Rank)
		applyDamageTo(attacker, reflect)
		events = append(events, Event{
			SourceID: target.ID,
			TargetID: attacker.ID,
			Damage:   reflect,
			Killed:   !attacker.IsAlive,
		})
	}

	if b := target.Buffs.Get("shaman_ancestral"); b != nil && b.Stacks > 0 {
		events[0].Heal += healEntity(target, ancestralSpiritHeal)
		b.Stacks--
	}

	return events
}
