package combat

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/konopkja/dungeon-link-sub001/internal/catalog"
	"github.com/konopkja/dungeon-link-sub001/internal/rng"
)

// TestMitigationNeverNegatesOrAmplifies checks testable property §8.1:
// mitigation scales damage down monotonically toward (but never past)
// zero as armor/resist grows, and never scales it up.
func TestMitigationNeverNegatesOrAmplifies(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		mitigator := rapid.IntRange(0, 5000).Draw(rt, "mitigator")
		base := rapid.Float64Range(0, 100000).Draw(rt, "base")

		got := mitigatedDamage(base, mitigator)
		if got < 0 {
			rt.Fatalf("mitigatedDamage(%v, %d) = %d, want >= 0", base, mitigator, got)
		}
		if float64(got) > base+1 { // +1 tolerance for rounding
			rt.Fatalf("mitigatedDamage(%v, %d) = %d, want <= base", base, mitigator, got)
		}
	})
}

// TestMitigationMonotonicInMitigatorValue checks that raising armor/resist
// never increases the mitigated damage for a fixed base.
func TestMitigationMonotonicInMitigatorValue(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		base := rapid.Float64Range(1, 100000).Draw(rt, "base")
		lo := rapid.IntRange(0, 2000).Draw(rt, "lo")
		hi := rapid.IntRange(0, 2000).Draw(rt, "hi")
		if lo > hi {
			lo, hi = hi, lo
		}

		dmgLo := mitigatedDamage(base, lo)
		dmgHi := mitigatedDamage(base, hi)
		if dmgHi > dmgLo {
			rt.Fatalf("higher mitigator (%d -> %d) produced more damage (%d -> %d)", lo, hi, dmgLo, dmgHi)
		}
	})
}

// TestResolveDamageNeverDropsHealthBelowZero checks testable property §8.2:
// a target's health is clamped at zero regardless of how large the
// incoming hit is.
func TestResolveDamageNeverDropsHealthBelowZero(t *testing.T) {
	cat := catalog.Load()
	rapid.Check(t, func(rt *rapid.T) {
		health := rapid.IntRange(1, 1000).Draw(rt, "health")
		baseDamage := rapid.IntRange(0, 100000).Draw(rt, "baseDamage")

		caster := testPlayer(1, "mage", 1)
		caster.Stats.SpellPower = rapid.IntRange(0, 1000).Draw(rt, "spellPower")
		target := testEnemy(2, 1)
		target.Stats.Health = health
		target.Stats.MaxHealth = health

		ability := &catalog.AbilityDef{ID: "prop_test_bolt", BaseDamage: baseDamage, Target: catalog.TargetSingle}
		source := rng.New("combat-property-test")

		_, dealt := ResolveDamage(cat, source, caster, target, ability, 1, 1.0)
		if dealt < 0 {
			rt.Fatalf("ResolveDamage dealt negative damage: %d", dealt)
		}
		if target.Stats.Health < 0 {
			rt.Fatalf("target health went negative: %d", target.Stats.Health)
		}
		if target.Stats.Health == 0 && target.IsAlive {
			rt.Fatalf("target at zero health still marked alive")
		}
	})
}

// TestHealEntityNeverExceedsMaxHealth checks testable property §8.3: a
// heal is clamped so a target's health never exceeds its max.
func TestHealEntityNeverExceedsMaxHealth(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxHealth := rapid.IntRange(1, 1000).Draw(rt, "maxHealth")
		health := rapid.IntRange(0, maxHealth).Draw(rt, "health")
		amount := rapid.IntRange(0, 100000).Draw(rt, "amount")

		e := testEnemy(1, 1)
		e.Stats.Health = health
		e.Stats.MaxHealth = maxHealth

		healed := healEntity(e, amount)
		if e.Stats.Health > maxHealth {
			rt.Fatalf("health %d exceeds max %d after healing %d", e.Stats.Health, maxHealth, healed)
		}
		if healed < 0 {
			rt.Fatalf("healEntity returned negative heal: %d", healed)
		}
		if healed > amount {
			rt.Fatalf("healEntity healed more than requested: %d > %d", healed, amount)
		}
	})
}
