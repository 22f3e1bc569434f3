package model

import "github.com/konopkja/dungeon-link-sub001/internal/catalog"

// Stats is the entity stat block. Reused directly from catalog so base
// template stats and computed effective stats share one shape.
type Stats = catalog.Stats

// AddStats returns a+b component-wise.
func AddStats(a, b Stats) Stats {
	return Stats{
		Health:      a.Health + b.Health,
		MaxHealth:   a.MaxHealth + b.MaxHealth,
		Mana:        a.Mana + b.Mana,
		MaxMana:     a.MaxMana + b.MaxMana,
		Armor:       a.Armor + b.Armor,
		Resist:      a.Resist + b.Resist,
		AttackPower: a.AttackPower + b.AttackPower,
		SpellPower:  a.SpellPower + b.SpellPower,
		Crit:        a.Crit + b.Crit,
		Haste:       a.Haste + b.Haste,
		Lifesteal:   a.Lifesteal + b.Lifesteal,
	}
}

// SubStats returns a-b component-wise.
func SubStats(a, b Stats) Stats {
	return Stats{
		Health:      a.Health - b.Health,
		MaxHealth:   a.MaxHealth - b.MaxHealth,
		Mana:        a.Mana - b.Mana,
		MaxMana:     a.MaxMana - b.MaxMana,
		Armor:       a.Armor - b.Armor,
		Resist:      a.Resist - b.Resist,
		AttackPower: a.AttackPower - b.AttackPower,
		SpellPower:  a.SpellPower - b.SpellPower,
		Crit:        a.Crit - b.Crit,
		Haste:       a.Haste - b.Haste,
		Lifesteal:   a.Lifesteal - b.Lifesteal,
	}
}

// ClampNonNegative clamps armor, resist, crit and haste at 0 (spec
// invariant 2: "armor >= 0, resist >= 0 after any modifier
// application"). Other fields are left as-is; health/mana clamping against
// max is handled by ClampVital.
func ClampNonNegative(s Stats) Stats {
	if s.Armor < 0 {
		s.Armor = 0
	}
	if s.Resist < 0 {
		s.Resist = 0
	}
	if s.Crit < 0 {
		s.Crit = 0
	}
	if s.Haste < 0 {
		s.Haste = 0
	}
	return s
}

// ClampVital clamps health <= maxHealth and mana <= maxMana (spec
// invariant 2) and floors both at 0.
func ClampVital(s Stats) Stats {
	if s.Health > s.MaxHealth {
		s.Health = s.MaxHealth
	}
	if s.Health < 0 {
		s.Health = 0
	}
	if s.Mana > s.MaxMana {
		s.Mana = s.MaxMana
	}
	if s.Mana < 0 {
		s.Mana = 0
	}
	return s
}

// Mitigation computes the armor/resist damage-reduction fraction (spec
// §4.3: "reduction = 100 / (100 + value)"). Applying it to a base damage
// value gives the mitigated damage: round(base * Mitigation(value)).
func Mitigation(value int) float64 {
	if value < 0 {
		value = 0
	}
	return 100.0 / (100.0 + float64(value))
}
