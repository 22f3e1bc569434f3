package catalog

// ScaleStats scales base enemy stats for (floor, partySize, avgItemPower).
// Each factor is monotonic non-decreasing in its argument and they compose
// multiplicatively, so the result is monotonic non-decreasing in each
// argument independently (testable property §8.13 "Scale independence").
func ScaleStats(base Stats, floor, partySize int, avgItemPower float64) Stats {
	if floor < 1 {
		floor = 1
	}
	if partySize < 1 {
		partySize = 1
	}
	if avgItemPower < 0 {
		avgItemPower = 0
	}

	factor := (1.0 + 0.12*float64(floor-1)) *
		(1.0 + 0.08*float64(partySize-1)) *
		(1.0 + 0.002*avgItemPower)

	scale := func(v int) int {
		if v == 0 {
			return 0
		}
		return int(float64(v)*factor + 0.5)
	}

	return Stats{
		Health:      scale(base.Health),
		MaxHealth:   scale(base.MaxHealth),
		Mana:        scale(base.Mana),
		MaxMana:     scale(base.MaxMana),
		Armor:       scale(base.Armor),
		Resist:      scale(base.Resist),
		AttackPower: scale(base.AttackPower),
		SpellPower:  scale(base.SpellPower),
		Crit:        base.Crit, // percentages are not scaled, only magnitudes
		Haste:       base.Haste,
		Lifesteal:   base.Lifesteal,
	}
}

// VendorPrice scales a base item/service price by the purchasing
// character's level (spec §4.8: "Prices scale per formula in static
// catalog" — spec.md doesn't fix the formula; this mirrors the teacher's
// flat per-level scaling tables, +8% per level above 1).
func VendorPrice(basePrice int, level int) int {
	if level < 1 {
		level = 1
	}
	return int(float64(basePrice)*(1.0+0.08*float64(level-1)) + 0.5)
}
