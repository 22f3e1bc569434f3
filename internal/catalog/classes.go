package catalog

// ClassDef is the read-only definition of a playable class.
type ClassDef struct {
	ID          string
	Name        string
	BaseStats   Stats
	StartingIDs []string // ability IDs known at level 1
}

var classDefs = []ClassDef{
	{ID: "warrior", Name: "Warrior",
		BaseStats:   Stats{MaxHealth: 140, Health: 140, MaxMana: 40, Mana: 40, Armor: 20, Resist: 5, AttackPower: 10, SpellPower: 0, Crit: 3},
		StartingIDs: []string{"warrior_strike", "warrior_bloodlust", "warrior_shield", "warrior_retaliation"}},
	{ID: "rogue", Name: "Rogue",
		BaseStats:   Stats{MaxHealth: 100, Health: 100, MaxMana: 60, Mana: 60, Armor: 12, Resist: 8, AttackPower: 12, SpellPower: 0, Crit: 8},
		StartingIDs: []string{"rogue_stealth", "rogue_vanish", "rogue_stab", "rogue_blade_flurry"}},
	{ID: "mage", Name: "Mage",
		BaseStats:   Stats{MaxHealth: 80, Health: 80, MaxMana: 140, Mana: 140, Armor: 5, Resist: 15, AttackPower: 0, SpellPower: 14, Crit: 5},
		StartingIDs: []string{"mage_fireball", "mage_pyroblast", "mage_blaze", "mage_ice_block"}},
	{ID: "paladin", Name: "Paladin",
		BaseStats:   Stats{MaxHealth: 130, Health: 130, MaxMana: 80, Mana: 80, Armor: 18, Resist: 10, AttackPower: 8, SpellPower: 6, Crit: 4},
		StartingIDs: []string{"paladin_judgment", "paladin_crusader_strike", "paladin_blessing_protection", "paladin_retribution_aura"}},
	{ID: "warlock", Name: "Warlock",
		BaseStats:   Stats{MaxHealth: 85, Health: 85, MaxMana: 150, Mana: 150, Armor: 5, Resist: 12, AttackPower: 0, SpellPower: 15, Crit: 5},
		StartingIDs: []string{"warlock_hellfire", "warlock_drain", "warlock_soulstone"}},
	{ID: "shaman", Name: "Shaman",
		BaseStats:   Stats{MaxHealth: 110, Health: 110, MaxMana: 110, Mana: 110, Armor: 12, Resist: 12, AttackPower: 6, SpellPower: 10, Crit: 5},
		StartingIDs: []string{"shaman_ancestral"}},
	{ID: "priest", Name: "Priest",
		BaseStats:   Stats{MaxHealth: 90, Health: 90, MaxMana: 130, Mana: 130, Armor: 6, Resist: 14, AttackPower: 0, SpellPower: 12, Crit: 4},
		StartingIDs: []string{"priest_meditation", "priest_heal"}},
}

func buildClasses() map[string]*ClassDef {
	m := make(map[string]*ClassDef, len(classDefs))
	for i := range classDefs {
		m[classDefs[i].ID] = &classDefs[i]
	}
	return m
}

// ValidClassID reports whether id names a playable class.
func ValidClassID(id string) bool {
	_, ok := Instance().Classes[id]
	return ok
}
