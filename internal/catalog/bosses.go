package catalog

// GroundEffectKind enumerates the AoE shapes a boss/elite can spawn
// (spec §3 GroundEffect, §4.5 "Bosses additionally run... AoE track").
type GroundEffectKind string

const (
	EffectExpandingCircle GroundEffectKind = "ExpandingCircle"
	EffectMovingWave      GroundEffectKind = "MovingWave"
	EffectVoidZone        GroundEffectKind = "VoidZone"
	EffectRotatingBeam    GroundEffectKind = "RotatingBeam"
	EffectFirePool        GroundEffectKind = "FirePool"
	EffectGravityWell     GroundEffectKind = "GravityWell"
)

// BossAbilityDef is one entry on a boss's independent per-ability
// cooldown track (spec §4.5 "each ability in getBossAbilitiesForFloor
// has its own cooldown").
type BossAbilityDef struct {
	AbilityID    string
	MinFloor     int // ability only available from this floor onward
	CooldownSecs int
}

// BossDef is the read-only definition of one boss encounter.
type BossDef struct {
	ID          string
	Name        string
	BaseStats   Stats
	Abilities   []BossAbilityDef
	AoEKinds    []GroundEffectKind // AoE shapes this boss can spawn, one picked at random per cast
	BossLootIDs []string
}

var bossDefs = []BossDef{
	{ID: "boss_crypt_lord", Name: "The Crypt Lord",
		BaseStats: Stats{MaxHealth: 1400, Health: 1400, Armor: 20, Resist: 15, AttackPower: 24, Crit: 8},
		Abilities: []BossAbilityDef{
			{AbilityID: "paladin_judgment", MinFloor: 1, CooldownSecs: 14},
			{AbilityID: "warlock_hellfire", MinFloor: 3, CooldownSecs: 20},
			{AbilityID: "mage_blaze", MinFloor: 5, CooldownSecs: 9},
		},
		AoEKinds:    []GroundEffectKind{EffectExpandingCircle, EffectVoidZone, EffectFirePool},
		BossLootIDs: []string{"crypt_band", "crypt_pauldrons", "crypt_greaves"}},
	{ID: "boss_inferno_warden", Name: "Inferno Warden",
		BaseStats: Stats{MaxHealth: 1800, Health: 1800, Armor: 15, Resist: 25, AttackPower: 30},
		Abilities: []BossAbilityDef{
			{AbilityID: "warlock_hellfire", MinFloor: 1, CooldownSecs: 12},
			{AbilityID: "mage_pyroblast", MinFloor: 4, CooldownSecs: 18},
		},
		AoEKinds:    []GroundEffectKind{EffectFirePool, EffectRotatingBeam, EffectMovingWave},
		BossLootIDs: []string{"iron_sword", "plate_chest"}},
}

func buildBosses() map[string]*BossDef {
	m := make(map[string]*BossDef, len(bossDefs))
	for i := range bossDefs {
		m[bossDefs[i].ID] = &bossDefs[i]
	}
	return m
}

// AbilitiesForFloor returns the abilities a boss can use on the given
// floor (spec §4.5 getBossAbilitiesForFloor), preserving declaration order
// so staggered initial-cooldown assignment (4s, 7s, 10s, ...) is stable.
func (b *BossDef) AbilitiesForFloor(floor int) []BossAbilityDef {
	out := make([]BossAbilityDef, 0, len(b.Abilities))
	for _, a := range b.Abilities {
		if floor >= a.MinFloor {
			out = append(out, a)
		}
	}
	return out
}
