package catalog

// EnemyKind is the melee/ranged/caster archetype (spec §3 Enemy).
type EnemyKind string

const (
	EnemyMelee  EnemyKind = "melee"
	EnemyRanged EnemyKind = "ranged"
	EnemyCaster EnemyKind = "caster"
)

// DropEntry is one weighted entry in an enemy's drop table (spec §4.8).
type DropEntry struct {
	ItemID string
	Chance float64 // 0..1, base chance before kill-time bonus
	Rarity Rarity
}

// EnemyDef is the read-only definition of one enemy template at floor 1.
// Scale applies floor/party/item-power scaling on top of these base
// values (see ScaleStats).
type EnemyDef struct {
	ID         string
	Name       string
	Kind       EnemyKind
	IsRareOnly bool // only spawned as the rare-room special enemy
	BaseStats  Stats
	AggroRange int
	Drops      []DropEntry
	SetChance  float64 // independent set-piece roll chance, doubled for rares/bosses
}

var enemyDefs = []EnemyDef{
	{ID: "skeleton_warrior", Name: "Skeleton Warrior", Kind: EnemyMelee,
		BaseStats:  Stats{MaxHealth: 60, Health: 60, Armor: 8, AttackPower: 8, Resist: 2, Crit: 2},
		AggroRange: 250,
		Drops:      []DropEntry{{ItemID: "rusty_sword", Chance: 0.1, Rarity: RarityCommon}},
		SetChance:  0.01},
	{ID: "bone_archer", Name: "Bone Archer", Kind: EnemyRanged,
		BaseStats:  Stats{MaxHealth: 45, Health: 45, Armor: 4, AttackPower: 10, Resist: 3},
		AggroRange: 350,
		Drops:      []DropEntry{{ItemID: "leather_vest", Chance: 0.08, Rarity: RarityCommon}},
		SetChance:  0.01},
	{ID: "crypt_acolyte", Name: "Crypt Acolyte", Kind: EnemyCaster,
		BaseStats:  Stats{MaxHealth: 40, Health: 40, Armor: 2, SpellPower: 12, Resist: 8},
		AggroRange: 400,
		Drops:      []DropEntry{{ItemID: "cloth_robe", Chance: 0.08, Rarity: RarityCommon}},
		SetChance:  0.01},
	{ID: "infernal_hound", Name: "Infernal Hound", Kind: EnemyMelee,
		BaseStats:  Stats{MaxHealth: 70, Health: 70, Armor: 6, AttackPower: 11, Resist: 4},
		AggroRange: 300,
		Drops:      []DropEntry{{ItemID: "iron_sword", Chance: 0.07, Rarity: RarityUncommon}},
		SetChance:  0.015},
	{ID: "frost_stalker", Name: "Frost Stalker", Kind: EnemyRanged, IsRareOnly: true,
		BaseStats:  Stats{MaxHealth: 130, Health: 130, Armor: 10, AttackPower: 16, Resist: 10, Crit: 10},
		AggroRange: 450,
		Drops:      []DropEntry{{ItemID: "crypt_pauldrons", Chance: 0.25, Rarity: RarityRare}},
		SetChance:  0.3},
}

func buildEnemies() map[string]*EnemyDef {
	m := make(map[string]*EnemyDef, len(enemyDefs))
	for i := range enemyDefs {
		m[enemyDefs[i].ID] = &enemyDefs[i]
	}
	return m
}

// RareVariantFor returns the designated rare-room enemy (the first one
// flagged IsRareOnly), or nil if none is flagged.
func RareVariantFor(catalog *Catalog) *EnemyDef {
	for _, def := range catalog.Enemies {
		if def.IsRareOnly {
			return def
		}
	}
	return nil
}
