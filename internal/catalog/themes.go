package catalog

// RoomModifier is an environmental overlay applied to a room (spec §3
// Room, GLOSSARY "Room modifier").
type RoomModifier string

const (
	ModifierNone    RoomModifier = ""
	ModifierBurning RoomModifier = "burning"
	ModifierCursed  RoomModifier = "cursed"
	ModifierBlessed RoomModifier = "blessed"
	ModifierDark    RoomModifier = "dark"
)

// ThemeDef is the read-only definition of one dungeon theme (spec §4.2.1).
type ThemeDef struct {
	ID                string
	Name              string
	MovementModifier  float64 // multiplies player move speed (Frozen < 1 handled via momentum, not this)
	HazardDamage      int
	HazardChancePer5s float64 // spec §9: "Inferno hazard damage fires on ~8% chance per 5s check"
	TrapMultiplier    float64
	ChestDensity      float64 // extra-chest probability weight
	ModifierWeights   map[RoomModifier]float64
	IsTreasure        bool // Treasure theme: non-boss chests are mimics
}

var themeDefs = []ThemeDef{
	{ID: "crypt", Name: "Crypt", MovementModifier: 1.0, HazardDamage: 0, TrapMultiplier: 1.0, ChestDensity: 1.0,
		ModifierWeights: map[RoomModifier]float64{ModifierCursed: 0.3, ModifierDark: 0.2, ModifierNone: 0.5}},
	{ID: "inferno", Name: "Inferno", MovementModifier: 1.0, HazardDamage: 6, HazardChancePer5s: 0.08,
		TrapMultiplier: 1.4, ChestDensity: 0.9,
		ModifierWeights: map[RoomModifier]float64{ModifierBurning: 0.4, ModifierNone: 0.6}},
	{ID: "frozen", Name: "Frozen", MovementModifier: 0.85, HazardDamage: 3, TrapMultiplier: 0.8, ChestDensity: 1.0,
		ModifierWeights: map[RoomModifier]float64{ModifierNone: 1.0}},
	{ID: "swamp", Name: "Swamp", MovementModifier: 0.9, HazardDamage: 2, TrapMultiplier: 1.1, ChestDensity: 1.0,
		ModifierWeights: map[RoomModifier]float64{ModifierCursed: 0.2, ModifierNone: 0.8}},
	{ID: "shadow", Name: "Shadow", MovementModifier: 1.0, HazardDamage: 0, TrapMultiplier: 1.2, ChestDensity: 1.1,
		ModifierWeights: map[RoomModifier]float64{ModifierDark: 0.5, ModifierCursed: 0.15, ModifierNone: 0.35}},
	{ID: "treasure", Name: "Treasure", MovementModifier: 1.0, HazardDamage: 0, TrapMultiplier: 0.6, ChestDensity: 2.0,
		IsTreasure: true, ModifierWeights: map[RoomModifier]float64{ModifierBlessed: 0.4, ModifierNone: 0.6}},
}

func buildThemes() map[string]*ThemeDef {
	m := make(map[string]*ThemeDef, len(themeDefs))
	for i := range themeDefs {
		m[themeDefs[i].ID] = &themeDefs[i]
	}
	return m
}

// ThemeForFloor picks a theme deterministically from the floor number, the
// same "floor picks theme" contract spec §4.2 step 1 describes.
func ThemeForFloor(catalog *Catalog, floor int) *ThemeDef {
	order := []string{"crypt", "inferno", "frozen", "swamp", "shadow", "treasure"}
	id := order[(floor-1)%len(order)]
	return catalog.Themes[id]
}
