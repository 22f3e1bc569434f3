// Package catalog holds the static, read-only content tables consumed by
// the simulation: classes, abilities, enemies, bosses, items, set bonuses,
// the leveling curve, stat-scaling formulas, and dungeon themes.
//
// Every table here is built once from Go literals and never mutated after
// Load returns, the same shape as the teacher's internal/data package
// (npcDefs, itemDefs loaded into package-level maps via accessor methods).
// It is safe to read concurrently from every Run without locking.
package catalog

import "log/slog"

// Catalog is the read-only content bundle handed to every Run.
type Catalog struct {
	Classes map[string]*ClassDef
	Items   map[string]*ItemDef
	Sets    map[string]*SetDef
	Enemies map[string]*EnemyDef
	Bosses  map[string]*BossDef
	Themes  map[string]*ThemeDef
}

var instance *Catalog

// Load builds the catalog from the Go-literal tables declared in this
// package and caches it for Instance. Mirrors data.LoadNpcTemplates'
// "build map from literal slice, log count" shape.
func Load() *Catalog {
	c := &Catalog{
		Classes: buildClasses(),
		Items:   buildItems(),
		Sets:    buildSets(),
		Enemies: buildEnemies(),
		Bosses:  buildBosses(),
		Themes:  buildThemes(),
	}
	slog.Info("catalog loaded",
		"classes", len(c.Classes),
		"items", len(c.Items),
		"sets", len(c.Sets),
		"enemies", len(c.Enemies),
		"bosses", len(c.Bosses),
		"themes", len(c.Themes))
	instance = c
	return c
}

// Instance returns the most recently Load-ed catalog, or loads one lazily
// if none exists yet. Safe for concurrent use: the underlying maps are
// never mutated after construction.
func Instance() *Catalog {
	if instance == nil {
		return Load()
	}
	return instance
}

// Stats is the unit-less base-stat block shared by players, pets, and
// enemies (spec §4.3: "unit-less integers scaled per-floor/party").
type Stats struct {
	Health      int
	MaxHealth   int
	Mana        int
	MaxMana     int
	Armor       int
	Resist      int
	AttackPower int
	SpellPower  int
	Crit        int // percent, 0-100
	Haste       int // percent
	Lifesteal   int // percent
}
