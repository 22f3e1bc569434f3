package model

// Entity is the common shape the combat resolver operates on, satisfied
// by both *Player and *Enemy, so damage/heal/buff logic is written once
// regardless of which kind of combatant is on each side of a hit (spec §9
// "arena-style ownership... lookups are built per-tick").
type Entity interface {
	EntityID() uint64
	EntityStats() Stats
	SetEntityStats(Stats)
	EntityBuffs() *BuffSet
	IsEntityAlive() bool
}

// The methods below give Player and Enemy a common structural shape so
// the combat resolver can treat either as a generic damage/heal target
// without an interface living in the model package itself (spec §9:
// "Cyclic references... model as arena-style ownership... lookups are
// built per-tick").

// EntityID returns the player's unique ID.
func (p *Player) EntityID() uint64 { return p.ID }

// EntityStats returns the player's current effective stats.
func (p *Player) EntityStats() Stats { return p.Stats }

// SetEntityStats overwrites the player's current effective stats.
func (p *Player) SetEntityStats(s Stats) { p.Stats = s }

// EntityBuffs returns the player's buff/debuff set.
func (p *Player) EntityBuffs() *BuffSet { return p.Buffs }

// IsEntityAlive reports whether the player is alive.
func (p *Player) IsEntityAlive() bool { return p.IsAlive }

// EntityID returns the enemy's unique ID.
func (e *Enemy) EntityID() uint64 { return e.ID }

// EntityStats returns the enemy's current stats.
func (e *Enemy) EntityStats() Stats { return e.Stats }

// SetEntityStats overwrites the enemy's current stats.
func (e *Enemy) SetEntityStats(s Stats) { e.Stats = s }

// EntityBuffs returns the enemy's debuff set.
func (e *Enemy) EntityBuffs() *BuffSet { return e.Debuffs }

// IsEntityAlive reports whether the enemy is alive.
func (e *Enemy) IsEntityAlive() bool { return e.IsAlive }
