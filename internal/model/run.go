package model

import (
	"time"

	"github.com/konopkja/dungeon-link-sub001/internal/rng"
)

// LootDrop is one pending loot award awaiting delivery to a client (spec
// §3 Run "pendingLoot").
type LootDrop struct {
	PlayerID uint64
	ItemID   string
	Rarity   int
	Source   string // "boss", "rare", "chest", "kill"
}

// Run is the unit of simulation (spec §3 Run): one dungeon party's entire
// live state. Created by CREATE_RUN/CREATE_RUN_FROM_SAVE; destroyed when
// its last player disconnects.
type Run struct {
	ID       uint64
	Seed     string
	Floor    int
	IDGen    *IDGenerator

	Players []*Player
	Pets    []*Pet

	Dungeon *Dungeon

	GroundEffects []*GroundEffect

	PartyScaling float64 // avgItemPower feeding catalog.ScaleStats

	PendingLoot []LootDrop

	Tracking *Tracking

	Clock time.Duration // monotonic run-local clock, advanced once per tick

	CombatRNG *rng.Source // deterministic per-run combat stream (crit/combo rolls)
}

// NewRun constructs an empty run shell; callers populate Dungeon via
// dungeongen and Players via the intent handlers.
func NewRun(id uint64, seed string) *Run {
	return &Run{
		ID:        id,
		Seed:      seed,
		Floor:     1,
		IDGen:     NewIDGenerator(),
		Tracking:  NewTracking(),
		CombatRNG: rng.CombatSource(seed),
	}
}

// PlayerByID returns the player with the given ID, or nil.
func (r *Run) PlayerByID(id uint64) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// EnemyByID searches every room of the current dungeon for an enemy with
// the given ID (spec §9 Design Notes: "lookups are built per-tick from
// the slab").
func (r *Run) EnemyByID(id uint64) *Enemy {
	if r.Dungeon == nil {
		return nil
	}
	for _, room := range r.Dungeon.Rooms {
		for _, e := range room.Enemies {
			if e.ID == id {
				return e
			}
		}
	}
	return nil
}

// PetByID returns the pet with the given ID, or nil.
func (r *Run) PetByID(id uint64) *Pet {
	for _, p := range r.Pets {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PetsOwnedBy returns every pet belonging to ownerID.
func (r *Run) PetsOwnedBy(ownerID uint64) []*Pet {
	var out []*Pet
	for _, p := range r.Pets {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out
}

// AllAlivePlayersInRoom returns every living player physically in roomID.
func (r *Run) AllAlivePlayersInRoom(roomID uint64) []*Player {
	var out []*Player
	for _, p := range r.Players {
		if p.IsAlive && p.RoomID == roomID {
			out = append(out, p)
		}
	}
	return out
}

// IsEmpty reports whether the run has no players left (spec Lifecycles:
// "destroyed when its owning player is removed").
func (r *Run) IsEmpty() bool {
	return len(r.Players) == 0
}

// RemovePlayer removes the player with the given ID from the run.
func (r *Run) RemovePlayer(id uint64) {
	for i, p := range r.Players {
		if p.ID == id {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			return
		}
	}
}
