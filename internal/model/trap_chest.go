package model

// TrapKind enumerates the two trap archetypes (spec §3 Trap).
type TrapKind string

const (
	TrapSpikes       TrapKind = "Spikes"
	TrapFlamethrower TrapKind = "Flamethrower"
)

// Trap is a hazard with an active/inactive duty cycle.
type Trap struct {
	ID              uint64
	Kind            TrapKind
	Position        Point
	Direction       *Point // nil unless the trap has a facing (flamethrower cone)
	Damage          int
	ActiveDuration  int // ms
	InactiveDuration int // ms
	IsActive        bool
	phaseElapsed    int // ms elapsed in the current phase
}

// AdvancePhase steps the trap's active/inactive duty cycle by deltaMs
// (spec §4.7 step 6: "update trap active/inactive states").
func (t *Trap) AdvancePhase(deltaMs int) {
	t.phaseElapsed += deltaMs
	limit := t.InactiveDuration
	if t.IsActive {
		limit = t.ActiveDuration
	}
	if limit <= 0 {
		return
	}
	for t.phaseElapsed >= limit {
		t.phaseElapsed -= limit
		t.IsActive = !t.IsActive
		limit = t.InactiveDuration
		if t.IsActive {
			limit = t.ActiveDuration
		}
		if limit <= 0 {
			return
		}
	}
}

// LootTier is a chest's drop-table tier (spec §3 Chest).
type LootTier string

const (
	LootCommon LootTier = "common"
	LootRare   LootTier = "rare"
	LootEpic   LootTier = "epic"
)

// Chest is an openable loot container.
type Chest struct {
	ID       uint64
	LootTier LootTier
	Position Point
	IsOpen   bool
	IsLocked bool
	IsMimic  bool // Treasure theme only
}
