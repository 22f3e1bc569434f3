package model

import "time"

// Buff is a buff or debuff/DoT/stun instance attached to an entity.
// StatModifiers stores the exact delta applied on insertion (spec
// invariant 5): removal subtracts that same delta, never absolutes.
type Buff struct {
	ID            uint64
	Icon          string // stable logical key, e.g. "warrior_bloodlust"
	Duration      time.Duration
	MaxDuration   time.Duration
	IsDebuff      bool
	IsStun        bool
	Stacks        int
	Rank          int
	StatModifiers Stats

	// DoT fields. DamagePerTick > 0 implies a damaging debuff (spec
	// invariant 8); IsStun marks control debuffs with DamagePerTick == 0.
	DamagePerTick int
	TickInterval  time.Duration
	sinceLastTick time.Duration

	SourceID uint64
}

// Expired reports whether the buff's duration has elapsed.
func (b *Buff) Expired() bool {
	return b.Duration <= 0
}

// Tick advances the buff's remaining duration and its tick accumulator by
// delta, returning whether a damage tick should fire this call (spec
// §4.7 step 12: "advances lastTickTime by deltaTime; when >= tickInterval,
// apply... damage").
func (b *Buff) Tick(delta time.Duration) (shouldTick bool) {
	b.Duration -= delta
	if b.TickInterval <= 0 {
		return false
	}
	b.sinceLastTick += delta
	if b.sinceLastTick >= b.TickInterval {
		b.sinceLastTick -= b.TickInterval
		return true
	}
	return false
}

// BuffSet holds all buffs/debuffs on one entity, keyed by icon for O(1)
// refresh-by-icon lookups (spec §8.3 "buff refresh by icon").
type BuffSet struct {
	byIcon map[string]*Buff
	order  []string // insertion order, for deterministic iteration/snapshotting
}

// NewBuffSet constructs an empty buff set.
func NewBuffSet() *BuffSet {
	return &BuffSet{byIcon: make(map[string]*Buff)}
}

// Get returns the active buff with the given icon, or nil.
func (s *BuffSet) Get(icon string) *Buff {
	return s.byIcon[icon]
}

// Has reports whether a buff with the given icon is currently active.
func (s *BuffSet) Has(icon string) bool {
	_, ok := s.byIcon[icon]
	return ok
}

// HasStun reports whether any active debuff is a stun (spec §4.5 step 1).
func (s *BuffSet) HasStun() bool {
	for _, b := range s.byIcon {
		if b.IsStun {
			return true
		}
	}
	return false
}

// All returns the active buffs in insertion order.
func (s *BuffSet) All() []*Buff {
	out := make([]*Buff, 0, len(s.order))
	for _, icon := range s.order {
		if b, ok := s.byIcon[icon]; ok {
			out = append(out, b)
		}
	}
	return out
}

// Len returns the number of active buffs.
func (s *BuffSet) Len() int { return len(s.byIcon) }

// RemoveDelta is the stat delta to subtract from the owning entity's
// stats when Apply or Remove displaces a buff by icon.
type RemoveDelta struct {
	Icon  string
	Delta Stats
}

// Apply inserts buff, refreshing any prior instance with the same icon:
// the prior instance's delta is returned for the caller to subtract
// before adding buff.StatModifiers, so stats are never double-applied
// and never simply stacked (spec §8.3). shaman_ancestral resets its
// Stacks field rather than accumulating.
func (s *BuffSet) Apply(buff *Buff) (removed *RemoveDelta) {
	if prior, ok := s.byIcon[buff.Icon]; ok {
		removed = &RemoveDelta{Icon: buff.Icon, Delta: prior.StatModifiers}
	} else {
		s.order = append(s.order, buff.Icon)
	}
	s.byIcon[buff.Icon] = buff
	return removed
}

// Remove deletes the buff with the given icon and returns its stat delta
// for the caller to subtract, or nil if no such buff was active.
func (s *BuffSet) Remove(icon string) *RemoveDelta {
	prior, ok := s.byIcon[icon]
	if !ok {
		return nil
	}
	delete(s.byIcon, icon)
	return &RemoveDelta{Icon: icon, Delta: prior.StatModifiers}
}

// Tick advances every active buff's duration by delta and removes any
// that have expired, returning their stat deltas to subtract and the
// DoT ticks that fired this step.
func (s *BuffSet) Tick(delta time.Duration) (expired []*RemoveDelta, dotTicks []*Buff) {
	for icon, b := range s.byIcon {
		if b.Tick(delta) {
			dotTicks = append(dotTicks, b)
		}
		if b.Expired() {
			expired = append(expired, &RemoveDelta{Icon: icon, Delta: b.StatModifiers})
			delete(s.byIcon, icon)
		}
	}
	if len(expired) > 0 {
		s.compact()
	}
	return expired, dotTicks
}

func (s *BuffSet) compact() {
	order := s.order[:0]
	for _, icon := range s.order {
		if _, ok := s.byIcon[icon]; ok {
			order = append(order, icon)
		}
	}
	s.order = order
}
