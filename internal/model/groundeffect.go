package model

import (
	"math"
	"time"

	"github.com/konopkja/dungeon-link-sub001/internal/catalog"
)

// GroundEffectKind re-exports catalog's AoE shape tag.
type GroundEffectKind = catalog.GroundEffectKind

// GroundEffect is a transient damaging volume spawned by a boss or elite
// ability (spec §3 GroundEffect).
type GroundEffect struct {
	ID           uint64
	Kind         GroundEffectKind
	Position     Point
	Direction    *Point // MovingWave
	Speed        float64
	Radius       float64
	MaxRadius    float64
	Damage       int
	TickInterval time.Duration
	Duration     time.Duration
	SourceID     uint64

	Angle float64 // RotatingBeam current facing, radians

	lastTickByPlayer map[uint64]time.Duration // per-player per-effect tick cadence (§4.7 step 15)
	ageElapsed       time.Duration
}

// NewGroundEffect constructs a ground effect ready to advance.
func NewGroundEffect(id uint64, kind GroundEffectKind, pos Point) *GroundEffect {
	return &GroundEffect{
		ID:               id,
		Kind:             kind,
		Position:         pos,
		lastTickByPlayer: make(map[uint64]time.Duration),
	}
}

// Expired reports whether the effect's lifetime has elapsed.
func (g *GroundEffect) Expired() bool {
	return g.Duration <= 0
}

// Age advances the effect's remaining duration and internal age by delta.
func (g *GroundEffect) Age(delta time.Duration) {
	g.Duration -= delta
	g.ageElapsed += delta
}

// AdvanceRadius grows Radius linearly toward MaxRadius over growDuration
// (spec §4.7 step 15: "expanding/void grow toward maxRadius in 3-4s"),
// based on the effect's own age so growth rate is independent of how
// often the caller happens to invoke it.
func (g *GroundEffect) AdvanceRadius(growDuration time.Duration) {
	if growDuration <= 0 || g.MaxRadius <= 0 {
		return
	}
	frac := g.ageElapsed.Seconds() / growDuration.Seconds()
	if frac > 1 {
		frac = 1
	}
	g.Radius = g.MaxRadius * frac
}

// ReadyToTick reports and records whether playerID may take another
// damage tick from this effect, given the effect's TickInterval — this is
// the "per-player per-effect tick cadence" enforcement spec §4.7 step 15
// requires.
func (g *GroundEffect) ReadyToTick(playerID uint64, now time.Duration) bool {
	last, ok := g.lastTickByPlayer[playerID]
	if ok && now-last < g.TickInterval {
		return false
	}
	g.lastTickByPlayer[playerID] = now
	return true
}

// Contains reports whether p is inside the effect's current damaging
// volume. For RotatingBeam the volume is the ±0.35 rad cone named in
// spec §4.7 step 15; other kinds are simple radius checks.
func (g *GroundEffect) Contains(p Point) bool {
	switch g.Kind {
	case catalog.EffectRotatingBeam:
		return beamContains(g, p)
	default:
		return DistSq(g.Position, p) <= int64(g.Radius*g.Radius)
	}
}

func beamContains(g *GroundEffect, p Point) bool {
	const coneHalfWidth = 0.35
	dx, dy := float64(p.X-g.Position.X), float64(p.Y-g.Position.Y)
	distSq := dx*dx + dy*dy
	if distSq > g.Radius*g.Radius {
		return false
	}
	angleTo := angleOf(dx, dy)
	diff := angleTo - g.Angle
	for diff > math.Pi {
		diff -= 2 * math.Pi
	}
	for diff < -math.Pi {
		diff += 2 * math.Pi
	}
	if diff < 0 {
		diff = -diff
	}
	return diff <= coneHalfWidth
}
