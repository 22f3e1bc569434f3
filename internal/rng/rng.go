// Package rng provides deterministic pseudo-random streams for per-floor
// and per-loot rolls, so two runs created with the same seed produce
// identical dungeons and identical drops.
package rng

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// Source is a deterministic pseudo-random stream.
// Two Sources constructed from the same seed string produce identical
// sequences.
type Source struct {
	r *rand.Rand
}

// New constructs a Source from an arbitrary seed string. The string is
// hashed to a 64-bit seed with FNV-1a so callers can derive sub-streams
// by concatenating scope strings (see FloorSource, LootSource).
func New(seed string) *Source {
	h := fnv.New64a()
	_, _ = h.Write([]byte(seed))
	sum := h.Sum64()
	return &Source{r: rand.New(rand.NewPCG(sum, sum^0x9E3779B97F4A7C15))}
}

// FloorSource derives a per-floor stream from a run seed, so dungeon
// generation for (runSeed, floor) is reproducible independent of loot
// rolls or other floors.
func FloorSource(runSeed string, floor int) *Source {
	return New(fmt.Sprintf("%s:floor:%d", runSeed, floor))
}

// CombatSource derives the per-run combat stream (crit rolls, combo rolls)
// so a run created with a given seed resolves combat outcomes
// deterministically, independent of floor generation and loot rolls.
func CombatSource(runSeed string) *Source {
	return New(fmt.Sprintf("%s:combat", runSeed))
}

// LootSource derives a per-(run,floor,scope) stream so loot rolls for a
// given drop scope (an enemy kill, a chest open, a vendor restock) are
// reproducible without being coupled to floor-generation or other scopes'
// draws.
func LootSource(runSeed string, floor int, scope string) *Source {
	return New(fmt.Sprintf("%s:loot:%d:%s", runSeed, floor, scope))
}

// Next returns a float64 in [0,1).
func (s *Source) Next() float64 {
	return s.r.Float64()
}

// NextInt returns an int in [min,max). Panics if max <= min, matching the
// standard library's contract for invalid ranges.
func (s *Source) NextInt(min, max int) int {
	if max <= min {
		panic(fmt.Sprintf("rng: NextInt invalid range [%d,%d)", min, max))
	}
	return min + s.r.IntN(max-min)
}

// NextFloat returns a float64 in [min,max).
func (s *Source) NextFloat(min, max float64) float64 {
	return min + s.r.Float64()*(max-min)
}

// Chance returns true with probability p (p is in [0,1]; values outside
// the range are clamped).
func (s *Source) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.r.Float64() < p
}

// Pick returns a uniformly random element of slice. Panics on an empty
// slice, matching the precondition every call site already guarantees.
func Pick[T any](s *Source, slice []T) T {
	if len(slice) == 0 {
		panic("rng: Pick on empty slice")
	}
	return slice[s.r.IntN(len(slice))]
}

// Shuffle permutes slice in place using a Fisher-Yates shuffle driven by
// this stream, and returns it for chaining.
func Shuffle[T any](s *Source, slice []T) []T {
	s.r.Shuffle(len(slice), func(i, j int) {
		slice[i], slice[j] = slice[j], slice[i]
	})
	return slice
}
