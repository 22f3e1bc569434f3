package model

import "sync/atomic"

// IDGenerator hands out unique entity IDs scoped to a single Run. Per
// spec invariant 1 ("every entity ID is unique within a Run") and the
// design note on arena-style ownership, IDs are Run-local counters, not a
// server-wide sequence — mirrors the teacher's per-world ObjectID
// allocator in internal/world/objectid.go, scoped down to one Run.
type IDGenerator struct {
	counter atomic.Uint64
}

// NewIDGenerator returns a generator whose first allocated ID is 1 (0 is
// reserved to mean "no target"/"no owner").
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// Next returns the next unique ID from this generator.
func (g *IDGenerator) Next() uint64 {
	return g.counter.Add(1)
}
