package model

import "time"

// Tracking holds every piece of per-run scratch state that must never
// persist across runs (spec §3 RunTracking): "moving them into the Run is
// a correctness invariant (prevents cross-run leakage)" — this struct is
// owned exclusively by one Run and is never shared or reused.
//
// Per-enemy scratch (aggro timers, attack/leash/charge cooldowns, boss
// ability tracks) lives directly on *Enemy instead of in parallel maps
// here: an enemy's AI state only ever needs to be read and mutated
// alongside the enemy itself, so keeping it on the struct removes a
// second id-keyed lookup for every tick without losing the
// never-persists-across-runs property (a Run's *Enemy values die with
// the Run).
type Tracking struct {
	PlayerMoveIntent map[uint64]Vector2 // playerID -> last PLAYER_INPUT moveX/moveY
	PlayerMomentum   map[uint64]Vector2 // playerID -> Frozen-theme momentum vector

	TrapCooldowns   map[uint64]time.Duration // (trapID<<32 | playerID) -> remaining damage cooldown
	AmbushTriggered map[uint64]bool          // roomID -> ambush already revealed

	PlayerDeathTime    map[uint64]time.Duration // playerID -> run-clock death time
	BossFightStartTime map[uint64]time.Duration // bossEnemyID -> run-clock time combat began (kill-time loot bonus)

	ModifierTickTimes map[uint64]time.Duration // playerID -> last room-modifier damage tick time
}

// NewTracking returns an empty tracking block.
func NewTracking() *Tracking {
	return &Tracking{
		PlayerMoveIntent:   make(map[uint64]Vector2),
		PlayerMomentum:     make(map[uint64]Vector2),
		TrapCooldowns:      make(map[uint64]time.Duration),
		AmbushTriggered:    make(map[uint64]bool),
		PlayerDeathTime:    make(map[uint64]time.Duration),
		BossFightStartTime: make(map[uint64]time.Duration),
		ModifierTickTimes:  make(map[uint64]time.Duration),
	}
}

// ClearOnRespawn purges a player's death-cycle scratch state: death time,
// movement intent and momentum. The aggro and boss AoE cooldown resets of
// spec §4.7 step 17 are done by the respawn step itself, not here.
func (t *Tracking) ClearOnRespawn(playerID uint64) {
	delete(t.PlayerDeathTime, playerID)
	delete(t.PlayerMoveIntent, playerID)
	delete(t.PlayerMomentum, playerID)
}

// TrapCooldownKey packs a trap/player pair into the TrapCooldowns map key.
func TrapCooldownKey(trapID, playerID uint64) uint64 {
	return trapID<<32 | (playerID & 0xffffffff)
}

// Vector2 is a 2D float vector, used for movement intent and momentum.
type Vector2 struct {
	X, Y float64
}

// Add returns the component-wise sum.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v scaled by f.
func (v Vector2) Scale(f float64) Vector2 {
	return Vector2{X: v.X * f, Y: v.Y * f}
}
