package model

import (
	"time"

	"github.com/konopkja/dungeon-link-sub001/internal/catalog"
)

// EnemyKind re-exports catalog's melee/ranged/caster tag.
type EnemyKind = catalog.EnemyKind

// Enemy is one hostile NPC instance (spec §3 Enemy).
type Enemy struct {
	ID         uint64
	TemplateID string // catalog.EnemyDef.ID
	Kind       EnemyKind
	Stats      Stats
	Debuffs    *BuffSet
	TargetID   uint64 // 0 = no target

	IsAlive  bool
	IsBoss   bool
	IsRare   bool
	IsElite  bool
	IsHidden bool // ambush rooms: revealed on trigger (§4.7 step 8)
	BossID   string

	SpawnPosition  Point
	Position       Point
	OriginalRoomID uint64
	CurrentRoomID  uint64

	// Patrol fields (§3, §4.2 step 7, §4.5 idle rooms).
	IsPatrolling        bool
	PatrolWaypoints     []Point
	CurrentWaypointIdx  int
	PatrolDirection     int // +1 forward, -1 reversing
	WasPatrolling       bool

	// AI state (§4.5). AggroStartAt/AttackCooldown/LeashTimer are
	// run-clock-relative durations, advanced alongside Run.Clock.
	HasAggroStart   bool
	AggroStartAt    time.Duration
	AttackCooldown  time.Duration
	LeashTimer      time.Duration
	DistFromSpawn   int64

	IsCharging      bool
	ChargeElapsed   time.Duration
	ChargeTarget    Point

	// Boss-only cooldown tracks (§4.5 "Bosses additionally run two
	// independent cooldown tracks").
	AbilityCooldowns map[string]time.Duration
	AoECooldown      time.Duration
}

// NewEnemy constructs a live enemy at spawnPos.
func NewEnemy(id uint64, templateID string, kind EnemyKind, stats Stats, spawnPos Point, roomID uint64) *Enemy {
	return &Enemy{
		ID:             id,
		TemplateID:     templateID,
		Kind:           kind,
		Stats:          stats,
		Debuffs:        NewBuffSet(),
		IsAlive:        true,
		SpawnPosition:  spawnPos,
		Position:       spawnPos,
		OriginalRoomID: roomID,
		CurrentRoomID:  roomID,
		PatrolDirection: 1,
	}
}

// ApplyDamage subtracts dmg from health, clamped at 0, and marks the
// enemy dead at 0 HP.
func (e *Enemy) ApplyDamage(dmg int) {
	e.Stats.Health -= dmg
	if e.Stats.Health <= 0 {
		e.Stats.Health = 0
		e.IsAlive = false
		e.TargetID = 0
	}
}

// Heal adds amount to health, clamped at MaxHealth.
func (e *Enemy) Heal(amount int) {
	e.Stats.Health += amount
	if e.Stats.Health > e.Stats.MaxHealth {
		e.Stats.Health = e.Stats.MaxHealth
	}
}

// FullHeal restores health to MaxHealth.
func (e *Enemy) FullHeal() {
	e.Stats.Health = e.Stats.MaxHealth
}

// ClearPatrol resets the patrol fields when an enemy engages in combat
// (spec §4.5 step 2: "clear patrol fields, mark wasPatrolling=true").
func (e *Enemy) ClearPatrol() {
	e.IsPatrolling = false
	e.WasPatrolling = true
	e.PatrolWaypoints = nil
	e.CurrentWaypointIdx = 0
}
