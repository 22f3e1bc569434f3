// Package tick runs the fixed-rate simulation loop for one Run (spec
// §4.7 Tick Scheduler). Advance is the pure per-tick step function —
// movement, hazards, AI, combat, loot, and respawn all run synchronously
// against one Run's state, in the numbered step order of spec §4.7:
// movement -> hazards -> player auto-attacks -> AI/boss -> DoTs -> pet AI
// -> clear-check -> ground-effects -> pet-follow -> respawn.
//
// Grounded on the teacher's internal/ai.TickManager (time.Ticker-driven
// loop, context-cancellable, slog progress logging) generalized from
// "tick every registered NPC controller once a second" to "tick every
// registered Run's entire simulation once per the configured interval."
package tick

import (
	"context"
	"log/slog"
	"time"

	"github.com/konopkja/dungeon-link-sub001/internal/ai"
	"github.com/konopkja/dungeon-link-sub001/internal/catalog"
	"github.com/konopkja/dungeon-link-sub001/internal/combat"
	"github.com/konopkja/dungeon-link-sub001/internal/model"
)

// DefaultInterval is the scheduler's fixed tick rate (spec §4.7: "default:
// sub-100ms").
const DefaultInterval = 80 * time.Millisecond

const (
	manaRegenFractionPerSecond = 0.05 // 5% of MaxMana/sec, ambient regen rate spec.md leaves unspecified
	autoAttackCooldown         = 1500 * time.Millisecond
	meleeAutoAttackRange       = 60
	rangedAutoAttackRange      = 300

	RespawnDelay          = 3 * time.Second
	respawnPurgeRadius    = 150
	ambushTriggerDistance = 150

	burningTickInterval = 2 * time.Second
)

// Result is everything one Advance call produced, for the broadcast layer
// and reward-oracle bridge to consume (spec §4.7 "Emit, per run per
// tick...").
type Result struct {
	CombatEvents    []combat.Event
	TauntEvents     []TauntEvent
	ItemsCollected  []ItemCollected
	BossPhaseEvents []BossPhaseEvent
	PendingLoot     []model.LootDrop
	FloorComplete   bool
}

// TauntEvent mirrors the server's TAUNT_EVENT wire shape (spec §6).
type TauntEvent struct {
	PetID   uint64
	OwnerID uint64
}

// ItemCollected mirrors ITEM_COLLECTED (spec §6).
type ItemCollected struct {
	PlayerID uint64
	ItemID   string
}

// BossPhaseEvent mirrors BOSS_PHASE_CHANGE (spec §6); emitted on boss
// death ("emit boss defeated", spec §4.7 step 14).
type BossPhaseEvent struct {
	BossID  string
	EnemyID uint64
	Phase   string
}

// Advance runs one full tick of spec §4.7's 17-step pipeline against run,
// returning everything produced. PLAYER_INPUT casts are not resolved
// here; the intent layer handles them before Advance runs.
func Advance(run *model.Run, cat *catalog.Catalog, dt time.Duration) Result {
	var res Result

	updatePlayerCooldownsAndBuffs(run, cat, dt, &res)         // step 1
	applyPlayerMovement(run, cat, dt)                         // step 2
	handleRoomTransitions(run, cat)                           // step 3
	collectGroundItems(run, cat, &res)                        // step 4
	applyHazardDamage(run, cat, dt, &res)                     // step 5
	advanceTrapPhases(run, dt)                                // step 6
	ai.ReassignPatrolsIntoCurrentRoom(run)                    // step 7
	triggerAmbush(run)                                        // step 8
	applyRoomModifiers(run, cat, dt, &res)                     // step 9
	runPlayerAutoAttacks(run, cat, dt, &res)                  // step 10
	events := ai.RunTick(run, cat, dt)                        // step 11
	ai.UpdateIdleRooms(run, dt)
	res.CombatEvents = append(res.CombatEvents, events...)
	tickEnemyDots(run, dt, &res)                               // step 12
	runPetAI(run, dt, &res)                                   // step 13
	checkRoomClear(run, cat, dt, &res)                        // step 14
	advanceGroundEffects(run, dt, &res)                       // step 15
	followOwners(run, dt)                                     // step 16
	respawnDeadPlayers(run, cat, dt)                           // step 17

	run.Clock += dt
	return res
}

// Scheduler drives Advance continuously for every Run a RunSource
// currently reports, on a fixed ticker — the same blocking,
// context-cancellable shape as the teacher's TickManager.Start.
type Scheduler struct {
	Catalog  *catalog.Catalog
	Interval time.Duration

	// Runs returns the set of Runs to advance this tick. Wired to the
	// run registry in cmd/server.
	Runs func() []*model.Run

	// OnResult is called once per Run per tick with the step's output,
	// for the delta-broadcast layer to consume. May be nil in tests.
	OnResult func(run *model.Run, res Result)
}

// Start blocks, advancing every registered Run once per Interval, until
// ctx is canceled.
func (s *Scheduler) Start(ctx context.Context) error {
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("tick scheduler started", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("tick scheduler stopping")
			return ctx.Err()
		case <-ticker.C:
			s.tickAll(interval)
		}
	}
}

func (s *Scheduler) tickAll(dt time.Duration) {
	if s.Runs == nil {
		return
	}
	for _, run := range s.Runs() {
		res := Advance(run, s.Catalog, dt)
		if s.OnResult != nil {
			s.OnResult(run, res)
		}
	}
}
