package tick

import (
	"fmt"
	"time"

	"github.com/konopkja/dungeon-link-sub001/internal/catalog"
	"github.com/konopkja/dungeon-link-sub001/internal/combat"
	"github.com/konopkja/dungeon-link-sub001/internal/loot"
	"github.com/konopkja/dungeon-link-sub001/internal/model"
	"github.com/konopkja/dungeon-link-sub001/internal/rng"
)

// runPlayerAutoAttacks runs spec §4.7 step 10: every alive player with a
// live, in-range target and an expired auto-attack cooldown lands a
// basic_attack hit, cleaved to every other enemy in the room if Blade
// Flurry is active, with any equipped-set on-hit heal applied afterward.
func runPlayerAutoAttacks(run *model.Run, cat *catalog.Catalog, dt time.Duration, res *Result) {
	ability := catalog.Ability("basic_attack")
	if ability == nil || run.Dungeon == nil {
		return
	}

	for _, p := range run.Players {
		if !p.IsAlive || p.TargetID == 0 || p.AutoAttackCooldown > 0 {
			continue
		}
		target := run.EnemyByID(p.TargetID)
		if target == nil || !target.IsAlive {
			continue
		}
		if model.DistSq(p.Position, target.Position) > int64(autoAttackRange(p)*autoAttackRange(p)) {
			continue
		}

		p.AutoAttackCooldown = autoAttackCooldown
		if p.Buffs.Has("rogue_blade_flurry") {
			p.AutoAttackCooldown /= 2
		}
		ev, _ := combat.ResolveDamage(cat, run.CombatRNG, p, target, ability, 1, 1.0)
		res.CombatEvents = append(res.CombatEvents, ev)
		trackBossEngagement(run, target)
		applySetOnHitHeal(run, cat, p, &res.CombatEvents)

		for _, cleaveTarget := range combat.ResolveBladeFlurryCleave(run, p, target.ID) {
			cev, _ := combat.ResolveDamage(cat, run.CombatRNG, p, cleaveTarget, ability, 1, 1.0)
			res.CombatEvents = append(res.CombatEvents, cev)
			trackBossEngagement(run, cleaveTarget)
		}
	}
}

// autoAttackRange classifies a player as melee or ranged by which power
// stat dominates (spec §4.7 step 10: "melee=60, ranged=300"), the same
// dominant-power idea the combat resolver's damage pipeline already uses
// to pick armor vs. resist.
func autoAttackRange(p *model.Player) int {
	if p.Stats.AttackPower >= p.Stats.SpellPower {
		return meleeAutoAttackRange
	}
	return rangedAutoAttackRange
}

// trackBossEngagement records the run-clock time a boss first takes
// damage, feeding the kill-time loot bonus computed in checkRoomClear.
func trackBossEngagement(run *model.Run, e *model.Enemy) {
	if !e.IsBoss {
		return
	}
	if _, tracked := run.Tracking.BossFightStartTime[e.ID]; !tracked {
		run.Tracking.BossFightStartTime[e.ID] = run.Clock
	}
}

// applySetOnHitHeal applies the "crypt_relic" 2pc (and any future
// OnHitHeal threshold) to the attacker on a landed auto-attack, per spec
// §4.4's set-bonus note.
func applySetOnHitHeal(run *model.Run, cat *catalog.Catalog, p *model.Player, events *[]combat.Event) {
	for setID, count := range p.EquippedSetCounts(cat) {
		def := cat.Sets[setID]
		if def == nil {
			continue
		}
		for _, th := range def.ActiveThresholds(count) {
			if th.OnHitHeal <= 0 {
				continue
			}
			stats := p.Stats
			before := stats.Health
			stats.Health += th.OnHitHeal
			if stats.Health > stats.MaxHealth {
				stats.Health = stats.MaxHealth
			}
			p.Stats = stats
			if healed := stats.Health - before; healed > 0 {
				*events = append(*events, combat.Event{SourceID: p.ID, TargetID: p.ID, Heal: healed})
			}
		}
	}
}

// tickEnemyDots runs spec §4.7 step 12: every enemy debuff advances its
// tick accumulator, applying resist-mitigated damage on each fired tick
// and unwinding its stat delta on expiry.
func tickEnemyDots(run *model.Run, dt time.Duration, res *Result) {
	if run.Dungeon == nil {
		return
	}
	for _, room := range run.Dungeon.Rooms {
		for _, e := range room.Enemies {
			if !e.IsAlive {
				continue
			}
			expired, dots := e.Debuffs.Tick(dt)
			for _, b := range dots {
				res.CombatEvents = append(res.CombatEvents, applyDotTick(e, b))
			}
			for _, ex := range expired {
				e.Stats = model.SubStats(e.Stats, ex.Delta)
			}
		}
	}
}

// checkRoomClear runs spec §4.7 step 14: process enemies this tick's
// combat events killed, award XP and loot, mark newly-empty rooms
// cleared, and emit boss-defeated on a boss room's clear.
func checkRoomClear(run *model.Run, cat *catalog.Catalog, dt time.Duration, res *Result) {
	if run.Dungeon == nil {
		return
	}
	for _, room := range run.Dungeon.Rooms {
		wasCleared := room.Cleared
		for _, ev := range res.CombatEvents {
			if !ev.Killed {
				continue
			}
			e := enemyInRoom(room, ev.TargetID)
			if e == nil {
				continue
			}
			handleEnemyDeath(run, cat, room, e, ev.SourceID, res)
		}
		room.RecomputeCleared()
		if !wasCleared && room.Cleared && room.Type == model.RoomBoss {
			run.Dungeon.BossDefeated = true
			res.FloorComplete = true
		}
	}
}

func enemyInRoom(room *model.Room, id uint64) *model.Enemy {
	for _, e := range room.Enemies {
		if e.ID == id && !e.IsAlive {
			return e
		}
	}
	return nil
}

// handleEnemyDeath awards the killer XP and rolls loot for e (spec §4.7
// step 14, S1 scenario: "handleEnemyDeath awards XP... auto-targets next
// closest if any").
func handleEnemyDeath(run *model.Run, cat *catalog.Catalog, room *model.Room, e *model.Enemy, killerID uint64, res *Result) {
	killer := run.PlayerByID(killerID)
	if killer != nil {
		killer.Level, killer.XP = catalog.ApplyXP(killer.Level, killer.XP, xpForEnemy(e))
		if killer.TargetID == e.ID {
			killer.TargetID = nextClosestTarget(room, killer)
		}
	}

	def := cat.Enemies[e.TemplateID]
	if def == nil {
		return
	}
	isBossOrRare := e.IsBoss || e.IsRare
	elapsed := enemyFightDuration(run, e)
	srcLabel := "kill"
	switch {
	case e.IsBoss:
		srcLabel = "boss"
	case e.IsRare:
		srcLabel = "rare"
	}

	source := rng.LootSource(run.Seed, run.Floor, fmt.Sprintf("kill:%d", e.ID))
	drops := loot.RollEnemyDrops(source, def, killerID, elapsed, isBossOrRare, srcLabel)
	run.PendingLoot = append(run.PendingLoot, drops...)
	res.PendingLoot = append(res.PendingLoot, drops...)

	if setPiece := loot.RollSetPiece(source, cat, isBossOrRare); setPiece != "" {
		drop := model.LootDrop{PlayerID: killerID, ItemID: setPiece, Source: srcLabel}
		run.PendingLoot = append(run.PendingLoot, drop)
		res.PendingLoot = append(res.PendingLoot, drop)
	}

	if e.IsBoss {
		res.BossPhaseEvents = append(res.BossPhaseEvents, BossPhaseEvent{
			BossID: e.BossID, EnemyID: e.ID, Phase: "defeated",
		})
	}
}

// xpForEnemy computes the XP reward for killing e. spec.md does not fix
// an XP formula; this follows the same proportional-to-max-health shape
// the catalog already uses for item power and damage scaling, multiplied
// by 10 for boss kills and by 3 for rare kills.
func xpForEnemy(e *model.Enemy) int64 {
	base := int64(e.Stats.MaxHealth / 2)
	if base < 5 {
		base = 5
	}
	if e.IsBoss {
		return base * 10
	}
	if e.IsRare {
		return base * 3
	}
	return base
}

// nextClosestTarget finds the nearest living enemy in room to p, for the
// auto-target-next behavior spec's S1 scenario names.
func nextClosestTarget(room *model.Room, p *model.Player) uint64 {
	var best *model.Enemy
	var bestDist int64
	for _, e := range room.Enemies {
		if !e.IsAlive {
			continue
		}
		d := model.DistSq(p.Position, e.Position)
		if best == nil || d < bestDist {
			best, bestDist = e, d
		}
	}
	if best == nil {
		return 0
	}
	return best.ID
}

// enemyFightDuration estimates how long e has been in combat, for the
// kill-time loot bonus (spec §4.7 step 14). Bosses use the engagement
// time recorded in trackBossEngagement; other enemies use their own
// aggro-start clock, falling back to "slow kill" (no bonus) if neither
// was ever set.
func enemyFightDuration(run *model.Run, e *model.Enemy) time.Duration {
	if e.IsBoss {
		if start, ok := run.Tracking.BossFightStartTime[e.ID]; ok {
			return run.Clock - start
		}
		return 999 * time.Second
	}
	if e.HasAggroStart {
		return run.Clock - e.AggroStartAt
	}
	return 999 * time.Second
}
