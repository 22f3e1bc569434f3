package combat

import (
	"time"

	"github.com/konopkja/dungeon-link-sub001/internal/catalog"
	"github.com/konopkja/dungeon-link-sub001/internal/model"
)

// SummonFunc is injected by the ai package so CastAbility can hand off a
// summon cast without combat importing ai (spec §9's callback-injection
// shape, the same pattern as the teacher's AttackFunc/ScanFunc fields).
type SummonFunc func(run *model.Run, owner *model.Player, ability *catalog.AbilityDef, rank int)

// Resolver dispatches player-initiated ability casts. It holds the
// catalog it was built from plus any callbacks the caller wired in.
type Resolver struct {
	Catalog *catalog.Catalog
	Summon  SummonFunc // nil disables AbilitySummon casts (no-op, not a panic)
}

// NewResolver constructs a Resolver bound to cat.
func NewResolver(cat *catalog.Catalog) *Resolver {
	return &Resolver{Catalog: cat}
}

func findEntity(run *model.Run, id uint64) model.Entity {
	if p := run.PlayerByID(id); p != nil {
		return p
	}
	if e := run.EnemyByID(id); e != nil {
		return e
	}
	return nil
}

// roomEnemies returns the live enemies sharing caster's current room.
func roomEnemies(run *model.Run, roomID uint64) []*model.Enemy {
	room := run.Dungeon.RoomByID(roomID)
	if room == nil {
		return nil
	}
	out := make([]*model.Enemy, 0, len(room.Enemies))
	for _, e := range room.Enemies {
		if e.IsAlive {
			out = append(out, e)
		}
	}
	return out
}

// CastAbility resolves one PLAYER_INPUT ability cast (spec §4.4): the
// precondition pipeline runs in the exact order the spec fixes, then
// dispatches by AbilityType. Precondition failures return one of the
// sentinels in errors.go with a nil event slice and mutate nothing (spec
// §7: "silently drop — consuming zero cost, producing zero events").
func (r *Resolver) CastAbility(run *model.Run, casterID, targetID uint64, abilityID string, targetPos *model.Point) ([]Event, error) {
	caster := run.PlayerByID(casterID)
	if caster == nil || !caster.IsAlive {
		return nil, ErrCasterDead
	}

	state, known := caster.Abilities[abilityID]
	if !known {
		return nil, ErrUnknownAbility
	}
	if !state.ReadyToCast() {
		return nil, ErrOnCooldown
	}

	ability := catalog.Ability(abilityID)
	if ability == nil {
		return nil, ErrUnknownAbility
	}
	if caster.Stats.Mana < ability.ManaCost {
		return nil, ErrInsufficientMana
	}

	switch ability.Target {
	case catalog.TargetAoE:
		return r.castAoE(run, caster, state, ability, targetPos)
	case catalog.TargetSelf:
		return r.castSelf(run, caster, state, ability)
	default:
		return r.castSingle(run, caster, state, ability, targetID)
	}
}

func spendCost(caster *model.Player, state *model.AbilityState, ability *catalog.AbilityDef) {
	caster.Stats.Mana -= ability.ManaCost
	if caster.Stats.Mana < 0 {
		caster.Stats.Mana = 0
	}
	state.CooldownRemaining = catalog.ScaleCooldown(ability.Cooldown, state.Rank)
}

func (r *Resolver) castSingle(run *model.Run, caster *model.Player, state *model.AbilityState, ability *catalog.AbilityDef, targetID uint64) ([]Event, error) {
	var target model.Entity
	if targetID != 0 {
		target = findEntity(run, targetID)
	}
	// Every TargetSingle ability (damage, debuff, heal, and ally-targeted
	// buffs like Blessing of Protection) needs a live target; only
	// TargetSelf casts operate without one (spec §4.4 precondition 2:
	// "target alive").
	if target == nil {
		return nil, ErrNoTarget
	}
	if !target.IsEntityAlive() {
		return nil, ErrTargetDead
	}

	spendCost(caster, state, ability)

	switch ability.Type {
	case catalog.AbilityDamage:
		return r.castDamage(run, caster, target, ability, state.Rank)
	case catalog.AbilityDebuff:
		return r.castDebuff(run, caster, target, ability, state.Rank)
	case catalog.AbilityHeal:
		ev := Event{SourceID: caster.ID, TargetID: target.EntityID(), AbilityID: ability.ID}
		scaled := catalog.ScaleByRank(ability.BaseHeal, state.Rank)
		ev.Heal = healEntity(target, scaled)
		return []Event{ev}, nil
	case catalog.AbilityBuff:
		// Buff abilities with TargetSingle target an ally other than the
		// caster (e.g. Blessing of Protection).
		return []Event{applyBuffTo(caster, target, ability, state.Rank)}, nil
	default:
		return nil, nil
	}
}

func (r *Resolver) castSelf(run *model.Run, caster *model.Player, state *model.AbilityState, ability *catalog.AbilityDef) ([]Event, error) {
	spendCost(caster, state, ability)

	switch ability.Type {
	case catalog.AbilityUtility:
		// Meditation: instant mana restore, no buff attached (spec §4.4:
		// "Meditation instantly restores mana; no buff is attached").
		restore := catalog.ScaleByRank(20, state.Rank)
		before := caster.Stats.Mana
		caster.Stats.Mana += restore
		if caster.Stats.Mana > caster.Stats.MaxMana {
			caster.Stats.Mana = caster.Stats.MaxMana
		}
		return []Event{{SourceID: caster.ID, TargetID: caster.ID, AbilityID: ability.ID, ManaRestore: caster.Stats.Mana - before}}, nil
	case catalog.AbilityBuff:
		return []Event{applyBuffTo(caster, caster, ability, state.Rank)}, nil
	case catalog.AbilitySummon:
		if r.Summon != nil {
			r.Summon(run, caster, ability, state.Rank)
		}
		return []Event{{SourceID: caster.ID, TargetID: caster.ID, AbilityID: ability.ID}}, nil
	default:
		return nil, nil
	}
}

func (r *Resolver) castAoE(run *model.Run, caster *model.Player, state *model.AbilityState, ability *catalog.AbilityDef, targetPos *model.Point) ([]Event, error) {
	if targetPos == nil {
		return nil, ErrNoTargetPosition
	}
	// Mana and cooldown are spent once up front, independent of how many
	// enemies the AoE actually strikes (spec §4.4 step 3: AoE casts deduct
	// cost before iterating targets).
	spendCost(caster, state, ability)

	var events []Event
	for _, e := range roomEnemies(run, caster.RoomID) {
		ev, _ := ResolveDamage(r.Catalog, run.CombatRNG, caster, e, ability, state.Rank, 1.0)
		events = append(events, ev)
	}
	return events, nil
}

// applyBuffTo constructs and inserts a buff from ability onto target,
// returning an Event reflecting the cast (no damage/heal payload).
func applyBuffTo(caster *model.Player, target model.Entity, ability *catalog.AbilityDef, rank int) Event {
	buff := &model.Buff{
		Icon:          ability.IconKey(),
		Duration:      ability.BuffDuration,
		MaxDuration:   ability.BuffDuration,
		Rank:          rank,
		StatModifiers: catalog.ScaleStatsByRank(ability.StatDeltas, rank),
		SourceID:      caster.ID,
	}
	if removed := target.EntityBuffs().Apply(buff); removed != nil {
		stats := target.EntityStats()
		stats = model.SubStats(stats, removed.Delta)
		target.SetEntityStats(stats)
	}
	stats := target.EntityStats()
	stats = model.AddStats(stats, buff.StatModifiers)
	target.SetEntityStats(stats)
	return Event{SourceID: caster.ID, TargetID: target.EntityID(), AbilityID: ability.ID}
}

// castDamage dispatches a single-target damage ability, applying the
// named combo bonuses spec §4.4 calls out by ID pair.
func (r *Resolver) castDamage(run *model.Run, caster *model.Player, target model.Entity, ability *catalog.AbilityDef, rank int) ([]Event, error) {
	switch ability.ID {
	case "mage_fireball":
		return r.castFireball(run, caster, target, ability, rank)
	case "paladin_crusader_strike":
		return r.castCrusaderStrike(run, caster, target, ability, rank)
	case "rogue_stab":
		return r.castSinisterStrike(run, caster, target, ability, rank)
	case "warlock_drain":
		return r.castDrainLife(run, caster, target, ability, rank)
	case "mage_blaze":
		return r.castBlaze(run, caster, target, ability, rank)
	default:
		ev, _ := ResolveDamage(r.Catalog, run.CombatRNG, caster, target, ability, rank, 1.0)
		return []Event{ev}, nil
	}
}

// castDebuff dispatches a single-target debuff ability (stuns and the
// Hellfire DoT).
func (r *Resolver) castDebuff(run *model.Run, caster *model.Player, target model.Entity, ability *catalog.AbilityDef, rank int) ([]Event, error) {
	if ability.ID == "warlock_hellfire" {
		return r.castHellfire(run, caster, target, ability, rank)
	}

	// Judgment/Pyroblast: always apply their stun on cast, independent of
	// a crit roll (spec §4.4: "rank-scaled duration... always applies").
	buff := &model.Buff{
		Icon:        ability.IconKey(),
		Duration:    catalog.ScaleDuration(ability.StunDuration, rank),
		MaxDuration: catalog.ScaleDuration(ability.StunDuration, rank),
		IsDebuff:    true,
		IsStun:      true,
		Rank:        rank,
		SourceID:    caster.ID,
	}
	if removed := target.EntityBuffs().Apply(buff); removed != nil {
		stats := target.EntityStats()
		target.SetEntityStats(model.SubStats(stats, removed.Delta))
	}
	return []Event{{SourceID: caster.ID, TargetID: target.EntityID(), AbilityID: ability.ID}}, nil
}

// castFireball: Fireball deals +50% damage if target is currently stunned
// by Pyroblast (spec §4.4 combo list).
func (r *Resolver) castFireball(run *model.Run, caster *model.Player, target model.Entity, ability *catalog.AbilityDef, rank int) ([]Event, error) {
	mult := 1.0
	if target.EntityBuffs().Has("mage_pyroblast") {
		mult = 1.5
	}
	ev, _ := ResolveDamage(r.Catalog, run.CombatRNG, caster, target, ability, rank, mult)
	return []Event{ev}, nil
}

// castCrusaderStrike: +50% damage if target is stunned by Judgment, and on
// that combo the paladin self-heals 30% of the dealt damage (spec §4.4
// combo list).
func (r *Resolver) castCrusaderStrike(run *model.Run, caster *model.Player, target model.Entity, ability *catalog.AbilityDef, rank int) ([]Event, error) {
	judged := target.EntityBuffs().Has("paladin_judgment")
	mult := 1.0
	if judged {
		mult = 1.5
	}
	ev, dealt := ResolveDamage(r.Catalog, run.CombatRNG, caster, target, ability, rank, mult)
	if judged {
		ev.Heal += healEntity(caster, dealt*30/100)
	}
	return []Event{ev}, nil
}

// castSinisterStrike: doubles damage and consumes Stealth if the rogue
// cast from it (spec §4.4 combo list: "Sinister Strike from Stealth").
func (r *Resolver) castSinisterStrike(run *model.Run, caster *model.Player, target model.Entity, ability *catalog.AbilityDef, rank int) ([]Event, error) {
	fromStealth := caster.Buffs.Has("rogue_stealth")
	mult := 1.0
	if fromStealth {
		mult = 2.0
	}
	ev, _ := ResolveDamage(r.Catalog, run.CombatRNG, caster, target, ability, rank, mult)
	ev.IsStealthAttack = fromStealth
	if fromStealth {
		if removed := caster.Buffs.Remove("rogue_stealth"); removed != nil {
			caster.Stats = model.SubStats(caster.Stats, removed.Delta)
		}
	}
	return []Event{ev}, nil
}

// castDrainLife: heals the warlock for the full dealt damage. If the
// primary target is already burning from Hellfire, every *other* burning
// enemy in the room is drained too, each for 50% damage/heal, aggregated
// into the same heal total (spec §4.4 combo list: "Drain Life + Hellfire
// room-wide").
func (r *Resolver) castDrainLife(run *model.Run, caster *model.Player, target model.Entity, ability *catalog.AbilityDef, rank int) ([]Event, error) {
	ev, dealt := ResolveDamage(r.Catalog, run.CombatRNG, caster, target, ability, rank, 1.0)
	totalHeal := dealt
	events := []Event{ev}

	if target.EntityBuffs().Has("warlock_hellfire") {
		for _, e := range roomEnemies(run, caster.RoomID) {
			if e.EntityID() == target.EntityID() || !e.Debuffs.Has("warlock_hellfire") {
				continue
			}
			secEv, secDealt := ResolveDamage(r.Catalog, run.CombatRNG, caster, e, ability, rank, 0.5)
			totalHeal += secDealt
			events = append(events, secEv)
		}
	}

	events[0].Heal += healEntity(caster, totalHeal)
	return events, nil
}

// castBlaze: if the target is currently stunned by Pyroblast, every other
// living enemy in the room is also stunned for 2 seconds (spec §4.4 combo
// list: "Blaze + Pyroblast room-wide stun").
func (r *Resolver) castBlaze(run *model.Run, caster *model.Player, target model.Entity, ability *catalog.AbilityDef, rank int) ([]Event, error) {
	ev, _ := ResolveDamage(r.Catalog, run.CombatRNG, caster, target, ability, rank, 1.0)
	events := []Event{ev}

	if target.EntityBuffs().Has("mage_pyroblast") {
		for _, e := range roomEnemies(run, caster.RoomID) {
			if e.EntityID() == target.EntityID() {
				continue
			}
			buff := &model.Buff{
				Icon:        "mage_blaze_stun",
				Duration:    2 * time.Second,
				MaxDuration: 2 * time.Second,
				IsDebuff:    true,
				IsStun:      true,
				SourceID:    caster.ID,
			}
			if removed := e.Debuffs.Apply(buff); removed != nil {
				e.Stats = model.SubStats(e.Stats, removed.Delta)
			}
			events = append(events, Event{SourceID: caster.ID, TargetID: e.ID, AbilityID: ability.ID})
		}
	}

	return events, nil
}

// castHellfire attaches a DoT worth 50% of a notional single hit's damage,
// split evenly across ability.TickCount ticks, without ever striking the
// target directly (spec §4.4: "Hellfire attaches a burn worth 50% of the
// dealt damage over its tick count").
func (r *Resolver) castHellfire(run *model.Run, caster *model.Player, target model.Entity, ability *catalog.AbilityDef, rank int) ([]Event, error) {
	dealt, _ := computeHitDamage(run.CombatRNG, caster, target, ability, rank, 1.0)
	totalBurn := dealt / 2
	perTick := totalBurn / ability.TickCount
	if perTick < 1 {
		perTick = 1
	}

	buff := &model.Buff{
		Icon:          ability.IconKey(),
		Duration:      ability.TickInterval * time.Duration(ability.TickCount),
		MaxDuration:   ability.TickInterval * time.Duration(ability.TickCount),
		IsDebuff:      true,
		Rank:          rank,
		DamagePerTick: perTick,
		TickInterval:  ability.TickInterval,
		SourceID:      caster.ID,
	}
	target.EntityBuffs().Apply(buff)

	return []Event{{SourceID: caster.ID, TargetID: target.EntityID(), AbilityID: ability.ID}}, nil
}

// ResolveBladeFlurryCleave returns the secondary cleave targets an
// auto-attack should also strike when the attacker has Blade Flurry
// active (spec §4.4: "Blade Flurry cleaves the attack to every other
// enemy in the room"). Exported for the tick scheduler's auto-attack step
// rather than folded into CastAbility, since Blade Flurry modifies basic
// attacks, not a cast.
func ResolveBladeFlurryCleave(run *model.Run, attacker *model.Player, primaryTargetID uint64) []*model.Enemy {
	if !attacker.Buffs.Has("rogue_blade_flurry") {
		return nil
	}
	var out []*model.Enemy
	for _, e := range roomEnemies(run, attacker.RoomID) {
		if e.ID != primaryTargetID {
			out = append(out, e)
		}
	}
	return out
}
