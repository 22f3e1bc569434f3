package combat

import (
	"errors"
	"testing"
	"time"

	"github.com/konopkja/dungeon-link-sub001/internal/catalog"
	"github.com/konopkja/dungeon-link-sub001/internal/model"
)

func testRun(t *testing.T) *model.Run {
	t.Helper()
	catalog.Load()
	run := model.NewRun(1, "fixed-seed")
	run.Dungeon = &model.Dungeon{CurrentRoomID: 1}
	return run
}

func testPlayer(id uint64, classID string, roomID uint64) *model.Player {
	p := model.NewPlayer(id, "p", classID, catalog.Instance())
	p.RoomID = roomID
	p.Stats.Mana = 999
	p.Stats.MaxMana = 999
	p.Stats.Health = 200
	p.Stats.MaxHealth = 200
	p.Stats.Crit = 0 // deterministic: no crits unless a test wants one
	return p
}

func testEnemy(id uint64, roomID uint64) *model.Enemy {
	e := model.NewEnemy(id, "test", catalog.EnemyMelee, model.Stats{
		Health: 500, MaxHealth: 500, Armor: 0, Resist: 0,
	}, model.Point{}, roomID)
	return e
}

func withRoomEnemies(run *model.Run, roomID uint64, enemies ...*model.Enemy) {
	room := model.NewRoom(roomID, model.Rect{W: 100, H: 100}, model.RoomNormal)
	room.Enemies = enemies
	run.Dungeon.Rooms = []*model.Room{room}
	run.Dungeon.CurrentRoomID = roomID
}

func TestCastAbilityUnknownAbility(t *testing.T) {
	run := testRun(t)
	p := testPlayer(1, "warrior", 1)
	run.Players = []*model.Player{p}
	r := NewResolver(catalog.Instance())

	_, err := r.CastAbility(run, p.ID, 0, "not_a_real_ability", nil)
	if !errors.Is(err, ErrUnknownAbility) {
		t.Fatalf("expected ErrUnknownAbility, got %v", err)
	}
}

func TestCastAbilityOnCooldown(t *testing.T) {
	run := testRun(t)
	p := testPlayer(1, "warrior", 1)
	p.Abilities["warrior_strike"].CooldownRemaining = time.Second
	run.Players = []*model.Player{p}
	e := testEnemy(10, 1)
	withRoomEnemies(run, 1, e)
	r := NewResolver(catalog.Instance())

	_, err := r.CastAbility(run, p.ID, e.ID, "warrior_strike", nil)
	if !errors.Is(err, ErrOnCooldown) {
		t.Fatalf("expected ErrOnCooldown, got %v", err)
	}
}

func TestCastAbilityInsufficientMana(t *testing.T) {
	run := testRun(t)
	p := testPlayer(1, "warrior", 1)
	p.Stats.Mana = 0
	run.Players = []*model.Player{p}
	e := testEnemy(10, 1)
	withRoomEnemies(run, 1, e)
	r := NewResolver(catalog.Instance())

	_, err := r.CastAbility(run, p.ID, e.ID, "warrior_strike", nil)
	if !errors.Is(err, ErrInsufficientMana) {
		t.Fatalf("expected ErrInsufficientMana, got %v", err)
	}
	if p.Stats.Mana != 0 {
		t.Fatal("a no-op precondition failure must not mutate mana")
	}
}

func TestCastAbilityDeadTargetIsNoOpWithoutSpendingCost(t *testing.T) {
	run := testRun(t)
	p := testPlayer(1, "warrior", 1)
	manaBefore := p.Stats.Mana
	run.Players = []*model.Player{p}
	e := testEnemy(10, 1)
	e.IsAlive = false
	withRoomEnemies(run, 1, e)
	r := NewResolver(catalog.Instance())

	state := p.Abilities["warrior_strike"]
	cdBefore := state.CooldownRemaining

	_, err := r.CastAbility(run, p.ID, e.ID, "warrior_strike", nil)
	if !errors.Is(err, ErrTargetDead) {
		t.Fatalf("expected ErrTargetDead, got %v", err)
	}
	if p.Stats.Mana != manaBefore {
		t.Fatal("dead-target no-op must not spend mana")
	}
	if state.CooldownRemaining != cdBefore {
		t.Fatal("dead-target no-op must not start a cooldown")
	}
}

func TestArmorMitigationFormula(t *testing.T) {
	// spec §8.1: reduction = 100/(100+armor).
	got := mitigatedDamage(200, 100)
	want := 100 // 200 * 100/(100+100) = 100
	if got != want {
		t.Fatalf("mitigatedDamage(200,100) = %d, want %d", got, want)
	}
	if mitigatedDamage(200, 0) != 200 {
		t.Fatal("zero armor must not mitigate damage")
	}
}

func TestStealthRejectsIncomingAttack(t *testing.T) {
	target := testPlayer(1, "rogue", 1)
	target.Buffs.Apply(&model.Buff{Icon: "rogue_stealth", Duration: time.Second})
	if !IsAttackRejected(target, false) {
		t.Fatal("stealthed target must reject a physical attack")
	}
	if !IsAttackRejected(target, true) {
		t.Fatal("stealthed target must reject a magical attack")
	}
}

func TestBlessingOfProtectionRejectsOnlyPhysical(t *testing.T) {
	target := testPlayer(1, "paladin", 1)
	target.Buffs.Apply(&model.Buff{Icon: "paladin_blessing_protection", Duration: time.Second})
	if !IsAttackRejected(target, false) {
		t.Fatal("Blessing of Protection must reject physical attacks")
	}
	if IsAttackRejected(target, true) {
		t.Fatal("Blessing of Protection must not reject magical attacks")
	}
}

func TestShieldWallHalvesAndRecordsBlocked(t *testing.T) {
	run := testRun(t)
	attacker := testEnemy(1, 1)
	attacker.Stats.Crit = 0
	target := testPlayer(2, "warrior", 1)
	target.Stats.Armor = 0 // isolate the halving from armor mitigation
	target.Buffs.Apply(&model.Buff{Icon: "warrior_shield", Duration: time.Second})

	events := ProcessEnemyAttack(run.CombatRNG, attacker, target, 100, false, "test_attack")
	if len(events) == 0 {
		t.Fatal("expected at least one event")
	}
	ev := events[0]
	if ev.Damage != 50 {
		t.Fatalf("expected halved damage 50, got %d", ev.Damage)
	}
	if ev.Blocked != 50 {
		t.Fatalf("expected blocked delta 50, got %d", ev.Blocked)
	}
}

func TestFireballPyroblastCombo(t *testing.T) {
	run := testRun(t)
	p := testPlayer(1, "mage", 1)
	run.Players = []*model.Player{p}
	e := testEnemy(10, 1)
	// pre-stun the target with Pyroblast's icon to trigger the combo.
	e.Debuffs.Apply(&model.Buff{Icon: "mage_pyroblast", IsDebuff: true, IsStun: true, Duration: 3 * time.Second})
	withRoomEnemies(run, 1, e)
	healthBefore := e.Stats.Health

	r := NewResolver(catalog.Instance())
	events, err := r.CastAbility(run, p.ID, e.ID, "mage_fireball", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	dealt := healthBefore - e.Stats.Health
	if dealt <= 0 {
		t.Fatal("fireball must deal damage")
	}

	// Same cast against a fresh, unstunned enemy should deal strictly less
	// damage (no +50% combo bonus).
	plain := testEnemy(11, 1)
	withRoomEnemies(run, 1, plain)
	p.Abilities["mage_fireball"].CooldownRemaining = 0
	p.Stats.Mana = 999
	plainBefore := plain.Stats.Health
	_, err = r.CastAbility(run, p.ID, plain.ID, "mage_fireball", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	plainDealt := plainBefore - plain.Stats.Health
	if plainDealt >= dealt {
		t.Fatalf("un-combo'd fireball (%d) should deal less than combo'd fireball (%d)", plainDealt, dealt)
	}
}

func TestSinisterStrikeConsumesStealthAndDoublesDamage(t *testing.T) {
	run := testRun(t)
	p := testPlayer(1, "rogue", 1)
	run.Players = []*model.Player{p}
	p.Buffs.Apply(&model.Buff{Icon: "rogue_stealth", Duration: 60 * time.Second})
	e := testEnemy(10, 1)
	withRoomEnemies(run, 1, e)

	r := NewResolver(catalog.Instance())
	events, err := r.CastAbility(run, p.ID, e.ID, "rogue_stab", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !events[0].IsStealthAttack {
		t.Fatal("expected IsStealthAttack on a from-stealth Sinister Strike")
	}
	if p.Buffs.Has("rogue_stealth") {
		t.Fatal("Sinister Strike from stealth must consume the Stealth buff")
	}
}

func TestCrusaderStrikeJudgmentComboSelfHeals(t *testing.T) {
	run := testRun(t)
	p := testPlayer(1, "paladin", 1)
	p.Stats.Health = 100
	p.Stats.MaxHealth = 200
	run.Players = []*model.Player{p}
	e := testEnemy(10, 1)
	e.Debuffs.Apply(&model.Buff{Icon: "paladin_judgment", IsDebuff: true, IsStun: true, Duration: 2 * time.Second})
	withRoomEnemies(run, 1, e)

	healthBefore := p.Stats.Health
	r := NewResolver(catalog.Instance())
	_, err := r.CastAbility(run, p.ID, e.ID, "paladin_crusader_strike", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Stats.Health <= healthBefore {
		t.Fatal("Crusader Strike into a Judgment-debuffed target must self-heal the paladin")
	}
}

func TestHellfireAttachesBurnWithoutDirectDamage(t *testing.T) {
	run := testRun(t)
	p := testPlayer(1, "warlock", 1)
	run.Players = []*model.Player{p}
	e := testEnemy(10, 1)
	withRoomEnemies(run, 1, e)
	healthBefore := e.Stats.Health

	r := NewResolver(catalog.Instance())
	_, err := r.CastAbility(run, p.ID, e.ID, "warlock_hellfire", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Stats.Health != healthBefore {
		t.Fatal("Hellfire must not deal direct damage on cast, only attach a burn")
	}
	burn := e.Debuffs.Get("warlock_hellfire")
	if burn == nil {
		t.Fatal("expected a warlock_hellfire debuff to be attached")
	}
	if burn.DamagePerTick <= 0 {
		t.Fatal("Hellfire burn must have a positive per-tick damage")
	}
}

func TestBlazePyroblastRoomWideStun(t *testing.T) {
	run := testRun(t)
	p := testPlayer(1, "mage", 1)
	run.Players = []*model.Player{p}
	target := testEnemy(10, 1)
	target.Debuffs.Apply(&model.Buff{Icon: "mage_pyroblast", IsDebuff: true, IsStun: true, Duration: 3 * time.Second})
	bystander := testEnemy(11, 1)
	withRoomEnemies(run, 1, target, bystander)

	r := NewResolver(catalog.Instance())
	_, err := r.CastAbility(run, p.ID, target.ID, "mage_blaze", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bystander.Debuffs.Has("mage_blaze_stun") {
		t.Fatal("Blaze into a Pyroblast-stunned target must stun every other enemy in the room")
	}
}

func TestDrainLifeRoomWideWithHellfire(t *testing.T) {
	run := testRun(t)
	p := testPlayer(1, "warlock", 1)
	p.Stats.Health = 50
	p.Stats.MaxHealth = 500
	run.Players = []*model.Player{p}
	target := testEnemy(10, 1)
	target.Debuffs.Apply(&model.Buff{Icon: "warlock_hellfire", DamagePerTick: 5, TickInterval: time.Second})
	burning := testEnemy(11, 1)
	burning.Debuffs.Apply(&model.Buff{Icon: "warlock_hellfire", DamagePerTick: 5, TickInterval: time.Second})
	notBurning := testEnemy(12, 1)
	withRoomEnemies(run, 1, target, burning, notBurning)

	r := NewResolver(catalog.Instance())
	_, err := r.CastAbility(run, p.ID, target.ID, "warlock_drain", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notBurning.Stats.Health != notBurning.Stats.MaxHealth {
		t.Fatal("Drain Life must not touch an enemy that isn't burning")
	}
	if burning.Stats.Health == burning.Stats.MaxHealth {
		t.Fatal("Drain Life's room-wide combo must also drain other burning enemies")
	}
	if p.Stats.Health <= 50 {
		t.Fatal("Drain Life must heal the caster")
	}
}

func TestAoESpendsResourcesEvenWithNoTargets(t *testing.T) {
	run := testRun(t)
	p := testPlayer(1, "mage", 1)
	run.Players = []*model.Player{p}
	withRoomEnemies(run, 1) // empty room
	manaBefore := p.Stats.Mana

	r := NewResolver(catalog.Instance())
	// room_cursed/room_blessed are modifier-only abilities with TargetSelf,
	// so exercise an AoE-shaped path with a damage ability's ManaCost
	// instead: verify spendCost directly via castAoE semantics using
	// mage_fireball's cost as a stand-in AoE test fixture.
	ability := catalog.Ability("mage_fireball")
	state := p.Abilities["mage_fireball"]
	events, err := r.castAoE(run, p, state, ability, &model.Point{X: 1, Y: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 0 {
		t.Fatal("expected zero events against an empty room")
	}
	if p.Stats.Mana != manaBefore-ability.ManaCost {
		t.Fatal("AoE casts must spend mana even when no targets are struck")
	}
}
