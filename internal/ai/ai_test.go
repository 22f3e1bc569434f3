package ai

import (
	"testing"
	"time"

	"github.com/konopkja/dungeon-link-sub001/internal/catalog"
	"github.com/konopkja/dungeon-link-sub001/internal/model"
)

func testRun(t *testing.T) (*model.Run, *catalog.Catalog) {
	t.Helper()
	cat := catalog.Load()
	run := model.NewRun(1, "ai-fixed-seed")
	return run, cat
}

func testRoomWithPlayer(run *model.Run, cat *catalog.Catalog, playerPos model.Point) (*model.Room, *model.Player) {
	room := model.NewRoom(1, model.Rect{X: 0, Y: 0, W: 400, H: 400}, model.RoomNormal)
	run.Dungeon = &model.Dungeon{Rooms: []*model.Room{room}, CurrentRoomID: room.ID}

	p := model.NewPlayer(10, "hero", "warrior", cat)
	p.Position = playerPos
	p.RoomID = room.ID
	run.Players = append(run.Players, p)
	return room, p
}

func testMeleeEnemy(id uint64, pos model.Point, roomID uint64) *model.Enemy {
	stats := catalog.Stats{MaxHealth: 100, Health: 100, Armor: 5, AttackPower: 10}
	e := model.NewEnemy(id, "skeleton_warrior", catalog.EnemyMelee, stats, pos, roomID)
	return e
}

func TestStunnedEnemyTakesNoAction(t *testing.T) {
	run, cat := testRun(t)
	room, _ := testRoomWithPlayer(run, cat, model.Point{X: 100, Y: 100})
	e := testMeleeEnemy(1, model.Point{X: 110, Y: 110}, room.ID)
	e.Debuffs.Apply(&model.Buff{Icon: "stun", IsStun: true, Duration: time.Second})
	room.Enemies = append(room.Enemies, e)

	RunTick(run, cat, 100*time.Millisecond)

	if e.HasAggroStart {
		t.Fatal("a stunned enemy must not acquire a target")
	}
}

func TestAttackGatedBehindAggroDelay(t *testing.T) {
	run, cat := testRun(t)
	room, _ := testRoomWithPlayer(run, cat, model.Point{X: 100, Y: 100})
	e := testMeleeEnemy(1, model.Point{X: 110, Y: 110}, room.ID)
	room.Enemies = append(room.Enemies, e)

	RunTick(run, cat, 100*time.Millisecond)
	if !e.HasAggroStart {
		t.Fatal("enemy should have acquired a target")
	}
	if e.AttackCooldown != 0 {
		t.Fatal("attack must not fire before the aggro delay elapses")
	}

	run.Clock += AggroDelay + time.Second
	events := RunTick(run, cat, 100*time.Millisecond)
	if len(events) == 0 {
		t.Fatal("expected an attack once aggro delay has elapsed")
	}
}

func TestLeashReturnsEnemyToSpawnAfterDelay(t *testing.T) {
	run, cat := testRun(t)
	room, _ := testRoomWithPlayer(run, cat, model.Point{X: -9999, Y: -9999})
	e := testMeleeEnemy(1, model.Point{X: 20, Y: 20}, room.ID)
	e.SpawnPosition = model.Point{X: 20, Y: 20}
	e.Position = model.Point{X: 20 + LeashDistance + 100, Y: 20}
	room.Enemies = append(room.Enemies, e)

	RunTick(run, cat, 100*time.Millisecond)
	if e.LeashTimer == 0 {
		t.Fatal("expected the leash timer to start once distFromSpawn exceeds LeashDistance")
	}

	run.Clock += LeashResetDelay + time.Second
	RunTick(run, cat, LeashResetDelay+time.Second)
	if e.Position != e.SpawnPosition {
		t.Fatalf("expected enemy snapped to spawn, got %+v", e.Position)
	}
	if e.Stats.Health != e.Stats.MaxHealth {
		t.Fatal("expected enemy fully healed on leash return")
	}
}

func TestTauntingPetTakesPriorityOverNearestPlayer(t *testing.T) {
	run, cat := testRun(t)
	room, p := testRoomWithPlayer(run, cat, model.Point{X: 350, Y: 350})
	e := testMeleeEnemy(1, model.Point{X: 10, Y: 10}, room.ID)
	room.Enemies = append(room.Enemies, e)

	pet := model.NewPet(2, p.ID, model.PetImp, catalog.Stats{MaxHealth: 50, Health: 50}, model.Point{X: 15, Y: 15})
	pet.RoomID = room.ID
	pet.IsTaunting = true
	run.Pets = append(run.Pets, pet)

	target := acquireTarget(run, room, e)
	if target != nil {
		t.Fatal("acquireTarget returns the owning player, taunt redirects the enemy's TargetID field instead")
	}
	if e.TargetID != p.ID {
		t.Fatalf("expected enemy to target the taunting pet's owner %d, got %d", p.ID, e.TargetID)
	}
}

func TestPatrolReassignedIntoCurrentRoom(t *testing.T) {
	run, cat := testRun(t)
	current := model.NewRoom(1, model.Rect{X: 0, Y: 0, W: 300, H: 300}, model.RoomNormal)
	other := model.NewRoom(2, model.Rect{X: 300, Y: 0, W: 300, H: 300}, model.RoomNormal)
	run.Dungeon = &model.Dungeon{Rooms: []*model.Room{current, other}, CurrentRoomID: current.ID}
	run.Dungeon.Rooms[0].Cleared = true
	_ = cat

	patroller := testMeleeEnemy(1, model.Point{X: 100, Y: 100}, other.ID)
	patroller.IsPatrolling = true
	other.Enemies = append(other.Enemies, patroller)

	ReassignPatrolsIntoCurrentRoom(run)

	if len(current.Enemies) != 1 {
		t.Fatalf("expected patroller moved into current room, got %d enemies", len(current.Enemies))
	}
	if len(other.Enemies) != 0 {
		t.Fatal("expected patroller removed from its origin room")
	}
	if patroller.CurrentRoomID != current.ID {
		t.Fatal("expected currentRoomId updated")
	}
	if current.Cleared {
		t.Fatal("expected the room to be un-cleared once a live patroller enters it")
	}
}

func TestIdlePatrolAdvancesAndReversesAtEndpoints(t *testing.T) {
	run, _ := testRun(t)
	room := model.NewRoom(1, model.Rect{X: 0, Y: 0, W: 400, H: 400}, model.RoomNormal)
	run.Dungeon = &model.Dungeon{Rooms: []*model.Room{room}, CurrentRoomID: 999}

	e := testMeleeEnemy(1, model.Point{X: 0, Y: 0}, room.ID)
	e.IsPatrolling = true
	e.PatrolWaypoints = []model.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	e.CurrentWaypointIdx = 1
	e.PatrolDirection = 1
	room.Enemies = append(room.Enemies, e)

	UpdateIdleRooms(run, 200*time.Millisecond)

	if e.PatrolDirection != -1 {
		t.Fatalf("expected direction reversed at the final waypoint, got %d", e.PatrolDirection)
	}
}

func TestIdleNonPatrolWalksHomeAndHeals(t *testing.T) {
	run, _ := testRun(t)
	room := model.NewRoom(1, model.Rect{X: 0, Y: 0, W: 400, H: 400}, model.RoomNormal)
	run.Dungeon = &model.Dungeon{Rooms: []*model.Room{room}, CurrentRoomID: 999}

	e := testMeleeEnemy(1, model.Point{X: 0, Y: 0}, room.ID)
	e.SpawnPosition = model.Point{X: 0, Y: 0}
	e.Stats.Health = 1
	room.Enemies = append(room.Enemies, e)

	UpdateIdleRooms(run, time.Second)

	if e.Position != e.SpawnPosition {
		t.Fatalf("expected enemy already at spawn to stay put, got %+v", e.Position)
	}
	if e.Stats.Health != e.Stats.MaxHealth {
		t.Fatal("expected enemy fully healed on arrival at spawn")
	}
}

func TestBossAbilityFiresWhenCooldownExpires(t *testing.T) {
	run, cat := testRun(t)
	room, target := testRoomWithPlayer(run, cat, model.Point{X: 10, Y: 10})

	def := cat.Bosses["boss_crypt_lord"]
	boss := model.NewEnemy(1, def.ID, catalog.EnemyCaster, def.BaseStats, model.Point{X: 0, Y: 0}, room.ID)
	boss.IsBoss = true
	boss.BossID = def.ID
	boss.AbilityCooldowns = make(map[string]time.Duration)
	boss.AbilityCooldowns["paladin_judgment"] = 0
	boss.AoECooldown = time.Hour
	room.Enemies = append(room.Enemies, boss)

	ev := RunTick(run, cat, 100*time.Millisecond)
	if len(ev) == 0 {
		t.Fatal("expected the boss's ready ability to fire")
	}
	if !target.Buffs.Has("paladin_judgment") {
		t.Fatal("expected Judgment's stun debuff applied to the target")
	}
}
