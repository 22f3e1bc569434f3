package dungeongen

import (
	"testing"

	"github.com/konopkja/dungeon-link-sub001/internal/catalog"
	"github.com/konopkja/dungeon-link-sub001/internal/model"
)

func TestGenerateProducesReachableStartAndBoss(t *testing.T) {
	cat := catalog.Load()
	idGen := model.NewIDGenerator()

	d := Generate(cat, idGen, "seed-a", 3, 3, 0)

	if len(d.Rooms) < 5 || len(d.Rooms) > 10 {
		t.Fatalf("expected 5-10 rooms, got %d", len(d.Rooms))
	}
	start := d.StartRoom()
	boss := d.BossRoom()
	if start == nil || boss == nil {
		t.Fatal("expected exactly one start room and one boss room")
	}
	if d.CurrentRoomID != start.ID {
		t.Fatal("dungeon must begin in the start room")
	}

	reachable := bfsReachable(d.Rooms, start.ID)
	if !reachable[boss.ID] {
		t.Fatal("boss room must be reachable from start after repairConnectivity")
	}
	for _, r := range d.Rooms {
		if !reachable[r.ID] {
			t.Fatalf("room %d unreachable from start", r.ID)
		}
	}
}

func TestGenerateIsDeterministicForSameSeed(t *testing.T) {
	cat := catalog.Load()

	d1 := Generate(cat, model.NewIDGenerator(), "same-seed", 4, 2, 100)
	d2 := Generate(cat, model.NewIDGenerator(), "same-seed", 4, 2, 100)

	if len(d1.Rooms) != len(d2.Rooms) {
		t.Fatalf("same seed produced different room counts: %d vs %d", len(d1.Rooms), len(d2.Rooms))
	}
	for i := range d1.Rooms {
		if d1.Rooms[i].Rect != d2.Rooms[i].Rect {
			t.Fatalf("room %d rect differs between identical-seed generations", i)
		}
		if d1.Rooms[i].Type != d2.Rooms[i].Type {
			t.Fatalf("room %d type differs between identical-seed generations", i)
		}
	}
}

func TestBossRoomIsAlwaysArena(t *testing.T) {
	cat := catalog.Load()
	d := Generate(cat, model.NewIDGenerator(), "boss-variant-seed", 5, 4, 50)
	boss := d.BossRoom()
	if boss == nil {
		t.Fatal("expected a boss room")
	}
	if boss.Variant != model.VariantArena {
		t.Fatalf("boss room variant = %v, want arena", boss.Variant)
	}
}

func TestPatrolsOnlyFromFloorTwo(t *testing.T) {
	cat := catalog.Load()
	d1 := Generate(cat, model.NewIDGenerator(), "patrol-seed", 1, 2, 0)
	for _, r := range d1.Rooms {
		for _, e := range r.Enemies {
			if e.IsPatrolling {
				t.Fatal("floor 1 must not generate patrols")
			}
		}
	}
}

func TestRouteWaypointsNeverStraightLine(t *testing.T) {
	a := model.NewRoom(1, model.Rect{X: 0, Y: 0, W: 200, H: 200}, model.RoomNormal)
	b := model.NewRoom(2, model.Rect{X: 400, Y: 0, W: 200, H: 200}, model.RoomNormal)
	waypoints := routeWaypoints([]*model.Room{a, b})
	if len(waypoints) != 3 {
		t.Fatalf("expected 3 waypoints (center, midpoint, center), got %d", len(waypoints))
	}
	if waypoints[0] == waypoints[1] || waypoints[1] == waypoints[2] {
		t.Fatal("corridor midpoint must differ from both room centers")
	}
}
