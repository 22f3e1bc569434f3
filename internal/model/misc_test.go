package model

import "testing"

func TestRectContainsPadding(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 200, H: 200}
	if !r.Contains(Point{X: 100, Y: 100}, 60) {
		t.Fatal("center point should be inside with 60px padding")
	}
	if r.Contains(Point{X: 10, Y: 10}, 60) {
		t.Fatal("corner point should be excluded by 60px padding")
	}
}

func TestRoomRecomputeCleared(t *testing.T) {
	room := NewRoom(1, Rect{W: 100, H: 100}, RoomNormal)
	room.Enemies = []*Enemy{
		{ID: 1, IsAlive: false},
		{ID: 2, IsAlive: false},
	}
	room.RecomputeCleared()
	if !room.Cleared {
		t.Fatal("room with all enemies dead should be cleared")
	}

	room.Enemies = append(room.Enemies, &Enemy{ID: 3, IsAlive: true})
	room.RecomputeCleared()
	if room.Cleared {
		t.Fatal("room with a living enemy must not be cleared")
	}
}

func TestTrapDutyCycle(t *testing.T) {
	trap := &Trap{ActiveDuration: 1000, InactiveDuration: 2000, IsActive: false}
	trap.AdvancePhase(1999)
	if trap.IsActive {
		t.Fatal("trap should still be inactive before 2000ms elapse")
	}
	trap.AdvancePhase(2)
	if !trap.IsActive {
		t.Fatal("trap should flip active once inactive duration elapses")
	}
}

func TestGroundEffectPerPlayerTickCadence(t *testing.T) {
	g := NewGroundEffect(1, "FirePool", Point{})
	g.TickInterval = 1_000_000_000 // 1s in ns-equivalent time.Duration units
	if !g.ReadyToTick(1, 0) {
		t.Fatal("first tick should always be allowed")
	}
	if g.ReadyToTick(1, 500_000_000) {
		t.Fatal("tick before interval elapses should be rejected")
	}
	if !g.ReadyToTick(1, 1_000_000_000) {
		t.Fatal("tick at interval boundary should be allowed")
	}
	if !g.ReadyToTick(2, 500_000_000) {
		t.Fatal("a different player must have an independent cadence")
	}
}
