package broadcast

import (
	"testing"

	"github.com/konopkja/dungeon-link-sub001/internal/catalog"
	"github.com/konopkja/dungeon-link-sub001/internal/model"
)

func testRun() *model.Run {
	cat := catalog.Load()
	run := model.NewRun(1, "broadcast-fixed-seed")
	room := model.NewRoom(1, model.Rect{X: 0, Y: 0, W: 400, H: 400}, model.RoomNormal)
	run.Dungeon = &model.Dungeon{Rooms: []*model.Room{room}, CurrentRoomID: room.ID, Theme: "crypt"}
	p := model.NewPlayer(1, "hero", "warrior", cat)
	p.RoomID = room.ID
	run.Players = append(run.Players, p)
	return run
}

func TestBuildSnapshotOmitsTracking(t *testing.T) {
	run := testRun()
	run.Tracking = model.NewTracking()

	snap := BuildSnapshot(run)
	if len(snap.Players) != 1 {
		t.Fatalf("expected 1 player view, got %d", len(snap.Players))
	}
	// Snapshot has no Tracking field at all — compile-time guarantee that
	// the per-run scratch substructure never reaches the wire.
	_ = snap
}

func TestBuildSnapshotProjectsRoomsAndPlayers(t *testing.T) {
	run := testRun()
	snap := BuildSnapshot(run)

	if snap.RunID != run.ID {
		t.Fatalf("expected RunID %d, got %d", run.ID, snap.RunID)
	}
	if len(snap.Rooms) != 1 {
		t.Fatalf("expected 1 room, got %d", len(snap.Rooms))
	}
	if snap.Players[0].Name != "hero" {
		t.Fatalf("expected player name 'hero', got %q", snap.Players[0].Name)
	}
}

func TestBuildDeltaReportsOnlyChanges(t *testing.T) {
	run := testRun()
	prev := BuildSnapshot(run)

	run.Players[0].Gold = 50
	cur := BuildSnapshot(run)

	d := BuildDelta(prev, cur)
	if len(d.ChangedPlayers) != 1 {
		t.Fatalf("expected 1 changed player, got %d", len(d.ChangedPlayers))
	}
	if d.ChangedPlayers[0].Gold != 50 {
		t.Fatalf("expected changed player gold 50, got %d", d.ChangedPlayers[0].Gold)
	}
	if len(d.ChangedRooms) != 0 {
		t.Fatalf("expected no changed rooms, got %d", len(d.ChangedRooms))
	}
}

func TestBuildDeltaReportsRemovedPlayer(t *testing.T) {
	run := testRun()
	prev := BuildSnapshot(run)

	run.Players = nil
	cur := BuildSnapshot(run)

	d := BuildDelta(prev, cur)
	if len(d.RemovedPlayerIDs) != 1 || d.RemovedPlayerIDs[0] != 1 {
		t.Fatalf("expected removed player [1], got %v", d.RemovedPlayerIDs)
	}
}

func TestBroadcasterFirstFrameIsFull(t *testing.T) {
	run := testRun()
	b := New()

	frame := b.BuildFrame(100, BuildSnapshot(run))
	if frame.Kind != FrameFull {
		t.Fatalf("expected first frame full, got %s", frame.Kind)
	}
}

func TestBroadcasterSecondFrameIsDelta(t *testing.T) {
	run := testRun()
	b := New()

	b.BuildFrame(100, BuildSnapshot(run))
	run.Players[0].Gold = 10
	frame := b.BuildFrame(100, BuildSnapshot(run))

	if frame.Kind != FrameDelta {
		t.Fatalf("expected second frame delta, got %s", frame.Kind)
	}
	if frame.Delta.ChangedPlayers[0].Gold != 10 {
		t.Fatalf("expected delta to carry updated gold, got %d", frame.Delta.ChangedPlayers[0].Gold)
	}
}

func TestBroadcasterRoomChangeForcesFullSync(t *testing.T) {
	run := testRun()
	b := New()

	b.BuildFrame(100, BuildSnapshot(run))

	otherRoom := model.NewRoom(2, model.Rect{X: 0, Y: 0, W: 400, H: 400}, model.RoomRare)
	run.Dungeon.Rooms = append(run.Dungeon.Rooms, otherRoom)
	run.Dungeon.CurrentRoomID = otherRoom.ID

	frame := b.BuildFrame(100, BuildSnapshot(run))
	if frame.Kind != FrameFull {
		t.Fatal("expected a room transition to force a full resync")
	}
}

func TestMarkNeedsFullSyncForcesNextFrameFull(t *testing.T) {
	run := testRun()
	b := New()

	b.BuildFrame(100, BuildSnapshot(run))
	b.MarkNeedsFullSync(100)
	frame := b.BuildFrame(100, BuildSnapshot(run))

	if frame.Kind != FrameFull {
		t.Fatal("expected MarkNeedsFullSync to force the next frame full")
	}
}

func TestForgetDropsCachedState(t *testing.T) {
	run := testRun()
	b := New()

	b.BuildFrame(100, BuildSnapshot(run))
	b.Forget(100)
	frame := b.BuildFrame(100, BuildSnapshot(run))

	if frame.Kind != FrameFull {
		t.Fatal("expected a forgotten client to get a full resync")
	}
}
