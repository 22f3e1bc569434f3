// Package broadcast computes the per-client snapshot/delta view of a Run
// and fans it out to connected clients (spec §4.9 Delta Broadcast, spec
// §5 "runId -> set of client handles").
//
// Grounded on the teacher's internal/world.VisibilityManager: a periodic
// per-observer view recomputation, generalized from "who can see whom in
// the world grid" to "what changed in this Run since this client's last
// frame."
package broadcast

import (
	"time"

	"github.com/konopkja/dungeon-link-sub001/internal/catalog"
	"github.com/konopkja/dungeon-link-sub001/internal/model"
)

// BuffView is the wire-safe projection of one active buff.
type BuffView struct {
	Icon     string
	Duration time.Duration
	IsDebuff bool
	Stacks   int
}

// PlayerView is the wire-safe projection of one Player. Deliberately
// excludes Tracking-only fields (spec §4.9: "delta must omit the per-run
// tracking substructure in all cases").
type PlayerView struct {
	ID       uint64
	Name     string
	ClassID  string
	Position model.Point
	RoomID   uint64
	Stats    catalog.Stats
	Level    int
	XP       int64
	Gold     int
	TargetID uint64
	IsAlive  bool
	Buffs    []BuffView
}

// EnemyView is the wire-safe projection of one Enemy.
type EnemyView struct {
	ID         uint64
	TemplateID string
	Kind       catalog.EnemyKind
	Stats      catalog.Stats
	Position   model.Point
	TargetID   uint64
	IsAlive    bool
	IsBoss     bool
	IsRare     bool
	IsElite    bool
	IsHidden   bool
}

// PetView is the wire-safe projection of one Pet.
type PetView struct {
	ID       uint64
	OwnerID  uint64
	Kind     model.PetKind
	Position model.Point
	RoomID   uint64
	IsAlive  bool
}

// GroundItemView is the wire-safe projection of one ground item.
type GroundItemView struct {
	ID       uint64
	ItemID   string
	Position model.Point
}

// GroundEffectView is the wire-safe projection of one ground effect.
type GroundEffectView struct {
	ID       uint64
	Kind     model.GroundEffectKind
	Position model.Point
	Radius   float64
	Angle    float64
}

// RoomView is the wire-safe projection of one Room.
type RoomView struct {
	ID          uint64
	Type        model.RoomType
	Variant     model.RoomVariant
	Modifier    catalog.RoomModifier
	Cleared     bool
	Enemies     []EnemyView
	GroundItems []GroundItemView
}

// Snapshot is the full per-tick state of one Run, minus its Tracking
// substructure (spec §4.9).
type Snapshot struct {
	RunID         uint64
	Floor         int
	Theme         string
	CurrentRoomID uint64
	BossDefeated  bool
	Rooms         []RoomView
	Players       []PlayerView
	Pets          []PetView
	GroundEffects []GroundEffectView
}

// BuildSnapshot projects run into its wire-safe view.
func BuildSnapshot(run *model.Run) Snapshot {
	snap := Snapshot{RunID: run.ID, Floor: run.Floor}

	if run.Dungeon != nil {
		snap.Theme = run.Dungeon.Theme
		snap.CurrentRoomID = run.Dungeon.CurrentRoomID
		snap.BossDefeated = run.Dungeon.BossDefeated
		for _, room := range run.Dungeon.Rooms {
			snap.Rooms = append(snap.Rooms, buildRoomView(room))
		}
	}

	for _, p := range run.Players {
		snap.Players = append(snap.Players, buildPlayerView(p))
	}
	for _, pet := range run.Pets {
		snap.Pets = append(snap.Pets, PetView{
			ID: pet.ID, OwnerID: pet.OwnerID, Kind: pet.Kind,
			Position: pet.Position, RoomID: pet.RoomID, IsAlive: pet.IsAlive,
		})
	}
	for _, g := range run.GroundEffects {
		snap.GroundEffects = append(snap.GroundEffects, GroundEffectView{
			ID: g.ID, Kind: g.Kind, Position: g.Position, Radius: g.Radius, Angle: g.Angle,
		})
	}

	return snap
}

func buildRoomView(room *model.Room) RoomView {
	rv := RoomView{
		ID: room.ID, Type: room.Type, Variant: room.Variant,
		Modifier: room.Modifier, Cleared: room.Cleared,
	}
	for _, e := range room.Enemies {
		rv.Enemies = append(rv.Enemies, EnemyView{
			ID: e.ID, TemplateID: e.TemplateID, Kind: e.Kind, Stats: e.Stats,
			Position: e.Position, TargetID: e.TargetID, IsAlive: e.IsAlive,
			IsBoss: e.IsBoss, IsRare: e.IsRare, IsElite: e.IsElite, IsHidden: e.IsHidden,
		})
	}
	for _, item := range room.GroundItems {
		rv.GroundItems = append(rv.GroundItems, GroundItemView{ID: item.ID, ItemID: item.ItemID, Position: item.Position})
	}
	return rv
}

func buildPlayerView(p *model.Player) PlayerView {
	pv := PlayerView{
		ID: p.ID, Name: p.Name, ClassID: p.ClassID, Position: p.Position, RoomID: p.RoomID,
		Stats: p.Stats, Level: p.Level, XP: p.XP, Gold: p.Gold, TargetID: p.TargetID, IsAlive: p.IsAlive,
	}
	for _, b := range p.Buffs.All() {
		pv.Buffs = append(pv.Buffs, BuffView{Icon: b.Icon, Duration: b.Duration, IsDebuff: b.IsDebuff, Stacks: b.Stacks})
	}
	return pv
}
