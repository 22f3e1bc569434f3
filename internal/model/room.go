package model

import "github.com/konopkja/dungeon-link-sub001/internal/catalog"

// RoomType classifies a room's role in the dungeon (spec §3 Room).
type RoomType string

const (
	RoomStart  RoomType = "start"
	RoomNormal RoomType = "normal"
	RoomRare   RoomType = "rare"
	RoomBoss   RoomType = "boss"
)

// RoomVariant is the enemy-formation archetype (GLOSSARY "Room variant").
type RoomVariant string

const (
	VariantStandard RoomVariant = "standard"
	VariantArena    RoomVariant = "arena"
	VariantGuardian RoomVariant = "guardian"
	VariantSwarm    RoomVariant = "swarm"
	VariantAmbush   RoomVariant = "ambush"
	VariantGauntlet RoomVariant = "gauntlet"
)

// RoomModifier is re-exported from catalog so model consumers don't need
// to import catalog directly for this tag.
type RoomModifier = catalog.RoomModifier

// Rect is an axis-aligned rectangle in world units.
type Rect struct {
	X, Y, W, H int
}

// Center returns the rectangle's center point.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Contains reports whether p lies strictly inside the rectangle, inset by
// padding on every side (spec §4.5 "physically inside the room with
// padding", §4.6 "inset by 60px").
func (r Rect) Contains(p Point, padding int) bool {
	return p.X > r.X+padding && p.X < r.X+r.W-padding &&
		p.Y > r.Y+padding && p.Y < r.Y+r.H-padding
}

// ContainsLoose reports whether p lies inside the rectangle with no
// padding (boundary-inclusive), used for room-transition detection.
func (r Rect) ContainsLoose(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Point is a 2D world position.
type Point struct {
	X, Y int
}

// DistSq returns the squared Euclidean distance between two points
// (callers compare against squared thresholds to avoid sqrt in hot
// paths, the same shape as the teacher's region/grid distance checks).
func DistSq(a, b Point) int64 {
	dx := int64(a.X - b.X)
	dy := int64(a.Y - b.Y)
	return dx*dx + dy*dy
}

// Room is one rectangle of a Dungeon floor.
type Room struct {
	ID          uint64
	Rect        Rect
	Type        RoomType
	Variant     RoomVariant
	Modifier    RoomModifier
	ConnectedTo map[uint64]bool // undirected adjacency
	Cleared     bool

	Enemies     []*Enemy
	Traps       []*Trap
	Chests      []*Chest
	GroundItems []*GroundItem

	Vendor       *Vendor
	ShopVendor   *Vendor
	CryptoVendor *Vendor
}

// NewRoom constructs an empty room.
func NewRoom(id uint64, rect Rect, typ RoomType) *Room {
	return &Room{
		ID:          id,
		Rect:        rect,
		Type:        typ,
		Variant:     VariantStandard,
		ConnectedTo: make(map[uint64]bool),
	}
}

// Connect marks a and b as adjacent (undirected).
func (r *Room) Connect(other *Room) {
	r.ConnectedTo[other.ID] = true
	other.ConnectedTo[r.ID] = true
}

// IsConnectedTo reports adjacency to roomID.
func (r *Room) IsConnectedTo(roomID uint64) bool {
	return r.ConnectedTo[roomID]
}

// RecomputeCleared sets Cleared true iff every enemy in the room is dead
// (spec invariant 4). Callers defer this during the one-tick window where
// a patrolling enemy has just entered (§4.6) by simply not calling it
// until after the reassignment step.
func (r *Room) RecomputeCleared() {
	for _, e := range r.Enemies {
		if e.IsAlive {
			r.Cleared = false
			return
		}
	}
	r.Cleared = true
}

// GroundItem is an item instance lying on the floor of a room.
type GroundItem struct {
	ID       uint64
	ItemID   string
	Position Point
}

// Vendor is one of the three start-room NPCs (spec §4.8).
type Vendor struct {
	ID       uint64
	Kind     VendorKind
	Position Point
}

// VendorKind enumerates the three vendor roles.
type VendorKind string

const (
	VendorTrainer VendorKind = "trainer"
	VendorShop    VendorKind = "shop"
	VendorCrypto  VendorKind = "crypto"
)
