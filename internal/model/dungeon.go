package model

import "github.com/konopkja/dungeon-link-sub001/internal/catalog"

// Dungeon is one floor's full layout (spec §3 Dungeon). Replaced wholesale
// on floor advance; the outgoing dungeon is discarded atomically (spec
// Lifecycles).
type Dungeon struct {
	Theme           string
	ThemeModifiers  *catalog.ThemeDef
	Rooms           []*Room
	CurrentRoomID   uint64
	BossDefeated    bool
}

// RoomByID returns the room with the given ID, or nil.
func (d *Dungeon) RoomByID(id uint64) *Room {
	for _, r := range d.Rooms {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// CurrentRoom returns the room the party currently occupies. Spec
// invariant 6 guarantees CurrentRoomID always names a room in Rooms.
func (d *Dungeon) CurrentRoom() *Room {
	return d.RoomByID(d.CurrentRoomID)
}

// StartRoom returns the floor's single start room.
func (d *Dungeon) StartRoom() *Room {
	for _, r := range d.Rooms {
		if r.Type == RoomStart {
			return r
		}
	}
	return nil
}

// BossRoom returns the floor's single boss room.
func (d *Dungeon) BossRoom() *Room {
	for _, r := range d.Rooms {
		if r.Type == RoomBoss {
			return r
		}
	}
	return nil
}

// Bounds returns the union rectangle of every room on the floor. Rooms
// carry no interior wall geometry (spec §9 design notes), so this union
// stands in for "world bounds" when the tick scheduler needs to clamp
// player movement against something (spec §4.7 step 2 "collision").
func (d *Dungeon) Bounds() Rect {
	if len(d.Rooms) == 0 {
		return Rect{}
	}
	r := d.Rooms[0].Rect
	minX, minY := r.X, r.Y
	maxX, maxY := r.X+r.W, r.Y+r.H
	for _, room := range d.Rooms[1:] {
		rr := room.Rect
		if rr.X < minX {
			minX = rr.X
		}
		if rr.Y < minY {
			minY = rr.Y
		}
		if rr.X+rr.W > maxX {
			maxX = rr.X + rr.W
		}
		if rr.Y+rr.H > maxY {
			maxY = rr.Y + rr.H
		}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
