package ai

import (
	"math"
	"time"

	"github.com/konopkja/dungeon-link-sub001/internal/model"
)

const (
	patrolInset       = 60 // "inset by 60px to exclude corridor openings" (§4.6)
	patrolWaypointTol = 20 // distance <= this steps to the next waypoint (§4.5 idle rooms)
	patrolSpeed       = 120.0
	returnToSpawnSpeed = 200.0
)

// ReassignPatrolsIntoCurrentRoom runs before AI each tick (spec §4.6):
// patrollers from other rooms that have physically walked into the
// current room (inset by 60px) are moved into its enemy array, their
// currentRoomId is updated, and the room is un-cleared if needed. Without
// this, AI only ever looks at the current room's own Enemies slice and a
// patrol that wandered in would never be engaged.
func ReassignPatrolsIntoCurrentRoom(run *model.Run) {
	if run.Dungeon == nil {
		return
	}
	current := run.Dungeon.CurrentRoom()
	if current == nil {
		return
	}

	for _, room := range run.Dungeon.Rooms {
		if room.ID == current.ID {
			continue
		}
		kept := room.Enemies[:0]
		for _, e := range room.Enemies {
			if e.IsPatrolling && e.IsAlive && current.Rect.Contains(e.Position, patrolInset) {
				e.CurrentRoomID = current.ID
				current.Enemies = append(current.Enemies, e)
				if current.Cleared {
					current.Cleared = false
				}
				continue
			}
			kept = append(kept, e)
		}
		room.Enemies = kept
	}
}

// UpdateIdleRooms advances rooms that are neither the party's current room
// nor cleared (spec §4.5 "Idle rooms"): patrollers step along their
// waypoint route (reversing at the ends), non-patrol non-boss enemies walk
// back to spawn and fully heal on arrival, any enemy displaced from its
// original room is returned there, and bosses are clamped in place and
// fully healed the instant the party leaves.
func UpdateIdleRooms(run *model.Run, dt time.Duration) {
	if run.Dungeon == nil {
		return
	}
	currentID := run.Dungeon.CurrentRoomID

	for _, room := range run.Dungeon.Rooms {
		if room.ID == currentID || room.Cleared {
			continue
		}
		for _, e := range room.Enemies {
			if !e.IsAlive {
				continue
			}
			switch {
			case e.IsBoss:
				e.Position = clampPointToRoom(e.Position, room)
				if e.Stats.Health < e.Stats.MaxHealth {
					e.FullHeal()
				}
			case e.IsPatrolling:
				advancePatrol(e, dt)
			default:
				walkHome(run, room, e, dt)
			}
		}
	}
}

func advancePatrol(e *model.Enemy, dt time.Duration) {
	if len(e.PatrolWaypoints) < 2 {
		return
	}
	target := e.PatrolWaypoints[e.CurrentWaypointIdx]
	dx, dy := float64(target.X-e.Position.X), float64(target.Y-e.Position.Y)
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist <= patrolWaypointTol {
		e.CurrentWaypointIdx += e.PatrolDirection
		if e.CurrentWaypointIdx >= len(e.PatrolWaypoints) {
			e.CurrentWaypointIdx = len(e.PatrolWaypoints) - 2
			e.PatrolDirection = -1
		} else if e.CurrentWaypointIdx < 0 {
			e.CurrentWaypointIdx = 1
			e.PatrolDirection = 1
		}
		return
	}
	step := patrolSpeed * dt.Seconds()
	e.Position.X += int(dx / dist * step)
	e.Position.Y += int(dy / dist * step)
}

func walkHome(run *model.Run, room *model.Room, e *model.Enemy, dt time.Duration) {
	dx, dy := float64(e.SpawnPosition.X-e.Position.X), float64(e.SpawnPosition.Y-e.Position.Y)
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist <= 1 {
		e.Position = e.SpawnPosition
		e.FullHeal()
		if e.CurrentRoomID != e.OriginalRoomID {
			MoveEnemyToRoom(run, e, e.OriginalRoomID)
		}
		return
	}
	step := returnToSpawnSpeed * dt.Seconds()
	if step > dist {
		step = dist
	}
	e.Position.X += int(dx / dist * step)
	e.Position.Y += int(dy / dist * step)
}

func clampPointToRoom(p model.Point, room *model.Room) model.Point {
	return model.Point{
		X: clampInt(p.X, room.Rect.X, room.Rect.X+room.Rect.W),
		Y: clampInt(p.Y, room.Rect.Y, room.Rect.Y+room.Rect.H),
	}
}
