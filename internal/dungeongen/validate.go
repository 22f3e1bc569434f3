package dungeongen

import "github.com/konopkja/dungeon-link-sub001/internal/model"

// repairConnectivity enforces spec §4.2 step 9: BFS start->boss must
// succeed; if it doesn't, force-connect stepwise, each time joining the
// reachable set to whichever unreached room is nearest a reachable one,
// until the boss room is reachable.
func repairConnectivity(d *model.Dungeon) {
	start := d.StartRoom()
	boss := d.BossRoom()
	if start == nil || boss == nil {
		return
	}

	for {
		reachable := bfsReachable(d.Rooms, start.ID)
		if reachable[boss.ID] {
			return
		}

		var bestReached, bestUnreached *model.Room
		bestDist := int64(-1)
		for _, a := range d.Rooms {
			if !reachable[a.ID] {
				continue
			}
			for _, b := range d.Rooms {
				if reachable[b.ID] {
					continue
				}
				dist := model.DistSq(a.Rect.Center(), b.Rect.Center())
				if bestDist < 0 || dist < bestDist {
					bestDist = dist
					bestReached = a
					bestUnreached = b
				}
			}
		}
		if bestReached == nil || bestUnreached == nil {
			// No unreached room exists to bridge to; the graph is as
			// connected as it can be.
			return
		}
		bestReached.Connect(bestUnreached)
	}
}

func bfsReachable(rooms []*model.Room, startID uint64) map[uint64]bool {
	byID := make(map[uint64]*model.Room, len(rooms))
	for _, r := range rooms {
		byID[r.ID] = r
	}
	seen := map[uint64]bool{startID: true}
	queue := []uint64{startID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		room := byID[id]
		if room == nil {
			continue
		}
		for neighborID := range room.ConnectedTo {
			if seen[neighborID] {
				continue
			}
			seen[neighborID] = true
			queue = append(queue, neighborID)
		}
	}
	return seen
}
