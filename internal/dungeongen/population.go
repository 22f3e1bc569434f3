package dungeongen

import (
	"math"
	"sort"
	"time"

	"github.com/konopkja/dungeon-link-sub001/internal/catalog"
	"github.com/konopkja/dungeon-link-sub001/internal/model"
	"github.com/konopkja/dungeon-link-sub001/internal/rng"
)

var allVariants = []model.RoomVariant{
	model.VariantStandard, model.VariantArena, model.VariantGuardian,
	model.VariantSwarm, model.VariantAmbush, model.VariantGauntlet,
}

var allModifiers = []catalog.RoomModifier{
	catalog.ModifierNone, catalog.ModifierBurning, catalog.ModifierCursed,
	catalog.ModifierBlessed, catalog.ModifierDark,
}

// assignVariantsAndModifiers picks a per-room variant and modifier keyed
// on theme and floor (spec §4.2 step 5); boss rooms are always arena.
func assignVariantsAndModifiers(source *rng.Source, theme *catalog.ThemeDef, rooms []*model.Room) {
	for _, r := range rooms {
		if r.Type == model.RoomBoss {
			r.Variant = model.VariantArena
		} else {
			r.Variant = rng.Pick(source, allVariants)
		}
		r.Modifier = weightedModifier(source, theme)
	}
}

func weightedModifier(source *rng.Source, theme *catalog.ThemeDef) catalog.RoomModifier {
	roll := source.Next()
	var cum float64
	for _, m := range allModifiers {
		w, ok := theme.ModifierWeights[m]
		if !ok {
			continue
		}
		cum += w
		if roll < cum {
			return m
		}
	}
	return catalog.ModifierNone
}

// populateRooms fills every non-start room with enemies: a count scaled
// by floor, positioned per variant formation (spec §4.2 step 6).
func populateRooms(cat *catalog.Catalog, source *rng.Source, idGen *model.IDGenerator, rooms []*model.Room, floor, partySize int, avgItemPower float64) {
	eligible := make([]*catalog.EnemyDef, 0, len(cat.Enemies))
	for _, def := range cat.Enemies {
		if !def.IsRareOnly {
			eligible = append(eligible, def)
		}
	}
	if len(eligible) == 0 {
		return
	}

	for _, r := range rooms {
		if r.Type == model.RoomStart {
			continue
		}
		if r.Type == model.RoomBoss {
			if boss := spawnBoss(cat, idGen, source, r, floor, partySize, avgItemPower); boss != nil {
				r.Enemies = append(r.Enemies, boss)
			}
			continue
		}
		count := enemyCountForFloor(source, floor, r.Type)
		positions := formationPositions(r, count)

		if r.Type == model.RoomRare {
			if rare := catalog.RareVariantFor(cat); rare != nil {
				r.Enemies = append(r.Enemies, spawnEnemy(idGen, rare, positions[0], r, floor, partySize, avgItemPower))
				positions = positions[1:]
				count--
			}
		}

		for i := 0; i < count && i < len(positions); i++ {
			def := rng.Pick(source, eligible)
			e := spawnEnemy(idGen, def, positions[i], r, floor, partySize, avgItemPower)
			if r.Variant == model.VariantAmbush {
				e.IsHidden = true
			}
			if floor >= 3 && source.Chance(0.2) {
				e.IsElite = true
			}
			r.Enemies = append(r.Enemies, e)
		}
	}
}

func enemyCountForFloor(source *rng.Source, floor int, roomType model.RoomType) int {
	if roomType == model.RoomBoss {
		return 1
	}
	minCount := 2 + floor/3
	maxCount := 4 + floor/2
	if maxCount <= minCount {
		maxCount = minCount + 1
	}
	return source.NextInt(minCount, maxCount+1)
}

func spawnEnemy(idGen *model.IDGenerator, def *catalog.EnemyDef, pos model.Point, room *model.Room, floor, partySize int, avgItemPower float64) *model.Enemy {
	stats := catalog.ScaleStats(def.BaseStats, floor, partySize, avgItemPower)
	return model.NewEnemy(idGen.Next(), def.ID, def.Kind, stats, pos, room.ID)
}

// spawnBoss picks a boss def deterministically by floor (sorted IDs keep
// generation reproducible for a given seed) and builds an enemy with its
// two independent cooldown tracks staggered per spec §4.5: ability
// cooldowns start at 4s, 7s, 10s, ... and the AoE track starts at 6-8s.
func spawnBoss(cat *catalog.Catalog, idGen *model.IDGenerator, source *rng.Source, room *model.Room, floor, partySize int, avgItemPower float64) *model.Enemy {
	ids := make([]string, 0, len(cat.Bosses))
	for id := range cat.Bosses {
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}
	sort.Strings(ids)
	def := cat.Bosses[ids[(floor-1)%len(ids)]]

	stats := catalog.ScaleStats(def.BaseStats, floor, partySize, avgItemPower)
	pos := room.Rect.Center()
	e := model.NewEnemy(idGen.Next(), def.ID, catalog.EnemyCaster, stats, pos, room.ID)
	e.IsBoss = true
	e.BossID = def.ID

	e.AbilityCooldowns = make(map[string]time.Duration, len(def.Abilities))
	for i, ability := range def.AbilitiesForFloor(floor) {
		e.AbilityCooldowns[ability.AbilityID] = time.Duration(4+3*i) * time.Second
	}
	e.AoECooldown = time.Duration(source.NextInt(6000, 8001)) * time.Millisecond
	return e
}

// formationPositions lays out count positions following the room's
// variant archetype (spec §4.2 step 6): arena=perimeter, guardian=center
// plus ring, swarm=cluster, ambush=against walls, gauntlet=along the
// longest axis. Standard falls back to a simple grid.
func formationPositions(r *model.Room, count int) []model.Point {
	if count <= 0 {
		return nil
	}
	center := r.Rect.Center()
	out := make([]model.Point, 0, count)

	switch r.Variant {
	case model.VariantArena:
		radius := minInt(r.Rect.W, r.Rect.H)/2 - 30
		for i := 0; i < count; i++ {
			out = append(out, pointOnRing(center, radius, i, count))
		}
	case model.VariantGuardian:
		out = append(out, center)
		for i := 1; i < count; i++ {
			out = append(out, pointOnRing(center, 80, i-1, count-1))
		}
	case model.VariantSwarm:
		for i := 0; i < count; i++ {
			dx := (i%3 - 1) * 40
			dy := (i/3 - 1) * 40
			out = append(out, model.Point{X: center.X + dx, Y: center.Y + dy})
		}
	case model.VariantAmbush:
		for i := 0; i < count; i++ {
			switch i % 4 {
			case 0:
				out = append(out, model.Point{X: r.Rect.X + 20, Y: center.Y})
			case 1:
				out = append(out, model.Point{X: r.Rect.X + r.Rect.W - 20, Y: center.Y})
			case 2:
				out = append(out, model.Point{X: center.X, Y: r.Rect.Y + 20})
			default:
				out = append(out, model.Point{X: center.X, Y: r.Rect.Y + r.Rect.H - 20})
			}
		}
	case model.VariantGauntlet:
		longAxisW := r.Rect.W >= r.Rect.H
		for i := 0; i < count; i++ {
			t := float64(i+1) / float64(count+1)
			if longAxisW {
				out = append(out, model.Point{X: r.Rect.X + int(t*float64(r.Rect.W)), Y: center.Y})
			} else {
				out = append(out, model.Point{X: center.X, Y: r.Rect.Y + int(t*float64(r.Rect.H))})
			}
		}
	default:
		cols := 3
		for i := 0; i < count; i++ {
			dx := (i%cols - 1) * 50
			dy := (i/cols) * 50
			out = append(out, model.Point{X: center.X + dx, Y: center.Y + dy})
		}
	}
	return out
}

func pointOnRing(center model.Point, radius, i, n int) model.Point {
	if n <= 0 {
		n = 1
	}
	angle := 2 * math.Pi * float64(i) / float64(n)
	return model.Point{
		X: center.X + int(float64(radius)*math.Cos(angle)),
		Y: center.Y + int(float64(radius)*math.Sin(angle)),
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// assignPatrols assigns 1-5 patrollers a 2-4 room route through connected
// normal rooms, with waypoints that zigzag room-center/corridor-midpoint
// rather than a straight line (spec §4.2 step 7).
func assignPatrols(source *rng.Source, idGen *model.IDGenerator, rooms []*model.Room) {
	var normalRooms []*model.Room
	for _, r := range rooms {
		if r.Type == model.RoomNormal {
			normalRooms = append(normalRooms, r)
		}
	}
	if len(normalRooms) < 2 {
		return
	}

	byID := make(map[uint64]*model.Room, len(rooms))
	for _, r := range rooms {
		byID[r.ID] = r
	}

	patrollerCount := source.NextInt(1, 6)
	for i := 0; i < patrollerCount; i++ {
		startRoom := rng.Pick(source, normalRooms)
		route := buildPatrolRoute(source, byID, startRoom, source.NextInt(2, 5))
		if len(route) < 2 {
			continue
		}

		waypoints := routeWaypoints(route)
		def := &catalog.EnemyDef{ID: "skeleton_warrior", Kind: catalog.EnemyMelee, BaseStats: catalog.Stats{MaxHealth: 60, Health: 60, Armor: 8, AttackPower: 8}}
		e := model.NewEnemy(idGen.Next(), def.ID, def.Kind, def.BaseStats, waypoints[0], route[0].ID)
		e.IsPatrolling = true
		e.PatrolWaypoints = waypoints
		e.PatrolDirection = 1
		route[0].Enemies = append(route[0].Enemies, e)
	}
}

// buildPatrolRoute walks a random path of roomCount connected rooms
// starting at start, resolving each hop's room ID against byID (spec §4.2
// step 7: "2-4 room route through connected normal rooms"). Every hop
// goes to a connected normal room; the route stops early when none is
// left unvisited.
func buildPatrolRoute(source *rng.Source, byID map[uint64]*model.Room, start *model.Room, roomCount int) []*model.Room {
	route := []*model.Room{start}
	visited := map[uint64]bool{start.ID: true}
	current := start
	for len(route) < roomCount {
		var candidates []uint64
		for id := range current.ConnectedTo {
			if r, ok := byID[id]; ok && !visited[id] && r.Type == model.RoomNormal {
				candidates = append(candidates, id)
			}
		}
		if len(candidates) == 0 {
			break
		}
		nextID := rng.Pick(source, candidates)
		next, ok := byID[nextID]
		if !ok {
			break
		}
		route = append(route, next)
		visited[nextID] = true
		current = next
	}
	return route
}

// routeWaypoints expands a room route into the zigzag waypoint sequence
// spec §4.2 step 7 requires: [room_center, corridor_midpoint, room_center,
// ...], never a straight line between centers.
func routeWaypoints(route []*model.Room) []model.Point {
	if len(route) == 0 {
		return nil
	}
	waypoints := []model.Point{route[0].Rect.Center()}
	for i := 1; i < len(route); i++ {
		prevCenter := route[i-1].Rect.Center()
		curCenter := route[i].Rect.Center()
		mid := model.Point{X: (prevCenter.X + curCenter.X) / 2, Y: (prevCenter.Y + curCenter.Y) / 2}
		waypoints = append(waypoints, mid, curCenter)
	}
	return waypoints
}
