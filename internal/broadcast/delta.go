package broadcast

import "reflect"

// Delta is the changed-only view sent on every tick after the first
// (spec §4.9: "Else compute a delta against the cached state"). A field
// is omitted from a *Changed slice unless it actually differs from the
// client's last-sent snapshot.
type Delta struct {
	Floor         *int    `json:"floor,omitempty"`
	Theme         *string `json:"theme,omitempty"`
	CurrentRoomID *uint64 `json:"currentRoomId,omitempty"`
	BossDefeated  *bool   `json:"bossDefeated,omitempty"`

	ChangedRooms   []RoomView   `json:"changedRooms,omitempty"`
	ChangedPlayers []PlayerView `json:"changedPlayers,omitempty"`
	ChangedPets    []PetView    `json:"changedPets,omitempty"`

	GroundEffects []GroundEffectView `json:"groundEffects,omitempty"` // always sent in full; cheap and short-lived

	RemovedPlayerIDs []uint64 `json:"removedPlayerIds,omitempty"`
	RemovedPetIDs    []uint64 `json:"removedPetIds,omitempty"`
}

// BuildDelta compares prev (the client's last-sent snapshot) against cur
// (the current tick's snapshot) and returns only what changed.
func BuildDelta(prev, cur Snapshot) Delta {
	var d Delta

	if cur.Floor != prev.Floor {
		d.Floor = &cur.Floor
	}
	if cur.Theme != prev.Theme {
		d.Theme = &cur.Theme
	}
	if cur.CurrentRoomID != prev.CurrentRoomID {
		d.CurrentRoomID = &cur.CurrentRoomID
	}
	if cur.BossDefeated != prev.BossDefeated {
		d.BossDefeated = &cur.BossDefeated
	}

	prevRooms := make(map[uint64]RoomView, len(prev.Rooms))
	for _, r := range prev.Rooms {
		prevRooms[r.ID] = r
	}
	for _, r := range cur.Rooms {
		if old, ok := prevRooms[r.ID]; !ok || !reflect.DeepEqual(old, r) {
			d.ChangedRooms = append(d.ChangedRooms, r)
		}
	}

	prevPlayers := make(map[uint64]PlayerView, len(prev.Players))
	for _, p := range prev.Players {
		prevPlayers[p.ID] = p
	}
	curPlayerIDs := make(map[uint64]struct{}, len(cur.Players))
	for _, p := range cur.Players {
		curPlayerIDs[p.ID] = struct{}{}
		if old, ok := prevPlayers[p.ID]; !ok || !reflect.DeepEqual(old, p) {
			d.ChangedPlayers = append(d.ChangedPlayers, p)
		}
	}
	for id := range prevPlayers {
		if _, ok := curPlayerIDs[id]; !ok {
			d.RemovedPlayerIDs = append(d.RemovedPlayerIDs, id)
		}
	}

	prevPets := make(map[uint64]PetView, len(prev.Pets))
	for _, p := range prev.Pets {
		prevPets[p.ID] = p
	}
	curPetIDs := make(map[uint64]struct{}, len(cur.Pets))
	for _, p := range cur.Pets {
		curPetIDs[p.ID] = struct{}{}
		if old, ok := prevPets[p.ID]; !ok || !reflect.DeepEqual(old, p) {
			d.ChangedPets = append(d.ChangedPets, p)
		}
	}
	for id := range prevPets {
		if _, ok := curPetIDs[id]; !ok {
			d.RemovedPetIDs = append(d.RemovedPetIDs, id)
		}
	}

	d.GroundEffects = cur.GroundEffects

	return d
}
