package intent

import (
	"github.com/konopkja/dungeon-link-sub001/internal/dungeongen"
	"github.com/konopkja/dungeon-link-sub001/internal/model"
	"github.com/konopkja/dungeon-link-sub001/internal/runregistry"
)

// CreateRun applies CREATE_RUN (spec §6): allocates a fresh Run, generates
// its floor-1 dungeon, and places a new level-1 player of the given class
// into the start room.
func (h *Handler) CreateRun(reg *runregistry.Registry, seed string, playerID uint64, playerName, classID string) (*model.Run, error) {
	if !validClassID(classID, h.cat) {
		return nil, ErrInvalidClass
	}

	run := reg.CreateRun(seed)
	run.Dungeon = dungeongen.Generate(h.cat, run.IDGen, run.Seed, run.Floor, 1, 0)
	start := run.Dungeon.StartRoom()

	p := model.NewPlayer(playerID, playerName, classID, h.cat)
	p.RoomID = start.ID
	p.Position = start.Rect.Center()
	run.Players = append(run.Players, p)

	if err := reg.BindPlayer(run.ID, playerID); err != nil {
		return nil, err
	}
	return run, nil
}

// CreateRunFromSave applies CREATE_RUN_FROM_SAVE (spec §6): validates the
// save payload, then restores a player onto a fresh Run generated at the
// save's recorded floor rather than floor 1.
func (h *Handler) CreateRunFromSave(reg *runregistry.Registry, seed string, playerID uint64, data SaveData) (*model.Run, error) {
	if err := ValidateSaveData(data, h.cat); err != nil {
		return nil, err
	}

	run := reg.CreateRun(seed)
	run.Floor = data.Floor
	run.Dungeon = dungeongen.Generate(h.cat, run.IDGen, run.Seed, run.Floor, 1, 0)
	start := run.Dungeon.StartRoom()

	p := model.NewPlayer(playerID, data.PlayerName, data.ClassID, h.cat)
	p.RoomID = start.ID
	p.Position = start.Rect.Center()
	p.Level = data.Level
	p.Gold = data.Gold
	p.XP = data.XP

	for _, sa := range data.Abilities {
		p.Abilities[sa.AbilityID] = &model.AbilityState{AbilityID: sa.AbilityID, Rank: sa.Rank}
	}
	for _, si := range data.Backpack {
		p.AddToBackpack(&model.ItemInstance{ID: run.IDGen.Next(), ItemDef: si.ItemID})
	}
	p.RecomputeStats(h.cat)

	run.Players = append(run.Players, p)
	if err := reg.BindPlayer(run.ID, playerID); err != nil {
		return nil, err
	}
	return run, nil
}
