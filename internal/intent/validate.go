package intent

import "github.com/konopkja/dungeon-link-sub001/internal/catalog"

// SaveAbility is one entry of a CREATE_RUN_FROM_SAVE ability list.
type SaveAbility struct {
	AbilityID string
	Rank      int
}

// SaveItem is one entry of a CREATE_RUN_FROM_SAVE backpack/equipment list.
type SaveItem struct {
	ItemID string
}

// SaveData is the decoded payload of CREATE_RUN_FROM_SAVE (spec §6).
type SaveData struct {
	PlayerName string
	ClassID    string
	Level      int
	Gold       int
	Floor      int
	XP         int64
	Lives      int
	Abilities  []SaveAbility
	Backpack   []SaveItem
}

// ValidateSaveData checks every boundary spec §6 names, returning the
// specific sentinel for the first violated one (spec §8.14: "each
// boundary case... rejects with a specific ERROR message"). A valid
// SaveData returns nil.
func ValidateSaveData(data SaveData, cat *catalog.Catalog) error {
	if len(data.PlayerName) == 0 || len(data.PlayerName) > 30 {
		return ErrInvalidName
	}
	if !validClassID(data.ClassID, cat) {
		return ErrInvalidClass
	}
	if data.Level < 1 || data.Level > 50 {
		return ErrInvalidLevel
	}
	if data.Gold < 0 || data.Gold > 99999 {
		return ErrInvalidGold
	}
	if data.Floor < 1 || data.Floor > 30 {
		return ErrInvalidFloor
	}
	if len(data.Abilities) > 10 {
		return ErrTooManyAbilities
	}
	if len(data.Backpack) > 20 {
		return ErrTooManyItems
	}
	if data.XP < 0 {
		return ErrNegativeXP
	}
	if data.Lives < 0 || data.Lives > 5 {
		return ErrInvalidLives
	}
	return nil
}

func validClassID(id string, cat *catalog.Catalog) bool {
	_, ok := cat.Classes[id]
	return ok
}
