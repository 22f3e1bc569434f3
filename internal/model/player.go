package model

import (
	"time"

	"github.com/konopkja/dungeon-link-sub001/internal/catalog"
)

// ItemInstance is one concrete item occupying an equipment slot or a
// backpack slot.
type ItemInstance struct {
	ID      uint64
	ItemDef string // catalog.ItemDef.ID
}

// AbilityState is a player's progression+readiness state for one known
// ability.
type AbilityState struct {
	AbilityID         string
	Rank              int
	CooldownRemaining time.Duration
}

// ReadyToCast reports whether the ability is off cooldown.
func (a *AbilityState) ReadyToCast() bool {
	return a.CooldownRemaining <= 0
}

// BackpackCap is the maximum number of backpack slots (spec invariant 7).
const BackpackCap = 20

// Player is a user-controlled character (spec §3 Player).
type Player struct {
	ID      uint64
	Name    string
	ClassID string

	Position Point
	RoomID   uint64

	BaseStats Stats // from class + level, before equipment/buffs
	Stats     Stats // effective, recomputed on any change (spec §4.7 step 1)

	Equipment map[catalog.EquipSlot]*ItemInstance
	Backpack  []*ItemInstance

	Abilities map[string]*AbilityState

	Gold  int
	Level int
	XP    int64

	Buffs    *BuffSet
	TargetID uint64
	IsAlive  bool

	// AutoAttackCooldown gates the tick scheduler's auto-attack step
	// (spec §4.7 step 10: "1.5s base cooldown").
	AutoAttackCooldown time.Duration

	ClientID string // broadcast identity; empty until bound by the transport layer
}

// NewPlayer constructs a fresh level-1 player of the given class.
func NewPlayer(id uint64, name, classID string, cat *catalog.Catalog) *Player {
	def := cat.Classes[classID]
	p := &Player{
		ID:        id,
		Name:      name,
		ClassID:   classID,
		BaseStats: def.BaseStats,
		Stats:     def.BaseStats,
		Equipment: make(map[catalog.EquipSlot]*ItemInstance, len(catalog.AllSlots)),
		Abilities: make(map[string]*AbilityState, len(def.StartingIDs)),
		Level:     1,
		Buffs:     NewBuffSet(),
		IsAlive:   true,
	}
	for _, abilityID := range def.StartingIDs {
		p.Abilities[abilityID] = &AbilityState{AbilityID: abilityID, Rank: 1}
	}
	return p
}

// RecomputeStats rebuilds Stats from BaseStats plus every equipped item's
// Stats plus every active buff's StatModifiers, clamping armor/resist at 0
// and health/mana at their max (spec §4.7 step 1: "recompute stats if
// buff count changed"; spec §3/§4.8: equipment contributes to the
// effective stat block).
func (p *Player) RecomputeStats(cat *catalog.Catalog) {
	s := p.BaseStats
	for _, item := range p.Equipment {
		if item == nil {
			continue
		}
		if def := cat.Items[item.ItemDef]; def != nil {
			s = AddStats(s, def.Stats)
		}
	}
	for _, b := range p.Buffs.All() {
		s = AddStats(s, b.StatModifiers)
	}
	s = ClampNonNegative(s)
	// preserve current health/mana rather than resetting to max/base
	s.Health = p.Stats.Health
	s.Mana = p.Stats.Mana
	p.Stats = ClampVital(s)
}

// EquipSlotSwap equips newItem into slot, returning the item previously
// there (nil if empty). Caller is responsible for inserting the returned
// item into the backpack (spec invariant 7: "equipping swaps slot
// contents into backpack if non-empty").
func (p *Player) EquipSlotSwap(slot catalog.EquipSlot, newItem *ItemInstance) *ItemInstance {
	prior := p.Equipment[slot]
	p.Equipment[slot] = newItem
	return prior
}

// AddToBackpack appends item to the backpack if there is room, returning
// false if the backpack is already at BackpackCap (spec invariant 7).
func (p *Player) AddToBackpack(item *ItemInstance) bool {
	if len(p.Backpack) >= BackpackCap {
		return false
	}
	p.Backpack = append(p.Backpack, item)
	return true
}

// RemoveFromBackpack removes and returns the item at index, or nil if out
// of range.
func (p *Player) RemoveFromBackpack(index int) *ItemInstance {
	if index < 0 || index >= len(p.Backpack) {
		return nil
	}
	item := p.Backpack[index]
	p.Backpack = append(p.Backpack[:index], p.Backpack[index+1:]...)
	return item
}

// Kill marks the player dead and clears its target, preserving spec
// invariant 3 ("a Player with isAlive=false has targetId=null").
func (p *Player) Kill() {
	p.IsAlive = false
	p.TargetID = 0
}

// EquippedSetCounts tallies how many equipped items belong to each
// catalog set ID, for the set-bonus engine (SPEC_FULL.md Supplemented
// Features).
func (p *Player) EquippedSetCounts(cat *catalog.Catalog) map[string]int {
	counts := make(map[string]int)
	for _, item := range p.Equipment {
		if item == nil {
			continue
		}
		def := cat.Items[item.ItemDef]
		if def == nil || def.SetID == "" {
			continue
		}
		counts[def.SetID]++
	}
	return counts
}
