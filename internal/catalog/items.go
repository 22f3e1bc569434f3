package catalog

// EquipSlot enumerates the 8 equipment slots (spec §3 Player: "equipment
// (8 slots)").
type EquipSlot string

const (
	SlotHead    EquipSlot = "head"
	SlotChest   EquipSlot = "chest"
	SlotLegs    EquipSlot = "legs"
	SlotHands   EquipSlot = "hands"
	SlotFeet    EquipSlot = "feet"
	SlotMainHand EquipSlot = "main_hand"
	SlotOffHand EquipSlot = "off_hand"
	SlotTrinket EquipSlot = "trinket"
)

// AllSlots is the fixed 8-slot equipment layout.
var AllSlots = [8]EquipSlot{
	SlotHead, SlotChest, SlotLegs, SlotHands, SlotFeet, SlotMainHand, SlotOffHand, SlotTrinket,
}

// Rarity is a drop-table rarity tier (spec §4.8: "Common→Uncommon→…→Legendary").
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
)

// String renders the rarity name.
func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityUncommon:
		return "Uncommon"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	default:
		return "Unknown"
	}
}

// Upgrade returns the next rarity tier, clamped at Legendary.
func (r Rarity) Upgrade() Rarity {
	if r >= RarityLegendary {
		return RarityLegendary
	}
	return r + 1
}

// ItemDef is the read-only definition of one equippable item.
type ItemDef struct {
	ID       string
	Name     string
	Slot     EquipSlot
	Rarity   Rarity
	SetID    string // "" if not part of a set
	Stats    Stats
	IsPotion bool // consumable via USE_ITEM
	HealAmt  int  // potion heal amount, if IsPotion
}

// ItemPower is the weighted-sum power score used by auto-equip and the
// kill-time drop bonus (spec §4.8): attack/spell ×2, crit/haste ×3,
// lifesteal ×4, everything else ×1.
func ItemPower(s Stats) int {
	power := s.Health + s.MaxHealth + s.Mana + s.MaxMana + s.Armor + s.Resist
	power += s.AttackPower * 2
	power += s.SpellPower * 2
	power += s.Crit * 3
	power += s.Haste * 3
	power += s.Lifesteal * 4
	return power
}

var itemDefs = []ItemDef{
	{ID: "potion_minor", Name: "Minor Healing Potion", IsPotion: true, HealAmt: 40},
	{ID: "potion_major", Name: "Major Healing Potion", IsPotion: true, HealAmt: 100},

	{ID: "rusty_sword", Name: "Rusty Sword", Slot: SlotMainHand, Rarity: RarityCommon, Stats: Stats{AttackPower: 3}},
	{ID: "iron_sword", Name: "Iron Sword", Slot: SlotMainHand, Rarity: RarityUncommon, Stats: Stats{AttackPower: 6, Crit: 1}},
	{ID: "cloth_robe", Name: "Cloth Robe", Slot: SlotChest, Rarity: RarityCommon, Stats: Stats{SpellPower: 3, MaxMana: 10}},
	{ID: "leather_vest", Name: "Leather Vest", Slot: SlotChest, Rarity: RarityCommon, Stats: Stats{Armor: 4, MaxHealth: 10}},
	{ID: "plate_chest", Name: "Plate Chestguard", Slot: SlotChest, Rarity: RarityRare, Stats: Stats{Armor: 12, MaxHealth: 25}},

	{ID: "crypt_band", Name: "Crypt Signet", Slot: SlotTrinket, Rarity: RarityRare, SetID: "crypt_relic",
		Stats: Stats{Resist: 6, Crit: 2}},
	{ID: "crypt_pauldrons", Name: "Crypt Pauldrons", Slot: SlotHands, Rarity: RarityRare, SetID: "crypt_relic",
		Stats: Stats{Armor: 6, AttackPower: 2}},
	{ID: "crypt_greaves", Name: "Crypt Greaves", Slot: SlotFeet, Rarity: RarityRare, SetID: "crypt_relic",
		Stats: Stats{Armor: 6, Haste: 2}},
}

func buildItems() map[string]*ItemDef {
	m := make(map[string]*ItemDef, len(itemDefs))
	for i := range itemDefs {
		m[itemDefs[i].ID] = &itemDefs[i]
	}
	return m
}
