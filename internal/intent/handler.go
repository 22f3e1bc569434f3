package intent

import (
	"log/slog"

	"github.com/konopkja/dungeon-link-sub001/internal/catalog"
	"github.com/konopkja/dungeon-link-sub001/internal/combat"
	"github.com/konopkja/dungeon-link-sub001/internal/dungeongen"
	"github.com/konopkja/dungeon-link-sub001/internal/loot"
	"github.com/konopkja/dungeon-link-sub001/internal/model"
	"github.com/konopkja/dungeon-link-sub001/internal/oracle"
)

// chestMimicTemplate is the enemy template spawned by a Treasure-theme
// mimic chest (spec §6 "mimics spawn enemies"). The catalog has no
// dedicated mimic template, so the handler reuses the most common melee
// enemy rather than inventing a new catalog entry.
const chestMimicTemplate = "skeleton_warrior"

// groundItemPickupRange is PICKUP_GROUND_ITEM's interaction distance
// (spec §6: "within 200 units"), distinct from the tick scheduler's
// automatic LOOT_PICKUP_DISTANCE (100, spec §4.7 step 4).
const groundItemPickupRange = 200

// PurchaseService enumerates the PURCHASE_SERVICE intent's serviceType
// values (spec §6).
type PurchaseService string

const (
	ServiceLevelUp      PurchaseService = "level_up"
	ServiceTrainAbility PurchaseService = "train_ability"
	ServiceSellItem     PurchaseService = "sell_item"
	ServiceSellAll      PurchaseService = "sell_all"
)

// Handler decodes and applies client intents against a *model.Run (spec
// §6). It owns no transport state; callers look up the target Run and
// Player via internal/runregistry before calling into Handler.
//
// Grounded on the teacher's internal/network/handler: one method per
// opcode, validating preconditions before mutating world state and
// returning the events the caller forwards to the client(s).
type Handler struct {
	cat      *catalog.Catalog
	resolver *combat.Resolver
	bridge   *oracle.Bridge // nil: boss chests fall back to direct ground-item drops
}

// New returns a Handler backed by the given catalog.
func New(cat *catalog.Catalog) *Handler {
	return &Handler{cat: cat, resolver: combat.NewResolver(cat)}
}

// WithRewardOracle attaches a reward-oracle bridge: boss-room chest
// openings forward their drops to it instead of placing ground items
// directly (spec §6: "boss-room chest openings forward to the
// reward-oracle bridge").
func (h *Handler) WithRewardOracle(b *oracle.Bridge) *Handler {
	h.bridge = b
	return h
}

func findPlayer(run *model.Run, playerID uint64) (*model.Player, error) {
	p := run.PlayerByID(playerID)
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	return p, nil
}

// SetMoveIntent records a PLAYER_INPUT's continuous movement vector
// (moveX, moveY) for the tick scheduler's movement phase to consume.
func (h *Handler) SetMoveIntent(run *model.Run, playerID uint64, moveX, moveY float64) error {
	if _, err := findPlayer(run, playerID); err != nil {
		return err
	}
	run.Tracking.PlayerMoveIntent[playerID] = model.Vector2{X: moveX, Y: moveY}
	return nil
}

// CastAbility applies a PLAYER_INPUT's one-shot castAbility, or a no-op
// per spec §7 if the precondition fails. A failed precondition comes back
// as an error for which combat.IsNoOp reports true (drop silently), as
// opposed to malformed input (caller should emit ERROR).
func (h *Handler) CastAbility(run *model.Run, playerID, targetID uint64, abilityID string, targetPos *model.Point) ([]combat.Event, error) {
	if _, err := findPlayer(run, playerID); err != nil {
		return nil, err
	}
	events, err := h.resolver.CastAbility(run, playerID, targetID, abilityID, targetPos)
	if err != nil {
		return nil, err
	}
	return events, nil
}

// SetTarget applies SET_TARGET. targetID of 0 clears the target.
func (h *Handler) SetTarget(run *model.Run, playerID, targetID uint64) error {
	p, err := findPlayer(run, playerID)
	if err != nil {
		return err
	}
	p.TargetID = targetID
	return nil
}

// AdvanceFloor applies ADVANCE_FLOOR: only effective once the current
// floor's boss is defeated (spec §6). Not yet effective is a no-op, not
// an error.
func (h *Handler) AdvanceFloor(run *model.Run) (advanced bool) {
	if run.Dungeon == nil || !run.Dungeon.BossDefeated {
		return false
	}
	run.Floor++
	run.Dungeon = dungeongen.Generate(h.cat, run.IDGen, run.Seed, run.Floor, len(run.Players), run.PartyScaling)
	start := run.Dungeon.StartRoom()
	for _, p := range run.Players {
		if !p.IsAlive {
			continue
		}
		p.RoomID = start.ID
		p.Position = start.Rect.Center()
	}
	slog.Info("floor advanced", "run", run.ID, "floor", run.Floor)
	return true
}

// UseItem applies USE_ITEM: consumes a potion from the backpack at the
// given index if it is one, healing the player. Non-potions and
// out-of-range indices are no-ops.
func (h *Handler) UseItem(run *model.Run, playerID uint64, backpackIndex int) (healed int, ok bool, err error) {
	p, err := findPlayer(run, playerID)
	if err != nil {
		return 0, false, err
	}
	if backpackIndex < 0 || backpackIndex >= len(p.Backpack) {
		return 0, false, nil
	}
	item := p.Backpack[backpackIndex]
	def, known := h.cat.Items[item.ItemDef]
	if !known || !def.IsPotion {
		return 0, false, nil
	}
	p.RemoveFromBackpack(backpackIndex)
	before := p.Stats.Health
	p.Stats.Health = p.Stats.Health + def.HealAmt
	if p.Stats.Health > p.Stats.MaxHealth {
		p.Stats.Health = p.Stats.MaxHealth
	}
	return p.Stats.Health - before, true, nil
}

// SwapEquipment applies SWAP_EQUIPMENT: moves a backpack item into an
// equipment slot, returning any item that was previously equipped there
// to the backpack.
func (h *Handler) SwapEquipment(run *model.Run, playerID uint64, backpackIndex int, slot catalog.EquipSlot) error {
	p, err := findPlayer(run, playerID)
	if err != nil {
		return err
	}
	if !validSlot(slot) {
		return ErrInvalidSlot
	}
	if backpackIndex < 0 || backpackIndex >= len(p.Backpack) {
		return nil // no-op: stale index
	}
	item := p.RemoveFromBackpack(backpackIndex)
	prior := p.EquipSlotSwap(slot, item)
	if prior != nil {
		p.AddToBackpack(prior)
	}
	p.RecomputeStats(h.cat)
	return nil
}

// UnequipItem applies UNEQUIP_ITEM: moves the item in slot back to the
// backpack, if any and if there is room.
func (h *Handler) UnequipItem(run *model.Run, playerID uint64, slot catalog.EquipSlot) error {
	p, err := findPlayer(run, playerID)
	if err != nil {
		return err
	}
	if !validSlot(slot) {
		return ErrInvalidSlot
	}
	current := p.Equipment[slot]
	if current == nil {
		return nil
	}
	if !p.AddToBackpack(current) {
		return nil // backpack full: no-op precondition failure per spec §7
	}
	p.EquipSlotSwap(slot, nil)
	p.RecomputeStats(h.cat)
	return nil
}

func validSlot(slot catalog.EquipSlot) bool {
	for _, s := range catalog.AllSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// InteractVendor applies INTERACT_VENDOR, returning the vendor the
// player is close enough to interact with, or nil if none matches.
func (h *Handler) InteractVendor(run *model.Run, playerID, vendorID uint64) (*model.Vendor, error) {
	p, err := findPlayer(run, playerID)
	if err != nil {
		return nil, err
	}
	room := run.Dungeon.RoomByID(p.RoomID)
	if room == nil {
		return nil, nil
	}
	for _, v := range []*model.Vendor{room.Vendor, room.ShopVendor, room.CryptoVendor} {
		if v != nil && v.ID == vendorID {
			return v, nil
		}
	}
	return nil, nil
}

// PurchaseResult is the outcome of a PURCHASE_SERVICE intent.
type PurchaseResult struct {
	Success bool
	Reason  string
}

// PurchaseService applies PURCHASE_SERVICE against the vendor named by
// vendorID.
func (h *Handler) PurchaseService(run *model.Run, playerID, vendorID uint64, service PurchaseService, abilityID, itemID string) (PurchaseResult, error) {
	p, err := findPlayer(run, playerID)
	if err != nil {
		return PurchaseResult{}, err
	}
	vendor, err := h.InteractVendor(run, playerID, vendorID)
	if err != nil {
		return PurchaseResult{}, err
	}
	if vendor == nil {
		return PurchaseResult{Success: false, Reason: "vendor not in range"}, nil
	}

	switch service {
	case ServiceLevelUp:
		return h.purchaseLevelUp(p, vendor)
	case ServiceTrainAbility:
		return h.purchaseTrainAbility(run, p, vendor, abilityID)
	case ServiceSellItem:
		return h.purchaseSellItem(p, vendor, itemID)
	case ServiceSellAll:
		return h.purchaseSellAll(p, vendor)
	default:
		return PurchaseResult{}, ErrInvalidService
	}
}

func (h *Handler) purchaseLevelUp(p *model.Player, vendor *model.Vendor) (PurchaseResult, error) {
	if vendor.Kind != model.VendorTrainer {
		return PurchaseResult{Success: false, Reason: "wrong vendor kind"}, nil
	}
	cost := catalog.VendorPrice(100, p.Level)
	if p.Gold < cost {
		return PurchaseResult{Success: false, Reason: "insufficient gold"}, nil
	}
	p.Gold -= cost
	p.Level++
	p.RecomputeStats(h.cat)
	return PurchaseResult{Success: true}, nil
}

func (h *Handler) purchaseTrainAbility(run *model.Run, p *model.Player, vendor *model.Vendor, abilityID string) (PurchaseResult, error) {
	if vendor.Kind != model.VendorTrainer {
		return PurchaseResult{Success: false, Reason: "wrong vendor kind"}, nil
	}
	state, known := p.Abilities[abilityID]
	if !known {
		return PurchaseResult{}, ErrUnknownAbility
	}
	def := catalog.Ability(abilityID)
	if def == nil {
		return PurchaseResult{}, ErrUnknownAbility
	}
	if state.Rank >= def.MaxRank {
		return PurchaseResult{Success: false, Reason: "already at max rank"}, nil
	}
	nextRank := state.Rank + 1
	if !loot.CanUpgradeRank(nextRank, run.Floor) {
		return PurchaseResult{Success: false, Reason: "floor requirement not met"}, nil
	}
	cost := catalog.VendorPrice(50*nextRank, p.Level)
	if p.Gold < cost {
		return PurchaseResult{Success: false, Reason: "insufficient gold"}, nil
	}
	p.Gold -= cost
	state.Rank = nextRank
	return PurchaseResult{Success: true}, nil
}

func (h *Handler) purchaseSellItem(p *model.Player, vendor *model.Vendor, itemID string) (PurchaseResult, error) {
	if vendor.Kind != model.VendorShop {
		return PurchaseResult{Success: false, Reason: "wrong vendor kind"}, nil
	}
	for i, item := range p.Backpack {
		if item.ItemDef == itemID {
			def := h.cat.Items[item.ItemDef]
			p.RemoveFromBackpack(i)
			p.Gold += sellPrice(def)
			return PurchaseResult{Success: true}, nil
		}
	}
	return PurchaseResult{Success: false, Reason: "item not held"}, nil
}

func (h *Handler) purchaseSellAll(p *model.Player, vendor *model.Vendor) (PurchaseResult, error) {
	if vendor.Kind != model.VendorShop {
		return PurchaseResult{Success: false, Reason: "wrong vendor kind"}, nil
	}
	total := 0
	for _, item := range p.Backpack {
		total += sellPrice(h.cat.Items[item.ItemDef])
	}
	p.Backpack = nil
	p.Gold += total
	return PurchaseResult{Success: true}, nil
}

func sellPrice(def *catalog.ItemDef) int {
	if def == nil {
		return 0
	}
	return 5 * (int(def.Rarity) + 1)
}

// PickupGroundItem applies PICKUP_GROUND_ITEM: moves a ground item into
// the player's backpack if within range and there is room.
func (h *Handler) PickupGroundItem(run *model.Run, playerID, groundItemID uint64) (picked bool, err error) {
	p, err := findPlayer(run, playerID)
	if err != nil {
		return false, err
	}
	room := run.Dungeon.RoomByID(p.RoomID)
	if room == nil {
		return false, nil
	}
	for i, gi := range room.GroundItems {
		if gi.ID != groundItemID {
			continue
		}
		if model.DistSq(p.Position, gi.Position) > groundItemPickupRange*groundItemPickupRange {
			return false, nil
		}
		if !p.AddToBackpack(&model.ItemInstance{ID: run.IDGen.Next(), ItemDef: gi.ItemID}) {
			return false, nil
		}
		room.GroundItems = append(room.GroundItems[:i], room.GroundItems[i+1:]...)
		return true, nil
	}
	return false, nil
}

// OpenChest applies OPEN_CHEST: rolls drops into a chest's position as
// ground items, or — if the chest is a mimic — spawns a hostile enemy in
// its place instead (spec §6 "mimics spawn enemies").
func (h *Handler) OpenChest(run *model.Run, playerID, chestID uint64) (spawnedEnemy *model.Enemy, err error) {
	p, err := findPlayer(run, playerID)
	if err != nil {
		return nil, err
	}
	room := run.Dungeon.RoomByID(p.RoomID)
	if room == nil {
		return nil, nil
	}
	for _, c := range room.Chests {
		if c.ID != chestID || c.IsOpen {
			continue
		}
		if model.DistSq(p.Position, c.Position) > loot.ChestInteractDistance*loot.ChestInteractDistance {
			return nil, nil
		}
		c.IsOpen = true

		if c.IsMimic {
			def := h.cat.Enemies[chestMimicTemplate]
			stats := catalog.ScaleStats(def.BaseStats, run.Floor, len(run.Players), run.PartyScaling)
			enemy := model.NewEnemy(run.IDGen.Next(), def.ID, def.Kind, stats, c.Position, room.ID)
			room.Enemies = append(room.Enemies, enemy)
			room.Cleared = false
			if room.Type == model.RoomBoss {
				run.Dungeon.BossDefeated = false
			}
			return enemy, nil
		}

		tier := chestTierWeight(c.LootTier)
		drop := model.LootDrop{PlayerID: playerID, ItemID: rollChestItem(h.cat, tier), Rarity: int(tier), Source: "chest"}

		if room.Type == model.RoomBoss && h.bridge != nil {
			h.bridge.RecordChestDrop(run.ID, chestID, []model.LootDrop{drop})
			return nil, nil
		}

		run.PendingLoot = append(run.PendingLoot, drop)
		room.GroundItems = append(room.GroundItems, &model.GroundItem{ID: run.IDGen.Next(), ItemID: drop.ItemID, Position: c.Position})
		return nil, nil
	}
	return nil, nil
}

func chestTierWeight(tier model.LootTier) catalog.Rarity {
	switch tier {
	case model.LootEpic:
		return catalog.RarityEpic
	case model.LootRare:
		return catalog.RarityRare
	default:
		return catalog.RarityCommon
	}
}

func rollChestItem(cat *catalog.Catalog, tier catalog.Rarity) string {
	for id, def := range cat.Items {
		if def.Rarity == tier {
			return id
		}
	}
	return ""
}
