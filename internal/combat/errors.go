// Package combat resolves ability casts and enemy attacks into damage,
// heal, buff, and debuff events, implementing spec §4.4's precondition
// order, damage pipeline, incoming-damage pipeline, and named combos.
//
// Grounded on the teacher's internal/game/combat (damage.go, manager.go)
// and internal/game/skill (effect.go, effect_manager.go) — tagged-variant
// effect dispatch plus a flat damage-formula function, generalized here to
// spec §4.4's full pipeline (armor/resist choice, crit, lifesteal,
// combos) instead of the teacher's MVP single-formula melee swing.
package combat

import "errors"

// Precondition failures are no-op per spec §7: "silently drop — consuming
// zero cost, producing zero events." Callers check errors.Is against
// these sentinels and, on a match, return with no state mutation and no
// events rather than surfacing an ERROR to the client.
var (
	ErrUnknownAbility = errors.New("combat: ability not known by caster")
	ErrOnCooldown     = errors.New("combat: ability on cooldown")
	ErrInsufficientMana = errors.New("combat: insufficient mana")
	ErrNoTarget       = errors.New("combat: no valid target")
	ErrTargetDead     = errors.New("combat: target is not alive")
	ErrCasterDead     = errors.New("combat: caster is not alive")
	ErrNoTargetPosition = errors.New("combat: AoE cast requires a target position")
)

// IsNoOp reports whether err represents a spec §7 no-op precondition
// (as opposed to malformed input, which callers should surface as an
// ERROR event instead).
func IsNoOp(err error) bool {
	switch {
	case errors.Is(err, ErrOnCooldown),
		errors.Is(err, ErrInsufficientMana),
		errors.Is(err, ErrNoTarget),
		errors.Is(err, ErrTargetDead),
		errors.Is(err, ErrCasterDead),
		errors.Is(err, ErrUnknownAbility):
		return true
	default:
		return false
	}
}
