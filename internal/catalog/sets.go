package catalog

// SetThreshold names a piece-count at which a set bonus buff should be
// applied (and removed again if the count drops back below it).
// Grounded on spec §4.4 "set-bonus on-hit triggers" / §4.7 "set-effect
// modifiers applied" / GLOSSARY "Set effect" — spec.md names the concept
// but not its shape, so it is modeled the same way the combat resolver
// already refreshes buffs by stable icon key (§8.3).
type SetThreshold struct {
	Pieces    int
	BuffID    string // catalog ability ID whose StatDeltas/Icon apply as the bonus
	OnHitHeal int    // flat heal applied to the set-wearer on a landed hit, 0 = none
}

// SetDef is the read-only definition of a cross-equipment set bonus.
type SetDef struct {
	ID         string
	Name       string
	Thresholds []SetThreshold
}

var setDefs = []SetDef{
	{ID: "crypt_relic", Name: "Crypt Relic", Thresholds: []SetThreshold{
		// 2pc borrows the blessed-ground delta as its passive bonus shape,
		// plus a small on-hit heal triggered by the combat resolver.
		{Pieces: 2, BuffID: "room_blessed", OnHitHeal: 2},
	}},
}

func buildSets() map[string]*SetDef {
	m := make(map[string]*SetDef, len(setDefs))
	for i := range setDefs {
		m[setDefs[i].ID] = &setDefs[i]
	}
	return m
}

// ActiveThresholds returns the thresholds of def that are met by wearing
// count matching pieces, in the order they are declared in def.Thresholds.
func (def *SetDef) ActiveThresholds(count int) []SetThreshold {
	var out []SetThreshold
	for _, th := range def.Thresholds {
		if count >= th.Pieces {
			out = append(out, th)
		}
	}
	return out
}
