package combat

// Event mirrors the server's COMBAT_EVENT wire shape (spec §6): every
// field is optional except SourceID/TargetID, so a single event can carry
// a landed hit, a heal, a shield-wall block, a mana restore, or any
// combination a combo produces in one instant.
type Event struct {
	SourceID        uint64
	TargetID        uint64
	Damage          int
	Heal            int
	Blocked         int
	ManaRestore     int
	AbilityID       string
	IsCrit          bool
	IsStealthAttack bool
	Killed          bool
}
