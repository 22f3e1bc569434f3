package model

import (
	"testing"
	"time"
)

func TestBuffSetApplyRefreshesByIcon(t *testing.T) {
	s := NewBuffSet()
	first := &Buff{Icon: "shaman_ancestral", Duration: 10, Stacks: 3, StatModifiers: Stats{AttackPower: 5}}
	removed := s.Apply(first)
	if removed != nil {
		t.Fatal("first apply should not report a removed delta")
	}

	second := &Buff{Icon: "shaman_ancestral", Duration: 30, Stacks: 1, StatModifiers: Stats{AttackPower: 5}}
	removed = s.Apply(second)
	if removed == nil {
		t.Fatal("re-applying same icon must report the prior delta for subtraction")
	}
	if removed.Delta.AttackPower != 5 {
		t.Fatalf("removed delta = %+v, want AttackPower=5", removed.Delta)
	}
	if s.Len() != 1 {
		t.Fatalf("buff set should still have exactly 1 entry after refresh, got %d", s.Len())
	}
	if s.Get("shaman_ancestral").Stacks != 1 {
		t.Fatal("refresh must reset stack count, not accumulate")
	}
	if s.Get("shaman_ancestral").Duration != 30 {
		t.Fatal("refresh must reset duration to the new buff's duration")
	}
}

func TestBuffSetTickExpiresAndReturnsDelta(t *testing.T) {
	s := NewBuffSet()
	s.Apply(&Buff{Icon: "room_cursed", Duration: 5, StatModifiers: Stats{Armor: -10, Resist: -5}})

	expired, ticks := s.Tick(3)
	if len(expired) != 0 || len(ticks) != 0 {
		t.Fatal("buff should still be active after partial tick")
	}

	expired, _ = s.Tick(3)
	if len(expired) != 1 {
		t.Fatalf("buff should expire after total elapsed exceeds duration, got %d expired", len(expired))
	}
	if expired[0].Delta.Armor != -10 {
		t.Fatalf("expired delta = %+v, want Armor=-10", expired[0].Delta)
	}
	if s.Has("room_cursed") {
		t.Fatal("expired buff must be removed from the set")
	}
}

func TestBuffSetHasStun(t *testing.T) {
	s := NewBuffSet()
	if s.HasStun() {
		t.Fatal("empty buff set must not report a stun")
	}
	s.Apply(&Buff{Icon: "mage_pyroblast", Duration: time.Nanosecond, IsStun: true, IsDebuff: true})
	if !s.HasStun() {
		t.Fatal("stun debuff must be reported by HasStun")
	}
}

func TestBuffSetDotTicking(t *testing.T) {
	s := NewBuffSet()
	s.Apply(&Buff{Icon: "warlock_hellfire", Duration: 10 * time.Second, IsDebuff: true,
		DamagePerTick: 8, TickInterval: time.Second})

	_, ticks := s.Tick(900 * time.Millisecond)
	if len(ticks) != 0 {
		t.Fatal("DoT must not fire before tickInterval elapses")
	}
	_, ticks = s.Tick(200 * time.Millisecond)
	if len(ticks) != 1 {
		t.Fatalf("DoT must fire once tickInterval is crossed, got %d", len(ticks))
	}
}
