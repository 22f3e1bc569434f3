// Package oracle is the reward-oracle bridge (spec §1: "Wallet, on-chain
// settlement, reward attestation... treated as an opaque reward oracle:
// the core only emits 'boss chest opened' events and accepts opaque
// attestations"). This package never interprets wallet, chain, or
// attestation payloads — it only accounts for which chest drops are
// pending a claim and deduplicates concurrent attestation requests for
// the same chest.
//
// Grounded on golang.org/x/sync/singleflight (already pulled in by the
// teacher's module graph via x/sync, used here for its collapsing-duplicate-
// calls behavior rather than the teacher's own code, since no example repo
// implements an outbound attestation bridge): concurrent OPEN_CHEST
// deliveries for the same boss chest (e.g. a retried client intent)
// collapse into one outbound Submitter call instead of double-spending
// the oracle's attention.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/konopkja/dungeon-link-sub001/internal/model"
)

// ErrNoPendingClaim is returned when an attestation is requested for a
// chest with no recorded drops.
var ErrNoPendingClaim = errors.New("oracle: no pending claim for this chest")

// Claim is the opaque outbound request payload: which run and chest
// produced which drops. The core never looks inside an Attestation it
// gets back — it only forwards it to the client as CHEST_OPENED/PURCHASE
// bridge messages.
type Claim struct {
	RunID   uint64
	ChestID uint64
	Drops   []model.LootDrop
}

// Attestation is whatever the external reward oracle hands back for a
// Claim. The core treats it as an opaque blob to relay to the client.
type Attestation struct {
	Token string // opaque, oracle-defined
}

// Submitter submits a Claim to the external reward oracle and returns its
// attestation. Supplied by the caller (cmd/server wiring) — this package
// has no transport of its own.
type Submitter func(ctx context.Context, claim Claim) (Attestation, error)

type runLedger struct {
	mu      sync.Mutex
	pending map[uint64][]model.LootDrop // chestID -> accumulated drops awaiting attestation
	claimed map[uint64]Attestation      // chestID -> attestation once claimed
}

// Bridge accounts for pending boss-chest drops per Run and brokers
// attestation requests against a Submitter, collapsing duplicate
// concurrent requests for the same (run, chest) pair.
type Bridge struct {
	submit Submitter

	mu     sync.Mutex
	ledger map[uint64]*runLedger // runID -> ledger

	group singleflight.Group
}

// New returns a Bridge that submits claims via submit.
func New(submit Submitter) *Bridge {
	return &Bridge{submit: submit, ledger: make(map[uint64]*runLedger)}
}

func (b *Bridge) ledgerFor(runID uint64) *runLedger {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, ok := b.ledger[runID]
	if !ok {
		l = &runLedger{pending: make(map[uint64][]model.LootDrop), claimed: make(map[uint64]Attestation)}
		b.ledger[runID] = l
	}
	return l
}

// RecordChestDrop accounts for a boss-room chest's drops (spec §6: "boss-
// room chest openings forward to the reward-oracle bridge"). Call this
// from OPEN_CHEST handling instead of adding boss-chest drops directly to
// Run.PendingLoot.
func (b *Bridge) RecordChestDrop(runID, chestID uint64, drops []model.LootDrop) {
	l := b.ledgerFor(runID)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending[chestID] = append(l.pending[chestID], drops...)
}

// RequestAttestation submits the pending drops for (runID, chestID) to
// the reward oracle and returns its attestation. Concurrent calls for the
// same (runID, chestID) collapse into a single outbound Submitter call.
// A chest already claimed returns its cached Attestation without
// resubmitting.
func (b *Bridge) RequestAttestation(ctx context.Context, runID, chestID uint64) (Attestation, error) {
	l := b.ledgerFor(runID)

	l.mu.Lock()
	if att, ok := l.claimed[chestID]; ok {
		l.mu.Unlock()
		return att, nil
	}
	drops := l.pending[chestID]
	l.mu.Unlock()

	if len(drops) == 0 {
		return Attestation{}, ErrNoPendingClaim
	}

	key := fmt.Sprintf("%d:%d", runID, chestID)
	v, err, _ := b.group.Do(key, func() (any, error) {
		return b.submit(ctx, Claim{RunID: runID, ChestID: chestID, Drops: drops})
	})
	if err != nil {
		return Attestation{}, fmt.Errorf("submitting claim for run %d chest %d: %w", runID, chestID, err)
	}

	att := v.(Attestation)
	l.mu.Lock()
	l.claimed[chestID] = att
	delete(l.pending, chestID)
	l.mu.Unlock()

	return att, nil
}

// Forget drops a Run's ledger entirely, e.g. once the Run is destroyed
// (spec §5: "if it was the last player in the Run, the Run (and its
// reward-oracle state) is destroyed").
func (b *Bridge) Forget(runID uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.ledger, runID)
}
