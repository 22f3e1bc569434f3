package oracle

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/konopkja/dungeon-link-sub001/internal/model"
)

func TestRequestAttestationNoPendingClaim(t *testing.T) {
	b := New(func(ctx context.Context, claim Claim) (Attestation, error) {
		t.Fatal("submitter should not be called with no pending drops")
		return Attestation{}, nil
	})

	_, err := b.RequestAttestation(context.Background(), 1, 9)
	if !errors.Is(err, ErrNoPendingClaim) {
		t.Fatalf("expected ErrNoPendingClaim, got %v", err)
	}
}

func TestRequestAttestationSubmitsRecordedDrops(t *testing.T) {
	var gotClaim Claim
	b := New(func(ctx context.Context, claim Claim) (Attestation, error) {
		gotClaim = claim
		return Attestation{Token: "att-1"}, nil
	})

	drops := []model.LootDrop{{PlayerID: 1, ItemID: "plate_chest", Rarity: 2, Source: "chest"}}
	b.RecordChestDrop(1, 9, drops)

	att, err := b.RequestAttestation(context.Background(), 1, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if att.Token != "att-1" {
		t.Fatalf("expected attestation token 'att-1', got %q", att.Token)
	}
	if len(gotClaim.Drops) != 1 || gotClaim.Drops[0].ItemID != "plate_chest" {
		t.Fatalf("expected the recorded drop forwarded to the submitter, got %+v", gotClaim.Drops)
	}
}

func TestRequestAttestationCachesClaimedResult(t *testing.T) {
	var calls atomic.Int32
	b := New(func(ctx context.Context, claim Claim) (Attestation, error) {
		calls.Add(1)
		return Attestation{Token: "att-1"}, nil
	})
	b.RecordChestDrop(1, 9, []model.LootDrop{{ItemID: "x"}})

	if _, err := b.RequestAttestation(context.Background(), 1, 9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := b.RequestAttestation(context.Background(), 1, 9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected exactly 1 submission, got %d", calls.Load())
	}
}

func TestRequestAttestationCollapsesConcurrentCalls(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	b := New(func(ctx context.Context, claim Claim) (Attestation, error) {
		calls.Add(1)
		<-release
		return Attestation{Token: "att-1"}, nil
	})
	b.RecordChestDrop(1, 9, []model.LootDrop{{ItemID: "x"}})

	var wg sync.WaitGroup
	results := make([]Attestation, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			att, err := b.RequestAttestation(context.Background(), 1, 9)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			results[i] = att
		}(i)
	}
	close(release)
	wg.Wait()

	if calls.Load() != 1 {
		t.Fatalf("expected concurrent requests collapsed into 1 submission, got %d", calls.Load())
	}
	for _, att := range results {
		if att.Token != "att-1" {
			t.Fatalf("expected every caller to receive the shared attestation, got %+v", att)
		}
	}
}

func TestForgetDropsRunLedger(t *testing.T) {
	b := New(func(ctx context.Context, claim Claim) (Attestation, error) {
		return Attestation{Token: "att-1"}, nil
	})
	b.RecordChestDrop(1, 9, []model.LootDrop{{ItemID: "x"}})
	b.Forget(1)

	_, err := b.RequestAttestation(context.Background(), 1, 9)
	if !errors.Is(err, ErrNoPendingClaim) {
		t.Fatalf("expected ErrNoPendingClaim after Forget, got %v", err)
	}
}
