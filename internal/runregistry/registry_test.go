package runregistry

import (
	"errors"
	"testing"

	"github.com/konopkja/dungeon-link-sub001/internal/catalog"
	"github.com/konopkja/dungeon-link-sub001/internal/model"
)

type fakeHandle struct {
	id  uint64
	out []any
}

func (f *fakeHandle) ClientID() uint64 { return f.id }
func (f *fakeHandle) Send(event any) error {
	f.out = append(f.out, event)
	return nil
}

func TestCreateRunAndLookup(t *testing.T) {
	r := New()
	run := r.CreateRun("seed-1")

	got, ok := r.Run(run.ID)
	if !ok || got != run {
		t.Fatal("expected the created run retrievable by ID")
	}
	if r.Count() != 1 {
		t.Fatalf("expected Count()==1, got %d", r.Count())
	}
}

func TestBindPlayerRejectsSecondRun(t *testing.T) {
	r := New()
	runA := r.CreateRun("seed-a")
	runB := r.CreateRun("seed-b")

	if err := r.BindPlayer(runA.ID, 1); err != nil {
		t.Fatalf("unexpected error binding first run: %v", err)
	}
	if err := r.BindPlayer(runB.ID, 1); !errors.Is(err, ErrPlayerAlreadyInRun) {
		t.Fatalf("expected ErrPlayerAlreadyInRun, got %v", err)
	}

	got, ok := r.RunForPlayer(1)
	if !ok || got != runA {
		t.Fatal("expected RunForPlayer to resolve the first bound run")
	}
}

func TestRemovePlayerDestroysEmptyRun(t *testing.T) {
	r := New()
	run := r.CreateRun("seed-1")
	run.Players = append(run.Players, model.NewPlayer(1, "hero", "warrior", catalog.Load()))
	_ = r.BindPlayer(run.ID, 1)

	var destroyedID uint64
	r.OnDestroy = func(runID uint64) { destroyedID = runID }

	destroyed, err := r.RemovePlayer(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !destroyed {
		t.Fatal("expected the run destroyed once its only player left")
	}
	if destroyedID != run.ID {
		t.Fatalf("expected OnDestroy called with run %d, got %d", run.ID, destroyedID)
	}
	if _, ok := r.Run(run.ID); ok {
		t.Fatal("expected the run no longer retrievable after destruction")
	}
	if r.Count() != 0 {
		t.Fatalf("expected Count()==0 after destruction, got %d", r.Count())
	}
}

func TestRemovePlayerUnknownReturnsError(t *testing.T) {
	r := New()
	if _, err := r.RemovePlayer(999); !errors.Is(err, ErrPlayerNotInRun) {
		t.Fatalf("expected ErrPlayerNotInRun, got %v", err)
	}
}

func TestClientsInRunSnapshot(t *testing.T) {
	r := New()
	run := r.CreateRun("seed-1")

	h1 := &fakeHandle{id: 1}
	h2 := &fakeHandle{id: 2}
	if err := r.AddClient(run.ID, h1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.AddClient(run.ID, h2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clients := r.ClientsInRun(run.ID)
	if len(clients) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(clients))
	}

	r.RemoveClient(run.ID, h1.ClientID())
	clients = r.ClientsInRun(run.ID)
	if len(clients) != 1 {
		t.Fatalf("expected 1 client after removal, got %d", len(clients))
	}
}

func TestAllReturnsEverySnapshottedRun(t *testing.T) {
	r := New()
	r.CreateRun("a")
	r.CreateRun("b")
	r.CreateRun("c")

	if len(r.All()) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(r.All()))
	}
}
