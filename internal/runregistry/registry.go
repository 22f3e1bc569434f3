// Package runregistry is the concurrent index over live Runs (spec §5
// "Shared resources": "runId -> Run, playerId -> runId, runId -> set of
// client handles"). It owns no simulation logic — the tick scheduler,
// combat resolver, and AI package mutate a *model.Run directly once a
// caller has looked it up here.
//
// Grounded on the teacher's internal/ai.TickManager (sync.Map-backed
// registry, atomic cached count, slog on register/unregister) generalized
// from "objectID -> Controller" to "runID -> Run" plus the two extra
// indices spec §5 names.
package runregistry

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/konopkja/dungeon-link-sub001/internal/model"
)

// ClientHandle is the minimal surface the broadcast layer needs to push a
// frame to one connected client. The transport layer supplies the
// concrete implementation; this package never touches wire bytes.
type ClientHandle interface {
	ClientID() uint64
	Send(event any) error
}

// entry is one Run's registry bookkeeping: the Run itself plus its set of
// connected client handles, guarded independently of the Run's own
// simulation state so a broadcast fan-out never contends with a tick.
type entry struct {
	run *model.Run

	mu      sync.RWMutex
	clients map[uint64]ClientHandle
}

// Registry is the server-wide concurrent run index. Safe for concurrent
// use by the transport layer, the tick scheduler, and the broadcast
// layer simultaneously.
type Registry struct {
	runs     sync.Map // runID (uint64) -> *entry
	byPlayer sync.Map // playerID (uint64) -> runID (uint64)
	nextID   atomic.Uint64
	runCount atomic.Int32

	// OnDestroy, if set, is called after a Run is removed from the
	// registry (spec §5: "if it was the last player in the Run, the Run
	// (and its reward-oracle state) is destroyed"). Wired in cmd/server
	// to tear down the oracle bridge's per-run state.
	OnDestroy func(runID uint64)
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

// CreateRun allocates a fresh Run under a new ID and registers it.
func (r *Registry) CreateRun(seed string) *model.Run {
	id := r.nextID.Add(1)
	run := model.NewRun(id, seed)
	r.runs.Store(id, &entry{run: run, clients: make(map[uint64]ClientHandle, 4)})
	r.runCount.Add(1)

	slog.Info("run created", "run", id, "seed", seed)
	return run
}

// Run returns the Run with the given ID, or (nil, false).
func (r *Registry) Run(runID uint64) (*model.Run, bool) {
	e, ok := r.entryFor(runID)
	if !ok {
		return nil, false
	}
	return e.run, true
}

// RunForPlayer returns the Run a player currently belongs to, or
// (nil, false).
func (r *Registry) RunForPlayer(playerID uint64) (*model.Run, bool) {
	v, ok := r.byPlayer.Load(playerID)
	if !ok {
		return nil, false
	}
	return r.Run(v.(uint64))
}

// BindPlayer records that playerID belongs to runID (spec §5 "playerId ->
// runId" index). Call once a player is added to run.Players.
func (r *Registry) BindPlayer(runID, playerID uint64) error {
	if _, ok := r.entryFor(runID); !ok {
		return ErrRunNotFound
	}
	if existing, ok := r.byPlayer.Load(playerID); ok && existing.(uint64) != runID {
		return ErrPlayerAlreadyInRun
	}
	r.byPlayer.Store(playerID, runID)
	return nil
}

// RemovePlayer unbinds a player from its run, removes it from the Run's
// player slice, and destroys the Run once it is empty (spec Lifecycles:
// "Run: ... destroyed when its owning player is removed").
// Returns whether the Run was destroyed as a result.
func (r *Registry) RemovePlayer(playerID uint64) (destroyed bool, err error) {
	v, ok := r.byPlayer.Load(playerID)
	if !ok {
		return false, ErrPlayerNotInRun
	}
	runID := v.(uint64)
	e, ok := r.entryFor(runID)
	if !ok {
		r.byPlayer.Delete(playerID)
		return false, ErrRunNotFound
	}

	e.run.RemovePlayer(playerID)
	r.byPlayer.Delete(playerID)
	e.mu.Lock()
	delete(e.clients, playerID)
	e.mu.Unlock()

	if !e.run.IsEmpty() {
		return false, nil
	}

	r.destroyRun(runID)
	return true, nil
}

func (r *Registry) destroyRun(runID uint64) {
	if _, existed := r.runs.LoadAndDelete(runID); existed {
		r.runCount.Add(-1)
		slog.Info("run destroyed", "run", runID)
	}
	if r.OnDestroy != nil {
		r.OnDestroy(runID)
	}
}

// AddClient registers a connected client's handle against its run, for
// the broadcast layer's per-tick fan-out.
func (r *Registry) AddClient(runID uint64, h ClientHandle) error {
	e, ok := r.entryFor(runID)
	if !ok {
		return ErrRunNotFound
	}
	e.mu.Lock()
	e.clients[h.ClientID()] = h
	e.mu.Unlock()
	return nil
}

// RemoveClient unregisters a client handle from its run's broadcast set.
func (r *Registry) RemoveClient(runID, clientID uint64) {
	e, ok := r.entryFor(runID)
	if !ok {
		return
	}
	e.mu.Lock()
	delete(e.clients, clientID)
	e.mu.Unlock()
}

// ClientsInRun returns a snapshot of every client handle currently
// registered against runID, safe to range over without holding any lock.
func (r *Registry) ClientsInRun(runID uint64) []ClientHandle {
	e, ok := r.entryFor(runID)
	if !ok {
		return nil
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]ClientHandle, 0, len(e.clients))
	for _, h := range e.clients {
		out = append(out, h)
	}
	return out
}

// All returns a snapshot of every live Run, for the tick scheduler's
// per-tick fan-out (Scheduler.Runs).
func (r *Registry) All() []*model.Run {
	out := make([]*model.Run, 0, r.runCount.Load())
	r.runs.Range(func(_, v any) bool {
		out = append(out, v.(*entry).run)
		return true
	})
	return out
}

// Count returns the number of live Runs.
func (r *Registry) Count() int {
	return int(r.runCount.Load())
}

func (r *Registry) entryFor(runID uint64) (*entry, bool) {
	v, ok := r.runs.Load(runID)
	if !ok {
		return nil, false
	}
	return v.(*entry), true
}
