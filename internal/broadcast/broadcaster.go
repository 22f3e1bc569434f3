// Package broadcast also owns the per-client emission cache: who last got
// a full sync, and what they last saw, so each subsequent tick can ship a
// delta instead (spec §4.9, spec §5 "Mutations to the per-run broadcast
// set must be atomic with respect to tick emission").
//
// Grounded on the teacher's internal/world.VisibilityManager: a
// mutex-guarded per-observer cache recomputed every tick, generalized
// from visibility sets to snapshot/delta state.
package broadcast

import "sync"

// FrameKind tags whether a Frame carries a full Snapshot or a Delta.
type FrameKind string

const (
	FrameFull  FrameKind = "full"
	FrameDelta FrameKind = "delta"
)

// Frame is the envelope pushed to one client on one tick.
type Frame struct {
	Kind  FrameKind `json:"kind"`
	Full  *Snapshot `json:"full,omitempty"`
	Delta *Delta    `json:"delta,omitempty"`
}

type clientCache struct {
	needsFull    bool
	lastSnapshot Snapshot
	lastRoomID   uint64
}

// Broadcaster computes per-client Frames for a Run, caching each client's
// last-sent state so only one full Snapshot is built per client unless a
// floor/room change or explicit resync demands another.
type Broadcaster struct {
	mu      sync.Mutex
	clients map[uint64]*clientCache
}

// New returns an empty Broadcaster.
func New() *Broadcaster {
	return &Broadcaster{clients: make(map[uint64]*clientCache)}
}

// MarkNeedsFullSync forces the next BuildFrame for clientID to be a full
// Snapshot, e.g. immediately after the client joins the Run.
func (b *Broadcaster) MarkNeedsFullSync(clientID uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.clients[clientID]
	if !ok {
		c = &clientCache{}
		b.clients[clientID] = c
	}
	c.needsFull = true
}

// Forget drops a client's cached state, e.g. on disconnect.
func (b *Broadcaster) Forget(clientID uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.clients, clientID)
}

// BuildFrame returns the Frame to send clientID for the current snapshot.
// The first call for a client, and any call after its current room
// changes, produces a full Snapshot; every other call produces a Delta
// against the client's last-sent Snapshot.
func (b *Broadcaster) BuildFrame(clientID uint64, snap Snapshot) Frame {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.clients[clientID]
	if !ok {
		c = &clientCache{needsFull: true}
		b.clients[clientID] = c
	}

	roomChanged := c.lastRoomID != snap.CurrentRoomID
	if c.needsFull || roomChanged {
		c.needsFull = false
		c.lastSnapshot = snap
		c.lastRoomID = snap.CurrentRoomID
		full := snap
		return Frame{Kind: FrameFull, Full: &full}
	}

	delta := BuildDelta(c.lastSnapshot, snap)
	c.lastSnapshot = snap
	c.lastRoomID = snap.CurrentRoomID
	return Frame{Kind: FrameDelta, Delta: &delta}
}
