package intent

import (
	"sync"
	"time"
)

// RateLimiter enforces a per-client sliding window over decoded intents
// (spec §5: "per-client sliding window, default 60 messages/second,
// excess messages dropped"). The teacher's config exposes a FloodProtection
// toggle and connection-rate knobs but never implements the counting
// logic itself, so this is a plain stdlib sliding window rather than an
// adaptation of teacher code.
type RateLimiter struct {
	limit  int
	window time.Duration

	mu      sync.Mutex
	clients map[uint64]*clientWindow
}

type clientWindow struct {
	timestamps []time.Time
}

// NewRateLimiter returns a limiter allowing limit messages per window for
// each distinct client ID.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{limit: limit, window: window, clients: make(map[uint64]*clientWindow)}
}

// Allow reports whether clientID may send one more message at now. Calls
// beyond the limit within the trailing window are dropped (spec §7:
// "Rate-limit exceeded: drop message, log").
func (rl *RateLimiter) Allow(clientID uint64, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cw, ok := rl.clients[clientID]
	if !ok {
		cw = &clientWindow{}
		rl.clients[clientID] = cw
	}

	cutoff := now.Add(-rl.window)
	kept := cw.timestamps[:0]
	for _, ts := range cw.timestamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	cw.timestamps = kept

	if len(cw.timestamps) >= rl.limit {
		return false
	}
	cw.timestamps = append(cw.timestamps, now)
	return true
}

// Forget drops a client's window, e.g. on disconnect.
func (rl *RateLimiter) Forget(clientID uint64) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.clients, clientID)
}
