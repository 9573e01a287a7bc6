package signal

import (
	"sync"
	"time"

	"github.com/starwall/starwall/internal/core"
)

// CreateRateLimiter caps how many stars one session may submit within a
// sliding window. Recording a clip takes seconds, so a legitimate client
// never comes close to the limit.
type CreateRateLimiter struct {
	mu       sync.Mutex
	history  map[core.SessionID][]time.Time
	limit    int
	interval time.Duration
}

func NewCreateRateLimiter(limit int, interval time.Duration) *CreateRateLimiter {
	return &CreateRateLimiter{
		history:  make(map[core.SessionID][]time.Time),
		limit:    limit,
		interval: interval,
	}
}

func (rl *CreateRateLimiter) Allow(sid core.SessionID) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-rl.interval)

	attempts := rl.history[sid]

	fresh := make([]time.Time, 0, len(attempts))
	for _, t := range attempts {
		if t.After(windowStart) {
			fresh = append(fresh, t)
		}
	}

	if len(fresh) >= rl.limit {
		return false
	}

	fresh = append(fresh, now)
	rl.history[sid] = fresh

	return true
}

// Forget drops a session's attempt history after disconnect.
func (rl *CreateRateLimiter) Forget(sid core.SessionID) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.history, sid)
}
