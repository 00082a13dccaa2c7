// Package guard throttles callers of the reference backend.
package guard

import (
	"sync"
	"time"
)

// Decision is the outcome of a limiter check.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// RateLimiter is a per-key sliding window limiter.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string][]time.Time
	limit   int
	window  time.Duration
	now     func() time.Time

	lastSweep time.Time
}

// NewRateLimiter allows limit calls per key within window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string][]time.Time),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Allow records a call for key unless the key is already at its limit.
func (rl *RateLimiter) Allow(key string) Decision {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cutoff := now.Add(-rl.window)
	if now.Sub(rl.lastSweep) >= rl.window {
		rl.sweep(cutoff)
		rl.lastSweep = now
	}

	kept := rl.windows[key][:0]
	for _, t := range rl.windows[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= rl.limit {
		rl.windows[key] = kept
		return Decision{RetryAfter: kept[0].Add(rl.window).Sub(now)}
	}

	rl.windows[key] = append(kept, now)
	return Decision{Allowed: true}
}

// Len reports how many keys are tracked.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.windows)
}

// sweep drops keys whose newest call is outside the window. Callers hold mu.
func (rl *RateLimiter) sweep(cutoff time.Time) {
	for key, calls := range rl.windows {
		if len(calls) == 0 || !calls[len(calls)-1].After(cutoff) {
			delete(rl.windows, key)
		}
	}
}
