// Package ratelimit provides a sliding-window request limiter keyed by
// client. It is shared across concurrent requests; all state is guarded
// by a single mutex.
package ratelimit

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Limiter allows at most maxRequests per key within a rolling window.
type Limiter struct {
	maxRequests int
	window      time.Duration

	mu       sync.Mutex
	requests map[string][]time.Time
	now      func() time.Time
}

// New creates a limiter allowing maxRequests per window per key.
func New(maxRequests int, window time.Duration) *Limiter {
	return &Limiter{
		maxRequests: maxRequests,
		window:      window,
		requests:    make(map[string][]time.Time),
		now:         time.Now,
	}
}

// IsAllowed reports whether a request from key is within the limit and,
// if so, records it.
func (l *Limiter) IsAllowed(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	kept := l.requests[key][:0]
	for _, t := range l.requests[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	l.requests[key] = kept

	if len(kept) >= l.maxRequests {
		log.Warnf("Rate limit exceeded for client: %s", key)
		return false
	}

	l.requests[key] = append(kept, now)
	return true
}
