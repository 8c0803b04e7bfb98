// Package quota tracks daily per-client ceilings on both token usage
// and request counts. Counters reset at local midnight and either
// ceiling being reached denies further requests.
package quota

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Usage is a point-in-time snapshot of a client's consumption.
type Usage struct {
	Tokens      int `json:"tokens"`
	Requests    int `json:"requests"`
	MaxTokens   int `json:"max_tokens"`
	MaxRequests int `json:"max_requests"`
}

type entry struct {
	tokens   int
	requests int
	resetAt  time.Time
}

// Tracker enforces daily token and request quotas per client key.
type Tracker struct {
	maxTokensPerDay   int
	maxRequestsPerDay int

	mu    sync.Mutex
	daily map[string]*entry
	now   func() time.Time
}

// New creates a tracker with the given daily ceilings.
func New(maxTokensPerDay, maxRequestsPerDay int) *Tracker {
	return &Tracker{
		maxTokensPerDay:   maxTokensPerDay,
		maxRequestsPerDay: maxRequestsPerDay,
		daily:             make(map[string]*entry),
		now:               time.Now,
	}
}

// CheckQuota reports whether key still has quota for today.
func (t *Tracker) CheckQuota(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.entryLocked(key)
	if e.tokens >= t.maxTokensPerDay {
		log.Warnf("Token quota exceeded for client %s (%d/%d)", key, e.tokens, t.maxTokensPerDay)
		return false
	}
	if e.requests >= t.maxRequestsPerDay {
		log.Warnf("Request quota exceeded for client %s (%d/%d)", key, e.requests, t.maxRequestsPerDay)
		return false
	}
	return true
}

// RecordUsage adds tokens and one request to key's daily counters.
func (t *Tracker) RecordUsage(key string, tokens int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.entryLocked(key)
	e.tokens += tokens
	e.requests++
}

// GetUsage returns a snapshot of key's consumption against the
// configured ceilings.
func (t *Tracker) GetUsage(key string) Usage {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.entryLocked(key)
	return Usage{
		Tokens:      e.tokens,
		Requests:    e.requests,
		MaxTokens:   t.maxTokensPerDay,
		MaxRequests: t.maxRequestsPerDay,
	}
}

// entryLocked fetches key's counters, resetting them when the day has
// rolled over. Caller holds t.mu.
func (t *Tracker) entryLocked(key string) *entry {
	now := t.now()
	e, ok := t.daily[key]
	if !ok {
		e = &entry{}
		t.daily[key] = e
	}
	if e.resetAt.IsZero() || now.After(e.resetAt) {
		e.tokens = 0
		e.requests = 0
		y, m, d := now.Date()
		e.resetAt = time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	}
	return e
}
