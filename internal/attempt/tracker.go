// Package attempt tracks failed login attempts per identifier in process
// memory. The state is intentionally not persisted: a restart clears every
// window, matching the documented lifecycle of the throttle.
package attempt

import (
	"strings"
	"sync"
	"time"
)

// Window is the rolling period over which failed attempts are counted
const Window = 15 * time.Minute

// WarnThreshold is the in-window failure count at which callers are
// expected to emit a single security warning.
const WarnThreshold = 3

type record struct {
	timestamps []time.Time
	warned     bool
}

// Tracker is a concurrency-safe failed-login counter keyed by identifier.
// Identifiers are normalized to lower case, so "A@b.com" and "a@b.com"
// share a window.
type Tracker struct {
	mu      sync.Mutex
	records map[string]*record
	now     func() time.Time
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{
		records: make(map[string]*record),
		now:     time.Now,
	}
}

// RecordFailure registers a failed attempt for the identifier and returns
// the number of failures inside the current window together with whether a
// threshold warning has already been issued for it. It never fails.
func (t *Tracker) RecordFailure(identifier string) (count int, warned bool) {
	key := normalize(identifier)

	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.records[key]
	if !ok {
		rec = &record{}
		t.records[key] = rec
	}

	now := t.now()
	rec.timestamps = append(rec.timestamps, now)
	rec.timestamps = prune(rec.timestamps, now)

	return len(rec.timestamps), rec.warned
}

// MarkWarned flags the identifier's window as already warned. Calling it
// for an unknown identifier is a no-op.
func (t *Tracker) MarkWarned(identifier string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if rec, ok := t.records[normalize(identifier)]; ok {
		rec.warned = true
	}
}

// Reset drops the identifier's record entirely. Called after a successful
// login so the next failure starts a fresh window.
func (t *Tracker) Reset(identifier string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.records, normalize(identifier))
}

func normalize(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

// prune discards timestamps older than the window, in place
func prune(ts []time.Time, now time.Time) []time.Time {
	cutoff := now.Add(-Window)
	kept := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}
