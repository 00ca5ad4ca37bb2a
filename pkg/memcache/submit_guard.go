package memcache

import (
	"sync"
	"time"
)

// SubmitGuard remembers which respondent sessions already submitted a survey,
// so a double-clicked submit within the window is rejected before it reaches
// the database. Responses are immutable, so there is nothing to merge.
type SubmitGuard struct {
	mu   sync.RWMutex
	seen map[string]time.Time
	ttl  time.Duration
}

func NewSubmitGuard(ttl time.Duration) *SubmitGuard {
	return &SubmitGuard{
		seen: make(map[string]time.Time),
		ttl:  ttl,
	}
}

func key(surveyID, sessionID string) string {
	return surveyID + ":" + sessionID
}

// Mark records a submission and reports whether it is the first one for this
// survey/session pair inside the TTL window.
func (g *SubmitGuard) Mark(surveyID, sessionID string) bool {
	k := key(surveyID, sessionID)

	g.mu.Lock()
	defer g.mu.Unlock()

	if exp, ok := g.seen[k]; ok && time.Now().Before(exp) {
		return false
	}
	g.seen[k] = time.Now().Add(g.ttl)
	g.sweepLocked()
	return true
}

// Seen reports whether the pair already submitted, without marking it.
func (g *SubmitGuard) Seen(surveyID, sessionID string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	exp, ok := g.seen[key(surveyID, sessionID)]
	return ok && time.Now().Before(exp)
}

// sweepLocked drops expired entries opportunistically on writes.
func (g *SubmitGuard) sweepLocked() {
	now := time.Now()
	for k, exp := range g.seen {
		if now.After(exp) {
			delete(g.seen, k)
		}
	}
}
