package storefront

import (
	"sync"
	"time"
)

const defaultSessionTTL = 30 * time.Minute

type sessionEntry struct {
	session *Session
	touched time.Time
}

// Sessions is the in-memory session registry. Entries expire after TTL of
// inactivity; expired entries are swept lazily on create, so a quiet
// server holds at most what its last burst of visitors left behind.
type Sessions struct {
	mu  sync.RWMutex
	m   map[string]*sessionEntry
	ttl time.Duration
	now func() time.Time
}

func NewSessions(ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Sessions{
		m:   map[string]*sessionEntry{},
		ttl: ttl,
		now: time.Now,
	}
}

func (r *Sessions) Put(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sweepLocked()
	r.m[s.ID] = &sessionEntry{session: s, touched: r.now()}
}

// Get returns the session and refreshes its idle timer.
func (r *Sessions) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.m[id]
	if !ok {
		return nil, false
	}
	if r.now().Sub(e.touched) > r.ttl {
		delete(r.m, id)
		return nil, false
	}
	e.touched = r.now()
	return e.session, true
}

func (r *Sessions) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.m)
}

func (r *Sessions) sweepLocked() {
	cutoff := r.now().Add(-r.ttl)
	for id, e := range r.m {
		if e.touched.Before(cutoff) {
			delete(r.m, id)
		}
	}
}
