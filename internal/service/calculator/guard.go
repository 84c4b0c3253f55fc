package calculator

import "sync"

// SequenceGuard tracks the highest request sequence seen per session so that
// a slow auto-fill read resolving after a newer one cannot overwrite the
// newer result on the caller's side. Sessions are client-chosen opaque keys.
type SequenceGuard struct {
	mu     sync.Mutex
	latest map[string]uint64
}

// NewSequenceGuard creates an empty guard.
func NewSequenceGuard() *SequenceGuard {
	return &SequenceGuard{latest: make(map[string]uint64)}
}

// Admit records seq for the session and reports whether the request is the
// newest seen so far. A sequence at or below the recorded high-water mark is
// stale and must not update displayed state. Sequence 0 bypasses the guard
// for callers that do not track sequences.
func (g *SequenceGuard) Admit(session string, seq uint64) bool {
	if session == "" || seq == 0 {
		return true
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if seq <= g.latest[session] {
		return false
	}
	g.latest[session] = seq
	return true
}

// Forget drops the recorded high-water mark for a session.
func (g *SequenceGuard) Forget(session string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.latest, session)
}
