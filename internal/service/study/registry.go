package study

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-study/internal/store"
)

// entry is one live session. mu serialises everything that touches run and
// closed. A closed entry is never used again, even by callers that found it
// in the registry before it was removed.
type entry struct {
	mu       sync.Mutex
	closed   bool
	id       uuid.UUID
	owner    uuid.UUID
	scope    store.Scope
	kind     Kind
	run      runner
	lastUsed atomic.Int64
}

func (e *entry) touch(now time.Time) {
	e.lastUsed.Store(now.UnixNano())
}

func (e *entry) idleSince() time.Time {
	return time.Unix(0, e.lastUsed.Load())
}

// drain waits for any operation in flight on e and closes it.
func (e *entry) drain() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
}

// registry indexes live sessions by id and by scope. A scope holds at most one
// session. Together with draining a displaced entry before the new one loads
// its store, this keeps two sessions from writing the same review store.
type registry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entry
	byScope  map[store.Scope]uuid.UUID
}

func newRegistry() *registry {
	return &registry{
		sessions: make(map[uuid.UUID]*entry),
		byScope:  make(map[store.Scope]uuid.UUID),
	}
}

// add registers e and returns the session it displaced, if any. The displaced
// entry is removed but not drained.
func (r *registry) add(e *entry) *entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	var old *entry
	if id, ok := r.byScope[e.scope]; ok {
		old = r.sessions[id]
		delete(r.sessions, id)
	}
	r.sessions[e.id] = e
	r.byScope[e.scope] = e.id
	return old
}

func (r *registry) get(id uuid.UUID) (*entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	return e, ok
}

func (r *registry) remove(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.removeLocked(id)
}

func (r *registry) removeLocked(id uuid.UUID) bool {
	e, ok := r.sessions[id]
	if !ok {
		return false
	}
	delete(r.sessions, id)
	if r.byScope[e.scope] == id {
		delete(r.byScope, e.scope)
	}
	return true
}

// sweep drops sessions untouched since before cutoff and returns their ids.
// A session that is busy is left for the next sweep.
func (r *registry) sweep(cutoff time.Time) []uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []uuid.UUID
	for id, e := range r.sessions {
		if !e.idleSince().Before(cutoff) || !e.mu.TryLock() {
			continue
		}
		e.closed = true
		e.mu.Unlock()
		r.removeLocked(id)
		removed = append(removed, id)
	}
	return removed
}

func (r *registry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
