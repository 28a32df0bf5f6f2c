package service

import (
	"sync"
	"time"

	"github.com/ericogr/ninja-arena/internal/engine"
	"github.com/ericogr/ninja-arena/internal/progression"
)

// liveBattle wraps one engine.Battle. mu serializes every operation on it.
type liveBattle struct {
	mu         sync.Mutex
	battle     *engine.Battle
	accountID  string
	lastActive time.Time
	finalized  bool
	result     *progression.Result

	// removed is set under mu once the battle leaves the registry.
	removed bool
}

func (lb *liveBattle) guest() bool { return lb.accountID == "" }

// registry holds the live battles of the process. Distinct battles share
// nothing but the map.
type registry struct {
	mu      sync.RWMutex
	battles map[string]*liveBattle
}

func newRegistry() *registry {
	return &registry{battles: make(map[string]*liveBattle)}
}

func (r *registry) put(id string, lb *liveBattle) {
	r.mu.Lock()
	r.battles[id] = lb
	r.mu.Unlock()
}

func (r *registry) get(id string) (*liveBattle, bool) {
	r.mu.RLock()
	lb, ok := r.battles[id]
	r.mu.RUnlock()
	return lb, ok
}

func (r *registry) remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	lb, ok := r.battles[id]
	if !ok {
		return false
	}
	lb.mu.Lock()
	lb.removed = true
	lb.mu.Unlock()
	delete(r.battles, id)
	return true
}

// removeIfIdle deletes id only if it is still untouched since cutoff when
// checked under both locks.
func (r *registry) removeIfIdle(id string, cutoff time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	lb, ok := r.battles[id]
	if !ok {
		return false
	}
	lb.mu.Lock()
	defer lb.mu.Unlock()
	if !lb.lastActive.Before(cutoff) {
		return false
	}
	lb.removed = true
	delete(r.battles, id)
	return true
}

func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.battles)
}

// idle returns the ids of battles untouched since cutoff. Callers must
// re-check with removeIfIdle before deleting.
func (r *registry) idle(cutoff time.Time) []string {
	r.mu.RLock()
	snapshot := make(map[string]*liveBattle, len(r.battles))
	for id, lb := range r.battles {
		snapshot[id] = lb
	}
	r.mu.RUnlock()

	var out []string
	for id, lb := range snapshot {
		lb.mu.Lock()
		stale := lb.lastActive.Before(cutoff)
		lb.mu.Unlock()
		if stale {
			out = append(out, id)
		}
	}
	return out
}
