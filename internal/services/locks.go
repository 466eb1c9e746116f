package services

import (
	"sync"

	"github.com/google/uuid"
)

// entityLocks serializes logical media operations per owning entity, so two
// overlapping upload or reorder calls for the same property cannot interleave.
// Mutexes are kept for the process lifetime; the map grows with the number of
// distinct entities touched, which stays small for a single-agent CRM.
type entityLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newEntityLocks() *entityLocks {
	return &entityLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// Lock acquires the entity's mutex and returns the unlock function.
func (l *entityLocks) Lock(entityID uuid.UUID) func() {
	l.mu.Lock()
	m, ok := l.locks[entityID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[entityID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
