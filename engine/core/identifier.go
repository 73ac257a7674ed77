package core

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Identifiers hands out unique ids and remembers who owns them.
type Identifiers struct {
	mu     sync.RWMutex
	owners map[uuid.UUID]interface{}
}

func NewIdentifiers() *Identifiers {
	return &Identifiers{
		owners: make(map[uuid.UUID]interface{}),
	}
}

/**
 * @brief Acquires a new identifier for the given owner.
 * @param owner The owner of the identifier.
 * @return A new random identifier.
 */
func (ids *Identifiers) Acquire(owner interface{}) uuid.UUID {
	ids.mu.Lock()
	defer ids.mu.Unlock()

	id := uuid.New()
	ids.owners[id] = owner
	return id
}

/**
 * @brief Releases the given identifier, making the owner unreachable by it.
 * @param id The identifier to release.
 */
func (ids *Identifiers) Release(id uuid.UUID) error {
	ids.mu.Lock()
	defer ids.mu.Unlock()

	if _, ok := ids.owners[id]; !ok {
		return fmt.Errorf("release %s: %w", id, ErrUnknownID)
	}
	delete(ids.owners, id)
	return nil
}

func (ids *Identifiers) Owner(id uuid.UUID) (interface{}, bool) {
	ids.mu.RLock()
	defer ids.mu.RUnlock()

	o, ok := ids.owners[id]
	return o, ok
}

func (ids *Identifiers) Len() int {
	ids.mu.RLock()
	defer ids.mu.RUnlock()
	return len(ids.owners)
}
