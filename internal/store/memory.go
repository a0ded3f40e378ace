// internal/store/memory.go
//
// In-memory registry of game engines, one per client session.
// Used by the HTTP front end so each browser tab drives its own engine.
//
// Characteristics:
//   - Engines are keyed by a random UUID.
//   - The map is guarded by an RWMutex; each entry carries its own mutex so
//     an engine is only ever driven by one request at a time.
//   - State is lost when the process restarts.
//   - Unknown IDs yield ErrNotFound.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/robalobadob/logik/internal/game"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// Store defines the registry interface for live engines.
type Store interface {
	// Create registers e under a new ID and returns the ID.
	Create(ctx context.Context, e *game.Engine) (string, error)

	// With runs fn with exclusive access to the engine stored under id.
	With(ctx context.Context, id string, fn func(e *game.Engine) error) error

	// Delete drops the engine stored under id.
	Delete(ctx context.Context, id string) error

	// Len reports the number of live sessions.
	Len() int
}

type entry struct {
	mu sync.Mutex
	e  *game.Engine
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex      // guards sessions map
	sessions map[string]*entry // keyed by session ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*entry)}
}

func (m *memory) Create(ctx context.Context, e *game.Engine) (string, error) {
	id := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = &entry{e: e}
	return id, nil
}

func (m *memory) With(ctx context.Context, id string, fn func(e *game.Engine) error) error {
	m.mu.RLock()
	ent, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	ent.mu.Lock()
	defer ent.mu.Unlock()
	return fn(ent.e)
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
