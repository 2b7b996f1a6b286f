// internal/store/memory.go
//
// In-memory session store.
// Holds every session played during one process so the console driver can
// summarise several rounds. Nothing survives a restart.
//
// Characteristics:
//   - Stores *game.Session objects keyed by session ID.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - List returns sessions in first-save order.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/findhat/internal/game"
)

// ErrNotFound is returned by Get for an unknown ID.
var ErrNotFound = errors.New("session not found")

// Store defines the interface for keeping sessions.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, s *game.Session) error

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*game.Session, error)

	// List returns all sessions in the order they were first saved.
	List(ctx context.Context) ([]*game.Session, error)
}

type memory struct {
	mu       sync.RWMutex
	sessions map[string]*game.Session
	order    []string
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*game.Session)}
}

func (m *memory) Save(ctx context.Context, s *game.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s.ID()]; !ok {
		m.order = append(m.order, s.ID())
	}
	m.sessions[s.ID()] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) List(ctx context.Context) ([]*game.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*game.Session, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.sessions[id])
	}
	return out, nil
}
