package engine

import (
	"sync"

	"github.com/google/uuid"
)

// Registry is the id to game lookup table. The lock guards only the map;
// game mutation goes through each game's own mutex, so registry access
// never serializes play across games.
type Registry struct {
	mu    sync.RWMutex
	games map[string]*Game
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{games: make(map[string]*Game)}
}

// Create builds a game with a fresh id and registers it.
func (r *Registry) Create(table TableConfig, seats []*Seat, opts ...GameOption) *Game {
	g := NewGame(uuid.NewString(), table, seats, opts...)

	r.mu.Lock()
	r.games[g.ID] = g
	r.mu.Unlock()
	return g
}

// Get returns the game with the given id.
func (r *Registry) Get(id string) (*Game, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.games[id]
	return g, ok
}

// Remove drops the game from the registry. The game itself is unaffected.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.games, id)
	r.mu.Unlock()
}

// List returns a snapshot of all registered games.
func (r *Registry) List() []*Game {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Game, 0, len(r.games))
	for _, g := range r.games {
		out = append(out, g)
	}
	return out
}
