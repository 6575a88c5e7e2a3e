package favorites

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps favorites for the life of the process.
type MemoryStore struct {
	mu     sync.Mutex
	routes []FavoriteRoute
	saves  int
}

func NewMemoryStore(initial ...FavoriteRoute) *MemoryStore {
	return &MemoryStore{routes: initial}
}

func (m *MemoryStore) Load(ctx context.Context) ([]FavoriteRoute, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.routes), nil
}

func (m *MemoryStore) Save(ctx context.Context, routes []FavoriteRoute) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes = slices.Clone(routes)
	m.saves++
	return nil
}

// Saves counts Save calls.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
