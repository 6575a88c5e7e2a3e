// Package favorites keeps the user's saved routes.
package favorites

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thesumanshah/tfnsw-assistant/pkg/clock"
	"github.com/thesumanshah/tfnsw-assistant/pkg/journey"
)

// FavoriteRoute is a saved route. Its identity is "<from>-<to>-<mode>".
type FavoriteRoute struct {
	ID        string       `json:"id"`
	From      string       `json:"from"`
	To        string       `json:"to"`
	Mode      journey.Mode `json:"mode"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Route returns the route the favorite stands for.
func (f FavoriteRoute) Route() journey.Route {
	return journey.Route{From: f.From, To: f.To, Mode: f.Mode}
}

// RouteID builds the composite identity of a route.
func RouteID(r journey.Route) string {
	return fmt.Sprintf("%s-%s-%s", r.From, r.To, r.Mode)
}

// Store persists the whole favorites list.
type Store interface {
	Load(ctx context.Context) ([]FavoriteRoute, error)
	Save(ctx context.Context, routes []FavoriteRoute) error
}

// Set is the in-memory favorites list, written through to its Store on
// every change.
type Set struct {
	mu     sync.Mutex
	store  Store
	clock  clock.Clock
	routes []FavoriteRoute
}

// Open loads the favorites from store.
func Open(ctx context.Context, store Store, c clock.Clock) (*Set, error) {
	routes, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	return &Set{store: store, clock: c, routes: routes}, nil
}

// List returns a copy of the favorites in insertion order.
func (s *Set) List() []FavoriteRoute {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.routes)
}

// IsFavorite reports whether the route is saved.
func (s *Set) IsFavorite(r journey.Route) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index(RouteID(r)) >= 0
}

// Toggle adds the route when missing and removes it otherwise. It reports
// whether the route is a favorite afterwards.
func (s *Set) Toggle(ctx context.Context, r journey.Route) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.index(RouteID(r)); i >= 0 {
		return false, s.removeAt(ctx, i)
	}
	return true, s.add(ctx, r)
}

// Add saves the route. Adding an existing route is a no-op.
func (s *Set) Add(ctx context.Context, r journey.Route) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index(RouteID(r)) >= 0 {
		return nil
	}
	return s.add(ctx, r)
}

// Remove deletes the favorite with the given id. Unknown ids are ignored.
func (s *Set) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.index(id); i >= 0 {
		return s.removeAt(ctx, i)
	}
	return nil
}

func (s *Set) index(id string) int {
	return slices.IndexFunc(s.routes, func(f FavoriteRoute) bool { return f.ID == id })
}

func (s *Set) add(ctx context.Context, r journey.Route) error {
	next := append(slices.Clone(s.routes), FavoriteRoute{
		ID:        RouteID(r),
		From:      r.From,
		To:        r.To,
		Mode:      r.Mode,
		CreatedAt: s.clock.Now(),
	})
	return s.commit(ctx, next)
}

func (s *Set) removeAt(ctx context.Context, i int) error {
	next := slices.Delete(slices.Clone(s.routes), i, i+1)
	return s.commit(ctx, next)
}

func (s *Set) commit(ctx context.Context, next []FavoriteRoute) error {
	if err := s.store.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	s.routes = next
	log.Debug().Int("count", len(next)).Msg("Saved favorites")
	return nil
}
