// internal/catalog/store.go
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/abccorp/corpsite-web/internal/models"
	"github.com/abccorp/corpsite-web/internal/upstream"
)

// ErrUnknownProduct is returned when a selection refers to a product the
// store does not currently hold.
var ErrUnknownProduct = errors.New("product not in catalog")

// Store owns the in-memory product list fetched from the remote API, plus
// the selection set used for bulk deletion. Each refresh installs a new
// immutable snapshot; the only legitimate way to change the list is
// another full Refresh.
type Store struct {
	api *upstream.Client

	mu       sync.RWMutex
	products []models.Product
	stale    bool
	selected map[string]struct{}
}

func NewStore(api *upstream.Client) *Store {
	return &Store{
		api:      api,
		selected: make(map[string]struct{}),
	}
}

// Refresh fetches the full product list and replaces the snapshot
// atomically: consumers observe either the old list or the new one, never
// a mix. On failure the previous snapshot stays in place and the store is
// flagged stale. No automatic retry.
func (s *Store) Refresh(ctx context.Context) error {
	products, err := s.api.ListProducts(ctx)
	if err != nil {
		s.mu.Lock()
		s.stale = true
		s.mu.Unlock()
		return fmt.Errorf("refresh catalog: %w", err)
	}

	s.mu.Lock()
	s.products = products
	s.stale = false
	// Selections must always point at products the store holds.
	present := make(map[string]struct{}, len(products))
	for _, p := range products {
		present[p.ID] = struct{}{}
	}
	for id := range s.selected {
		if _, ok := present[id]; !ok {
			delete(s.selected, id)
		}
	}
	s.mu.Unlock()
	return nil
}

// Products returns the current snapshot. Callers must not mutate it.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products
}

// Stale reports whether the last refresh failed, leaving the previous
// snapshot on display.
func (s *Store) Stale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stale
}

// Visible derives the filtered, sorted view of the current snapshot.
func (s *Store) Visible(c Criteria) []models.Product {
	return DeriveVisible(s.Products(), c)
}

// ToggleSelect adds id to the selection set if absent, removes it if
// present. Selecting a product the store does not hold is an error.
func (s *Store) ToggleSelect(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return nil
	}

	for _, p := range s.products {
		if p.ID == id {
			s.selected[id] = struct{}{}
			return nil
		}
	}
	logrus.WithField("product_id", id).Warn("Select toggled for unknown product")
	return ErrUnknownProduct
}

// ClearSelection empties the selection set, as happens when bulk mode is
// exited.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	s.selected = make(map[string]struct{})
	s.mu.Unlock()
}

// Selected returns the ids currently marked for bulk deletion.
func (s *Store) Selected() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	return ids
}

// IsSelected reports membership in the selection set.
func (s *Store) IsSelected(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.selected[id]
	return ok
}

// Find returns the product with the given id from the current snapshot.
func (s *Store) Find(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}
