package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/mpavic/hexorders/internal/orders/ports"
)

// StockStore is an in-memory stand-in for an inventory system. SKUs
// without a configured level are treated as available in any quantity,
// which makes the default wiring approve everything. Safe for
// concurrent use.
type StockStore struct {
	mu     sync.Mutex
	levels map[string]int
}

// NewStockStore seeds the store with per-SKU levels. A nil or empty map
// yields a checker that approves every reservation.
func NewStockStore(levels map[string]int) *StockStore {
	owned := make(map[string]int, len(levels))
	for sku, level := range levels {
		owned[sku] = level
	}
	return &StockStore{levels: owned}
}

// CheckAvailability reports whether the SKU can cover the quantity.
func (s *StockStore) CheckAvailability(_ context.Context, sku string, quantity int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	level, tracked := s.levels[sku]
	if !tracked {
		return true, nil
	}
	return level >= quantity, nil
}

// Reserve decrements the tracked level. Untracked SKUs always succeed.
func (s *StockStore) Reserve(_ context.Context, sku string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	level, tracked := s.levels[sku]
	if !tracked {
		return nil
	}
	if level < quantity {
		return fmt.Errorf("%w: sku %s has %d, requested %d", ports.ErrUnavailable, sku, level, quantity)
	}
	s.levels[sku] = level - quantity
	return nil
}

// Level returns the remaining tracked quantity for a SKU.
func (s *StockStore) Level(sku string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	level, tracked := s.levels[sku]
	return level, tracked
}

// SetLevel sets or replaces the tracked level for a SKU.
func (s *StockStore) SetLevel(sku string, level int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.levels[sku] = level
}
