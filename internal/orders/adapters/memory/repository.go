package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/mpavic/hexorders/internal/orders/domain"
	"github.com/mpavic/hexorders/internal/orders/ports"
)

// snapshot is the persisted form of an order. Storing plain state
// instead of the aggregate pointer keeps stored orders isolated from
// later mutation by the caller.
type snapshot struct {
	id     domain.OrderID
	items  []domain.OrderItem
	status domain.OrderStatus
}

// Repository provides an in-memory store useful for local development
// and tests. Safe for concurrent use.
type Repository struct {
	mu     sync.RWMutex
	orders map[domain.OrderID]snapshot
}

// NewRepository constructs a new in-memory repository.
func NewRepository() *Repository {
	return &Repository{orders: make(map[domain.OrderID]snapshot)}
}

// Save stores the order state and returns its identifier.
func (r *Repository) Save(_ context.Context, order *domain.Order) (domain.OrderID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID()] = snapshot{
		id:     order.ID(),
		items:  order.Items(),
		status: order.Status(),
	}
	return order.ID(), nil
}

// FindByID rehydrates a stored order.
func (r *Repository) FindByID(_ context.Context, id domain.OrderID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}

	order, err := domain.RestoreOrder(stored.id, stored.items, stored.status)
	if err != nil {
		return nil, fmt.Errorf("restore order %s: %w", id, err)
	}
	return order, nil
}

// Exists reports whether an order with the given id is stored.
func (r *Repository) Exists(_ context.Context, id domain.OrderID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.orders[id]
	return ok, nil
}

// Count returns the number of stored orders.
func (r *Repository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders), nil
}
