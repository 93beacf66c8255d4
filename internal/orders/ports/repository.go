package ports

import (
	"context"
	"errors"

	"github.com/mpavic/hexorders/internal/orders/domain"
)

// OrderRepository exposes the persistence operations the application
// layer requires from a storage adapter.
type OrderRepository interface {
	Save(ctx context.Context, order *domain.Order) (domain.OrderID, error)
	FindByID(ctx context.Context, id domain.OrderID) (*domain.Order, error)
	Exists(ctx context.Context, id domain.OrderID) (bool, error)
	Count(ctx context.Context) (int, error)
}

var (
	// ErrNotFound is returned when the requested order does not exist.
	ErrNotFound = errors.New("order not found")
)
