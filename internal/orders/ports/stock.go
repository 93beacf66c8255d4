package ports

import (
	"context"
	"errors"
)

// StockAvailabilityChecker abstracts the inventory collaborator the
// placement pipeline reserves stock through.
type StockAvailabilityChecker interface {
	CheckAvailability(ctx context.Context, sku string, quantity int) (bool, error)
	Reserve(ctx context.Context, sku string, quantity int) error
}

// ErrUnavailable signals that a SKU cannot cover the requested quantity.
var ErrUnavailable = errors.New("insufficient stock")

// CheckAndReserve composes the two checker operations: check first,
// short-circuit to failure when unavailable, then reserve.
func CheckAndReserve(ctx context.Context, checker StockAvailabilityChecker, sku string, quantity int) error {
	available, err := checker.CheckAvailability(ctx, sku, quantity)
	if err != nil {
		return err
	}
	if !available {
		return ErrUnavailable
	}
	return checker.Reserve(ctx, sku, quantity)
}
