package domain

import (
	"errors"
	"strings"
)

// OrderItem is a single line of an order: a SKU, the unit price and a
// strictly positive quantity. Compared by value, never mutated.
type OrderItem struct {
	sku       string
	unitPrice Money
	quantity  int
}

// NewOrderItem validates and builds a line item.
func NewOrderItem(sku string, unitPrice Money, quantity int) (OrderItem, error) {
	if strings.TrimSpace(sku) == "" {
		return OrderItem{}, errors.New("sku must not be blank")
	}
	if quantity <= 0 {
		return OrderItem{}, errors.New("quantity must be positive")
	}
	return OrderItem{sku: sku, unitPrice: unitPrice, quantity: quantity}, nil
}

// SKU returns the stock keeping unit for this line.
func (i OrderItem) SKU() string {
	return i.sku
}

// UnitPrice returns the price of a single unit.
func (i OrderItem) UnitPrice() Money {
	return i.unitPrice
}

// Quantity returns the number of units ordered.
func (i OrderItem) Quantity() int {
	return i.quantity
}

// Subtotal computes unit price times quantity. It is derived on demand,
// never stored.
func (i OrderItem) Subtotal() Money {
	return i.unitPrice.mulUnchecked(i.quantity)
}

// Equals compares two line items by value.
func (i OrderItem) Equals(other OrderItem) bool {
	return i.sku == other.sku &&
		i.quantity == other.quantity &&
		i.unitPrice.Equals(other.unitPrice)
}
