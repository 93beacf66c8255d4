package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// OrderID is an opaque, non-blank order identifier.
type OrderID string

// NewOrderID generates a fresh random identifier.
func NewOrderID() OrderID {
	return OrderID(uuid.NewString())
}

// ParseOrderID validates an externally supplied identifier.
func ParseOrderID(value string) (OrderID, error) {
	if strings.TrimSpace(value) == "" {
		return "", errors.New("order id must not be blank")
	}
	return OrderID(value), nil
}

func (id OrderID) String() string {
	return string(id)
}

// Order is the aggregate root. It owns the non-empty item list, the
// current lifecycle status and a buffer of not-yet-published events.
// All mutation goes through TransitionTo; the item list never changes
// after construction.
type Order struct {
	id     OrderID
	items  []OrderItem
	status OrderStatus
	events []Event
}

// NewOrder creates an order in status NEW with a fresh identifier and
// exactly one OrderPlaced event enqueued. Fails if items is empty.
func NewOrder(items []OrderItem) (*Order, error) {
	if len(items) == 0 {
		return nil, errors.New("order must contain at least one item")
	}

	owned := make([]OrderItem, len(items))
	copy(owned, items)

	order := &Order{
		id:     NewOrderID(),
		items:  owned,
		status: StatusNew,
	}
	order.events = append(order.events, newOrderPlaced(order.id, order.Total(), len(owned)))

	return order, nil
}

// RestoreOrder rehydrates a persisted order without enqueuing events.
// Used by repository adapters; not a path for creating new orders.
func RestoreOrder(id OrderID, items []OrderItem, status OrderStatus) (*Order, error) {
	if strings.TrimSpace(string(id)) == "" {
		return nil, errors.New("order id must not be blank")
	}
	if len(items) == 0 {
		return nil, errors.New("order must contain at least one item")
	}
	if !status.IsValid() {
		return nil, errors.New("unknown order status: " + string(status))
	}

	owned := make([]OrderItem, len(items))
	copy(owned, items)

	return &Order{id: id, items: owned, status: status}, nil
}

// ID returns the order identifier.
func (o *Order) ID() OrderID {
	return o.id
}

// Status returns the current lifecycle status.
func (o *Order) Status() OrderStatus {
	return o.status
}

// Items returns a copy of the line items.
func (o *Order) Items() []OrderItem {
	items := make([]OrderItem, len(o.items))
	copy(items, o.items)
	return items
}

// Total sums the item subtotals. It is always derived, never stored, so
// it cannot drift from the items.
func (o *Order) Total() Money {
	total := ZeroMoney
	for _, item := range o.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// TransitionTo moves the order along a legal edge of the status state
// machine, enqueuing an OrderStatusChanged event. On an illegal edge it
// returns InvalidState and leaves the order untouched.
func (o *Order) TransitionTo(target OrderStatus) error {
	if !o.status.CanTransitionTo(target) {
		return NewInvalidState(o.status, target)
	}

	previous := o.status
	o.status = target
	o.events = append(o.events, newOrderStatusChanged(o.id, previous, target))
	return nil
}

// Confirm transitions the order to CONFIRMED.
func (o *Order) Confirm() error {
	return o.TransitionTo(StatusConfirmed)
}

// Cancel transitions the order to CANCELLED.
func (o *Order) Cancel() error {
	return o.TransitionTo(StatusCancelled)
}

// PullDomainEvents returns the buffered events and clears the buffer.
// A second pull returns nothing, which is what prevents an event from
// being published twice.
func (o *Order) PullDomainEvents() []Event {
	events := o.events
	o.events = nil
	return events
}

// CanBeModified is true only while the order is NEW.
func (o *Order) CanBeModified() bool {
	return o.status == StatusNew
}
