package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is an immutable record of something that happened inside the
// order aggregate. Events stay buffered on the aggregate until pulled.
type Event interface {
	EventID() string
	EventType() string
	OccurredAt() time.Time
}

const (
	EventTypeOrderPlaced        = "order.placed"
	EventTypeOrderStatusChanged = "order.status_changed"
)

// OrderPlaced is raised exactly once when an order is created.
type OrderPlaced struct {
	ID        string    `json:"event_id"`
	At        time.Time `json:"occurred_at"`
	OrderID   OrderID   `json:"order_id"`
	Total     Money     `json:"total"`
	ItemCount int       `json:"item_count"`
}

func newOrderPlaced(orderID OrderID, total Money, itemCount int) OrderPlaced {
	return OrderPlaced{
		ID:        uuid.NewString(),
		At:        time.Now().UTC(),
		OrderID:   orderID,
		Total:     total,
		ItemCount: itemCount,
	}
}

func (e OrderPlaced) EventID() string       { return e.ID }
func (e OrderPlaced) EventType() string     { return EventTypeOrderPlaced }
func (e OrderPlaced) OccurredAt() time.Time { return e.At }

// OrderStatusChanged is raised on every successful status transition.
type OrderStatusChanged struct {
	ID             string      `json:"event_id"`
	At             time.Time   `json:"occurred_at"`
	OrderID        OrderID     `json:"order_id"`
	PreviousStatus OrderStatus `json:"previous_status"`
	NewStatus      OrderStatus `json:"new_status"`
}

func newOrderStatusChanged(orderID OrderID, previous, next OrderStatus) OrderStatusChanged {
	return OrderStatusChanged{
		ID:             uuid.NewString(),
		At:             time.Now().UTC(),
		OrderID:        orderID,
		PreviousStatus: previous,
		NewStatus:      next,
	}
}

func (e OrderStatusChanged) EventID() string       { return e.ID }
func (e OrderStatusChanged) EventType() string     { return EventTypeOrderStatusChanged }
func (e OrderStatusChanged) OccurredAt() time.Time { return e.At }
