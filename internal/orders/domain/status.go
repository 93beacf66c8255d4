package domain

// OrderStatus captures the lifecycle of an order in the system.
type OrderStatus string

const (
	StatusNew        OrderStatus = "NEW"
	StatusConfirmed  OrderStatus = "CONFIRMED"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusShipped    OrderStatus = "SHIPPED"
	StatusDelivered  OrderStatus = "DELIVERED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// statusTransitions is the single source of truth for transition
// legality. Terminal states have no outgoing edges.
var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusNew:        {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// CanTransitionTo reports whether moving to target is a legal edge from
// the current status.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal indicates whether the status has no outgoing transitions.
func (s OrderStatus) IsTerminal() bool {
	return len(statusTransitions[s]) == 0 && s.IsValid()
}

// IsValid reports whether the value is one of the known statuses.
func (s OrderStatus) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// AllStatuses lists every known status, useful for exhaustive checks.
func AllStatuses() []OrderStatus {
	return []OrderStatus{
		StatusNew,
		StatusConfirmed,
		StatusProcessing,
		StatusShipped,
		StatusDelivered,
		StatusCancelled,
	}
}
