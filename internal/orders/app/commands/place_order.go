package commands

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mpavic/hexorders/internal/orders/domain"
	"github.com/mpavic/hexorders/internal/orders/ports"
)

// ItemInput is one requested order line as it arrives from a transport
// adapter, before any value object validation.
type ItemInput struct {
	SKU       string
	UnitPrice decimal.Decimal
	Quantity  int
}

// PlaceOrderCommand carries the ordered item list plus an optional
// request identifier used only for caller-side tracing. The core does
// not deduplicate by it.
type PlaceOrderCommand struct {
	Items     []ItemInput
	RequestID string
}

// CommandHandler is the single operation the order core exposes.
type CommandHandler interface {
	Handle(ctx context.Context, cmd PlaceOrderCommand) (domain.OrderID, error)
}

// PlaceOrderHandler runs the placement pipeline: validate, reserve
// stock, construct the aggregate, persist, publish. It is the sole
// boundary where failures are translated into the OrderError taxonomy.
//
// Known limitation, preserved on purpose: stock reserved in an earlier
// step is not released when persistence or publishing fails later, and
// a publish failure after a successful save does not undo the save.
type PlaceOrderHandler struct {
	repo      ports.OrderRepository
	stock     ports.StockAvailabilityChecker
	publisher ports.DomainEventPublisher
}

// NewPlaceOrderHandler wires the three outbound ports.
func NewPlaceOrderHandler(
	repo ports.OrderRepository,
	stock ports.StockAvailabilityChecker,
	publisher ports.DomainEventPublisher,
) *PlaceOrderHandler {
	return &PlaceOrderHandler{
		repo:      repo,
		stock:     stock,
		publisher: publisher,
	}
}

// Handle executes the pipeline strictly in order, short-circuiting on
// the first failure. Every error returned is a *domain.OrderError.
func (h *PlaceOrderHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (domain.OrderID, error) {
	if len(cmd.Items) == 0 {
		return "", domain.NewInvalidOrder("Order must contain at least one item")
	}

	var unavailable []string
	for _, input := range cmd.Items {
		if err := ports.CheckAndReserve(ctx, h.stock, input.SKU, input.Quantity); err != nil {
			unavailable = append(unavailable, input.SKU)
		}
	}
	if len(unavailable) > 0 {
		return "", domain.NewInsufficientStock(unavailable)
	}

	order, err := buildOrder(cmd.Items)
	if err != nil {
		return "", domain.NewDomainViolation(err.Error(), err)
	}

	id, err := h.repo.Save(ctx, order)
	if err != nil {
		return "", domain.NewPlacementFailed("Failed to persist order: "+err.Error(), err)
	}

	events := order.PullDomainEvents()
	if err := h.publisher.PublishAll(ctx, events); err != nil {
		return "", domain.NewPlacementFailed("Failed to publish domain events: "+err.Error(), err)
	}

	return id, nil
}

func buildOrder(inputs []ItemInput) (*domain.Order, error) {
	items := make([]domain.OrderItem, 0, len(inputs))
	for _, input := range inputs {
		price, err := domain.NewMoney(input.UnitPrice)
		if err != nil {
			return nil, err
		}
		item, err := domain.NewOrderItem(input.SKU, price, input.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return domain.NewOrder(items)
}
