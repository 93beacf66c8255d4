package app

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/mpavic/hexorders/internal/orders/app/commands"
	"github.com/mpavic/hexorders/internal/orders/app/queries"
	"github.com/mpavic/hexorders/internal/orders/domain"
	"github.com/mpavic/hexorders/internal/orders/metrics"
	"github.com/mpavic/hexorders/internal/orders/ports"
)

// Service bundles the order use cases for the transport adapters.
type Service struct {
	repo            ports.OrderRepository
	idemStore       ports.IdempotencyStore
	placeHandler    commands.CommandHandler
	getOrderHandler *queries.GetOrderQueryHandler
}

// NewService wires required dependencies.
func NewService(
	repo ports.OrderRepository,
	stock ports.StockAvailabilityChecker,
	publisher ports.DomainEventPublisher,
	idem ports.IdempotencyStore,
	logger *slog.Logger,
	metrics *metrics.Metrics,
) *Service {
	coreHandler := commands.NewPlaceOrderHandler(repo, stock, publisher)
	observableHandler := commands.NewObservableCommandHandler(coreHandler, logger, metrics)

	return &Service{
		repo:            repo,
		idemStore:       idem,
		placeHandler:    observableHandler,
		getOrderHandler: queries.NewGetOrderQueryHandler(repo),
	}
}

// ItemInput captures one requested order line.
type ItemInput struct {
	SKU       string          `json:"sku"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// PlaceOrderInput captures the payload for placing an order.
type PlaceOrderInput struct {
	RequestID string      `json:"request_id,omitempty"`
	Items     []ItemInput `json:"items"`
}

// PlaceOrder runs the placement pipeline and returns the new order id.
func (s *Service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (domain.OrderID, error) {
	cmd := commands.PlaceOrderCommand{RequestID: input.RequestID}
	for _, item := range input.Items {
		cmd.Items = append(cmd.Items, commands.ItemInput{
			SKU:       item.SKU,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	return s.placeHandler.Handle(ctx, cmd)
}

// GetOrder retrieves an order by ID.
func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.getOrderHandler.Handle(ctx, queries.GetOrderQuery{OrderID: id})
}

// OrderExists reports whether an order with the given id is persisted.
func (s *Service) OrderExists(ctx context.Context, id string) (bool, error) {
	parsed, err := domain.ParseOrderID(id)
	if err != nil {
		return false, err
	}
	return s.repo.Exists(ctx, parsed)
}

// OrderCount returns the number of persisted orders.
func (s *Service) OrderCount(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// SaveIdempotentResponse writes response details for a key.
func (s *Service) SaveIdempotentResponse(ctx context.Context, key string, response ports.StoredResponse) error {
	return s.idemStore.Save(ctx, key, response)
}

// GetIdempotentResponse retrieves previously stored response data.
func (s *Service) GetIdempotentResponse(ctx context.Context, key string) (*ports.StoredResponse, error) {
	return s.idemStore.Get(ctx, key)
}
