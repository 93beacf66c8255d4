package queries_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mpavic/hexorders/internal/orders/app/queries"
	"github.com/mpavic/hexorders/internal/orders/domain"
	"github.com/mpavic/hexorders/internal/orders/ports"
)

type stubRepository struct {
	findFn func(ctx context.Context, id domain.OrderID) (*domain.Order, error)
}

func (s *stubRepository) Save(ctx context.Context, order *domain.Order) (domain.OrderID, error) {
	return order.ID(), nil
}

func (s *stubRepository) FindByID(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	return s.findFn(ctx, id)
}

func (s *stubRepository) Exists(ctx context.Context, id domain.OrderID) (bool, error) {
	return false, nil
}

func (s *stubRepository) Count(ctx context.Context) (int, error) {
	return 0, nil
}

func testOrder(t *testing.T) *domain.Order {
	t.Helper()
	money, err := domain.NewMoneyFromString("5.00")
	if err != nil {
		t.Fatal(err)
	}
	item, err := domain.NewOrderItem("A", money, 1)
	if err != nil {
		t.Fatal(err)
	}
	order, err := domain.NewOrder([]domain.OrderItem{item})
	if err != nil {
		t.Fatal(err)
	}
	return order
}

func TestGetOrder(t *testing.T) {
	t.Run("returns order from repository", func(t *testing.T) {
		want := testOrder(t)
		repo := &stubRepository{
			findFn: func(_ context.Context, id domain.OrderID) (*domain.Order, error) {
				if id != want.ID() {
					t.Errorf("queried id = %s, want %s", id, want.ID())
				}
				return want, nil
			},
		}
		handler := queries.NewGetOrderQueryHandler(repo)

		got, err := handler.Handle(context.Background(), queries.GetOrderQuery{OrderID: want.ID().String()})
		if err != nil {
			t.Fatalf("expected success, got: %v", err)
		}
		if got.ID() != want.ID() {
			t.Errorf("order id = %s, want %s", got.ID(), want.ID())
		}
	})

	t.Run("rejects blank id without repository call", func(t *testing.T) {
		repo := &stubRepository{
			findFn: func(context.Context, domain.OrderID) (*domain.Order, error) {
				t.Fatal("repository must not be called")
				return nil, nil
			},
		}
		handler := queries.NewGetOrderQueryHandler(repo)

		if _, err := handler.Handle(context.Background(), queries.GetOrderQuery{OrderID: "  "}); err == nil {
			t.Fatal("expected error for blank id")
		}
	})

	t.Run("propagates not found", func(t *testing.T) {
		repo := &stubRepository{
			findFn: func(context.Context, domain.OrderID) (*domain.Order, error) {
				return nil, ports.ErrNotFound
			},
		}
		handler := queries.NewGetOrderQueryHandler(repo)

		_, err := handler.Handle(context.Background(), queries.GetOrderQuery{OrderID: "missing"})
		if !errors.Is(err, ports.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
