package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mpavic/hexorders/internal/orders/adapters/memory"
	"github.com/mpavic/hexorders/internal/orders/domain"
	"github.com/mpavic/hexorders/internal/orders/ports"
)

func placedOrder(t *testing.T) *domain.Order {
	t.Helper()
	money, err := domain.NewMoneyFromString("5.00")
	if err != nil {
		t.Fatal(err)
	}
	item, err := domain.NewOrderItem("A", money, 2)
	if err != nil {
		t.Fatal(err)
	}
	order, err := domain.NewOrder([]domain.OrderItem{item})
	if err != nil {
		t.Fatal(err)
	}
	return order
}

func TestRepositorySaveAndFind(t *testing.T) {
	repo := memory.NewRepository()
	ctx := context.Background()
	order := placedOrder(t)

	id, err := repo.Save(ctx, order)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if id != order.ID() {
		t.Errorf("Save returned id %s, want %s", id, order.ID())
	}

	found, err := repo.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found.ID() != order.ID() {
		t.Errorf("found id = %s, want %s", found.ID(), order.ID())
	}
	if found.Status() != order.Status() {
		t.Errorf("found status = %s, want %s", found.Status(), order.Status())
	}
	if !found.Total().Equals(order.Total()) {
		t.Errorf("found total = %s, want %s", found.Total(), order.Total())
	}
	if events := found.PullDomainEvents(); len(events) != 0 {
		t.Errorf("rehydrated order carries %d events", len(events))
	}
}

func TestRepositoryFindMissing(t *testing.T) {
	repo := memory.NewRepository()

	_, err := repo.FindByID(context.Background(), "missing")
	if !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRepositoryIsolation(t *testing.T) {
	repo := memory.NewRepository()
	ctx := context.Background()
	order := placedOrder(t)

	if _, err := repo.Save(ctx, order); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Mutating the aggregate after save must not leak into the store.
	if err := order.Confirm(); err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}

	found, err := repo.FindByID(ctx, order.ID())
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found.Status() != domain.StatusNew {
		t.Errorf("stored status changed to %s after external mutation", found.Status())
	}
}

func TestRepositoryExistsAndCount(t *testing.T) {
	repo := memory.NewRepository()
	ctx := context.Background()

	count, err := repo.Count(ctx)
	if err != nil || count != 0 {
		t.Fatalf("Count = %d, %v; want 0, nil", count, err)
	}

	order := placedOrder(t)
	if _, err := repo.Save(ctx, order); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	exists, err := repo.Exists(ctx, order.ID())
	if err != nil || !exists {
		t.Errorf("Exists = %v, %v; want true, nil", exists, err)
	}

	exists, err = repo.Exists(ctx, "missing")
	if err != nil || exists {
		t.Errorf("Exists(missing) = %v, %v; want false, nil", exists, err)
	}

	count, err = repo.Count(ctx)
	if err != nil || count != 1 {
		t.Errorf("Count = %d, %v; want 1, nil", count, err)
	}
}
