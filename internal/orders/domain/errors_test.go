package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mpavic/hexorders/internal/orders/domain"
)

func TestOrderErrorFields(t *testing.T) {
	t.Run("insufficient stock keeps sku order", func(t *testing.T) {
		err := domain.NewInsufficientStock([]string{"B", "A"})

		if err.Code != domain.CodeInsufficientStock {
			t.Errorf("code = %s, want %s", err.Code, domain.CodeInsufficientStock)
		}
		if len(err.UnavailableSKUs) != 2 || err.UnavailableSKUs[0] != "B" || err.UnavailableSKUs[1] != "A" {
			t.Errorf("skus = %v, want [B A]", err.UnavailableSKUs)
		}
		if err.Message != "insufficient stock for: B, A" {
			t.Errorf("message = %q", err.Message)
		}
	})

	t.Run("invalid state carries both states", func(t *testing.T) {
		err := domain.NewInvalidState(domain.StatusDelivered, domain.StatusCancelled)

		if err.CurrentState != domain.StatusDelivered || err.TargetState != domain.StatusCancelled {
			t.Errorf("states = %s/%s", err.CurrentState, err.TargetState)
		}
	})

	t.Run("placement failure preserves cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := domain.NewPlacementFailed("Failed to persist order: connection refused", cause)

		if !errors.Is(err, cause) {
			t.Error("expected cause to be reachable via errors.Is")
		}
	})
}

func TestAsOrderError(t *testing.T) {
	inner := domain.NewInvalidOrder("Order must contain at least one item")
	wrapped := fmt.Errorf("handling request: %w", inner)

	oe, ok := domain.AsOrderError(wrapped)
	if !ok {
		t.Fatal("expected to extract OrderError from wrapped chain")
	}
	if oe.Code != domain.CodeInvalidOrder {
		t.Errorf("code = %s, want %s", oe.Code, domain.CodeInvalidOrder)
	}

	if _, ok := domain.AsOrderError(errors.New("plain")); ok {
		t.Error("plain error should not classify as OrderError")
	}
}
