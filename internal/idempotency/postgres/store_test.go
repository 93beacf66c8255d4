//go:build integration

package postgres_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	testpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mpavic/hexorders/internal/database"
	"github.com/mpavic/hexorders/internal/idempotency/postgres"
	"github.com/mpavic/hexorders/internal/orders/ports"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := testpostgres.Run(ctx,
		"postgres:16-alpine",
		testpostgres.WithDatabase("test"),
		testpostgres.WithUsername("test"),
		testpostgres.WithPassword("test"),
		testpostgres.BasicWaitStrategies(),
		testpostgres.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").WithOccurrence(2)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	projectRoot := findProjectRoot(t)
	if err := database.RunMigrations(connStr, filepath.Join(projectRoot, "migrations")); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	pool, err := database.NewPool(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
	})

	return pool
}

func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

func TestStoreSaveAndGet(t *testing.T) {
	pool := setupTestDB(t)
	store := postgres.NewStore(pool)
	ctx := context.Background()

	stored := ports.StoredResponse{
		StatusCode: 201,
		Body:       []byte(`{"order_id":"order-1"}`),
		OrderID:    "order-1",
	}

	if err := store.Save(ctx, "key-1", stored); err != nil {
		t.Fatalf("failed to save response: %v", err)
	}

	got, err := store.Get(ctx, "key-1")
	if err != nil {
		t.Fatalf("failed to get response: %v", err)
	}
	if got == nil {
		t.Fatal("expected stored response, got nil")
	}
	if got.StatusCode != stored.StatusCode {
		t.Errorf("status code = %d, want %d", got.StatusCode, stored.StatusCode)
	}
	if string(got.Body) != string(stored.Body) {
		t.Errorf("body = %s, want %s", got.Body, stored.Body)
	}
	if got.OrderID != stored.OrderID {
		t.Errorf("order id = %s, want %s", got.OrderID, stored.OrderID)
	}
}

func TestStoreGetMissing(t *testing.T) {
	pool := setupTestDB(t)
	store := postgres.NewStore(pool)

	got, err := store.Get(context.Background(), "unknown-key")
	if err != nil {
		t.Fatalf("failed to get response: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing key, got %+v", got)
	}
}

func TestStoreSaveConflictKeepsFirst(t *testing.T) {
	pool := setupTestDB(t)
	store := postgres.NewStore(pool)
	ctx := context.Background()

	first := ports.StoredResponse{StatusCode: 201, Body: []byte("first"), OrderID: "order-1"}
	second := ports.StoredResponse{StatusCode: 500, Body: []byte("second"), OrderID: "order-2"}

	if err := store.Save(ctx, "key-1", first); err != nil {
		t.Fatalf("failed to save first: %v", err)
	}
	if err := store.Save(ctx, "key-1", second); err != nil {
		t.Fatalf("failed to save second: %v", err)
	}

	got, err := store.Get(ctx, "key-1")
	if err != nil {
		t.Fatalf("failed to get response: %v", err)
	}
	if string(got.Body) != "first" {
		t.Errorf("conflict overwrote stored response: %s", got.Body)
	}
}
