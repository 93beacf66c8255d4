package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mpavic/hexorders/internal/orders/ports"
)

const (
	selectResponseSQL = `SELECT status_code, body, order_id FROM idempotency_keys WHERE key = $1`

	// The first response stored under a key wins, so retries always
	// replay the original outcome.
	insertResponseSQL = `
		INSERT INTO idempotency_keys (key, status_code, body, order_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO NOTHING
	`
)

// Store keeps idempotency replay records in the idempotency_keys table.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Get returns the stored response for the key, or nil when the key has
// not been seen.
func (s *Store) Get(ctx context.Context, key string) (*ports.StoredResponse, error) {
	var stored ports.StoredResponse
	err := s.pool.QueryRow(ctx, selectResponseSQL, key).Scan(
		&stored.StatusCode,
		&stored.Body,
		&stored.OrderID,
	)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("select idempotency key: %w", err)
	}

	return &stored, nil
}

func (s *Store) Save(ctx context.Context, key string, response ports.StoredResponse) error {
	_, err := s.pool.Exec(ctx, insertResponseSQL,
		key,
		response.StatusCode,
		response.Body,
		response.OrderID,
	)
	if err != nil {
		return fmt.Errorf("insert idempotency key: %w", err)
	}

	return nil
}
