package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mpavic/hexorders/internal/orders/domain"
	"github.com/mpavic/hexorders/internal/orders/ports"
)

// Repository persists orders across an orders table and an order_items
// table, writing both in one transaction. Amounts travel as strings so
// numeric columns keep exact decimal values.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Save(ctx context.Context, order *domain.Order) (domain.OrderID, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderQuery := `
		INSERT INTO orders (id, status, total_amount, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err = tx.Exec(ctx, orderQuery,
		order.ID().String(),
		string(order.Status()),
		order.Total().String(),
		time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, position, sku, unit_price, quantity)
		VALUES ($1, $2, $3, $4, $5)
	`
	for position, item := range order.Items() {
		_, err = tx.Exec(ctx, itemQuery,
			order.ID().String(),
			position,
			item.SKU(),
			item.UnitPrice().String(),
			item.Quantity(),
		)
		if err != nil {
			return "", fmt.Errorf("insert order item %s: %w", item.SKU(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit transaction: %w", err)
	}

	return order.ID(), nil
}

func (r *Repository) FindByID(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	var status string
	err := r.pool.QueryRow(ctx,
		`SELECT status FROM orders WHERE id = $1`,
		id.String(),
	).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("select order: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT sku, unit_price, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY position
	`, id.String())
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var (
			sku       string
			unitPrice string
			quantity  int
		)
		if err := rows.Scan(&sku, &unitPrice, &quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}

		price, err := domain.NewMoneyFromString(unitPrice)
		if err != nil {
			return nil, fmt.Errorf("restore unit price for %s: %w", sku, err)
		}
		item, err := domain.NewOrderItem(sku, price, quantity)
		if err != nil {
			return nil, fmt.Errorf("restore order item %s: %w", sku, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	order, err := domain.RestoreOrder(id, items, domain.OrderStatus(status))
	if err != nil {
		return nil, fmt.Errorf("restore order %s: %w", id, err)
	}
	return order, nil
}

func (r *Repository) Exists(ctx context.Context, id domain.OrderID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`,
		id.String(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check order existence: %w", err)
	}
	return exists, nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return count, nil
}
