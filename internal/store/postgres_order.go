package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storewarden/storewarden/internal/model"
)

// PostgresOrderStore is the Postgres-backed OrderStore.
type PostgresOrderStore struct {
	pool *pgxpool.Pool
}

// NewPostgresOrderStore creates an OrderStore over an existing pool.
func NewPostgresOrderStore(pool *pgxpool.Pool) *PostgresOrderStore {
	return &PostgresOrderStore{pool: pool}
}

// Insert stores an order, assigning an ID when the record has none.
func (s *PostgresOrderStore) Insert(ctx context.Context, order *model.Order) error {
	if order.OrderID == "" {
		order.OrderID = NewOrderID()
	}
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now().UTC()
	}

	query := `
		INSERT INTO orders (order_id, user_id, product_name, quantity, price, order_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.pool.Exec(ctx, query,
		order.OrderID,
		order.UserID,
		order.ProductName,
		order.Quantity,
		order.Price,
		order.OrderDate,
		order.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateID
		}
		return fmt.Errorf("failed to insert order: %w", err)
	}

	return nil
}

// Select retrieves an order by ID.
func (s *PostgresOrderStore) Select(ctx context.Context, orderID string) (*model.Order, error) {
	query := `
		SELECT order_id, user_id, product_name, quantity, price, order_date, status
		FROM orders
		WHERE order_id = $1
	`

	var order model.Order
	err := s.pool.QueryRow(ctx, query, orderID).Scan(
		&order.OrderID,
		&order.UserID,
		&order.ProductName,
		&order.Quantity,
		&order.Price,
		&order.OrderDate,
		&order.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to select order: %w", err)
	}

	return &order, nil
}

// SelectAll retrieves every order ordered by ID.
func (s *PostgresOrderStore) SelectAll(ctx context.Context) ([]*model.Order, error) {
	query := `
		SELECT order_id, user_id, product_name, quantity, price, order_date, status
		FROM orders
		ORDER BY order_id
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

// SelectByUserID retrieves all orders referencing the given user.
func (s *PostgresOrderStore) SelectByUserID(ctx context.Context, userID string) ([]*model.Order, error) {
	query := `
		SELECT order_id, user_id, product_name, quantity, price, order_date, status
		FROM orders
		WHERE user_id = $1
		ORDER BY order_id
	`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select orders by user: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

// Update overwrites the full order record.
func (s *PostgresOrderStore) Update(ctx context.Context, order *model.Order) error {
	query := `
		UPDATE orders
		SET user_id = $2, product_name = $3, quantity = $4, price = $5, order_date = $6, status = $7
		WHERE order_id = $1
	`

	tag, err := s.pool.Exec(ctx, query,
		order.OrderID,
		order.UserID,
		order.ProductName,
		order.Quantity,
		order.Price,
		order.OrderDate,
		order.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes an order by ID.
func (s *PostgresOrderStore) Delete(ctx context.Context, orderID string) error {
	query := `DELETE FROM orders WHERE order_id = $1`

	tag, err := s.pool.Exec(ctx, query, orderID)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Exists reports whether an order with the given ID is stored.
func (s *PostgresOrderStore) Exists(ctx context.Context, orderID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM orders WHERE order_id = $1)`

	var exists bool
	if err := s.pool.QueryRow(ctx, query, orderID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check order existence: %w", err)
	}

	return exists, nil
}

func scanOrders(rows pgx.Rows) ([]*model.Order, error) {
	var orders []*model.Order
	for rows.Next() {
		var order model.Order
		if err := rows.Scan(
			&order.OrderID,
			&order.UserID,
			&order.ProductName,
			&order.Quantity,
			&order.Price,
			&order.OrderDate,
			&order.Status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, &order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}
	return orders, nil
}
