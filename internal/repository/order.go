package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/storewarden/storewarden/internal/model"
	"github.com/storewarden/storewarden/internal/store"
)

// Validation errors for order records.
var (
	ErrNegativePrice   = errors.New("price must not be negative")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// OrderRepository validates order records before persisting them.
type OrderRepository struct {
	store store.OrderStore
}

// NewOrderRepository creates an OrderRepository over a raw store.
func NewOrderRepository(s store.OrderStore) *OrderRepository {
	return &OrderRepository{store: s}
}

// Insert validates and persists a new order. The store assigns the ID.
// The user reference is not checked here; that is service-level policy.
func (r *OrderRepository) Insert(ctx context.Context, order *model.Order) error {
	if order.Price < 0 {
		return ErrNegativePrice
	}
	if order.Quantity < 1 {
		return ErrInvalidQuantity
	}

	if err := r.store.Insert(ctx, order); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	return nil
}

// Find returns the order with the given ID, or ErrOrderNotFound.
func (r *OrderRepository) Find(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := r.store.Select(ctx, orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	return order, nil
}

// FindAll returns every persisted order.
func (r *OrderRepository) FindAll(ctx context.Context) ([]*model.Order, error) {
	orders, err := r.store.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// FindByUserID returns all orders referencing the given user.
func (r *OrderRepository) FindByUserID(ctx context.Context, userID string) ([]*model.Order, error) {
	orders, err := r.store.SelectByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find orders by user: %w", err)
	}
	return orders, nil
}

// Update persists the full record after an existence probe.
func (r *OrderRepository) Update(ctx context.Context, order *model.Order) error {
	exists, err := r.store.Exists(ctx, order.OrderID)
	if err != nil {
		return fmt.Errorf("failed to check order existence: %w", err)
	}
	if !exists {
		return ErrOrderNotFound
	}

	if err := r.store.Update(ctx, order); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to update order: %w", err)
	}

	return nil
}

// Delete removes the order after an existence probe.
func (r *OrderRepository) Delete(ctx context.Context, orderID string) error {
	exists, err := r.store.Exists(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to check order existence: %w", err)
	}
	if !exists {
		return ErrOrderNotFound
	}

	if err := r.store.Delete(ctx, orderID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}

	return nil
}

// Exists reports whether an order with the given ID is persisted.
func (r *OrderRepository) Exists(ctx context.Context, orderID string) (bool, error) {
	exists, err := r.store.Exists(ctx, orderID)
	if err != nil {
		return false, fmt.Errorf("failed to check order existence: %w", err)
	}
	return exists, nil
}
