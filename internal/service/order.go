package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/storewarden/storewarden/internal/metrics"
	"github.com/storewarden/storewarden/internal/model"
	"github.com/storewarden/storewarden/internal/repository"
)

// ErrOrderNotFound is returned when a referenced order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// OrderService handles order business logic. Orders reference users, so
// creation checks the user side through the user repository first; the
// store itself performs no referential checks.
type OrderService struct {
	orders  *repository.OrderRepository
	users   *repository.UserRepository
	metrics metrics.Recorder
}

// NewOrderService creates a new OrderService.
func NewOrderService(orders *repository.OrderRepository, users *repository.UserRepository, recorder metrics.Recorder) *OrderService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &OrderService{
		orders:  orders,
		users:   users,
		metrics: recorder,
	}
}

// CreateOrder validates the user reference and persists a new order
// with status PENDING. Price and quantity invariants are enforced by
// the order repository.
func (s *OrderService) CreateOrder(ctx context.Context, userID, productName string, quantity int, price float64) (*model.Order, error) {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	order := &model.Order{
		UserID:      userID,
		ProductName: productName,
		Quantity:    quantity,
		Price:       price,
		OrderDate:   time.Now().UTC(),
		Status:      model.OrderStatusPending,
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}

	s.metrics.IncOrderCreated()

	return order, nil
}

// FindOrderByID retrieves an order by ID.
func (s *OrderService) FindOrderByID(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := s.orders.Find(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// GetUserOrders retrieves all orders belonging to a user.
func (s *OrderService) GetUserOrders(ctx context.Context, userID string) ([]*model.Order, error) {
	return s.orders.FindByUserID(ctx, userID)
}

// UpdateOrderStatus overwrites an order's status.
// Read-modify-write with no concurrency guard.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	exists, err := s.orders.Exists(ctx, orderID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrOrderNotFound
	}

	order, err := s.orders.Find(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	order.Status = status

	if err := s.orders.Update(ctx, order); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	return nil
}

// CancelOrder sets an order's status to CANCELLED.
func (s *OrderService) CancelOrder(ctx context.Context, orderID string) error {
	return s.UpdateOrderStatus(ctx, orderID, model.OrderStatusCancelled)
}

// DeleteOrder removes an order by ID.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID string) error {
	if err := s.orders.Delete(ctx, orderID); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	s.metrics.IncOrderDeleted()

	return nil
}

// DeleteAllUserOrders removes every order belonging to a user and
// returns the number deleted. Not atomic.
func (s *OrderService) DeleteAllUserOrders(ctx context.Context, userID string) (int, error) {
	orders, err := s.orders.FindByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, order := range orders {
		if err := s.DeleteOrder(ctx, order.OrderID); err != nil {
			return deleted, fmt.Errorf("failed to delete order %s: %w", order.OrderID, err)
		}
		deleted++
	}

	return deleted, nil
}
