package service

import (
	"context"
	"errors"
	"testing"

	"github.com/storewarden/storewarden/internal/model"
	"github.com/storewarden/storewarden/internal/repository"
	"github.com/storewarden/storewarden/internal/store"
)

// newOrderFixture wires user and order services over shared memory stores.
func newOrderFixture() (*UserService, *OrderService) {
	userRepo := repository.NewUserRepository(store.NewMemoryUserStore())
	orderRepo := repository.NewOrderRepository(store.NewMemoryOrderStore())
	return NewUserService(userRepo, nil, nil), NewOrderService(orderRepo, userRepo, nil)
}

func TestCreateOrder(t *testing.T) {
	t.Parallel()

	users, orders := newOrderFixture()
	ctx := context.Background()

	user, err := users.CreateUser(ctx, "Alice", "alice@example.com")
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	order, err := orders.CreateOrder(ctx, user.ID, "Widget", 2, 19.99)
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.OrderID == "" {
		t.Fatal("expected assigned order ID")
	}
	if order.Status != model.OrderStatusPending {
		t.Fatalf("expected PENDING status, got %s", order.Status)
	}
	if order.OrderDate.IsZero() {
		t.Fatal("expected order date to be set")
	}
}

func TestCreateOrderUnknownUser(t *testing.T) {
	t.Parallel()

	_, orders := newOrderFixture()

	_, err := orders.CreateOrder(context.Background(), "missing", "Widget", 1, 1)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	t.Parallel()

	users, orders := newOrderFixture()
	ctx := context.Background()

	user, err := users.CreateUser(ctx, "Bob", "bob@example.com")
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	if _, err := orders.CreateOrder(ctx, user.ID, "Widget", 1, -1); !errors.Is(err, repository.ErrNegativePrice) {
		t.Fatalf("expected ErrNegativePrice, got %v", err)
	}
	if _, err := orders.CreateOrder(ctx, user.ID, "Widget", 0, 1); !errors.Is(err, repository.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestUpdateOrderStatusAndCancel(t *testing.T) {
	t.Parallel()

	users, orders := newOrderFixture()
	ctx := context.Background()

	user, err := users.CreateUser(ctx, "Carol", "carol@example.com")
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	order, err := orders.CreateOrder(ctx, user.ID, "Widget", 1, 5)
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if err := orders.UpdateOrderStatus(ctx, order.OrderID, "SHIPPED"); err != nil {
		t.Fatalf("status update failed: %v", err)
	}
	got, err := orders.FindOrderByID(ctx, order.OrderID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if got.Status != "SHIPPED" {
		t.Fatalf("expected SHIPPED, got %s", got.Status)
	}

	if err := orders.CancelOrder(ctx, order.OrderID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	got, err = orders.FindOrderByID(ctx, order.OrderID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if !got.IsCancelled() {
		t.Fatalf("expected CANCELLED, got %s", got.Status)
	}

	if err := orders.UpdateOrderStatus(ctx, "missing", "SHIPPED"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestDeleteAllUserOrders(t *testing.T) {
	t.Parallel()

	users, orders := newOrderFixture()
	ctx := context.Background()

	user, err := users.CreateUser(ctx, "Dave", "dave@example.com")
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := orders.CreateOrder(ctx, user.ID, "Widget", 1, 1); err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}

	deleted, err := orders.DeleteAllUserOrders(ctx, user.ID)
	if err != nil {
		t.Fatalf("delete all failed: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("expected 3 deletions, got %d", deleted)
	}

	remaining, err := orders.GetUserOrders(ctx, user.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected no orders, got %d", len(remaining))
	}
}
