package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/storewarden/storewarden/internal/model"
	"github.com/storewarden/storewarden/internal/store"
)

func TestOrderRepository_InsertValidation(t *testing.T) {
	t.Parallel()

	repo := NewOrderRepository(store.NewMemoryOrderStore())

	tests := []struct {
		name    string
		order   *model.Order
		wantErr error
	}{
		{"negative_price", &model.Order{UserID: "u1", ProductName: "Widget", Quantity: 1, Price: -0.01}, ErrNegativePrice},
		{"zero_quantity", &model.Order{UserID: "u1", ProductName: "Widget", Quantity: 0, Price: 1}, ErrInvalidQuantity},
		{"zero_price_ok", &model.Order{UserID: "u1", ProductName: "Welcome Bonus", Quantity: 1, Price: 0}, nil},
		{"valid", &model.Order{UserID: "u1", ProductName: "Widget", Quantity: 2, Price: 9.99}, nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := repo.Insert(context.Background(), test.order)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("expected %v, got %v", test.wantErr, err)
			}
		})
	}
}

func TestOrderRepository_NotFound(t *testing.T) {
	t.Parallel()

	repo := NewOrderRepository(store.NewMemoryOrderStore())
	ctx := context.Background()

	if _, err := repo.Find(ctx, "missing"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, "missing"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound on delete, got %v", err)
	}

	ghost := &model.Order{OrderID: "ghost", UserID: "u1", Quantity: 1}
	if err := repo.Update(ctx, ghost); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound on update, got %v", err)
	}
}

func TestOrderRepository_FindByUserID(t *testing.T) {
	t.Parallel()

	repo := NewOrderRepository(store.NewMemoryOrderStore())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		order := &model.Order{UserID: "u1", ProductName: "Widget", Quantity: 1, Price: 1}
		if err := repo.Insert(ctx, order); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	orders, err := repo.FindByUserID(ctx, "u1")
	if err != nil {
		t.Fatalf("find by user failed: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
}
