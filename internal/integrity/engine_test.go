package integrity

import (
	"context"
	"strings"
	"testing"

	"github.com/storewarden/storewarden/internal/model"
	"github.com/storewarden/storewarden/internal/store"
)

func newEngineFixture() (*Engine, *store.MemoryUserStore, *store.MemoryOrderStore) {
	users := store.NewMemoryUserStore()
	orders := store.NewMemoryOrderStore()
	return NewEngine(users, orders, nil, nil), users, orders
}

func TestValidateUser(t *testing.T) {
	t.Parallel()

	engine, users, _ := newEngineFixture()
	ctx := context.Background()

	if err := users.Insert(ctx, &model.User{Name: "Alice", Email: "alice@example.com"}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	tests := []struct {
		name         string
		user         *model.User
		wantErrors   int
		wantWarnings int
	}{
		{"nil_user", nil, 1, 0},
		{"blank_name", &model.User{ID: "u1", Name: " ", Email: "a@b.com"}, 1, 0},
		{"bad_email", &model.User{ID: "u1", Name: "Bob", Email: "nope"}, 1, 0},
		{"both_bad", &model.User{ID: "u1", Name: "", Email: ""}, 2, 0},
		{"duplicate_name", &model.User{ID: "u1", Name: "Alice", Email: "other@b.com"}, 0, 1},
		{"valid", &model.User{ID: "u1", Name: "Carol", Email: "carol@b.com"}, 0, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result, err := engine.ValidateUser(ctx, test.user)
			if err != nil {
				t.Fatalf("validate failed: %v", err)
			}
			if len(result.Errors()) != test.wantErrors {
				t.Errorf("expected %d errors, got %v", test.wantErrors, result.Errors())
			}
			if len(result.Warnings()) != test.wantWarnings {
				t.Errorf("expected %d warnings, got %v", test.wantWarnings, result.Warnings())
			}
		})
	}
}

func TestRepairMalformedUsers(t *testing.T) {
	t.Parallel()

	engine, users, _ := newEngineFixture()
	ctx := context.Background()

	good := &model.User{Name: "Alice", Email: "alice@example.com"}
	noName := &model.User{Name: "  ", Email: "b@example.com"}
	badEmail := &model.User{Name: "Carol", Email: "not-an-email"}
	for _, u := range []*model.User{good, noName, badEmail} {
		if err := users.Insert(ctx, u); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	repaired, err := engine.RepairMalformedUsers(ctx)
	if err != nil {
		t.Fatalf("repair failed: %v", err)
	}
	if repaired != 2 {
		t.Fatalf("expected 2 repairs, got %d", repaired)
	}

	fixed, err := users.Select(ctx, noName.ID)
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if fixed.Name != "Unknown_"+noName.ID {
		t.Fatalf("unexpected placeholder name: %s", fixed.Name)
	}

	fixed, err = users.Select(ctx, badEmail.ID)
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if !strings.Contains(fixed.Email, "@") {
		t.Fatalf("repaired email still invalid: %s", fixed.Email)
	}

	untouched, err := users.Select(ctx, good.ID)
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if untouched.Name != "Alice" || untouched.Email != "alice@example.com" {
		t.Fatalf("valid user was modified: %+v", untouched)
	}
}

func TestRepairMalformedUsersIdempotent(t *testing.T) {
	t.Parallel()

	engine, users, _ := newEngineFixture()
	ctx := context.Background()

	if err := users.Insert(ctx, &model.User{Name: "", Email: ""}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	first, err := engine.RepairMalformedUsers(ctx)
	if err != nil {
		t.Fatalf("first repair failed: %v", err)
	}
	if first != 1 {
		t.Fatalf("expected 1 repair, got %d", first)
	}

	second, err := engine.RepairMalformedUsers(ctx)
	if err != nil {
		t.Fatalf("second repair failed: %v", err)
	}
	if second != 0 {
		t.Fatalf("expected 0 repairs on second run, got %d", second)
	}
}

func TestRemoveOrphanedOrders(t *testing.T) {
	t.Parallel()

	engine, users, orders := newEngineFixture()
	ctx := context.Background()

	owner := &model.User{Name: "Alice", Email: "alice@example.com"}
	if err := users.Insert(ctx, owner); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	owned := &model.Order{UserID: owner.ID, ProductName: "Widget", Quantity: 1, Status: model.OrderStatusPending}
	orphan := &model.Order{UserID: "gone", ProductName: "Widget", Quantity: 1, Status: model.OrderStatusPending}
	for _, o := range []*model.Order{owned, orphan} {
		if err := orders.Insert(ctx, o); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	removed, err := engine.RemoveOrphanedOrders(ctx)
	if err != nil {
		t.Fatalf("removal failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removal, got %d", removed)
	}

	// Orphan invariant: every remaining order references an existing user.
	remaining, err := orders.SelectAll(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, order := range remaining {
		exists, err := users.Exists(ctx, order.UserID)
		if err != nil || !exists {
			t.Fatalf("order %s still references missing user %s", order.OrderID, order.UserID)
		}
	}

	again, err := engine.RemoveOrphanedOrders(ctx)
	if err != nil {
		t.Fatalf("second removal failed: %v", err)
	}
	if again != 0 {
		t.Fatalf("expected 0 removals on second run, got %d", again)
	}
}

func TestPruneInactiveUsers(t *testing.T) {
	t.Parallel()

	engine, users, orders := newEngineFixture()
	ctx := context.Background()

	active := &model.User{Name: "Active", Email: "active@example.com"}
	idle := &model.User{Name: "Idle", Email: "idle@example.com"}
	protected := &model.User{Name: "Keep", Email: "keep@example.com"}
	for _, u := range []*model.User{active, idle, protected} {
		if err := users.Insert(ctx, u); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}
	if err := orders.Insert(ctx, &model.Order{UserID: active.ID, ProductName: "Widget", Quantity: 1}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	policy := func(u *model.User) bool { return u.Name != "Keep" }

	pruned, err := engine.PruneInactiveUsers(ctx, policy)
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}
	if pruned != 1 {
		t.Fatalf("expected 1 pruned user, got %d", pruned)
	}

	if _, err := users.Select(ctx, active.ID); err != nil {
		t.Fatal("user with orders must survive pruning")
	}
	if _, err := users.Select(ctx, protected.ID); err != nil {
		t.Fatal("user protected by policy must survive pruning")
	}
	if _, err := users.Select(ctx, idle.ID); err == nil {
		t.Fatal("idle user should have been pruned")
	}
}
