package integrity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/storewarden/storewarden/internal/metrics"
	"github.com/storewarden/storewarden/internal/model"
	"github.com/storewarden/storewarden/internal/store"
)

// Engine runs consistency checks and repairs across users and orders.
// It works on the raw store tier: repairs must be able to persist
// records the validating tier would reject.
type Engine struct {
	users   store.UserStore
	orders  store.OrderStore
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewEngine creates an integrity engine over the raw stores.
func NewEngine(users store.UserStore, orders store.OrderStore, logger *slog.Logger, recorder metrics.Recorder) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Engine{
		users:   users,
		orders:  orders,
		logger:  logger,
		metrics: recorder,
	}
}

// ValidateUser checks a single user record without touching the store,
// except for the duplicate-name probe. The result is transient.
func (e *Engine) ValidateUser(ctx context.Context, user *model.User) (*ValidationResult, error) {
	result := &ValidationResult{}

	if user == nil {
		result.AddError("user is nil")
		return result, nil
	}

	if !user.HasValidName() {
		result.AddError("name is required")
	}
	if !user.HasValidEmail() {
		result.AddError("valid email is required")
	}

	duplicates, err := e.users.FindByName(ctx, user.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check duplicates: %w", err)
	}
	for _, dup := range duplicates {
		if dup.ID != user.ID && dup.Name == user.Name {
			result.AddWarning("user with same name already exists")
			break
		}
	}

	return result, nil
}

// HasDuplicate reports whether a user with exactly the given name is
// already persisted. Migration uses this to skip duplicate inserts.
func (e *Engine) HasDuplicate(ctx context.Context, name string) (bool, error) {
	matches, err := e.users.FindByName(ctx, name)
	if err != nil {
		return false, fmt.Errorf("failed to find users by name: %w", err)
	}
	for _, match := range matches {
		if match.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// RepairMalformedUsers rewrites every user whose name or email violates
// the persisted-record invariants, substituting placeholders derived
// from the ID, and persists the repaired record. Running it twice in a
// row repairs nothing on the second pass.
//
// This mutates stored data as a side effect of a "validation" pass;
// callers must be aware it is not read-only.
func (e *Engine) RepairMalformedUsers(ctx context.Context) (int, error) {
	users, err := e.users.SelectAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}

	repaired := 0
	for _, user := range users {
		fixed := false

		if !user.HasValidName() {
			user.Name = "Unknown_" + user.ID
			fixed = true
		}
		if !user.HasValidEmail() {
			user.Email = "invalid_" + user.ID + "@example.com"
			fixed = true
		}

		if !fixed {
			continue
		}

		if err := e.users.Update(ctx, user); err != nil {
			e.logger.Warn("failed to persist repaired user",
				slog.String("user_id", user.ID),
				slog.String("error", err.Error()),
			)
			continue
		}

		repaired++
		e.metrics.IncUserRepaired()
		e.logger.Info("repaired malformed user", slog.String("user_id", user.ID))
	}

	return repaired, nil
}

// RemoveOrphanedOrders deletes every order whose user no longer exists.
// Orders are disposable relative to users: deletion, not user
// re-creation, resolves the inconsistency.
func (e *Engine) RemoveOrphanedOrders(ctx context.Context) (int, error) {
	orders, err := e.orders.SelectAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list orders: %w", err)
	}

	removed := 0
	for _, order := range orders {
		exists, err := e.users.Exists(ctx, order.UserID)
		if err != nil {
			e.logger.Warn("failed to check order owner",
				slog.String("order_id", order.OrderID),
				slog.String("error", err.Error()),
			)
			continue
		}
		if exists {
			continue
		}

		if err := e.orders.Delete(ctx, order.OrderID); err != nil {
			e.logger.Warn("failed to delete orphaned order",
				slog.String("order_id", order.OrderID),
				slog.String("error", err.Error()),
			)
			continue
		}

		removed++
		e.metrics.IncOrphanRemoved()
		e.logger.Info("deleted orphaned order",
			slog.String("order_id", order.OrderID),
			slog.String("user_id", order.UserID),
		)
	}

	return removed, nil
}

// PruneInactiveUsers deletes users that have no orders and are judged
// inactive by the supplied policy.
func (e *Engine) PruneInactiveUsers(ctx context.Context, inactive InactivityPolicy) (int, error) {
	users, err := e.users.SelectAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}

	pruned := 0
	for _, user := range users {
		orders, err := e.orders.SelectByUserID(ctx, user.ID)
		if err != nil {
			e.logger.Warn("failed to list user orders",
				slog.String("user_id", user.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		if len(orders) > 0 || !inactive(user) {
			continue
		}

		if err := e.users.Delete(ctx, user.ID); err != nil {
			e.logger.Warn("failed to delete inactive user",
				slog.String("user_id", user.ID),
				slog.String("error", err.Error()),
			)
			continue
		}

		pruned++
		e.logger.Info("deleted inactive user", slog.String("user_id", user.ID))
	}

	return pruned, nil
}
