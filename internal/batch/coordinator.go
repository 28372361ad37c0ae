// Package batch composes multi-step maintenance workflows over users
// and orders.
//
// Every workflow is partial-failure tolerant: per-item failures are
// caught, counted, and logged, and the workflow runs over the full set
// regardless. The workflow itself never fails on a single item; callers
// inspect the returned report for a mixed outcome. Writes that must
// bypass repository validation (migration, restore) go through the raw
// store tier; everything else goes through the services.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/storewarden/storewarden/internal/integrity"
	"github.com/storewarden/storewarden/internal/metrics"
	"github.com/storewarden/storewarden/internal/model"
	"github.com/storewarden/storewarden/internal/service"
	"github.com/storewarden/storewarden/internal/store"
)

// ErrInvalidBackup is returned when a restore is attempted from a nil
// or user-less backup.
var ErrInvalidBackup = errors.New("invalid backup data")

// Coordinator orchestrates batch workflows. It holds both API tiers:
// the validating services and the raw stores.
type Coordinator struct {
	users    store.UserStore
	orders   store.OrderStore
	userSvc  *service.UserService
	orderSvc *service.OrderService
	engine   *integrity.Engine
	logger   *slog.Logger
	metrics  metrics.Recorder
}

// NewCoordinator creates a batch coordinator.
func NewCoordinator(
	users store.UserStore,
	orders store.OrderStore,
	userSvc *service.UserService,
	orderSvc *service.OrderService,
	engine *integrity.Engine,
	logger *slog.Logger,
	recorder metrics.Recorder,
) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Coordinator{
		users:    users,
		orders:   orders,
		userSvc:  userSvc,
		orderSvc: orderSvc,
		engine:   engine,
		logger:   logger,
		metrics:  recorder,
	}
}

// MigrateUsersFromLegacySystem imports legacy user records. Records
// whose exact name already exists are skipped, not failed. Inserts go
// through the raw store, bypassing repository validation: legacy data
// is migrated as-is and repaired later by the integrity engine.
func (c *Coordinator) MigrateUsersFromLegacySystem(ctx context.Context, legacyUsers []LegacyUser) (*MigrationReport, error) {
	defer c.observe(time.Now())
	c.logger.Info("starting user migration from legacy system", slog.Int("records", len(legacyUsers)))

	report := &MigrationReport{}

	for _, legacy := range legacyUsers {
		duplicate, err := c.engine.HasDuplicate(ctx, legacy.Name)
		if err != nil {
			report.ErrorCount++
			c.logger.Warn("failed to check for duplicate",
				slog.String("name", legacy.Name),
				slog.String("error", err.Error()),
			)
			continue
		}
		if duplicate {
			report.Skipped = append(report.Skipped, legacy.Name)
			c.logger.Info("user already exists, skipping", slog.String("name", legacy.Name))
			continue
		}

		user := &model.User{
			Name:  legacy.Name,
			Email: legacy.Email,
		}
		if err := c.users.Insert(ctx, user); err != nil {
			report.ErrorCount++
			c.logger.Warn("failed to migrate user",
				slog.String("name", legacy.Name),
				slog.String("error", err.Error()),
			)
			continue
		}

		report.SuccessCount++
		c.logger.Info("migrated user", slog.String("name", legacy.Name), slog.String("user_id", user.ID))
	}

	c.logger.Info("migration completed",
		slog.Int("success", report.SuccessCount),
		slog.Int("errors", report.ErrorCount),
		slog.Int("skipped", len(report.Skipped)),
	)
	return report, nil
}

// CleanupOldData deletes stale orders per user, then deletes users that
// end up with no orders and are judged inactive. Both predicates are
// supplied by the caller.
func (c *Coordinator) CleanupOldData(ctx context.Context, stale integrity.OrderStalenessPolicy, inactive integrity.InactivityPolicy) (*CleanupReport, error) {
	defer c.observe(time.Now())
	c.logger.Info("starting old data cleanup")

	users, err := c.users.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	report := &CleanupReport{}

	for _, user := range users {
		orders, err := c.orders.SelectByUserID(ctx, user.ID)
		if err != nil {
			report.ErrorCount++
			c.logger.Warn("failed to list user orders",
				slog.String("user_id", user.ID),
				slog.String("error", err.Error()),
			)
			continue
		}

		for _, order := range orders {
			if !stale(order) {
				continue
			}
			if err := c.orders.Delete(ctx, order.OrderID); err != nil {
				report.ErrorCount++
				c.logger.Warn("failed to delete stale order",
					slog.String("order_id", order.OrderID),
					slog.String("error", err.Error()),
				)
				continue
			}
			report.DeletedOrders++
		}

		remaining, err := c.orders.SelectByUserID(ctx, user.ID)
		if err != nil {
			report.ErrorCount++
			continue
		}
		if len(remaining) > 0 || !inactive(user) {
			continue
		}

		if err := c.users.Delete(ctx, user.ID); err != nil {
			report.ErrorCount++
			c.logger.Warn("failed to delete inactive user",
				slog.String("user_id", user.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		report.DeletedUsers++
		c.logger.Info("deleted inactive user", slog.String("user_id", user.ID), slog.String("name", user.Name))
	}

	c.logger.Info("cleanup completed",
		slog.Int("deleted_users", report.DeletedUsers),
		slog.Int("deleted_orders", report.DeletedOrders),
		slog.Int("errors", report.ErrorCount),
	)
	return report, nil
}

// ValidateDataIntegrity repairs malformed users and removes orphaned
// orders across the whole store. Running it twice in a row yields zero
// additional fixes on the second run.
func (c *Coordinator) ValidateDataIntegrity(ctx context.Context) (*IntegrityReport, error) {
	defer c.observe(time.Now())
	c.logger.Info("starting data integrity validation")

	repaired, err := c.engine.RepairMalformedUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to repair malformed users: %w", err)
	}

	removed, err := c.engine.RemoveOrphanedOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to remove orphaned orders: %w", err)
	}

	report := &IntegrityReport{
		RepairedUsers:  repaired,
		RemovedOrphans: removed,
	}

	c.logger.Info("validation completed",
		slog.Int("repaired_users", report.RepairedUsers),
		slog.Int("removed_orphans", report.RemovedOrphans),
	)
	return report, nil
}

// UpdateStatistics aggregates user and order counts. A store with no
// users reports an activity rate of 0 rather than dividing by zero.
func (c *Coordinator) UpdateStatistics(ctx context.Context) (*Statistics, error) {
	defer c.observe(time.Now())

	users, err := c.users.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	stats := &Statistics{
		TotalUsers:   len(users),
		OrdersByUser: make(map[string]int, len(users)),
		GeneratedAt:  time.Now().UTC(),
	}

	for _, user := range users {
		orders, err := c.orders.SelectByUserID(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list orders for user %s: %w", user.ID, err)
		}

		stats.OrdersByUser[user.ID] = len(orders)
		stats.TotalOrders += len(orders)
		if len(orders) > 0 {
			stats.ActiveUsers++
		}
	}

	if stats.TotalUsers > 0 {
		stats.ActivityRate = float64(stats.ActiveUsers) / float64(stats.TotalUsers)
	}

	c.logger.Info("statistics updated",
		slog.Int("total_users", stats.TotalUsers),
		slog.Int("active_users", stats.ActiveUsers),
		slog.Int("total_orders", stats.TotalOrders),
		slog.Float64("activity_rate", stats.ActivityRate),
	)
	return stats, nil
}

func (c *Coordinator) observe(start time.Time) {
	c.metrics.ObserveWorkflowDuration(time.Since(start))
}
