package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/storewarden/storewarden/internal/store"
)

// CreateUserBackup snapshots a user and all their orders. The snapshot
// holds independent copies: later store mutations do not affect it.
// Returns service.ErrUserNotFound when the user is absent.
func (c *Coordinator) CreateUserBackup(ctx context.Context, userID string) (*Backup, error) {
	defer c.observe(time.Now())

	user, err := c.userSvc.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	orders, err := c.orderSvc.GetUserOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for backup: %w", err)
	}

	backup := &Backup{
		User:       user.Clone(),
		BackupDate: time.Now().UTC(),
	}
	for _, order := range orders {
		backup.Orders = append(backup.Orders, order.Clone())
	}

	c.logger.Info("backup created",
		slog.String("user_id", userID),
		slog.Int("orders", len(backup.Orders)),
	)
	return backup, nil
}

// RestoreUserFromBackup re-inserts the snapshotted user and orders
// through the raw store tier, preserving their original IDs. No
// existence check is made first: restoring over still-present originals
// can collide or duplicate, and each such failure is counted rather
// than aborting the restore.
func (c *Coordinator) RestoreUserFromBackup(ctx context.Context, backup *Backup) (*RestoreReport, error) {
	defer c.observe(time.Now())

	if backup == nil || backup.User == nil {
		return nil, ErrInvalidBackup
	}

	report := &RestoreReport{}

	if err := c.users.Insert(ctx, backup.User.Clone()); err != nil {
		report.ErrorCount++
		c.logger.Warn("failed to restore user",
			slog.String("user_id", backup.User.ID),
			slog.String("error", err.Error()),
		)
	} else {
		report.SuccessCount++
	}

	for _, order := range backup.Orders {
		if err := c.orders.Insert(ctx, order.Clone()); err != nil {
			report.ErrorCount++
			c.logger.Warn("failed to restore order",
				slog.String("order_id", order.OrderID),
				slog.String("error", err.Error()),
			)
			continue
		}
		report.SuccessCount++
	}

	c.logger.Info("restore completed",
		slog.String("user_id", backup.User.ID),
		slog.Int("success", report.SuccessCount),
		slog.Int("errors", report.ErrorCount),
	)
	return report, nil
}

// BulkUpdateUserEmails rewrites oldDomain to newDomain in every email
// containing it. A plain scan-and-rewrite, persisted per item, not
// atomic across the set.
func (c *Coordinator) BulkUpdateUserEmails(ctx context.Context, oldDomain, newDomain string) (*BulkEmailReport, error) {
	defer c.observe(time.Now())

	users, err := c.users.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	report := &BulkEmailReport{}

	for _, user := range users {
		if !strings.Contains(user.Email, oldDomain) {
			continue
		}

		user.Email = strings.ReplaceAll(user.Email, oldDomain, newDomain)
		if err := c.users.Update(ctx, user); err != nil {
			report.ErrorCount++
			c.logger.Warn("failed to update user email",
				slog.String("user_id", user.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		report.UpdatedCount++
	}

	c.logger.Info("bulk email update completed",
		slog.String("old_domain", oldDomain),
		slog.String("new_domain", newDomain),
		slog.Int("updated", report.UpdatedCount),
		slog.Int("errors", report.ErrorCount),
	)
	return report, nil
}

// UpdateUsersInBatch appends emailSuffix to the email of each listed
// user. Missing IDs are skipped and counted, not failed.
func (c *Coordinator) UpdateUsersInBatch(ctx context.Context, userIDs []string, emailSuffix string) (*BatchUpdateReport, error) {
	defer c.observe(time.Now())

	report := &BatchUpdateReport{}

	for _, id := range userIDs {
		user, err := c.users.Select(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				report.SkippedCount++
				c.logger.Info("user not found, skipping", slog.String("user_id", id))
				continue
			}
			report.ErrorCount++
			c.logger.Warn("failed to load user",
				slog.String("user_id", id),
				slog.String("error", err.Error()),
			)
			continue
		}

		user.Email = user.Email + emailSuffix
		if err := c.users.Update(ctx, user); err != nil {
			report.ErrorCount++
			c.logger.Warn("failed to update user",
				slog.String("user_id", id),
				slog.String("error", err.Error()),
			)
			continue
		}
		report.UpdatedCount++
	}

	c.logger.Info("batch update completed",
		slog.Int("updated", report.UpdatedCount),
		slog.Int("skipped", report.SkippedCount),
		slog.Int("errors", report.ErrorCount),
	)
	return report, nil
}
