package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// welcomeBonusProduct is the product name of the zero-price order
// created for newly registered users.
const welcomeBonusProduct = "Welcome Bonus"

// RegisterUserWithWelcomeBonus creates a user through the validating
// service, then attempts to create a zero-price welcome order. A bonus
// failure is reported in the result but never rolls back the user: the
// two writes are not transactional.
func (c *Coordinator) RegisterUserWithWelcomeBonus(ctx context.Context, name, email string) (*WelcomeRegistration, error) {
	defer c.observe(time.Now())

	user, err := c.userSvc.CreateUser(ctx, name, email)
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	c.logger.Info("user registered", slog.String("user_id", user.ID), slog.String("name", name))

	result := &WelcomeRegistration{User: user}

	bonus, err := c.orderSvc.CreateOrder(ctx, user.ID, welcomeBonusProduct, 1, 0)
	if err != nil {
		result.BonusError = err.Error()
		c.logger.Warn("failed to create welcome bonus",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
		return result, nil
	}

	result.BonusOrder = bonus
	c.logger.Info("welcome bonus created", slog.String("user_id", user.ID), slog.String("order_id", bonus.OrderID))
	return result, nil
}

// WithdrawUser deletes every order belonging to the user, then the user
// itself. Returns service.ErrUserNotFound when the user is absent.
// There is no rollback: a failure after some order deletions leaves the
// remainder in place.
func (c *Coordinator) WithdrawUser(ctx context.Context, userID string) (int, error) {
	defer c.observe(time.Now())

	user, err := c.userSvc.FindUserByID(ctx, userID)
	if err != nil {
		return 0, err
	}

	deleted, err := c.orderSvc.DeleteAllUserOrders(ctx, userID)
	if err != nil {
		return deleted, fmt.Errorf("failed to delete orders for user %s: %w", userID, err)
	}
	c.logger.Info("deleted user orders", slog.String("user_id", userID), slog.Int("count", deleted))

	if err := c.userSvc.DeleteUser(ctx, userID); err != nil {
		return deleted, fmt.Errorf("failed to delete user %s: %w", userID, err)
	}

	c.logger.Info("user withdrawn", slog.String("user_id", userID), slog.String("name", user.Name))
	return deleted, nil
}

// MergeUsers reassigns every order of the secondary user to the primary
// user, then deletes the secondary. Returns service.ErrUserNotFound
// when either user is absent.
func (c *Coordinator) MergeUsers(ctx context.Context, primaryID, secondaryID string) (*MergeReport, error) {
	defer c.observe(time.Now())

	primary, err := c.userSvc.FindUserByID(ctx, primaryID)
	if err != nil {
		return nil, fmt.Errorf("primary user: %w", err)
	}
	secondary, err := c.userSvc.FindUserByID(ctx, secondaryID)
	if err != nil {
		return nil, fmt.Errorf("secondary user: %w", err)
	}

	report := &MergeReport{
		PrimaryID:   primaryID,
		SecondaryID: secondaryID,
	}

	orders, err := c.orders.SelectByUserID(ctx, secondaryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list secondary orders: %w", err)
	}

	for _, order := range orders {
		order.UserID = primaryID
		if err := c.orders.Update(ctx, order); err != nil {
			return report, fmt.Errorf("failed to reassign order %s: %w", order.OrderID, err)
		}
		report.ReassignedOrders++
		c.logger.Info("reassigned order to primary user",
			slog.String("order_id", order.OrderID),
			slog.String("primary_id", primaryID),
		)
	}

	if err := c.userSvc.DeleteUser(ctx, secondaryID); err != nil {
		return report, fmt.Errorf("failed to delete secondary user: %w", err)
	}

	c.logger.Info("users merged",
		slog.String("secondary", secondary.Name),
		slog.String("primary", primary.Name),
		slog.Int("reassigned_orders", report.ReassignedOrders),
	)
	return report, nil
}
