// Package integrity detects and repairs cross-entity inconsistency.
//
// There is no global transaction: every check-then-act sequence here is
// separate round trips to the store. All operations are written as
// "make it correct" repairs, so re-running them is safe and converges.
package integrity

import (
	"time"

	"github.com/storewarden/storewarden/internal/model"
)

// InactivityPolicy decides whether a user with no remaining orders may
// be deleted. The activity criterion is supplied by the caller, not
// hardcoded here.
type InactivityPolicy func(user *model.User) bool

// OrderStalenessPolicy decides whether an order is old enough to be
// removed by cleanup.
type OrderStalenessPolicy func(order *model.Order) bool

// StaleBefore returns a staleness policy matching orders placed before
// the cutoff.
func StaleBefore(cutoff time.Time) OrderStalenessPolicy {
	return func(order *model.Order) bool {
		return order.OrderDate.Before(cutoff)
	}
}

// NeverInactive keeps every user.
func NeverInactive(*model.User) bool { return false }

// AlwaysInactive treats every user as prunable.
func AlwaysInactive(*model.User) bool { return true }
