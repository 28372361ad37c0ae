// Package store provides the raw storage tier for users and orders.
//
// The contracts here are purely logical CRUD: no referential checks, no
// validation. The validating repository tier sits on top of this package,
// and batch workflows that deliberately bypass validation write here
// directly.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/storewarden/storewarden/internal/model"
)

// Store errors.
var (
	// ErrNotFound is returned when a record does not exist in the store.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateID is returned by Insert when a record with the same
	// ID is already stored.
	ErrDuplicateID = errors.New("duplicate record id")
)

// UserStore persists users. Insert assigns an ID when the record has none;
// a pre-set ID is preserved so that backup restores keep identity, and
// inserting an ID that is already stored returns ErrDuplicateID.
type UserStore interface {
	Insert(ctx context.Context, user *model.User) error
	Select(ctx context.Context, id string) (*model.User, error)
	SelectAll(ctx context.Context) ([]*model.User, error)
	FindByName(ctx context.Context, name string) ([]*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

// OrderStore persists orders. Same ID-assignment rules as UserStore.
type OrderStore interface {
	Insert(ctx context.Context, order *model.Order) error
	Select(ctx context.Context, orderID string) (*model.Order, error)
	SelectAll(ctx context.Context) ([]*model.Order, error)
	SelectByUserID(ctx context.Context, userID string) ([]*model.Order, error)
	Update(ctx context.Context, order *model.Order) error
	Delete(ctx context.Context, orderID string) error
	Exists(ctx context.Context, orderID string) (bool, error)
}

// NewUserID generates a store-assigned user identity.
func NewUserID() string {
	return uuid.NewString()
}

// NewOrderID generates a store-assigned order identity.
// ULIDs sort by creation time, which keeps maintenance scans ordered.
func NewOrderID() string {
	return ulid.Make().String()
}
