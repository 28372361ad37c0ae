// Package repository provides the validating access tier over the raw stores.
//
// Repositories enforce required-field and format invariants and translate
// failures into typed errors before delegating to the store. Callers that
// need the unvalidated write path (legacy migration, backup restore) use
// the store tier directly.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/storewarden/storewarden/internal/model"
	"github.com/storewarden/storewarden/internal/store"
)

// Common errors for repository operations.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrOrderNotFound = errors.New("order not found")
	ErrNameRequired  = errors.New("name is required")
)

// UserRepository validates user records before persisting them.
type UserRepository struct {
	store store.UserStore
}

// NewUserRepository creates a UserRepository over a raw store.
func NewUserRepository(s store.UserStore) *UserRepository {
	return &UserRepository{store: s}
}

// Insert validates and persists a new user. The store assigns the ID.
func (r *UserRepository) Insert(ctx context.Context, user *model.User) error {
	if strings.TrimSpace(user.Name) == "" {
		return ErrNameRequired
	}

	if err := r.store.Insert(ctx, user); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// Find returns the user with the given ID, or ErrUserNotFound.
// Absence is a signal at this layer; callers decide whether it is fatal.
func (r *UserRepository) Find(ctx context.Context, id string) (*model.User, error) {
	user, err := r.store.Select(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// FindAll returns every persisted user.
func (r *UserRepository) FindAll(ctx context.Context) ([]*model.User, error) {
	users, err := r.store.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// FindByName returns users whose name starts with the given prefix.
func (r *UserRepository) FindByName(ctx context.Context, name string) ([]*model.User, error) {
	users, err := r.store.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to find users by name: %w", err)
	}
	return users, nil
}

// Update persists the full record after an existence probe.
// The probe and the write are separate round trips; there is no
// isolation guarantee between them.
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	exists, err := r.store.Exists(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to check user existence: %w", err)
	}
	if !exists {
		return ErrUserNotFound
	}

	if err := r.store.Update(ctx, user); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// Delete removes the user after an existence probe.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	exists, err := r.store.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check user existence: %w", err)
	}
	if !exists {
		return ErrUserNotFound
	}

	if err := r.store.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// Exists reports whether a user with the given ID is persisted.
func (r *UserRepository) Exists(ctx context.Context, id string) (bool, error) {
	exists, err := r.store.Exists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}
