// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/storewarden/storewarden/internal/metrics"
	"github.com/storewarden/storewarden/internal/model"
	"github.com/storewarden/storewarden/internal/repository"
)

// Service errors.
var (
	ErrInvalidName         = errors.New("name must not be blank")
	ErrInvalidEmail        = errors.New("email must contain @")
	ErrUserNotFound        = errors.New("user not found")
	ErrBatchLengthMismatch = errors.New("names and emails must have the same length")
)

// UserCache caches user lookups. A nil cache disables caching.
type UserCache interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	SetUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id string) error
}

// UserService handles user business logic.
type UserService struct {
	repo    *repository.UserRepository
	cache   UserCache
	metrics metrics.Recorder
}

// NewUserService creates a new UserService. cache may be nil.
func NewUserService(repo *repository.UserRepository, cache UserCache, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{
		repo:    repo,
		cache:   cache,
		metrics: recorder,
	}
}

// CreateUser validates and persists a new user.
// The returned user carries the store-assigned ID.
func (s *UserService) CreateUser(ctx context.Context, name, email string) (*model.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	user := &model.User{
		Name:  name,
		Email: email,
	}

	if err := s.repo.Insert(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNameRequired) {
			return nil, ErrInvalidName
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.IncUserCreated()

	return user, nil
}

// FindUserByID retrieves a user by ID, cache-first.
// Absence is escalated to ErrUserNotFound at this layer.
func (s *UserService) FindUserByID(ctx context.Context, id string) (*model.User, error) {
	if s.cache != nil {
		cached, err := s.cache.GetUser(ctx, id)
		if err == nil {
			s.metrics.IncUserCacheHit()
			return cached, nil
		}
		// Cache errors fall through to the repository.
		s.metrics.IncUserCacheMiss()
	}

	user, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetUser(ctx, user); err != nil {
			// Log but don't fail - eventual consistency is acceptable
			_ = err
		}
	}

	return user, nil
}

// GetAllUsers retrieves every user.
func (s *UserService) GetAllUsers(ctx context.Context) ([]*model.User, error) {
	return s.repo.FindAll(ctx)
}

// UpdateUser validates and persists new name and email for an existing user.
func (s *UserService) UpdateUser(ctx context.Context, id, name, email string) (*model.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	user, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.Name = name
	user.Email = email
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.metrics.IncUserUpdated()
	s.invalidate(ctx, id)

	return user, nil
}

// DeleteUser removes a user by ID.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.metrics.IncUserDeleted()
	s.invalidate(ctx, id)

	return nil
}

// SearchUsersByName returns users whose name starts with the query.
// A blank query yields an empty result, never an error.
func (s *UserService) SearchUsersByName(ctx context.Context, name string) ([]*model.User, error) {
	if strings.TrimSpace(name) == "" {
		return []*model.User{}, nil
	}
	return s.repo.FindByName(ctx, name)
}

// DeleteAllUsers lists all users and deletes each individually.
// Not atomic: a failure partway leaves a partially-deleted set. The
// count of users deleted before the failure is returned either way.
func (s *UserService) DeleteAllUsers(ctx context.Context) (int, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, user := range users {
		if err := s.DeleteUser(ctx, user.ID); err != nil {
			return deleted, fmt.Errorf("failed to delete user %s: %w", user.ID, err)
		}
		deleted++
	}

	return deleted, nil
}

// CreateUsersBatch creates one user per (name, email) pair.
// Mismatched slice lengths fail up front; per-item failures are
// counted and do not stop the remaining items.
func (s *UserService) CreateUsersBatch(ctx context.Context, names, emails []string) (created, failed int, err error) {
	if len(names) != len(emails) {
		return 0, 0, ErrBatchLengthMismatch
	}

	for i := range names {
		if _, err := s.CreateUser(ctx, names[i], emails[i]); err != nil {
			failed++
			continue
		}
		created++
	}

	return created, failed, nil
}

func (s *UserService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteUser(ctx, id); err != nil {
		_ = err // Log but don't fail
	}
}
