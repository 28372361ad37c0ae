package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/storewarden/storewarden/internal/model"
)

// MemoryUserStore is an in-memory UserStore for tests and local runs.
// All returned values are independent copies.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]*model.User
}

// NewMemoryUserStore returns an empty in-memory user store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]*model.User)}
}

// Insert stores a user, assigning an ID when the record has none.
func (s *MemoryUserStore) Insert(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == "" {
		user.ID = NewUserID()
	} else if _, ok := s.users[user.ID]; ok {
		return ErrDuplicateID
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	s.users[user.ID] = user.Clone()
	return nil
}

// Select returns the user with the given ID, or ErrNotFound.
func (s *MemoryUserStore) Select(_ context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return user.Clone(), nil
}

// SelectAll returns every user, ordered by ID for deterministic scans.
func (s *MemoryUserStore) SelectAll(_ context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*model.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user.Clone())
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// FindByName returns users whose name starts with the given prefix.
func (s *MemoryUserStore) FindByName(_ context.Context, name string) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var users []*model.User
	for _, user := range s.users {
		if strings.HasPrefix(user.Name, name) {
			users = append(users, user.Clone())
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// Update overwrites the stored record, or returns ErrNotFound.
func (s *MemoryUserStore) Update(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return ErrNotFound
	}
	user.UpdatedAt = time.Now().UTC()
	s.users[user.ID] = user.Clone()
	return nil
}

// Delete removes the user, or returns ErrNotFound.
func (s *MemoryUserStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}

// Exists reports whether a user with the given ID is stored.
func (s *MemoryUserStore) Exists(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.users[id]
	return ok, nil
}

// MemoryOrderStore is an in-memory OrderStore for tests and local runs.
type MemoryOrderStore struct {
	mu     sync.RWMutex
	orders map[string]*model.Order
}

// NewMemoryOrderStore returns an empty in-memory order store.
func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{orders: make(map[string]*model.Order)}
}

// Insert stores an order, assigning an ID when the record has none.
func (s *MemoryOrderStore) Insert(_ context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if order.OrderID == "" {
		order.OrderID = NewOrderID()
	} else if _, ok := s.orders[order.OrderID]; ok {
		return ErrDuplicateID
	}
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now().UTC()
	}
	s.orders[order.OrderID] = order.Clone()
	return nil
}

// Select returns the order with the given ID, or ErrNotFound.
func (s *MemoryOrderStore) Select(_ context.Context, orderID string) (*model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	return order.Clone(), nil
}

// SelectAll returns every order, ordered by ID.
func (s *MemoryOrderStore) SelectAll(_ context.Context) ([]*model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]*model.Order, 0, len(s.orders))
	for _, order := range s.orders {
		orders = append(orders, order.Clone())
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].OrderID < orders[j].OrderID })
	return orders, nil
}

// SelectByUserID returns all orders referencing the given user.
func (s *MemoryOrderStore) SelectByUserID(_ context.Context, userID string) ([]*model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var orders []*model.Order
	for _, order := range s.orders {
		if order.UserID == userID {
			orders = append(orders, order.Clone())
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].OrderID < orders[j].OrderID })
	return orders, nil
}

// Update overwrites the stored record, or returns ErrNotFound.
func (s *MemoryOrderStore) Update(_ context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[order.OrderID]; !ok {
		return ErrNotFound
	}
	s.orders[order.OrderID] = order.Clone()
	return nil
}

// Delete removes the order, or returns ErrNotFound.
func (s *MemoryOrderStore) Delete(_ context.Context, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[orderID]; !ok {
		return ErrNotFound
	}
	delete(s.orders, orderID)
	return nil
}

// Exists reports whether an order with the given ID is stored.
func (s *MemoryOrderStore) Exists(_ context.Context, orderID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.orders[orderID]
	return ok, nil
}
