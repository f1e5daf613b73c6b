package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"milk-ledger/internal/models"
)

func cloneOrder(o models.Order) models.Order {
	cp := o
	cp.Items = make([]models.OrderItem, len(o.Items))
	copy(cp.Items, o.Items)
	return cp
}

// CreateOrder assigns an ID and creation timestamp and appends the order.
// Totals and snapshots are the caller's job; the store does not touch
// customer aggregates.
func (s *Store) CreateOrder(ctx context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o.ID = newID()
	o.CreatedAt = time.Now().UTC()
	s.orders = append(s.orders, cloneOrder(*o))
	return s.flush(ctx)
}

// GetOrder retrieves an order by ID.
func (s *Store) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			cp := cloneOrder(s.orders[i])
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
}

// ListOrders returns all orders in insertion order.
func (s *Store) ListOrders(ctx context.Context) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, cloneOrder(o))
	}
	return out
}

// ReplaceOrder swaps the stored order with the same ID. Customer
// aggregates are not reconciled on edits, matching the creation-only
// maintenance contract.
func (s *Store) ReplaceOrder(ctx context.Context, o models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == o.ID {
			s.orders[i] = cloneOrder(o)
			return s.flush(ctx)
		}
	}
	return fmt.Errorf("order %s: %w", o.ID, ErrNotFound)
}

// DeleteOrder removes an order. Customer aggregates are not reversed.
func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return s.flush(ctx)
		}
	}
	return fmt.Errorf("order %s: %w", id, ErrNotFound)
}

// CreatePayment assigns an ID and creation timestamp and appends the
// payment. Payments are append-only: there is no update or delete.
func (s *Store) CreatePayment(ctx context.Context, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = newID()
	p.CreatedAt = time.Now().UTC()
	s.payments = append(s.payments, *p)
	return s.flush(ctx)
}

// ListPayments returns all payments in insertion order.
func (s *Store) ListPayments(ctx context.Context) []models.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Payment, len(s.payments))
	copy(out, s.payments)
	return out
}

// CreateUser assigns an ID and creation timestamp and appends the user.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = newID()
	u.CreatedAt = time.Now().UTC()
	s.users = append(s.users, *u)
	return s.flush(ctx)
}

// GetUserByEmail retrieves a user by email, case-insensitively.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.users {
		if strings.EqualFold(s.users[i].Email, email) {
			cp := s.users[i]
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
}
