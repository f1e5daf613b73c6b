package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"milk-ledger/internal/models"
	"milk-ledger/internal/persist"
	"milk-ledger/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotFound is returned for any operation referencing a record that does
// not exist. The store never silently no-ops.
var ErrNotFound = errors.New("record not found")

// Store is the record store: five in-memory collections guarded by a
// single lock, persisted wholesale through a Persister after every
// mutation. Slices keep insertion order; derived views depend on it.
// Referential integrity (the customer->orders cascade) is enforced here,
// not at the persistence layer.
type Store struct {
	mu        sync.RWMutex
	persister persist.Persister
	logger    *zap.Logger

	products  []models.Product
	customers []models.Customer
	orders    []models.Order
	payments  []models.Payment
	users     []models.User
}

// NewStore loads the persisted snapshot and returns a ready store.
func NewStore(ctx context.Context, persister persist.Persister) (*Store, error) {
	snap, err := persister.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	s := &Store{
		persister: persister,
		logger:    util.GetLogger(),
		products:  snap.Products,
		customers: snap.Customers,
		orders:    snap.Orders,
		payments:  snap.Payments,
		users:     snap.Users,
	}

	s.logger.Info("Record store loaded",
		zap.Int("products", len(s.products)),
		zap.Int("customers", len(s.customers)),
		zap.Int("orders", len(s.orders)),
		zap.Int("payments", len(s.payments)))
	return s, nil
}

// Close flushes nothing (every mutation already persisted) and closes the
// persistence backend.
func (s *Store) Close() error {
	return s.persister.Close()
}

// flush writes the full snapshot. Callers must hold the write lock.
func (s *Store) flush(ctx context.Context) error {
	start := time.Now()
	err := s.persister.Save(ctx, &persist.Snapshot{
		Products:  s.products,
		Customers: s.customers,
		Orders:    s.orders,
		Payments:  s.payments,
		Users:     s.users,
	})
	util.SnapshotSaveLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}
	return nil
}

func newID() string {
	return uuid.New().String()
}

// ── Products ──

// CreateProduct assigns an ID and creation timestamp and appends the
// product.
func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = newID()
	p.CreatedAt = time.Now().UTC()
	s.products = append(s.products, *p)
	return s.flush(ctx)
}

// GetProduct retrieves a product by ID.
func (s *Store) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.products {
		if s.products[i].ID == id {
			cp := s.products[i]
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
}

// ListProducts returns all products in insertion order.
func (s *Store) ListProducts(ctx context.Context) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// UpdateProduct replaces the stored product with the same ID.
func (s *Store) UpdateProduct(ctx context.Context, p models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == p.ID {
			s.products[i] = p
			return s.flush(ctx)
		}
	}
	return fmt.Errorf("product %s: %w", p.ID, ErrNotFound)
}

// DeleteProduct removes a product. Existing order lines keep their
// snapshot of the product's name and price.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return s.flush(ctx)
		}
	}
	return fmt.Errorf("product %s: %w", id, ErrNotFound)
}

// ── Customers ──

// CreateCustomer assigns an ID and creation timestamp and appends the
// customer. Callers initialize the aggregate fields.
func (s *Store) CreateCustomer(ctx context.Context, c *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = newID()
	c.CreatedAt = time.Now().UTC()
	s.customers = append(s.customers, *c)
	return s.flush(ctx)
}

// GetCustomer retrieves a customer by ID.
func (s *Store) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.customers {
		if s.customers[i].ID == id {
			cp := s.customers[i]
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("customer %s: %w", id, ErrNotFound)
}

// ListCustomers returns all customers in insertion order.
func (s *Store) ListCustomers(ctx context.Context) []models.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

// UpdateCustomer replaces the stored customer with the same ID. Contact
// edits come through here; the aggregate fields are mutated through
// AdjustCustomerAggregates instead.
func (s *Store) UpdateCustomer(ctx context.Context, c models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.customers {
		if s.customers[i].ID == c.ID {
			s.customers[i] = c
			return s.flush(ctx)
		}
	}
	return fmt.Errorf("customer %s: %w", c.ID, ErrNotFound)
}

// AdjustCustomerAggregates runs mutate against the stored customer and
// persists the result, all under one write lock. Concurrent adjustments
// for the same customer serialize here instead of racing a read against
// a later write. Returns a copy of the customer after the mutation.
func (s *Store) AdjustCustomerAggregates(ctx context.Context, id string, mutate func(*models.Customer)) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.customers {
		if s.customers[i].ID == id {
			mutate(&s.customers[i])
			if err := s.flush(ctx); err != nil {
				return nil, err
			}
			cp := s.customers[i]
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("customer %s: %w", id, ErrNotFound)
}

// DeleteCustomer removes a customer and cascades to all of that customer's
// orders. Payments are intentionally left in place so statements still
// show historical collections.
func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.customers {
		if s.customers[i].ID == id {
			s.customers = append(s.customers[:i], s.customers[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("customer %s: %w", id, ErrNotFound)
	}

	kept := s.orders[:0]
	for _, o := range s.orders {
		if o.CustomerID != id {
			kept = append(kept, o)
		}
	}
	s.orders = kept
	return s.flush(ctx)
}
