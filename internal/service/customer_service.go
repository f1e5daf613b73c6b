package service

import (
	"context"
	"fmt"

	"milk-ledger/internal/models"
	"milk-ledger/internal/store"
	"milk-ledger/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CustomerService handles customer accounts.
type CustomerService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewCustomerService creates a new customer service.
func NewCustomerService(st *store.Store) *CustomerService {
	return &CustomerService{
		store:  st,
		logger: util.GetLogger(),
	}
}

// CustomerUpdate carries optional partial-update fields. The aggregate
// fields are owned by the balance maintainer and cannot be set here.
type CustomerUpdate struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// AddCustomer creates a customer with all four aggregate fields at zero.
func (s *CustomerService) AddCustomer(ctx context.Context, name, phone, address string) (*models.Customer, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}

	customer := &models.Customer{
		Name:           name,
		Phone:          phone,
		Address:        address,
		TotalOrders:    0,
		TotalAmount:    decimal.Zero,
		PaidAmount:     decimal.Zero,
		PendingBalance: decimal.Zero,
	}
	if err := s.store.CreateCustomer(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("Customer added",
		zap.String("customer_id", customer.ID),
		zap.String("name", customer.Name))
	return customer, nil
}

// UpdateCustomer applies a partial update to contact fields. Renaming a
// customer does not rewrite the name snapshots on past orders/payments.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id string, upd CustomerUpdate) (*models.Customer, error) {
	customer, err := s.store.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		if *upd.Name == "" {
			return nil, fmt.Errorf("%w: customer name is required", ErrInvalidInput)
		}
		customer.Name = *upd.Name
	}
	if upd.Phone != nil {
		customer.Phone = *upd.Phone
	}
	if upd.Address != nil {
		customer.Address = *upd.Address
	}

	if err := s.store.UpdateCustomer(ctx, *customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes a customer and cascades to their orders. Their
// payments remain retrievable.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id string) error {
	if err := s.store.DeleteCustomer(ctx, id); err != nil {
		return err
	}
	util.CustomersDeletedTotal.Inc()
	s.logger.Info("Customer deleted", zap.String("customer_id", id))
	return nil
}

// GetCustomer retrieves one customer.
func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	return s.store.GetCustomer(ctx, id)
}

// ListCustomers returns all customers.
func (s *CustomerService) ListCustomers(ctx context.Context) []models.Customer {
	return s.store.ListCustomers(ctx)
}
