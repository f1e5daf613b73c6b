package service

import (
	"context"
	"fmt"
	"time"

	"milk-ledger/internal/models"
	"milk-ledger/internal/store"
	"milk-ledger/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BalanceMaintainer keeps a customer's aggregate fields consistent as
// orders and payments come in. Aggregates are maintained incrementally
// on the creation paths only; order edits and deletes deliberately do not
// reconcile them. Invariant after every call:
//
//	PendingBalance == max(0, TotalAmount - PaidAmount)
type BalanceMaintainer struct {
	store  *store.Store
	logger *zap.Logger
}

// NewBalanceMaintainer creates a new balance maintainer.
func NewBalanceMaintainer(st *store.Store) *BalanceMaintainer {
	return &BalanceMaintainer{
		store:  st,
		logger: util.GetLogger(),
	}
}

// clampPending derives PendingBalance from the other two aggregates:
// max(0, TotalAmount - PaidAmount). Both maintenance paths end with this,
// so the invariant holds by construction. An overpayment credit is
// consumed by the next order instead of being lost to the floor.
func clampPending(c *models.Customer) {
	pending := c.TotalAmount.Sub(c.PaidAmount)
	if pending.IsNegative() {
		pending = decimal.Zero
	}
	c.PendingBalance = pending
}

// OnOrderCreated applies a new order total to the owning customer: one
// more order, the total billed grows by the order total, and the pending
// balance is re-derived from the aggregates. Returns NotFound when the
// customer does not exist.
func (b *BalanceMaintainer) OnOrderCreated(ctx context.Context, customerID string, orderTotal decimal.Decimal) error {
	customer, err := b.store.AdjustCustomerAggregates(ctx, customerID, func(c *models.Customer) {
		c.TotalOrders++
		c.TotalAmount = c.TotalAmount.Add(orderTotal)
		clampPending(c)
	})
	if err != nil {
		return err
	}

	b.logger.Info("Customer billed",
		zap.String("customer_id", customerID),
		zap.String("order_total", orderTotal.String()),
		zap.String("pending_balance", customer.PendingBalance.String()))
	return nil
}

// OnPaymentRecorded applies a received amount to the owning customer and
// appends the payment record, denormalizing the customer's current name.
// The pending balance is floored at zero; paid amount only ever grows.
// The caller must have rejected non-positive amounts already.
func (b *BalanceMaintainer) OnPaymentRecorded(ctx context.Context, customerID string, amount decimal.Decimal, paymentDate time.Time) (*models.Payment, error) {
	customer, err := b.store.AdjustCustomerAggregates(ctx, customerID, func(c *models.Customer) {
		c.PaidAmount = c.PaidAmount.Add(amount)
		clampPending(c)
	})
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		CustomerID:   customerID,
		CustomerName: customer.Name,
		Amount:       amount,
		PaymentDate:  paymentDate,
	}
	if err := b.store.CreatePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to append payment: %w", err)
	}

	b.logger.Info("Payment applied",
		zap.String("customer_id", customerID),
		zap.String("amount", amount.String()),
		zap.String("pending_balance", customer.PendingBalance.String()))
	return payment, nil
}
