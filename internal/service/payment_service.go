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

// PaymentService handles payment recording and retrieval.
type PaymentService struct {
	store      *store.Store
	maintainer *BalanceMaintainer
	logger     *zap.Logger
}

// NewPaymentService creates a new payment service.
func NewPaymentService(st *store.Store, maintainer *BalanceMaintainer) *PaymentService {
	return &PaymentService{
		store:      st,
		maintainer: maintainer,
		logger:     util.GetLogger(),
	}
}

// MakePayment validates the amount, then applies it to the customer's
// balance and appends the payment record. Rejections happen before any
// mutation.
func (s *PaymentService) MakePayment(ctx context.Context, customerID string, amount decimal.Decimal, paymentDate time.Time) (*models.Payment, error) {
	ctx, span := util.StartSpan(ctx, "PaymentService.MakePayment")
	defer span.End()

	if customerID == "" {
		util.PaymentsRejectedTotal.WithLabelValues("missing_customer").Inc()
		return nil, fmt.Errorf("%w: customer id is required", ErrInvalidInput)
	}
	if !amount.IsPositive() {
		util.PaymentsRejectedTotal.WithLabelValues("non_positive_amount").Inc()
		return nil, fmt.Errorf("%w: payment amount must be positive", ErrInvalidInput)
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now().UTC()
	}

	payment, err := s.maintainer.OnPaymentRecorded(ctx, customerID, amount, paymentDate)
	if err != nil {
		return nil, err
	}

	util.PaymentsRecordedTotal.Inc()
	s.logger.Info("Payment recorded",
		zap.String("payment_id", payment.ID),
		zap.String("customer_id", customerID),
		zap.String("amount", amount.String()))
	return payment, nil
}

// FilteredPayments returns payments matching the filter, most recent
// first. Product and status criteria do not apply to payments.
func (s *PaymentService) FilteredPayments(ctx context.Context, f models.Filter) []models.Payment {
	return filterPayments(s.store.ListPayments(ctx), f)
}
