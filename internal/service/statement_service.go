package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"milk-ledger/internal/models"
	"milk-ledger/internal/store"
	"milk-ledger/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// paymentLabel is the fixed description for payment transactions.
const paymentLabel = "Payment received"

// StatementService builds windowed account statements and lifetime
// customer ledgers. The two answer different questions: a statement
// subtotal covers only the filtered period (and may go negative on
// overpayment), the ledger folds a customer's entire history.
type StatementService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewStatementService creates a new statement service.
func NewStatementService(st *store.Store) *StatementService {
	return &StatementService{
		store:  st,
		logger: util.GetLogger(),
	}
}

// orderDescription renders the line items as "Order: 2x Milk, 1x Curd".
func orderDescription(o models.Order) string {
	parts := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		parts = append(parts, fmt.Sprintf("%dx %s", item.Quantity, item.ProductName))
	}
	return "Order: " + strings.Join(parts, ", ")
}

// BuildStatements groups filtered orders and payments per customer,
// sorts each bucket's transactions chronologically (stable, so same-date
// entries keep their insertion order), and sorts buckets by customer name
// (byte-wise ordinal, ties by customer id).
func (s *StatementService) BuildStatements(ctx context.Context, f models.Filter) *models.StatementReport {
	ctx, span := util.StartSpan(ctx, "StatementService.BuildStatements")
	defer span.End()

	orders := filterOrders(s.store.ListOrders(ctx), f)
	payments := filterPayments(s.store.ListPayments(ctx), f)

	buckets := make(map[string]*models.CustomerStatement)
	bucket := func(customerID, customerName string) *models.CustomerStatement {
		st, ok := buckets[customerID]
		if !ok {
			st = &models.CustomerStatement{
				CustomerID:   customerID,
				CustomerName: customerName,
				Transactions: make([]models.Transaction, 0),
				TotalBilled:  decimal.Zero,
				TotalPaid:    decimal.Zero,
			}
			buckets[customerID] = st
		}
		return st
	}

	for _, o := range orders {
		st := bucket(o.CustomerID, o.CustomerName)
		st.Transactions = append(st.Transactions, models.Transaction{
			Date:        o.OrderDate,
			Kind:        models.TxKindOrder,
			Description: orderDescription(o),
			Billed:      o.TotalAmount,
			Paid:        decimal.Zero,
		})
		st.TotalBilled = st.TotalBilled.Add(o.TotalAmount)
	}

	for _, p := range payments {
		st := bucket(p.CustomerID, p.CustomerName)
		st.Transactions = append(st.Transactions, models.Transaction{
			Date:        p.PaymentDate,
			Kind:        models.TxKindPayment,
			Description: paymentLabel,
			Billed:      decimal.Zero,
			Paid:        p.Amount,
		})
		st.TotalPaid = st.TotalPaid.Add(p.Amount)
	}

	report := &models.StatementReport{
		Statements:  make([]models.CustomerStatement, 0, len(buckets)),
		TotalBilled: decimal.Zero,
		TotalPaid:   decimal.Zero,
	}
	for _, st := range buckets {
		sort.SliceStable(st.Transactions, func(i, j int) bool {
			return st.Transactions[i].Date.Before(st.Transactions[j].Date)
		})
		st.Pending = st.TotalBilled.Sub(st.TotalPaid)
		report.TotalBilled = report.TotalBilled.Add(st.TotalBilled)
		report.TotalPaid = report.TotalPaid.Add(st.TotalPaid)
		report.Statements = append(report.Statements, *st)
	}
	report.Pending = report.TotalBilled.Sub(report.TotalPaid)

	sort.Slice(report.Statements, func(i, j int) bool {
		a, b := report.Statements[i], report.Statements[j]
		if a.CustomerName != b.CustomerName {
			return a.CustomerName < b.CustomerName
		}
		return a.CustomerID < b.CustomerID
	})

	util.StatementsBuiltTotal.Inc()
	s.logger.Debug("Statement report built",
		zap.Int("customers", len(report.Statements)),
		zap.String("total_billed", report.TotalBilled.String()))
	return report
}

// CustomerLedger computes the lifetime running balance for one customer:
// every order adds its total, every payment subtracts its amount, in
// chronological order. Same-date entries keep orders before payments,
// matching record insertion order. No date filter applies.
func (s *StatementService) CustomerLedger(ctx context.Context, customerID string) ([]models.LedgerEntry, error) {
	if _, err := s.store.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	entries := make([]models.LedgerEntry, 0)
	for _, o := range s.store.ListOrders(ctx) {
		if o.CustomerID != customerID {
			continue
		}
		entries = append(entries, models.LedgerEntry{
			Date:        o.OrderDate,
			Kind:        models.TxKindOrder,
			Description: orderDescription(o),
			Change:      o.TotalAmount,
		})
	}
	for _, p := range s.store.ListPayments(ctx) {
		if p.CustomerID != customerID {
			continue
		}
		entries = append(entries, models.LedgerEntry{
			Date:        p.PaymentDate,
			Kind:        models.TxKindPayment,
			Description: paymentLabel,
			Change:      p.Amount.Neg(),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	balance := decimal.Zero
	for i := range entries {
		balance = balance.Add(entries[i].Change)
		entries[i].Balance = balance
	}
	return entries, nil
}
