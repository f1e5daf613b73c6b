package service

import (
	"context"
	"testing"
	"time"

	"milk-ledger/internal/models"
	"milk-ledger/internal/persist"
	"milk-ledger/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// testEnv wires the full service stack over an in-memory persister.
type testEnv struct {
	store      *store.Store
	catalog    *CatalogService
	customers  *CustomerService
	orders     *OrderService
	payments   *PaymentService
	stats      *StatsService
	statements *StatementService
	auth       *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := store.NewStore(context.Background(), persist.NewMemoryStore())
	require.NoError(t, err)

	maintainer := NewBalanceMaintainer(st)
	return &testEnv{
		store:      st,
		catalog:    NewCatalogService(st),
		customers:  NewCustomerService(st),
		orders:     NewOrderService(st, maintainer),
		payments:   NewPaymentService(st, maintainer),
		stats:      NewStatsService(st),
		statements: NewStatementService(st),
		auth:       NewAuthService(st),
	}
}

func (e *testEnv) addCustomer(t *testing.T, name string) *models.Customer {
	t.Helper()
	c, err := e.customers.AddCustomer(context.Background(), name, "9876543210", "12 Dairy Lane")
	require.NoError(t, err)
	return c
}

func (e *testEnv) addProduct(t *testing.T, name, price string) *models.Product {
	t.Helper()
	p, err := e.catalog.AddProduct(context.Background(), name, dec(price))
	require.NoError(t, err)
	return p
}

func (e *testEnv) addOrder(t *testing.T, customerID string, date time.Time, items ...OrderItemRequest) *models.Order {
	t.Helper()
	o, err := e.orders.AddOrder(context.Background(), &CreateOrderRequest{
		CustomerID: customerID,
		Items:      items,
		Status:     models.OrderStatusPending,
		OrderDate:  date,
	})
	require.NoError(t, err)
	return o
}

func (e *testEnv) pay(t *testing.T, customerID string, amount string, date time.Time) *models.Payment {
	t.Helper()
	p, err := e.payments.MakePayment(context.Background(), customerID, dec(amount), date)
	require.NoError(t, err)
	return p
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, got.Equal(dec(want)), "expected %s, got %s", want, got)
}
