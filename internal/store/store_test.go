package store

import (
	"context"
	"errors"
	"testing"

	"milk-ledger/internal/models"
	"milk-ledger/internal/persist"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(context.Background(), persist.NewMemoryStore())
	require.NoError(t, err)
	return s
}

func TestProductCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := &models.Product{Name: "Milk", Price: decimal.NewFromInt(25)}
	require.NoError(t, s.CreateProduct(ctx, p))
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())

	got, err := s.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Milk", got.Name)

	got.Name = "Buffalo Milk"
	require.NoError(t, s.UpdateProduct(ctx, *got))
	got, err = s.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buffalo Milk", got.Name)

	require.NoError(t, s.DeleteProduct(ctx, p.ID))
	_, err = s.GetProduct(ctx, p.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMutationsOnMissingRecordsReturnNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	assert.True(t, errors.Is(s.UpdateProduct(ctx, models.Product{ID: "x"}), ErrNotFound))
	assert.True(t, errors.Is(s.DeleteProduct(ctx, "x"), ErrNotFound))
	assert.True(t, errors.Is(s.UpdateCustomer(ctx, models.Customer{ID: "x"}), ErrNotFound))
	assert.True(t, errors.Is(s.DeleteCustomer(ctx, "x"), ErrNotFound))
	assert.True(t, errors.Is(s.ReplaceOrder(ctx, models.Order{ID: "x"}), ErrNotFound))
	assert.True(t, errors.Is(s.DeleteOrder(ctx, "x"), ErrNotFound))
}

func TestAdjustCustomerAggregates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := &models.Customer{Name: "Asha", TotalAmount: decimal.NewFromInt(100)}
	require.NoError(t, s.CreateCustomer(ctx, c))

	got, err := s.AdjustCustomerAggregates(ctx, c.ID, func(c *models.Customer) {
		c.TotalOrders++
		c.TotalAmount = c.TotalAmount.Add(decimal.NewFromInt(50))
	})
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalOrders)
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(150)))

	stored, err := s.GetCustomer(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, stored.TotalAmount.Equal(decimal.NewFromInt(150)))

	_, err = s.AdjustCustomerAggregates(ctx, "nope", func(*models.Customer) {})
	assert.True(t, errors.Is(err, ErrNotFound))
}

// Deleting a customer removes their orders but keeps their payments.
func TestDeleteCustomerCascadesToOrdersNotPayments(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := &models.Customer{Name: "Asha"}
	other := &models.Customer{Name: "Ravi"}
	require.NoError(t, s.CreateCustomer(ctx, c))
	require.NoError(t, s.CreateCustomer(ctx, other))

	for i := 0; i < 2; i++ {
		require.NoError(t, s.CreateOrder(ctx, &models.Order{CustomerID: c.ID, CustomerName: c.Name}))
	}
	require.NoError(t, s.CreateOrder(ctx, &models.Order{CustomerID: other.ID, CustomerName: other.Name}))
	require.NoError(t, s.CreatePayment(ctx, &models.Payment{CustomerID: c.ID, CustomerName: c.Name, Amount: decimal.NewFromInt(10)}))

	require.NoError(t, s.DeleteCustomer(ctx, c.ID))

	orders := s.ListOrders(ctx)
	require.Len(t, orders, 1)
	assert.Equal(t, other.ID, orders[0].CustomerID)

	payments := s.ListPayments(ctx)
	require.Len(t, payments, 1)
	assert.Equal(t, c.ID, payments[0].CustomerID)
}

// Returned orders are copies; mutating them must not leak into the store.
func TestGetOrderReturnsCopy(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	o := &models.Order{
		CustomerID: "c1",
		Items:      []models.OrderItem{{ProductID: "p1", ProductName: "Milk", Quantity: 1}},
	}
	require.NoError(t, s.CreateOrder(ctx, o))

	got, err := s.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	got.Items[0].Quantity = 99
	got.CustomerID = "hacked"

	stored, err := s.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Items[0].Quantity)
	assert.Equal(t, "c1", stored.CustomerID)
}

// Every mutation persists wholesale: a second store over the same
// persister sees the full state.
func TestStateSurvivesReload(t *testing.T) {
	ctx := context.Background()
	p := persist.NewMemoryStore()

	s1, err := NewStore(ctx, p)
	require.NoError(t, err)

	c := &models.Customer{Name: "Asha", PendingBalance: decimal.NewFromInt(120)}
	require.NoError(t, s1.CreateCustomer(ctx, c))
	require.NoError(t, s1.CreateOrder(ctx, &models.Order{CustomerID: c.ID}))
	require.NoError(t, s1.CreatePayment(ctx, &models.Payment{CustomerID: c.ID, Amount: decimal.NewFromInt(40)}))

	s2, err := NewStore(ctx, p)
	require.NoError(t, err)

	reloaded, err := s2.GetCustomer(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.PendingBalance.Equal(decimal.NewFromInt(120)))
	assert.Len(t, s2.ListOrders(ctx), 1)
	assert.Len(t, s2.ListPayments(ctx), 1)
}

func TestGetUserByEmailIsCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := &models.User{Email: "vendor@example.com", Name: "Vendor"}
	require.NoError(t, s.CreateUser(ctx, u))

	got, err := s.GetUserByEmail(ctx, "Vendor@Example.COM")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}
