package service

import (
	"context"
	"errors"
	"testing"

	"milk-ledger/internal/models"
	"milk-ledger/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddOrderComputesTotalFromPriceSnapshots(t *testing.T) {
	env := newTestEnv(t)
	customer := env.addCustomer(t, "Asha")
	milk := env.addProduct(t, "Milk", "25.50")
	curd := env.addProduct(t, "Curd", "40")

	order := env.addOrder(t, customer.ID, day("2024-03-01"),
		OrderItemRequest{ProductID: milk.ID, Quantity: 2},
		OrderItemRequest{ProductID: curd.ID, Quantity: 1},
	)

	assertDec(t, "91", order.TotalAmount) // 2*25.50 + 40
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Milk", order.Items[0].ProductName)
	assertDec(t, "25.50", order.Items[0].UnitPrice)
}

func TestAddOrderFreezesPriceAgainstLaterCatalogEdits(t *testing.T) {
	env := newTestEnv(t)
	customer := env.addCustomer(t, "Asha")
	milk := env.addProduct(t, "Milk", "25")

	order := env.addOrder(t, customer.ID, day("2024-03-01"),
		OrderItemRequest{ProductID: milk.ID, Quantity: 4})

	newPrice := dec("99")
	_, err := env.catalog.UpdateProduct(context.Background(), milk.ID, ProductUpdate{Price: &newPrice})
	require.NoError(t, err)

	stored, err := env.orders.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assertDec(t, "100", stored.TotalAmount)
	assertDec(t, "25", stored.Items[0].UnitPrice)
}

func TestAddOrderUpdatesCustomerAggregates(t *testing.T) {
	env := newTestEnv(t)
	customer := env.addCustomer(t, "Asha")
	milk := env.addProduct(t, "Milk", "30")

	env.addOrder(t, customer.ID, day("2024-03-01"), OrderItemRequest{ProductID: milk.ID, Quantity: 1})
	env.addOrder(t, customer.ID, day("2024-03-02"), OrderItemRequest{ProductID: milk.ID, Quantity: 2})

	got, err := env.customers.GetCustomer(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalOrders)
	assertDec(t, "90", got.TotalAmount)
	assertDec(t, "0", got.PaidAmount)
	assertDec(t, "90", got.PendingBalance)
}

// pendingBalance == max(0, totalAmount - paidAmount) must hold after every
// order/payment mutation, in any interleaving.
func TestBalanceInvariantAcrossMixedSequence(t *testing.T) {
	env := newTestEnv(t)
	customer := env.addCustomer(t, "Asha")
	milk := env.addProduct(t, "Milk", "10")

	checkInvariant := func() {
		got, err := env.customers.GetCustomer(context.Background(), customer.ID)
		require.NoError(t, err)
		expected := got.TotalAmount.Sub(got.PaidAmount)
		if expected.IsNegative() {
			expected = dec("0")
		}
		require.Truef(t, got.PendingBalance.Equal(expected),
			"invariant broken: pending=%s total=%s paid=%s", got.PendingBalance, got.TotalAmount, got.PaidAmount)
	}

	steps := []func(){
		func() { env.addOrder(t, customer.ID, day("2024-01-01"), OrderItemRequest{ProductID: milk.ID, Quantity: 3}) },
		func() { env.pay(t, customer.ID, "50", day("2024-01-02")) }, // overpay
		func() { env.addOrder(t, customer.ID, day("2024-01-03"), OrderItemRequest{ProductID: milk.ID, Quantity: 1}) },
		func() { env.pay(t, customer.ID, "5", day("2024-01-04")) },
		func() { env.addOrder(t, customer.ID, day("2024-01-05"), OrderItemRequest{ProductID: milk.ID, Quantity: 2}) },
		func() { env.pay(t, customer.ID, "100", day("2024-01-06")) },
	}
	for _, step := range steps {
		step()
		checkInvariant()
	}
}

// A customer who overpaid carries a credit: the next order's pending
// balance must be derived from the aggregates, not bumped by the full
// order total.
func TestOrderAfterOverpaymentConsumesCredit(t *testing.T) {
	env := newTestEnv(t)
	customer := env.addCustomer(t, "Asha")
	milk := env.addProduct(t, "Milk", "10")

	env.addOrder(t, customer.ID, day("2024-01-01"), OrderItemRequest{ProductID: milk.ID, Quantity: 3})
	env.pay(t, customer.ID, "50", day("2024-01-02"))
	env.addOrder(t, customer.ID, day("2024-01-03"), OrderItemRequest{ProductID: milk.ID, Quantity: 1})

	got, err := env.customers.GetCustomer(context.Background(), customer.ID)
	require.NoError(t, err)
	assertDec(t, "40", got.TotalAmount)
	assertDec(t, "50", got.PaidAmount)
	assertDec(t, "0", got.PendingBalance) // max(0, 40-50), the 10 credit absorbs the order

	env.addOrder(t, customer.ID, day("2024-01-04"), OrderItemRequest{ProductID: milk.ID, Quantity: 2})
	got, err = env.customers.GetCustomer(context.Background(), customer.ID)
	require.NoError(t, err)
	assertDec(t, "10", got.PendingBalance) // max(0, 60-50), credit used up
}

func TestAddOrderUnknownCustomer(t *testing.T) {
	env := newTestEnv(t)
	milk := env.addProduct(t, "Milk", "10")

	_, err := env.orders.AddOrder(context.Background(), &CreateOrderRequest{
		CustomerID: "nope",
		Items:      []OrderItemRequest{{ProductID: milk.ID, Quantity: 1}},
		OrderDate:  day("2024-01-01"),
	})
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestAddOrderUnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	customer := env.addCustomer(t, "Asha")

	_, err := env.orders.AddOrder(context.Background(), &CreateOrderRequest{
		CustomerID: customer.ID,
		Items:      []OrderItemRequest{{ProductID: "nope", Quantity: 1}},
		OrderDate:  day("2024-01-01"),
	})
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestDeliveredStatusStampsDeliveryDate(t *testing.T) {
	env := newTestEnv(t)
	customer := env.addCustomer(t, "Asha")
	milk := env.addProduct(t, "Milk", "10")

	order := env.addOrder(t, customer.ID, day("2024-03-01"), OrderItemRequest{ProductID: milk.ID, Quantity: 1})
	assert.Nil(t, order.DeliveryDate)

	delivered := models.OrderStatusDelivered
	updated, err := env.orders.UpdateOrder(context.Background(), order.ID, OrderUpdate{Status: &delivered})
	require.NoError(t, err)
	require.NotNil(t, updated.DeliveryDate)

	pending := models.OrderStatusPending
	updated, err = env.orders.UpdateOrder(context.Background(), order.ID, OrderUpdate{Status: &pending})
	require.NoError(t, err)
	assert.Nil(t, updated.DeliveryDate)
}

// Edits and deletes bypass the balance maintainer: aggregates reflect
// creation-time values only.
func TestUpdateAndDeleteOrderDoNotTouchAggregates(t *testing.T) {
	env := newTestEnv(t)
	customer := env.addCustomer(t, "Asha")
	milk := env.addProduct(t, "Milk", "10")

	order := env.addOrder(t, customer.ID, day("2024-03-01"), OrderItemRequest{ProductID: milk.ID, Quantity: 5})

	_, err := env.orders.UpdateOrder(context.Background(), order.ID, OrderUpdate{
		Items: []OrderItemRequest{{ProductID: milk.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, env.orders.DeleteOrder(context.Background(), order.ID))

	got, err := env.customers.GetCustomer(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalOrders)
	assertDec(t, "50", got.TotalAmount)
	assertDec(t, "50", got.PendingBalance)
}
