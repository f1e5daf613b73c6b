package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog. The price is copied into
// order lines at order creation time; later price edits never touch
// existing orders.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

// Customer represents a customer account. The four aggregate fields are
// maintained incrementally by the balance maintainer, never recomputed
// from history: pending_balance == max(0, total_amount - paid_amount)
// after every billing or payment mutation.
type Customer struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	TotalOrders    int             `json:"total_orders"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	PendingBalance decimal.Decimal `json:"pending_balance"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Order represents a customer order. CustomerName and the line-item
// product names/prices are snapshots taken at creation time, so history
// keeps displaying what was billed even if the source entity is renamed
// or deleted. TotalAmount is frozen at creation/edit time.
type Order struct {
	ID           string          `json:"id"`
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Items        []OrderItem     `json:"items"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       string          `json:"status"`
	OrderDate    time.Time       `json:"order_date"`
	DeliveryDate *time.Time      `json:"delivery_date,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// OrderItem is a line item embedded in an order.
type OrderItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Payment represents a received payment. Payments are append-only: no
// exposed operation updates or deletes them.
type Payment struct {
	ID           string          `json:"id"`
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Amount       decimal.Decimal `json:"amount"`
	PaymentDate  time.Time       `json:"payment_date"`
	CreatedAt    time.Time       `json:"created_at"`
}

// User is an application login account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// Order statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusDelivered = "delivered"
)

// Transaction kinds in statements and ledgers
const (
	TxKindOrder   = "order"
	TxKindPayment = "payment"
)

// DashboardStats is the point-in-time dashboard view: daily figures for
// one calendar day plus global counters.
type DashboardStats struct {
	DailySelling    decimal.Decimal `json:"daily_selling"`
	DailyCollection decimal.Decimal `json:"daily_collection"`
	TotalCustomers  int             `json:"total_customers"`
	TotalOrders     int             `json:"total_orders"`
	PendingOrders   int             `json:"pending_orders"`
	DeliveredOrders int             `json:"delivered_orders"`
}

// ProductSale is one row of the per-product daily sales view.
type ProductSale struct {
	ProductName   string `json:"product_name"`
	TotalQuantity int    `json:"total_quantity"`
}

// Filter enumerates the recognized order/payment filter criteria.
// Each field is optional; an unset field imposes no constraint.
// Dates are inclusive on both ends and compared at full time
// resolution, not calendar-day.
type Filter struct {
	DateFrom   *time.Time
	DateTo     *time.Time
	CustomerID string
	ProductID  string
	Status     string
}

// Transaction is a single statement line: an order bills, a payment pays.
type Transaction struct {
	Date        time.Time       `json:"date"`
	Kind        string          `json:"kind"`
	Description string          `json:"description"`
	Billed      decimal.Decimal `json:"billed"`
	Paid        decimal.Decimal `json:"paid"`
}

// CustomerStatement groups one customer's transactions within the filtered
// window. Pending is TotalBilled - TotalPaid for the window only and may
// be negative when a customer overpays inside it; unlike the customer's
// lifetime PendingBalance it is not floored at zero.
type CustomerStatement struct {
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Transactions []Transaction   `json:"transactions"`
	TotalBilled  decimal.Decimal `json:"total_billed"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	Pending      decimal.Decimal `json:"pending"`
}

// StatementReport is the full statement response: per-customer buckets
// sorted by name plus grand totals across all buckets.
type StatementReport struct {
	Statements  []CustomerStatement `json:"statements"`
	TotalBilled decimal.Decimal     `json:"total_billed"`
	TotalPaid   decimal.Decimal     `json:"total_paid"`
	Pending     decimal.Decimal     `json:"pending"`
}

// LedgerEntry is one line of a customer's lifetime running balance:
// orders add their total, payments subtract their amount, Balance is the
// fold of Change over all entries in chronological order.
type LedgerEntry struct {
	Date        time.Time       `json:"date"`
	Kind        string          `json:"kind"`
	Description string          `json:"description"`
	Change      decimal.Decimal `json:"change"`
	Balance     decimal.Decimal `json:"balance"`
}
