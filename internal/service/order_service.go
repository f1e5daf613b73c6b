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

// OrderService handles order business logic.
type OrderService struct {
	store      *store.Store
	maintainer *BalanceMaintainer
	logger     *zap.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(st *store.Store, maintainer *BalanceMaintainer) *OrderService {
	return &OrderService{
		store:      st,
		maintainer: maintainer,
		logger:     util.GetLogger(),
	}
}

// CreateOrderRequest represents a request to create an order.
type CreateOrderRequest struct {
	CustomerID string             `json:"customer_id" binding:"required"`
	Items      []OrderItemRequest `json:"items" binding:"required,min=1"`
	Status     string             `json:"status"`
	OrderDate  time.Time          `json:"order_date"`
}

// OrderItemRequest represents an item in an order.
type OrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// OrderUpdate carries optional replacement fields for an order. A nil
// field leaves the stored value untouched.
type OrderUpdate struct {
	CustomerID *string            `json:"customer_id,omitempty"`
	Items      []OrderItemRequest `json:"items,omitempty"`
	Status     *string            `json:"status,omitempty"`
	OrderDate  *time.Time         `json:"order_date,omitempty"`
}

// resolveItems turns item requests into line items, snapshotting each
// product's current name and price.
func (s *OrderService) resolveItems(ctx context.Context, items []OrderItemRequest) ([]models.OrderItem, decimal.Decimal, error) {
	resolved := make([]models.OrderItem, 0, len(items))
	total := decimal.Zero
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, decimal.Zero, fmt.Errorf("%w: item quantity must be positive", ErrInvalidInput)
		}
		product, err := s.store.GetProduct(ctx, item.ProductID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		resolved = append(resolved, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   product.Price,
		})
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return resolved, total, nil
}

func validStatus(status string) bool {
	return status == models.OrderStatusPending || status == models.OrderStatusDelivered
}

// AddOrder validates, snapshots names and prices, freezes the total and
// creates the order, then applies the total to the customer's aggregates.
func (s *OrderService) AddOrder(ctx context.Context, req *CreateOrderRequest) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.AddOrder")
	defer span.End()

	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order needs at least one item", ErrInvalidInput)
	}
	status := req.Status
	if status == "" {
		status = models.OrderStatusPending
	}
	if !validStatus(status) {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrInvalidInput, req.Status)
	}

	customer, err := s.store.GetCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	items, total, err := s.resolveItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	orderDate := req.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now().UTC()
	}

	order := &models.Order{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Items:        items,
		TotalAmount:  total,
		Status:       status,
		OrderDate:    orderDate,
	}
	if status == models.OrderStatusDelivered {
		now := time.Now().UTC()
		order.DeliveryDate = &now
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.maintainer.OnOrderCreated(ctx, customer.ID, total); err != nil {
		return nil, err
	}

	util.OrdersCreatedTotal.Inc()
	s.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("customer_id", customer.ID),
		zap.String("total", total.String()))
	return order, nil
}

// UpdateOrder replaces the supplied fields. New items are re-priced from
// the current catalog and the total recomputed. Customer aggregates are
// not reconciled here; edits after creation bypass the maintainer.
func (s *OrderService) UpdateOrder(ctx context.Context, id string, upd OrderUpdate) (*models.Order, error) {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.CustomerID != nil {
		customer, err := s.store.GetCustomer(ctx, *upd.CustomerID)
		if err != nil {
			return nil, err
		}
		order.CustomerID = customer.ID
		order.CustomerName = customer.Name
	}
	if upd.Items != nil {
		items, total, err := s.resolveItems(ctx, upd.Items)
		if err != nil {
			return nil, err
		}
		order.Items = items
		order.TotalAmount = total
	}
	if upd.Status != nil {
		if !validStatus(*upd.Status) {
			return nil, fmt.Errorf("%w: unknown order status %q", ErrInvalidInput, *upd.Status)
		}
		order.Status = *upd.Status
		if order.Status == models.OrderStatusDelivered {
			now := time.Now().UTC()
			order.DeliveryDate = &now
		} else {
			order.DeliveryDate = nil
		}
	}
	if upd.OrderDate != nil {
		order.OrderDate = *upd.OrderDate
	}

	if err := s.store.ReplaceOrder(ctx, *order); err != nil {
		return nil, err
	}
	return order, nil
}

// DeleteOrder removes an order without reversing the customer's
// aggregates.
func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	if err := s.store.DeleteOrder(ctx, id); err != nil {
		return err
	}
	util.OrdersDeletedTotal.Inc()
	return nil
}

// GetOrder retrieves one order.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return s.store.GetOrder(ctx, id)
}

// FilteredOrders returns orders matching the filter, most recent first.
func (s *OrderService) FilteredOrders(ctx context.Context, f models.Filter) []models.Order {
	return filterOrders(s.store.ListOrders(ctx), f)
}
