package service

import (
	"context"
	"time"

	"milk-ledger/internal/models"
	"milk-ledger/internal/store"
	"milk-ledger/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StatsService computes point-in-time dashboard views from the full
// order/payment history. All computations are pure functions of the
// stored state and the requested date.
type StatsService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewStatsService creates a new stats service.
func NewStatsService(st *store.Store) *StatsService {
	return &StatsService{
		store:  st,
		logger: util.GetLogger(),
	}
}

// DashboardStats returns daily selling/collection sums for the calendar
// day around asOf (inclusive both ends) plus the global customer and
// order counters.
func (s *StatsService) DashboardStats(ctx context.Context, asOf time.Time) models.DashboardStats {
	dayStart, dayEnd := dayWindow(asOf)

	orders := s.store.ListOrders(ctx)
	payments := s.store.ListPayments(ctx)

	stats := models.DashboardStats{
		DailySelling:    decimal.Zero,
		DailyCollection: decimal.Zero,
		TotalCustomers:  len(s.store.ListCustomers(ctx)),
		TotalOrders:     len(orders),
	}

	for _, o := range orders {
		if withinDay(o.OrderDate, dayStart, dayEnd) {
			stats.DailySelling = stats.DailySelling.Add(o.TotalAmount)
		}
		switch o.Status {
		case models.OrderStatusPending:
			stats.PendingOrders++
		case models.OrderStatusDelivered:
			stats.DeliveredOrders++
		}
	}
	for _, p := range payments {
		if withinDay(p.PaymentDate, dayStart, dayEnd) {
			stats.DailyCollection = stats.DailyCollection.Add(p.Amount)
		}
	}
	return stats
}

// DailyProductSales accumulates line-item quantities per product across
// the orders of one calendar day. The result preserves the order in which
// products first appear; the name is the snapshot from that first
// occurrence.
func (s *StatsService) DailyProductSales(ctx context.Context, date time.Time) []models.ProductSale {
	dayStart, dayEnd := dayWindow(date)

	index := make(map[string]int)
	sales := make([]models.ProductSale, 0)

	for _, o := range s.store.ListOrders(ctx) {
		if !withinDay(o.OrderDate, dayStart, dayEnd) {
			continue
		}
		for _, item := range o.Items {
			if i, ok := index[item.ProductID]; ok {
				sales[i].TotalQuantity += item.Quantity
				continue
			}
			index[item.ProductID] = len(sales)
			sales = append(sales, models.ProductSale{
				ProductName:   item.ProductName,
				TotalQuantity: item.Quantity,
			})
		}
	}
	return sales
}
