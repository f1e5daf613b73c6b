package service

import (
	"sort"
	"time"

	"milk-ledger/internal/models"
)

// The filter predicate: an order or payment matches when every supplied
// criterion matches. Unset criteria match everything. Date bounds are
// inclusive on both ends and compared at full time resolution.

func matchOrder(o models.Order, f models.Filter) bool {
	if f.DateFrom != nil && o.OrderDate.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && o.OrderDate.After(*f.DateTo) {
		return false
	}
	if f.CustomerID != "" && o.CustomerID != f.CustomerID {
		return false
	}
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if f.ProductID != "" {
		found := false
		for _, item := range o.Items {
			if item.ProductID == f.ProductID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func matchPayment(p models.Payment, f models.Filter) bool {
	if f.DateFrom != nil && p.PaymentDate.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && p.PaymentDate.After(*f.DateTo) {
		return false
	}
	if f.CustomerID != "" && p.CustomerID != f.CustomerID {
		return false
	}
	return true
}

// filterOrders selects matching orders, most recent first. The sort is
// stable so equal dates keep insertion order.
func filterOrders(orders []models.Order, f models.Filter) []models.Order {
	out := make([]models.Order, 0)
	for _, o := range orders {
		if matchOrder(o, f) {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderDate.After(out[j].OrderDate)
	})
	return out
}

// filterPayments selects matching payments, most recent first.
func filterPayments(payments []models.Payment, f models.Filter) []models.Payment {
	out := make([]models.Payment, 0)
	for _, p := range payments {
		if matchPayment(p, f) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PaymentDate.After(out[j].PaymentDate)
	})
	return out
}

// dayWindow returns the inclusive calendar-day bounds around t, in t's
// location: [00:00:00, 23:59:59.999999999].
func dayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end
}

func withinDay(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
