package analytics

import (
	"time"

	"github.com/GTDGit/gtd_dashboard/internal/models"
)

// SeriesMonths is the fixed length of every monthly series.
const SeriesMonths = 12

// SalesPoint is one month of revenue.
type SalesPoint struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
}

// StatusPoint is one month of order counts by status. Pending includes
// processing orders.
type StatusPoint struct {
	Month     string `json:"month"`
	Completed int    `json:"completed"`
	Pending   int    `json:"pending"`
	Cancelled int    `json:"cancelled"`
}

// SalesSeries sums order revenue for the last SeriesMonths months, oldest first.
// Months without orders are present with zero revenue.
func SalesSeries(orders []models.Order, now time.Time) []SalesPoint {
	keys := LastMonths(now, SeriesMonths)
	index := monthIndex(keys)

	revenue := make([]float64, len(keys))
	for _, o := range orders {
		if i, ok := index[MonthOf(o.Date)]; ok {
			revenue[i] += o.Amount
		}
	}

	out := make([]SalesPoint, len(keys))
	for i, k := range keys {
		out[i] = SalesPoint{Month: k.Label(), Revenue: Round(revenue[i])}
	}
	return out
}

// StatusSeries counts orders per status for the last SeriesMonths months,
// oldest first. Unknown statuses are ignored.
func StatusSeries(orders []models.Order, now time.Time) []StatusPoint {
	keys := LastMonths(now, SeriesMonths)
	index := monthIndex(keys)

	out := make([]StatusPoint, len(keys))
	for i, k := range keys {
		out[i].Month = k.Label()
	}
	for _, o := range orders {
		i, ok := index[MonthOf(o.Date)]
		if !ok {
			continue
		}
		switch o.Status {
		case models.OrderStatusCompleted:
			out[i].Completed++
		case models.OrderStatusPending, models.OrderStatusProcessing:
			out[i].Pending++
		case models.OrderStatusCancelled:
			out[i].Cancelled++
		}
	}
	return out
}

func monthIndex(keys []MonthKey) map[MonthKey]int {
	m := make(map[MonthKey]int, len(keys))
	for i, k := range keys {
		m[k] = i
	}
	return m
}
