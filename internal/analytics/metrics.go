package analytics

import (
	"fmt"
	"time"

	"github.com/GTDGit/gtd_dashboard/internal/models"
)

// Snapshot is every row the dashboard reports are computed from.
type Snapshot struct {
	Orders    []models.Order
	Products  []models.Product
	Customers []models.Customer
}

// Metrics is the dashboard KPI payload.
type Metrics struct {
	TotalRevenue       int64  `json:"totalRevenue"`
	RevenueChange      string `json:"revenueChange"`
	TotalOrders        int    `json:"totalOrders"`
	OrdersChange       string `json:"ordersChange"`
	ProductsSold       int    `json:"productsSold"`
	ProductsSoldChange string `json:"productsSoldChange"`
	AvgOrderValue      int64  `json:"avgOrderValue"`
	AvgOrderChange     string `json:"avgOrderChange"`

	RevenueGrowth        RevenueGrowth     `json:"revenueGrowth"`
	OrderFulfillmentRate FulfillmentRate   `json:"orderFulfillmentRate"`
	InventoryTurnover    InventoryTurnover `json:"inventoryTurnover"`
	CustomerRetention    CustomerRetention `json:"customerRetention"`
}

// RevenueGrowth compares this month's revenue with last month's.
type RevenueGrowth struct {
	Value    string `json:"value"`
	Current  int64  `json:"current"`
	Previous int64  `json:"previous"`
}

// FulfillmentRate is the all-time share of completed orders.
type FulfillmentRate struct {
	Value     string  `json:"value"`
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Rate      float64 `json:"rate"`
}

// InventoryTurnover is the mean of sold/stock over products with stock.
type InventoryTurnover struct {
	Value         string `json:"value"`
	TotalProducts int    `json:"totalProducts"`
	ValidProducts int    `json:"validProducts"`
}

// CustomerRetention is the share of customers with more than one order.
type CustomerRetention struct {
	Value           string  `json:"value"`
	RepeatCustomers int     `json:"repeatCustomers"`
	TotalCustomers  int     `json:"totalCustomers"`
	Rate            float64 `json:"rate"`
}

// ComputeMetrics derives the KPI payload from s as of now.
func ComputeMetrics(s Snapshot, now time.Time) Metrics {
	currKey, prevKey := MonthOfTime(now), PreviousMonth(now)

	var all, curr, prev Totals
	completed := 0
	for _, o := range s.Orders {
		all = all.add(o.Amount)
		switch MonthOf(o.Date) {
		case currKey:
			curr = curr.add(o.Amount)
		case prevKey:
			prev = prev.add(o.Amount)
		}
		if o.Status == models.OrderStatusCompleted {
			completed++
		}
	}

	revenueChange := PercentChange(curr.Amount, prev.Amount)
	ordersChange := PercentChange(float64(curr.Count), float64(prev.Count))
	fulfillment := Ratio(completed, all.Count)

	return Metrics{
		TotalRevenue:       Round(all.Amount),
		RevenueChange:      revenueChange,
		TotalOrders:        all.Count,
		OrdersChange:       ordersChange,
		ProductsSold:       all.Count,
		ProductsSoldChange: ordersChange,
		AvgOrderValue:      Round(average(all)),
		AvgOrderChange:     PercentChange(average(curr), average(prev)),
		RevenueGrowth: RevenueGrowth{
			Value:    revenueChange,
			Current:  Round(curr.Amount),
			Previous: Round(prev.Amount),
		},
		OrderFulfillmentRate: FulfillmentRate{
			Value:     fmt.Sprintf("%d%%", Round(fulfillment)),
			Completed: completed,
			Total:     all.Count,
			Rate:      fulfillment,
		},
		InventoryTurnover: inventoryTurnover(s.Products, ProductLedger(s.Orders)),
		CustomerRetention: customerRetention(s.Customers, CustomerLedger(s.Orders)),
	}
}

func average(t Totals) float64 {
	if t.Count == 0 {
		return 0
	}
	return t.Amount / float64(t.Count)
}

func inventoryTurnover(products []models.Product, sold Ledger) InventoryTurnover {
	var sum float64
	valid := 0
	for _, p := range products {
		if p.Stock <= 0 {
			continue
		}
		sum += float64(sold.For(p.ID, p.Name).Count) / float64(p.Stock)
		valid++
	}
	avg := 0.0
	if valid > 0 {
		avg = sum / float64(valid)
	}
	return InventoryTurnover{
		Value:         fmt.Sprintf("%.2f", avg),
		TotalProducts: len(products),
		ValidProducts: valid,
	}
}

func customerRetention(customers []models.Customer, orders Ledger) CustomerRetention {
	repeat := 0
	for _, c := range customers {
		if orders.For(c.ID, c.Name).Count > 1 {
			repeat++
		}
	}
	rate := Ratio(repeat, len(customers))
	return CustomerRetention{
		Value:           fmt.Sprintf("%d%%", Round(rate)),
		RepeatCustomers: repeat,
		TotalCustomers:  len(customers),
		Rate:            rate,
	}
}
