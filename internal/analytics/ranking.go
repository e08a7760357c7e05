package analytics

import (
	"sort"
	"time"

	"github.com/GTDGit/gtd_dashboard/internal/models"
)

// TopProductsLimit is the number of entries the dashboard ranks.
const TopProductsLimit = 5

// ProductRank is one entry of the top products list.
type ProductRank struct {
	Name    string `json:"name"`
	Sales   int    `json:"sales"`
	Revenue int64  `json:"revenue"`
	Change  string `json:"change"`
}

// TopProducts ranks product names by revenue from the 1st of now's month
// through today, compared with the whole previous month. At most n entries
// are returned; equal revenues keep the order in which products were first
// seen in orders.
func TopProducts(orders []models.Order, now time.Time, n int) []ProductRank {
	currKey := MonthOfTime(now)
	prevKey := currKey.Add(-1)
	currFrom, currTo := currKey.FirstDay(), models.DateOf(now)
	prevFrom, prevTo := prevKey.FirstDay(), prevKey.LastDay()

	var names []string
	curr := make(map[string]Totals)
	prevRevenue := make(map[string]float64)
	for _, o := range orders {
		switch {
		case o.Date.Between(currFrom, currTo):
			if _, seen := curr[o.Product]; !seen {
				names = append(names, o.Product)
			}
			curr[o.Product] = curr[o.Product].add(o.Amount)
		case o.Date.Between(prevFrom, prevTo):
			prevRevenue[o.Product] += o.Amount
		}
	}

	sort.SliceStable(names, func(i, j int) bool {
		return curr[names[i]].Amount > curr[names[j]].Amount
	})
	if len(names) > n {
		names = names[:n]
	}

	out := make([]ProductRank, 0, len(names))
	for _, name := range names {
		t := curr[name]
		out = append(out, ProductRank{
			Name:    name,
			Sales:   t.Count,
			Revenue: Round(t.Amount),
			Change:  PercentChange(t.Amount, prevRevenue[name]),
		})
	}
	return out
}
