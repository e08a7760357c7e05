package assistant

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/GTDGit/gtd_dashboard/internal/analytics"
	"github.com/GTDGit/gtd_dashboard/internal/models"
	"github.com/GTDGit/gtd_dashboard/internal/repository"
)

const (
	listLimit         = 5
	lowStockThreshold = 10
)

var all = repository.ListOptions{}

// group is an aggregate keyed by a name, kept in first-seen order.
type group struct {
	name   string
	count  int
	amount float64
}

// groupBy totals orders per key. The result is sorted by amount descending,
// then by name.
func groupBy(orders []models.Order, key func(models.Order) string) []group {
	index := make(map[string]int)
	var out []group
	for _, o := range orders {
		k := key(o)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, group{name: k})
		}
		out[i].count++
		out[i].amount += o.Amount
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].amount != out[j].amount {
			return out[i].amount > out[j].amount
		}
		return out[i].name < out[j].name
	})
	return out
}

func sumAmount(orders []models.Order) float64 {
	var total float64
	for _, o := range orders {
		total += o.Amount
	}
	return total
}

func formatDate(d models.Date) string {
	return d.Time().Format("2 Jan 2006")
}

// formatChange renders a one-decimal signed percentage, e.g. "+12.5%".
func formatChange(pct float64) string {
	s := strconv.FormatFloat(pct, 'f', 1, 64)
	if pct >= 0 {
		s = "+" + s
	}
	return s + "%"
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func rankedList(groups []group, noun string) string {
	lines := make([]string, len(groups))
	for i, g := range groups {
		lines[i] = fmt.Sprintf("%d. **%s** - %s (%d %s)", i+1, g.name, analytics.FormatCurrency(g.amount), g.count, noun)
	}
	return strings.Join(lines, "\n")
}

func (r *Responder) topProducts(ctx context.Context) (string, error) {
	orders, err := r.store.ListOrders(ctx, all)
	if err != nil {
		return "", err
	}
	groups := groupBy(orders, func(o models.Order) string { return o.Product })
	if len(groups) == 0 {
		return "No product sales data found.", nil
	}
	if len(groups) > listLimit {
		groups = groups[:listLimit]
	}

	var total float64
	for _, g := range groups {
		total += g.amount
	}
	return fmt.Sprintf("## 🏆 Top Selling Products\n\n%s\n\n**Total Revenue from Top Products:** %s",
		rankedList(groups, "sales"), analytics.FormatCurrency(total)), nil
}

func (r *Responder) orderCount(ctx context.Context) (string, error) {
	orders, err := r.store.ListOrders(ctx, all)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("## 📦 Order Count\n\nYou currently have **%d orders** in your system.", len(orders)), nil
}

func (r *Responder) totalRevenue(ctx context.Context) (string, error) {
	orders, err := r.store.ListOrders(ctx, all)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("## 💰 Total Revenue\n\nYour total revenue is **%s** across all orders.",
		analytics.FormatCurrency(sumAmount(orders))), nil
}

func (r *Responder) recentOrders(ctx context.Context) (string, error) {
	orders, err := r.store.ListOrders(ctx, repository.ListOptions{Limit: listLimit, Sort: repository.SortLatestDateFirst})
	if err != nil {
		return "", err
	}
	if len(orders) == 0 {
		return "No recent orders found.", nil
	}

	lines := make([]string, len(orders))
	for i, o := range orders {
		lines[i] = fmt.Sprintf("- **%s** ordered *%s* for %s on %s (Status: %s)",
			o.Customer, o.Product, analytics.FormatCurrency(o.Amount), formatDate(o.Date), o.Status)
	}
	return "## 🕒 Recent Orders\n\n" + strings.Join(lines, "\n"), nil
}

func (r *Responder) customerCount(ctx context.Context) (string, error) {
	customers, err := r.store.ListCustomers(ctx, all)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("## 👥 Customer Count\n\nYou have **%d customers** in your database.", len(customers)), nil
}

func (r *Responder) averageOrder(ctx context.Context) (string, error) {
	orders, err := r.store.ListOrders(ctx, all)
	if err != nil {
		return "", err
	}
	var avg float64
	if len(orders) > 0 {
		avg = sumAmount(orders) / float64(len(orders))
	}
	return fmt.Sprintf("## 📊 Average Order Value\n\nYour average order value is **%s**.", analytics.FormatCurrency(avg)), nil
}

func (r *Responder) highestOrder(ctx context.Context) (string, error) {
	orders, err := r.store.ListOrders(ctx, all)
	if err != nil {
		return "", err
	}
	if len(orders) == 0 {
		return "No orders found.", nil
	}

	top := orders[0]
	for _, o := range orders[1:] {
		if o.Amount > top.Amount {
			top = o
		}
	}
	return fmt.Sprintf("## 🏅 Highest Value Order\n\n**Customer:** %s\n**Product:** %s\n**Amount:** %s\n**Date:** %s",
		top.Customer, top.Product, analytics.FormatCurrency(top.Amount), formatDate(top.Date)), nil
}

func (r *Responder) statusDistribution(ctx context.Context) (string, error) {
	orders, err := r.store.ListOrders(ctx, all)
	if err != nil {
		return "", err
	}
	if len(orders) == 0 {
		return "No orders found.", nil
	}

	counts := make(map[models.OrderStatus]int)
	for _, o := range orders {
		counts[o.Status]++
	}
	statuses := make([]string, 0, len(counts))
	for s := range counts {
		statuses = append(statuses, string(s))
	}
	sort.Strings(statuses)

	lines := make([]string, len(statuses))
	for i, s := range statuses {
		lines[i] = fmt.Sprintf("- %s: %d orders", capitalize(s), counts[models.OrderStatus(s)])
	}
	return "## 📋 Order Status Distribution\n\n" + strings.Join(lines, "\n"), nil
}

func (r *Responder) lowStock(ctx context.Context) (string, error) {
	products, err := r.store.ListProducts(ctx, all)
	if err != nil {
		return "", err
	}

	var low []models.Product
	for _, p := range products {
		if p.Stock < lowStockThreshold {
			low = append(low, p)
		}
	}
	if len(low) == 0 {
		return "## 📦 Inventory Status\n\nAll your products have healthy stock levels (10+ units).", nil
	}
	sort.SliceStable(low, func(i, j int) bool { return low[i].Stock < low[j].Stock })
	if len(low) > listLimit {
		low = low[:listLimit]
	}

	lines := make([]string, len(low))
	for i, p := range low {
		lines[i] = fmt.Sprintf("- **%s**: %d units remaining", p.Name, p.Stock)
	}
	return "## ⚠️ Low Stock Alert\n\nThe following products are running low on stock:\n\n" +
		strings.Join(lines, "\n") + "\n\nConsider restocking these items soon.", nil
}

func (r *Responder) bestCustomers(ctx context.Context) (string, error) {
	orders, err := r.store.ListOrders(ctx, all)
	if err != nil {
		return "", err
	}
	groups := groupBy(orders, func(o models.Order) string { return o.Customer })
	if len(groups) == 0 {
		return "No customer data found.", nil
	}
	if len(groups) > listLimit {
		groups = groups[:listLimit]
	}
	return "## 🏆 Best Customers\n\nYour top-spending customers:\n\n" + rankedList(groups, "orders"), nil
}

// revenueByMonth sums order amounts for the current month and the two before it.
func (r *Responder) revenueByMonth(ctx context.Context) (curr, last, twoAgo float64, err error) {
	orders, err := r.store.ListOrders(ctx, all)
	if err != nil {
		return 0, 0, 0, err
	}
	currKey := analytics.MonthOfTime(r.now())
	lastKey, twoAgoKey := currKey.Add(-1), currKey.Add(-2)
	for _, o := range orders {
		switch {
		case !o.Date.Before(currKey.FirstDay()):
			curr += o.Amount
		case analytics.MonthOf(o.Date) == lastKey:
			last += o.Amount
		case analytics.MonthOf(o.Date) == twoAgoKey:
			twoAgo += o.Amount
		}
	}
	return curr, last, twoAgo, nil
}

func (r *Responder) salesTrend(ctx context.Context) (string, error) {
	curr, last, twoAgo, err := r.revenueByMonth(ctx)
	if err != nil {
		return "", err
	}

	trend := "downward"
	if curr > last {
		trend = "upward"
	}
	change := ""
	if last > 0 {
		change = " (" + formatChange((curr-last)/last*100) + ")"
	}
	return fmt.Sprintf("## 📈 Sales Trend Analysis\n\n**Current Month:** %s\n**Last Month:** %s\n**Two Months Ago:** %s\n\nSales trend is **%s** this month%s.",
		analytics.FormatCurrency(curr), analytics.FormatCurrency(last), analytics.FormatCurrency(twoAgo), trend, change), nil
}

func (r *Responder) performanceSummary(ctx context.Context) (string, error) {
	orders, err := r.store.ListOrders(ctx, all)
	if err != nil {
		return "", err
	}
	customers, err := r.store.ListCustomers(ctx, all)
	if err != nil {
		return "", err
	}
	products, err := r.store.ListProducts(ctx, all)
	if err != nil {
		return "", err
	}

	total := sumAmount(orders)
	var avg float64
	if len(orders) > 0 {
		avg = total / float64(len(orders))
	}
	return fmt.Sprintf("## 📊 Business Performance Summary\n\n- **Total Orders:** %d\n- **Total Customers:** %d\n- **Products in Catalog:** %d\n- **Total Revenue:** %s\n- **Average Order Value:** %s",
		len(orders), len(customers), len(products), analytics.FormatCurrency(total), analytics.FormatCurrency(avg)), nil
}

func (r *Responder) fulfillmentRate(ctx context.Context) (string, error) {
	orders, err := r.store.ListOrders(ctx, all)
	if err != nil {
		return "", err
	}
	completed := 0
	for _, o := range orders {
		if o.Status == models.OrderStatusCompleted {
			completed++
		}
	}
	// One decimal first, then whole percent.
	rate := math.Round(analytics.Ratio(completed, len(orders))*10) / 10
	return fmt.Sprintf("## 📦 Order Fulfillment Rate\n\n**Completed Orders:** %d\n**Total Orders:** %d\n**Fulfillment Rate:** %d%%",
		completed, len(orders), analytics.Round(rate)), nil
}

func (r *Responder) pendingOrders(ctx context.Context) (string, error) {
	orders, err := r.store.ListOrders(ctx, repository.ListOptions{Sort: repository.SortLatestDateFirst})
	if err != nil {
		return "", err
	}

	var lines []string
	for _, o := range orders {
		if o.Status != models.OrderStatusPending {
			continue
		}
		lines = append(lines, fmt.Sprintf("- **%s** ordered *%s* for %s on %s (ID: %s)",
			o.Customer, o.Product, analytics.FormatCurrency(o.Amount), formatDate(o.Date), o.ID))
	}
	if len(lines) == 0 {
		return "## ✅ No Pending Orders\n\nAll orders are fulfilled!", nil
	}
	return fmt.Sprintf("## ⏳ Pending Orders\n\n%s\n\n**Total Pending Orders:** %d", strings.Join(lines, "\n"), len(lines)), nil
}

func (r *Responder) highValueCustomers(ctx context.Context) (string, error) {
	orders, err := r.store.ListOrders(ctx, all)
	if err != nil {
		return "", err
	}
	groups := groupBy(orders, func(o models.Order) string { return o.Customer })

	var avg float64
	if len(groups) > 0 {
		avg = sumAmount(orders) / float64(len(groups))
	}

	var above []group
	for _, g := range groups {
		if g.amount > avg {
			above = append(above, g)
		}
	}
	if len(above) == 0 {
		return fmt.Sprintf("## 🌟 High-Value Customers\n\nNo customers found who spent more than the average of %s.",
			analytics.FormatCurrency(avg)), nil
	}
	if len(above) > listLimit {
		above = above[:listLimit]
	}
	return fmt.Sprintf("## 🌟 High-Value Customers\n\nCustomers who spent more than the average of %s:\n\n%s",
		analytics.FormatCurrency(avg), rankedList(above, "orders")), nil
}

func (r *Responder) productCategories(ctx context.Context) (string, error) {
	products, err := r.store.ListProducts(ctx, all)
	if err != nil {
		return "", err
	}
	if len(products) == 0 {
		return "## 📦 Product Categories\n\nNo product categories found.", nil
	}

	type category struct {
		name  string
		count int
		stock int
	}
	index := make(map[string]int)
	var cats []category
	for _, p := range products {
		i, ok := index[p.Category]
		if !ok {
			i = len(cats)
			index[p.Category] = i
			cats = append(cats, category{name: p.Category})
		}
		cats[i].count++
		cats[i].stock += p.Stock
	}
	sort.SliceStable(cats, func(i, j int) bool {
		if cats[i].count != cats[j].count {
			return cats[i].count > cats[j].count
		}
		return cats[i].name < cats[j].name
	})

	lines := make([]string, len(cats))
	for i, c := range cats {
		lines[i] = fmt.Sprintf("- **%s**: %d products, %d units in stock", c.name, c.count, c.stock)
	}
	return fmt.Sprintf("## 📦 Product Categories\n\n%s\n\n**Total Categories:** %d", strings.Join(lines, "\n"), len(cats)), nil
}

func (r *Responder) monthlySales(ctx context.Context) (string, error) {
	orders, err := r.store.ListOrders(ctx, all)
	if err != nil {
		return "", err
	}
	now := r.now()
	currKey := analytics.MonthOfTime(now)
	lastKey := currKey.Add(-1)

	var curr, last float64
	for _, o := range orders {
		switch analytics.MonthOf(o.Date) {
		case currKey:
			curr += o.Amount
		case lastKey:
			last += o.Amount
		}
	}

	change := "N/A"
	if last > 0 {
		change = formatChange((curr - last) / last * 100)
	}
	return fmt.Sprintf("## 📅 Monthly Sales Comparison\n\n**This Month (%s):** %s\n**Last Month:** %s\n**Change:** %s",
		now.Month(), analytics.FormatCurrency(curr), analytics.FormatCurrency(last), change), nil
}

func (r *Responder) quickActions(context.Context) (string, error) {
	return quickActionsText, nil
}
