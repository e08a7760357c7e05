package assistant

var (
	orderWords   = anyOf("order", "orders")
	productWords = anyOf("product", "products")
	countWords   = anyOf("count", "how many")
)

func (r *Responder) defaultRules() []Rule {
	return []Rule{
		{Name: "top-products", Priority: 10, Match: allOf(anyOf("top"), productWords), Answer: r.topProducts},
		{Name: "order-count", Priority: 20, Match: allOf(orderWords, countWords), Answer: r.orderCount},
		{Name: "total-revenue", Priority: 30, Match: allOf(anyOf("total"), anyOf("revenue")), Answer: r.totalRevenue},
		{Name: "recent-orders", Priority: 40, Match: allOf(anyOf("recent"), orderWords), Answer: r.recentOrders},
		{Name: "customer-count", Priority: 50, Match: allOf(anyOf("customer"), countWords), Answer: r.customerCount},
		{Name: "average-order", Priority: 60, Match: allOf(anyOf("average"), orderWords), Answer: r.averageOrder},
		{Name: "highest-order", Priority: 70, Match: allOf(anyOf("highest"), orderWords), Answer: r.highestOrder},
		{Name: "status-distribution", Priority: 80, Match: allOf(anyOf("status", "distribution"), anyOf("order")), Answer: r.statusDistribution},
		{Name: "low-stock", Priority: 90, Match: allOf(anyOf("product"), anyOf("stock")), Answer: r.lowStock},
		{Name: "best-customers", Priority: 100, Match: allOf(anyOf("best", "top"), anyOf("customer")), Answer: r.bestCustomers},
		{Name: "sales-trend", Priority: 110, Match: allOf(anyOf("sales", "revenue"), anyOf("trend", "last month", "growth")), Answer: r.salesTrend},
		{Name: "performance-summary", Priority: 120, Match: allOf(anyOf("performance", "summary", "overview", "report")), Answer: r.performanceSummary},
		{Name: "fulfillment-rate", Priority: 130, Match: allOf(anyOf("fulfillment"), anyOf("rate")), Answer: r.fulfillmentRate},
		{Name: "pending-orders", Priority: 140, Match: allOf(anyOf("pending"), orderWords), Answer: r.pendingOrders},
		{Name: "high-value-customers", Priority: 150, Match: allOf(anyOf("high"), anyOf("value"), anyOf("customer")), Answer: r.highValueCustomers},
		{Name: "product-categories", Priority: 160, Match: allOf(anyOf("category"), productWords), Answer: r.productCategories},
		{Name: "monthly-sales", Priority: 170, Match: allOf(anyOf("monthly"), anyOf("sales", "revenue")), Answer: r.monthlySales},
		{Name: "quick-actions", Priority: 180, Match: allOf(anyOf("quick"), anyOf("action")), Answer: r.quickActions},
	}
}

const quickActionsText = `## ⚡ Quick Actions

I can help you with these quick actions:

• Check order status
• View pending orders
• See low stock alerts
• Get sales reports
• Analyze customer data
• Review product performance

Just ask me what you'd like to do!`

const helpText = `## ❓ Help

I can help you with information about your business. Try asking questions like:

• "What are my top products?"
• "How many orders do I have?"
• "What is my total revenue?"
• "Show me recent orders"
• "How many customers do I have?"
• "What is my average order value?"
• "What is my highest value order?"
• "Show order status distribution"
• "Which products are low in stock?"
• "Who are my best customers?"
• "What are my sales trends?"
• "Give me a performance summary"
• "What is my fulfillment rate?"
• "Show me pending orders"
• "Who are my high-value customers?"
• "Show product categories"
• "Compare monthly sales"
• "Show quick actions"`
