package handler

import "github.com/gin-gonic/gin"

// Handlers groups every HTTP handler the API serves.
type Handlers struct {
	Health    *HealthHandler
	Dashboard *DashboardHandler
	Assistant *AssistantHandler
	Orders    *OrderHandler
	Products  *ProductHandler
	Customers *CustomerHandler
	Events    *SSEHandler
}

// RegisterRoutes mounts all endpoints on api, normally the /api group.
// Events may be nil to disable the SSE stream.
func RegisterRoutes(api *gin.RouterGroup, h Handlers) {
	RegisterValidators()

	api.GET("/health", h.Health.GetHealth)

	dash := api.Group("/dashboard")
	{
		dash.GET("/metrics", h.Dashboard.GetMetrics)
		dash.GET("/sales", h.Dashboard.GetSales)
		dash.GET("/orders-status", h.Dashboard.GetOrdersStatus)
		dash.GET("/top-products", h.Dashboard.GetTopProducts)
		dash.GET("/recent-orders", h.Dashboard.GetRecentOrders)
	}
	api.GET("/predictions", h.Dashboard.GetPredictions)
	api.POST("/ai-assistant", h.Assistant.Ask)

	orders := api.Group("/orders")
	{
		orders.GET("", h.Orders.ListOrders)
		orders.POST("", h.Orders.CreateOrder)
		orders.PUT("/:id", h.Orders.UpdateOrder)
		orders.DELETE("/:id", h.Orders.DeleteOrder)
	}

	products := api.Group("/products")
	{
		products.GET("", h.Products.ListProducts)
		products.POST("", h.Products.CreateProduct)
		products.PUT("/:id", h.Products.UpdateProduct)
		products.DELETE("/:id", h.Products.DeleteProduct)
	}

	customers := api.Group("/customers")
	{
		customers.GET("", h.Customers.ListCustomers)
		customers.POST("", h.Customers.CreateCustomer)
		customers.PUT("/:id", h.Customers.UpdateCustomer)
		customers.DELETE("/:id", h.Customers.DeleteCustomer)
	}

	if h.Events != nil {
		api.GET("/events", h.Events.Stream)
	}
}
