package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/gtd_dashboard/internal/service"
)

// DashboardHandler serves the reporting endpoints.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler constructs a DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetMetrics handles GET /api/dashboard/metrics
func (h *DashboardHandler) GetMetrics(c *gin.Context) {
	metrics, err := h.dashboardService.Metrics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// GetSales handles GET /api/dashboard/sales
func (h *DashboardHandler) GetSales(c *gin.Context) {
	points, err := h.dashboardService.Sales(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

// GetOrdersStatus handles GET /api/dashboard/orders-status
func (h *DashboardHandler) GetOrdersStatus(c *gin.Context) {
	points, err := h.dashboardService.OrderStatus(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

// GetTopProducts handles GET /api/dashboard/top-products
func (h *DashboardHandler) GetTopProducts(c *gin.Context) {
	ranks, err := h.dashboardService.TopProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ranks)
}

// GetRecentOrders handles GET /api/dashboard/recent-orders
func (h *DashboardHandler) GetRecentOrders(c *gin.Context) {
	orders, err := h.dashboardService.RecentOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetPredictions handles GET /api/predictions
func (h *DashboardHandler) GetPredictions(c *gin.Context) {
	predictions, err := h.dashboardService.Predictions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, predictions)
}
