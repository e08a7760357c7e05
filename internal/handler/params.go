package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/gtd_dashboard/internal/service"
)

// listLimit reads ?limit=N. Missing, non-numeric or non-positive values
// fall back to service.DefaultListLimit.
func listLimit(c *gin.Context) int {
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 {
		return l
	}
	return service.DefaultListLimit
}
