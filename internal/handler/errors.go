package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/gtd_dashboard/internal/utils"
)

// respondError maps service errors onto HTTP responses. Unknown errors are
// logged and reported as a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case utils.IsNotFound(err):
		utils.NotFound(c)
	case errors.Is(err, utils.ErrDuplicateProductName):
		utils.Error(c, http.StatusBadRequest, "DUPLICATE_PRODUCT", "Product name must be unique")
	case errors.Is(err, utils.ErrInvalidQuery):
		utils.Error(c, http.StatusBadRequest, "INVALID_QUERY", "Invalid query")
	default:
		_ = c.Error(err)
		log.Error().Err(err).Str("request_id", utils.RequestID(c)).Str("path", c.FullPath()).Msg("Request failed")
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

// invalidPayload rejects a request body that failed binding.
func invalidPayload(c *gin.Context, err error, message string) {
	log.Debug().Err(err).Str("request_id", utils.RequestID(c)).Msg("Invalid request body")
	utils.Error(c, http.StatusBadRequest, "INVALID_REQUEST", message)
}
