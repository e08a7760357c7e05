package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/gtd_dashboard/internal/assistant"
)

// AssistantHandler serves the natural-language query endpoint.
type AssistantHandler struct {
	responder *assistant.Responder
}

// NewAssistantHandler constructs an AssistantHandler.
func NewAssistantHandler(responder *assistant.Responder) *AssistantHandler {
	return &AssistantHandler{responder: responder}
}

type assistantRequest struct {
	Query string `json:"query" binding:"required"`
}

// Ask handles POST /api/ai-assistant
func (h *AssistantHandler) Ask(c *gin.Context) {
	var req assistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err, "Invalid query")
		return
	}

	answer, err := h.responder.Answer(c.Request.Context(), req.Query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}
