package utils

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrorBody is the JSON body of every failed request.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Meta  *Meta  `json:"meta,omitempty"`
}

// Meta contains request-scoped metadata.
type Meta struct {
	RequestID string `json:"requestId"`
	Timestamp string `json:"timestamp"`
}

// Error writes an error response with provided API error code and message.
func Error(c *gin.Context, code int, errCode, message string) {
	c.AbortWithStatusJSON(code, ErrorBody{
		Error: message,
		Code:  errCode,
		Meta: &Meta{
			RequestID: RequestID(c),
			Timestamp: NowISO(),
		},
	})
}

// NotFound ends the request with 404 and an empty body.
func NotFound(c *gin.Context) {
	c.AbortWithStatus(404)
}

// RequestID returns the id set by the logging middleware. Without one, a
// fresh id is generated and stored so later calls on c agree.
func RequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	id := uuid.New().String()[:8]
	c.Set("request_id", id)
	return id
}

// NowISO returns the current UTC time in ISO 8601 format.
func NowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
