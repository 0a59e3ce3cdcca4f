package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Response header carrying the per-request identifier.
const RequestIDHeader = "X-Request-Id"

// RequestIDMiddleware assigns a fresh UUID to every inbound request and
// exposes it via the X-Request-Id response header so a failing request
// can be matched to its log lines.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}
