package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const callerIDKey = "callerId"

// callerIdentityMiddleware resolves the caller's identity from the
// Authorization header. A missing, malformed, or unverifiable bearer
// token ends the request with 401; routes behind this middleware never
// run for anonymous callers.
func (h *Handler) callerIdentityMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	callerID, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid token",
		})
		return
	}

	// store in Gin context
	c.Set(callerIDKey, callerID)
	c.Next()
}

// callerID returns the identity resolved by the middleware, or 0 for
// anonymous callers.
func callerID(c *gin.Context) int64 {
	id, ok := c.Get(callerIDKey)
	if !ok {
		return 0
	}
	v, ok := id.(int64)
	if !ok {
		return 0
	}
	return v
}
