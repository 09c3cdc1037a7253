package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// VisitorIDHeader carries the anonymous visitor identity for requests made
// before sign-in. The client echoes back whatever it was last assigned.
const VisitorIDHeader = "X-Visitor-Id"

const visitorIDKey = "visitorID"

// VisitorID reads the anonymous visitor ID from the request, minting a new
// one when absent, and echoes it on the response so the client can persist it.
func VisitorID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(VisitorIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(visitorIDKey, id)
		c.Header(VisitorIDHeader, id)
		c.Next()
	}
}

// GetVisitorID returns the visitor ID set by VisitorID.
func GetVisitorID(c *gin.Context) string {
	return c.GetString(visitorIDKey)
}
