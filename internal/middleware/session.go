package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/cart"
)

const (
	SessionHeader = "session-id"
	sessionKey    = "sessionId"
)

// Session resolves the cart session from the session-id header and injects
// it into the context. Requests without the header share the default session.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := strings.TrimSpace(c.GetHeader(SessionHeader))
		if sessionID == "" {
			sessionID = cart.DefaultSessionID
		}
		c.Set(sessionKey, sessionID)
		c.Next()
	}
}

// SessionID returns the session resolved by Session, falling back to the
// default session when the middleware did not run.
func SessionID(c *gin.Context) string {
	if value := c.GetString(sessionKey); value != "" {
		return value
	}
	return cart.DefaultSessionID
}
