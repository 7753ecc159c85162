package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Health pings every store and reports 503 when any of them is unreachable.
func Health(stores ...pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /healthz"
		defer handlePanic(c, route)

		for _, s := range stores {
			if err := ensureStoreAvailable(c.Request.Context(), s); err != nil {
				zap.L().Warn("store unavailable", zap.String("route", route), zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "store unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
