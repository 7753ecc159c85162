package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
)

// GetCategories serves the fixed navigation categories. Counts are display
// values and are not derived from the store.
func GetCategories() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/categories"
		defer handlePanic(c, route)

		c.JSON(http.StatusOK, models.StoreCategories)
	}
}
