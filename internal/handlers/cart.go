package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/cart"
	"storefront/internal/middleware"
	"storefront/internal/models"
)

type addToCartRequest struct {
	ProductID     int     `json:"productId" form:"productId" binding:"required,min=1"`
	SelectedColor *string `json:"selectedColor" form:"selectedColor"`
	SelectedSize  *string `json:"selectedSize" form:"selectedSize"`
	Quantity      *int    `json:"quantity" form:"quantity" binding:"omitempty,min=1"`
}

type updateCartItemRequest struct {
	Quantity      *int    `json:"quantity"`
	SelectedColor *string `json:"selectedColor"`
	SelectedSize  *string `json:"selectedSize"`
}

const (
	msgItemRemoved  = "Item removed from cart"
	msgItemNotFound = "Cart item not found"
)

func GetCart(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/cart"
		defer handlePanic(c, route)

		if err := ensureStoreAvailable(c.Request.Context(), carts); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "store unavailable")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		items, err := carts.Items(ctx, middleware.SessionID(c))
		if err != nil {
			respondWithFailure(c, route, "Failed to fetch cart items", err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func GetCartSummary(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/cart/summary"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		summary, err := carts.Summary(ctx, middleware.SessionID(c))
		if err != nil {
			respondWithFailure(c, route, "Failed to fetch cart summary", err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

func AddToCart(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/cart"
		defer handlePanic(c, route)

		var req addToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithDetails(c, route, "Invalid cart item data", err)
			return
		}

		quantity := 1
		if req.Quantity != nil {
			quantity = *req.Quantity
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		sessionID := middleware.SessionID(c)
		item, err := carts.AddItem(ctx, sessionID, req.ProductID, req.SelectedColor, req.SelectedSize, quantity)
		if err != nil {
			respondWithFailure(c, route, "Failed to add item to cart", err)
			return
		}

		zap.L().Info("cart item added",
			zap.String("route", route),
			zap.String("sessionId", sessionID),
			zap.Int("itemId", item.ID),
			zap.Int("quantity", item.Quantity),
		)
		c.JSON(http.StatusOK, item)
	}
}

func UpdateCartItem(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/cart/:id"
		defer handlePanic(c, route)

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, msgItemNotFound)
			return
		}

		var req updateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithDetails(c, route, "Invalid update data", err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		result, err := carts.UpdateItem(ctx, id, models.CartItemPatch{
			Quantity:      req.Quantity,
			SelectedColor: req.SelectedColor,
			SelectedSize:  req.SelectedSize,
		})
		if errors.Is(err, cart.ErrItemNotFound) {
			respondWithError(c, http.StatusNotFound, route, msgItemNotFound)
			return
		}
		if err != nil {
			respondWithFailure(c, route, "Failed to update cart item", err)
			return
		}

		if result.Removed {
			c.JSON(http.StatusOK, gin.H{"message": msgItemRemoved})
			return
		}
		c.JSON(http.StatusOK, result.Item)
	}
}

func RemoveCartItem(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/cart/:id"
		defer handlePanic(c, route)

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, msgItemNotFound)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		removed, err := carts.RemoveItem(ctx, id)
		if err != nil {
			respondWithFailure(c, route, "Failed to remove item from cart", err)
			return
		}
		if !removed {
			respondWithError(c, http.StatusNotFound, route, msgItemNotFound)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": msgItemRemoved})
	}
}

func ClearCart(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/cart"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := carts.Clear(ctx, middleware.SessionID(c)); err != nil {
			respondWithFailure(c, route, "Failed to clear cart", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
