package handlers

import (
	"github.com/gin-gonic/gin"

	"storefront/internal/cart"
	"storefront/internal/store"
)

// Register mounts the JSON API, the SEO endpoints and the storefront pages.
func Register(r *gin.Engine, products store.ProductStore, carts *cart.Service) {
	api := r.Group("/api")
	{
		api.GET("/products", GetProducts(products))
		api.GET("/products/export/csv", ExportProductsCSV(products))
		api.GET("/products/:id", GetProductByID(products))
		api.GET("/categories", GetCategories())

		api.GET("/cart", GetCart(carts))
		api.GET("/cart/summary", GetCartSummary(carts))
		api.POST("/cart", AddToCart(carts))
		api.PATCH("/cart/:id", UpdateCartItem(carts))
		api.DELETE("/cart/:id", RemoveCartItem(carts))
		api.DELETE("/cart", ClearCart(carts))
	}

	r.GET("/sitemap.xml", Sitemap(products))
	r.GET("/robots.txt", Robots())
	r.GET("/healthz", Health(products, carts))

	r.GET("/", Home())
	r.GET("/products", CatalogPage(products))
	r.GET("/all-products", CatalogPage(products))
	r.GET("/products/:category", CatalogPage(products))
	r.GET("/product/:id", ProductPage(products))
	r.GET("/cart", CartPage(carts))
	r.POST("/cart", AddToCartForm(carts))
}
