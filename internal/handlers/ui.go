package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/store"
)

func Home() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/products")
	}
}

func pageData(title string) gin.H {
	return gin.H{
		"Title":      title,
		"Categories": models.StoreCategories,
	}
}

// CatalogPage renders /products, /all-products and /products/:category with
// the same filter and sort query parameters as the JSON listing.
func CatalogPage(products store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products"
		defer handlePanic(c, route)

		var query productQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			respondWithDetails(c, route, "Invalid product query", err)
			return
		}
		filter, err := query.filterState()
		if err != nil {
			respondWithDetails(c, route, "Invalid product query", err)
			return
		}

		category := strings.TrimSpace(c.Param("category"))
		title := "Products"
		if c.FullPath() == "/all-products" {
			title = "All Products"
		}
		if category != "" {
			title = category
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		var list []models.Product
		switch search := strings.TrimSpace(query.Search); {
		case search != "":
			list, err = products.Search(ctx, search)
			title = `Results for "` + search + `"`
		case category != "":
			list, err = products.ByCategory(ctx, category)
		default:
			list, err = products.All(ctx)
		}
		if err != nil {
			respondWithFailure(c, route, "Failed to fetch products", err)
			return
		}

		data := pageData(title)
		data["Action"] = c.Request.URL.Path
		data["Products"] = catalog.Apply(list, filter)
		data["Filter"] = filter
		data["Query"] = query
		data["Sizes"] = catalog.SizeOptions
		data["Colors"] = catalog.ColorOptions
		data["SortOptions"] = catalog.SortOptions
		c.HTML(http.StatusOK, "catalog.html", data)
	}
}

func ProductPage(products store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /product/:id"
		defer handlePanic(c, route)

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "Product not found")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		product, err := products.GetByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "Product not found")
			return
		}
		if err != nil {
			respondWithFailure(c, route, "Failed to fetch product", err)
			return
		}

		data := pageData(product.Name)
		data["Product"] = product
		c.HTML(http.StatusOK, "product.html", data)
	}
}

func CartPage(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /cart"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		summary, err := carts.Summary(ctx, middleware.SessionID(c))
		if err != nil {
			respondWithFailure(c, route, "Failed to fetch cart items", err)
			return
		}

		data := pageData("Shopping Cart")
		data["Summary"] = summary
		c.HTML(http.StatusOK, "cart.html", data)
	}
}

// AddToCartForm handles the product page form and sends the shopper to the
// cart page.
func AddToCartForm(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /cart"
		defer handlePanic(c, route)

		var req addToCartRequest
		if err := c.ShouldBind(&req); err != nil {
			respondWithDetails(c, route, "Invalid cart item data", err)
			return
		}

		quantity := 1
		if req.Quantity != nil {
			quantity = *req.Quantity
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if _, err := carts.AddItem(ctx, middleware.SessionID(c), req.ProductID, req.SelectedColor, req.SelectedSize, quantity); err != nil {
			respondWithFailure(c, route, "Failed to add item to cart", err)
			return
		}
		c.Redirect(http.StatusSeeOther, "/cart")
	}
}
