package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront/internal/catalog"
	"storefront/internal/models"
	"storefront/internal/store"
)

// productQuery is the query string accepted by the product listing and the
// catalog pages. Repeated keys and comma separated values are both accepted
// for the list filters.
type productQuery struct {
	Category   string   `form:"category"`
	Search     string   `form:"search"`
	Page       string   `form:"page"`
	Limit      string   `form:"limit"`
	Categories []string `form:"categories"`
	MinPrice   string   `form:"minPrice" binding:"omitempty,numeric"`
	MaxPrice   string   `form:"maxPrice" binding:"omitempty,numeric"`
	Sizes      []string `form:"sizes"`
	Colors     []string `form:"colors"`
	InStock    bool     `form:"inStock"`
	SortBy     string   `form:"sortBy" binding:"omitempty,oneof=featured price_low price_high newest best_sellers"`
}

var errNegativePrice = errors.New("price bounds must not be negative")

func (q productQuery) filterState() (catalog.FilterState, error) {
	sortBy, err := catalog.ParseSortOption(q.SortBy)
	if err != nil {
		return catalog.FilterState{}, &paramError{field: "sortBy", err: err}
	}

	state := catalog.FilterState{
		Categories:  splitValues(q.Categories),
		Sizes:       splitValues(q.Sizes),
		Colors:      splitValues(q.Colors),
		InStockOnly: q.InStock,
		SortBy:      sortBy,
	}

	if state.MinPrice, err = parseBound(q.MinPrice); err != nil {
		return catalog.FilterState{}, &paramError{field: "minPrice", err: err}
	}
	if state.MaxPrice, err = parseBound(q.MaxPrice); err != nil {
		return catalog.FilterState{}, &paramError{field: "maxPrice", err: err}
	}
	return state, nil
}

func parseBound(raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	if value.IsNegative() {
		return nil, errNegativePrice
	}
	return &value, nil
}

func splitValues(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

/*
GET /api/products
- search beats category
- optional filter/sort params run through the catalog engine
- pagination only when both page and limit are present
*/
func GetProducts(products store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/products"
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

		zap.L().Debug("hit",
			zap.String("route", route),
			zap.String("category", query.Category),
			zap.String("search", query.Search),
			zap.String("sortBy", string(filter.SortBy)),
		)

		if err := ensureStoreAvailable(c.Request.Context(), products); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "store unavailable")
			return
		}

		paginated := query.Page != "" && query.Limit != ""
		page, limit := 0, 0
		if paginated {
			if page, limit, err = parsePaginationParams(query.Page, query.Limit); err != nil {
				respondWithError(c, http.StatusBadRequest, route, err.Error())
				return
			}
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		var list []models.Product
		switch search, category := strings.TrimSpace(query.Search), strings.TrimSpace(query.Category); {
		case search != "":
			list, err = products.Search(ctx, search)
		case category != "":
			list, err = products.ByCategory(ctx, category)
		default:
			list, err = products.All(ctx)
		}
		if err != nil {
			respondWithFailure(c, route, "Failed to fetch products", err)
			return
		}

		if !filter.IsZero() {
			list = catalog.Apply(list, filter)
		}

		c.Header("X-Total-Count", strconv.Itoa(len(list)))
		if paginated {
			list = paginate(list, page, limit)
		}

		zap.L().Debug("returning products", zap.String("route", route), zap.Int("count", len(list)))
		c.JSON(http.StatusOK, list)
	}
}

func GetProductByID(products store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/products/:id"
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

		c.JSON(http.StatusOK, product)
	}
}
