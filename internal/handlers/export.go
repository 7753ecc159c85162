package handlers

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/models"
	"storefront/internal/store"
)

const exportFilename = "classic_polo_products.csv"

var exportHeader = []string{
	"ID", "SKU", "Name", "Description", "Category", "Subcategory",
	"Price", "Original Price", "Fabric", "Fit", "Colors", "Sizes",
	"Images", "Tags", "In Stock", "Stock Count", "Product Link",
}

func ExportProductsCSV(products store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/products/export/csv"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		list, err := products.All(ctx)
		if err != nil {
			respondWithFailure(c, route, "Failed to export products", err)
			return
		}

		body := productsCSV(list, baseURL(c))
		zap.L().Info("products exported", zap.String("route", route), zap.Int("count", len(list)))

		c.Header("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
		c.Data(http.StatusOK, "text/csv", body)
	}
}

// productsCSV renders the export with a fixed quoting layout: free text,
// list and link columns are always quoted, the rest never are.
func productsCSV(list []models.Product, base string) []byte {
	var buf bytes.Buffer
	buf.WriteString(strings.Join(exportHeader, ","))

	for _, p := range list {
		original := ""
		if p.OriginalPrice != nil {
			original = p.OriginalPrice.String()
		}
		inStock := "No"
		if p.InStock {
			inStock = "Yes"
		}

		row := []string{
			strconv.Itoa(p.ID),
			p.SKU,
			quoted(p.Name),
			quoted(p.Description),
			p.Category,
			p.Subcategory,
			p.Price.String(),
			original,
			p.Fabric,
			p.Fit,
			quoted(p.Colors.Joined()),
			quoted(p.Sizes.Joined()),
			quoted(p.Images.Joined()),
			quoted(p.Tags.Joined()),
			inStock,
			strconv.Itoa(p.StockCount),
			quoted(base + "/product/" + strconv.Itoa(p.ID)),
		}
		buf.WriteByte('\n')
		buf.WriteString(strings.Join(row, ","))
	}
	return buf.Bytes()
}

func quoted(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
