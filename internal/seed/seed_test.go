package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/store"
)

func TestCatalogParses(t *testing.T) {
	products, err := Catalog()
	require.NoError(t, err)
	require.Len(t, products, 59)

	first := products[0]
	assert.Equal(t, "MP-001", first.SKU)
	assert.Equal(t, "Navy Piqué Polo", first.Name)
	assert.Equal(t, "1499", first.Price.String())
	assert.Equal(t, []string{"Navy", "White", "Gray"}, []string(first.Colors))
	assert.True(t, first.IsBestSeller())
	assert.True(t, first.InStock)
	assert.Equal(t, 50, first.StockCount)

	seen := make(map[string]bool)
	for _, p := range products {
		assert.False(t, seen[p.SKU], "duplicate sku %s", p.SKU)
		seen[p.SKU] = true
	}
}

func TestParseDefaultsInStockAndRejectsBadPrice(t *testing.T) {
	products, err := Parse([]byte(`
products:
  - sku: "X-1"
    name: "Sample"
    category: "Men"
    price: "10.50"
    originalPrice: "15"
`))
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.True(t, products[0].InStock)
	assert.Nil(t, products[0].Tags)
	assert.True(t, products[0].IsOnSale())
	assert.Equal(t, int64(30), products[0].DiscountPercent())

	_, err = Parse([]byte(`
products:
  - sku: "X-2"
    name: "Broken"
    price: "ten"
`))
	assert.Error(t, err)
}

func TestLoadSkipsPopulatedStore(t *testing.T) {
	products := store.NewMemoryProducts(nil)
	ctx := context.Background()

	n, err := Load(ctx, products)
	require.NoError(t, err)
	assert.Equal(t, 59, n)

	n, err = Load(ctx, products)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	count, err := products.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 59, count)
}
