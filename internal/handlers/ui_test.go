package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomeRedirectsToProducts(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/products", w.Header().Get("Location"))
}

func TestCatalogPageFiltersByCategory(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/products/Men", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<h1>Men</h1>")
	assert.Contains(t, body, "Navy Piqué Polo")
	assert.Contains(t, body, "Best Seller")
	assert.NotContains(t, body, "Pink Polo")
}

func TestCatalogPageAppliesQueryFilters(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/all-products?inStock=true&sortBy=price_low", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<h1>All Products</h1>")
	assert.NotContains(t, body, "Kids Polo")
	assert.Less(t, strings.Index(body, "Pink Polo"), strings.Index(body, "Navy Piqué Polo"))
	assert.Contains(t, body, "2 products")
}

func TestProductPage(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/product/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "38% off")

	w = s.do(t, http.MethodGet, "/product/3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Out of stock")

	w = s.do(t, http.MethodGet, "/product/77", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartPageAndForm(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Your cart is empty.")
	assert.Contains(t, w.Body.String(), "Add ₹1500.00 more for free shipping!")

	form := url.Values{"productId": {"2"}, "selectedSize": {"L"}, "quantity": {"2"}}
	req := httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/cart", w.Header().Get("Location"))

	w = s.do(t, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Pink Polo")
	assert.Contains(t, body, "₹1000.00")
	assert.Contains(t, body, "₹99.00")
	assert.Contains(t, body, "₹180.00")
	assert.Contains(t, body, "₹1279.00")

	items, err := s.items.Items(req.Context(), "default-session")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	require.NotNil(t, items[0].SelectedSize)
	assert.Equal(t, "L", *items[0].SelectedSize)
}
