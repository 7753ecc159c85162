// Package catalog applies storefront filter and sort selections to a product
// list.
package catalog

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"storefront/internal/models"
)

type SortOption string

const (
	SortFeatured    SortOption = "featured"
	SortPriceLow    SortOption = "price_low"
	SortPriceHigh   SortOption = "price_high"
	SortNewest      SortOption = "newest"
	SortBestSellers SortOption = "best_sellers"
)

// ParseSortOption maps a query value to a SortOption. The empty string is
// the featured order.
func ParseSortOption(value string) (SortOption, error) {
	switch SortOption(value) {
	case "":
		return SortFeatured, nil
	case SortFeatured, SortPriceLow, SortPriceHigh, SortNewest, SortBestSellers:
		return SortOption(value), nil
	default:
		return "", fmt.Errorf("unknown sort option %q", value)
	}
}

// FilterState is a shopper's filter and sort selection. The zero value
// restricts nothing and keeps the featured order.
type FilterState struct {
	Categories  []string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	Sizes       []string
	Colors      []string
	InStockOnly bool
	SortBy      SortOption
}

// IsZero reports whether the state would neither drop nor reorder anything.
func (f FilterState) IsZero() bool {
	return len(f.Categories) == 0 && f.MinPrice == nil && f.MaxPrice == nil &&
		len(f.Sizes) == 0 && len(f.Colors) == 0 && !f.InStockOnly &&
		(f.SortBy == "" || f.SortBy == SortFeatured)
}

// Matches runs every predicate of the state against p.
func (f FilterState) Matches(p models.Product) bool {
	if len(f.Categories) > 0 && !containsString(f.Categories, p.Category) {
		return false
	}

	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}

	if len(f.Sizes) > 0 {
		found := false
		for _, size := range f.Sizes {
			if p.Sizes.Contains(size) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(f.Colors) > 0 {
		found := false
		for _, color := range f.Colors {
			if p.Colors.ContainsSubstringFold(color) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.InStockOnly && !p.InStock {
		return false
	}

	return true
}

// Apply returns the products that pass the state's predicates, ordered by its
// sort option. The input slice is left untouched.
func Apply(products []models.Product, f FilterState) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			out = append(out, p)
		}
	}

	if less := lessFunc(f.SortBy, out); less != nil {
		sort.SliceStable(out, less)
	}
	return out
}

// lessFunc returns nil for orders that keep the store sequence.
func lessFunc(option SortOption, out []models.Product) func(i, j int) bool {
	switch option {
	case SortPriceLow:
		return func(i, j int) bool { return out[i].Price.LessThan(out[j].Price.Decimal) }
	case SortPriceHigh:
		return func(i, j int) bool { return out[i].Price.GreaterThan(out[j].Price.Decimal) }
	case SortNewest:
		return func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) }
	case SortBestSellers:
		return func(i, j int) bool { return out[i].IsBestSeller() && !out[j].IsBestSeller() }
	default:
		return nil
	}
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
