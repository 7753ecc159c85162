package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const TagBestSeller = "best_seller"

type Product struct {
	ID            int        `bson:"_id" json:"id"`
	SKU           string     `bson:"sku" json:"sku"`
	Name          string     `bson:"name" json:"name"`
	Description   string     `bson:"description,omitempty" json:"description,omitempty"`
	Category      string     `bson:"category" json:"category"`
	Subcategory   string     `bson:"subcategory,omitempty" json:"subcategory,omitempty"`
	Price         Price      `bson:"price" json:"price"`
	OriginalPrice *Price     `bson:"originalPrice,omitempty" json:"originalPrice"`
	Fabric        string     `bson:"fabric,omitempty" json:"fabric,omitempty"`
	Fit           string     `bson:"fit,omitempty" json:"fit,omitempty"`
	Colors        StringList `bson:"colors" json:"colors"`
	Sizes         StringList `bson:"sizes" json:"sizes"`
	Images        StringList `bson:"images" json:"images"`
	Tags          StringList `bson:"tags" json:"tags"`
	InStock       bool       `bson:"inStock" json:"inStock"`
	StockCount    int        `bson:"stockCount" json:"stockCount"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
}

func (p Product) HasTag(tag string) bool {
	return p.Tags.Contains(tag)
}

func (p Product) IsBestSeller() bool {
	return p.HasTag(TagBestSeller)
}

// IsOnSale reports whether the product carries an original price above its
// current price.
func (p Product) IsOnSale() bool {
	return p.OriginalPrice != nil && p.OriginalPrice.GreaterThan(p.Price.Decimal)
}

// DiscountPercent is the rounded percentage saved against the original price,
// or zero when the product is not on sale.
func (p Product) DiscountPercent() int64 {
	if !p.IsOnSale() {
		return 0
	}
	saved := p.OriginalPrice.Sub(p.Price.Decimal)
	return saved.Div(p.OriginalPrice.Decimal).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// MatchesQuery is a case-insensitive substring match against name,
// description, category or any tag.
func (p Product) MatchesQuery(query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Category), q) {
		return true
	}
	return p.Tags.ContainsSubstringFold(q)
}
