package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ID            int       `bson:"_id" json:"id"`
	ProductID     int       `bson:"productId" json:"productId"`
	Quantity      int       `bson:"quantity" json:"quantity"`
	SelectedColor *string   `bson:"selectedColor" json:"selectedColor"`
	SelectedSize  *string   `bson:"selectedSize" json:"selectedSize"`
	SessionID     string    `bson:"sessionId" json:"sessionId"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// SameLine reports whether two items occupy the same
// (session, product, color, size) slot of a cart.
func (i CartItem) SameLine(other CartItem) bool {
	return i.SessionID == other.SessionID &&
		i.ProductID == other.ProductID &&
		sameOption(i.SelectedColor, other.SelectedColor) &&
		sameOption(i.SelectedSize, other.SelectedSize)
}

// CartItemPatch carries the fields a PATCH may change; nil means unchanged.
type CartItemPatch struct {
	Quantity      *int
	SelectedColor *string
	SelectedSize  *string
}

type CartItemWithProduct struct {
	CartItem
	Product Product `json:"product"`
}

// LineTotal is price times quantity for one joined cart line.
func (i CartItemWithProduct) LineTotal() Price {
	return Price{i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))}
}

// OptionalString trims value and maps the empty string to nil.
func OptionalString(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func sameOption(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
