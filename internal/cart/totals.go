package cart

import (
	"github.com/shopspring/decimal"

	"storefront/internal/models"
)

// Pricing holds the checkout constants applied to a cart.
type Pricing struct {
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
	TaxRate               decimal.Decimal
}

func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingThreshold: decimal.NewFromInt(1500),
		ShippingFee:           decimal.NewFromInt(99),
		TaxRate:               decimal.RequireFromString("0.18"),
	}
}

type Totals struct {
	Subtotal             models.Price `json:"subtotal"`
	Shipping             models.Price `json:"shipping"`
	Tax                  models.Price `json:"tax"`
	Total                models.Price `json:"total"`
	ItemCount            int          `json:"itemCount"`
	AmountToFreeShipping models.Price `json:"amountToFreeShipping"`
}

// FreeShipping reports whether the shipping fee was waived.
func (t Totals) FreeShipping() bool {
	return t.Shipping.IsZero()
}

// Calculate derives the cart totals from joined items. Shipping is waived
// strictly above the threshold; tax is rounded to a whole currency unit.
func (p Pricing) Calculate(items []models.CartItemWithProduct) Totals {
	subtotal := decimal.Zero
	count := 0
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal().Decimal)
		count += item.Quantity
	}

	shipping := p.ShippingFee
	remaining := p.FreeShippingThreshold.Sub(subtotal)
	if subtotal.GreaterThan(p.FreeShippingThreshold) {
		shipping = decimal.Zero
		remaining = decimal.Zero
	}

	tax := subtotal.Mul(p.TaxRate).Round(0)

	return Totals{
		Subtotal:             models.Price{Decimal: subtotal},
		Shipping:             models.Price{Decimal: shipping},
		Tax:                  models.Price{Decimal: tax},
		Total:                models.Price{Decimal: subtotal.Add(shipping).Add(tax)},
		ItemCount:            count,
		AmountToFreeShipping: models.Price{Decimal: remaining},
	}
}
