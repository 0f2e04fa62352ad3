// Package pricing derives the price shown to the shopper from a base or variant
// price and an optional percentage discount.
package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	three   = decimal.NewFromInt(3)
)

// DisplayPrice is the result of ComputeDisplayPrice.
// OriginalPrice is set only when a discount applies (struck-through reference price).
type DisplayPrice struct {
	DisplayPrice  float64  `json:"displayPrice"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Installment   float64  `json:"installment"`
}

// Discounted reports whether a struck-through original price should be shown.
func (d DisplayPrice) Discounted() bool {
	return d.OriginalPrice != nil
}

// ComputeDisplayPrice applies discountPercent to price.
//
// A positive discount rounds price - price*discount/100 half-up to a whole currency
// unit. Non-finite or negative prices count as 0, non-finite or non-positive
// discounts as no discount, and discounts above 100 as 100. The result is never
// negative.
func ComputeDisplayPrice(price, discountPercent float64) DisplayPrice {
	price = sanitize(price)
	discount := sanitize(discountPercent)
	if discount > 100 {
		discount = 100
	}

	if discount <= 0 {
		return DisplayPrice{
			DisplayPrice: price,
			Installment:  Installment(price),
		}
	}

	p := decimal.NewFromFloat(price)
	off := p.Mul(decimal.NewFromFloat(discount)).Div(hundred)
	// Round is half away from zero, which is half-up on non-negative amounts.
	display, _ := p.Sub(off).Round(0).Float64()
	if display < 0 {
		display = 0
	}

	original := price
	return DisplayPrice{
		DisplayPrice:  display,
		OriginalPrice: &original,
		Installment:   Installment(display),
	}
}

// Installment splits a display price in three payments, rounded to 2 decimal places.
func Installment(displayPrice float64) float64 {
	displayPrice = sanitize(displayPrice)
	v, _ := decimal.NewFromFloat(displayPrice).Div(three).Round(2).Float64()
	return v
}

// EffectivePrice picks the variant price when one is set, the base price otherwise.
func EffectivePrice(basePrice, variantPrice float64) float64 {
	if v := sanitize(variantPrice); v > 0 {
		return v
	}
	return sanitize(basePrice)
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
