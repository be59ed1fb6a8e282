package models

import (
	"math"
	"time"
)

// Pricing is computed on read, never stored, so it cannot go stale when an
// offer window opens or closes between writes.

// EffectivePrice returns salePrice when set, else price. Used for variants,
// which carry no offer window.
func EffectivePrice(price float64, salePrice *float64) float64 {
	if salePrice != nil {
		return *salePrice
	}
	return price
}

// OfferPrice returns the product-level effective price at now: the sale
// price applies only while now falls within [offerStart, offerEnd]. A nil
// bound leaves that side open.
func OfferPrice(price float64, salePrice *float64, start, end *time.Time, now time.Time) float64 {
	if salePrice == nil {
		return price
	}
	if start != nil && now.Before(*start) {
		return price
	}
	if end != nil && now.After(*end) {
		return price
	}
	return *salePrice
}

// DiscountPercent returns the rounded percentage saved when effective is
// below price, else 0.
func DiscountPercent(price, effective float64) int {
	if price <= 0 || effective >= price {
		return 0
	}
	return int(math.Round((price - effective) / price * 100))
}
