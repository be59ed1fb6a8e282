package services

import (
	"strings"
	"unicode"

	"github.com/modacart/catalog/app/models"
	"github.com/modacart/catalog/pkg/apierr"
)

// RecomputeAggregates recomputes derived state immediately before persist.
//
// Variant-bearing products get totalStock from the variant sum and have
// their direct price/stock cleared; those fields are not meaningful once
// variants exist. Simple products require both price and stock — an absent
// stock is a hard validation error, never defaulted to 0.
func RecomputeAggregates(p *models.Product) error {
	if p.HasVariants() {
		total := 0
		for _, v := range p.Variants {
			total += v.Stock
		}
		p.TotalStock = total
		p.Price = nil
		p.SalePrice = nil
		p.Stock = nil
		return nil
	}

	if p.Price == nil {
		return apierr.Validation("price", "required for a product without variants")
	}
	if p.Stock == nil {
		return apierr.Validation("stock", "required for a product without variants")
	}
	p.TotalStock = *p.Stock
	return nil
}

// Slugify normalizes a slug candidate: lower-case, trimmed, any run of
// non-alphanumeric characters collapsed to a single hyphen, leading and
// trailing hyphens stripped. Idempotent.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	pendingHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	return b.String()
}
