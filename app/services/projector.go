package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/modacart/catalog/app/models"
	"github.com/modacart/catalog/pkg/apierr"
)

// The projector turns stored id references into response-ready records.
// Resolution is display-oriented: a dangling attribute or value reference
// becomes a placeholder with null descriptive fields, never a failed read.

// ResolvedAttribute carries full attribute metadata, or nulls when the
// catalog no longer knows the id.
type ResolvedAttribute struct {
	ID       string  `json:"id"`
	Name     *string `json:"name"`
	Code     *string `json:"code"`
	Type     *string `json:"type"`
	IsActive *bool   `json:"isActive"`
}

// ResolvedValue carries a full value record, or nulls for stale ids.
type ResolvedValue struct {
	ID    string                 `json:"id"`
	Label *string                `json:"label"`
	Value *string                `json:"value"`
	Meta  map[string]interface{} `json:"meta"`
}

type ResolvedPair struct {
	Attribute ResolvedAttribute `json:"attribute"`
	Values    []ResolvedValue   `json:"values"`
	Stock     int               `json:"stock"`
	ImageURL  *string           `json:"imageUrl"`
}

type ResolvedVariant struct {
	ID              string         `json:"id"`
	SKU             string         `json:"sku,omitempty"`
	Price           float64        `json:"price"`
	SalePrice       *float64       `json:"salePrice,omitempty"`
	EffectivePrice  float64        `json:"effectivePrice"`
	DiscountPercent int            `json:"discountPercent"`
	Stock           int            `json:"stock"`
	ImageURL        *string        `json:"imageUrl"`
	Barcode         string         `json:"barcode,omitempty"`
	Values          []ResolvedPair `json:"values"`
}

type ResolvedProduct struct {
	models.Product

	EffectivePrice  *float64          `json:"effectivePrice,omitempty"`
	DiscountPercent *int              `json:"discountPercent,omitempty"`
	Variants        []ResolvedVariant `json:"variants"`
}

// ProjectProduct expands every variant pair of p into full attribute and
// value records using one batch catalog fetch, and computes the derived
// pricing fields at now.
func ProjectProduct(ctx context.Context, p *models.Product, catalog AttributeCatalog, now time.Time) (*ResolvedProduct, error) {
	distinct := DistinctAttributeIDs(p.Variants)

	byID := make(map[primitive.ObjectID]models.Attribute, len(distinct))
	if len(distinct) > 0 {
		attrs, err := catalog.FindByIDs(ctx, distinct)
		if err != nil {
			return nil, apierr.Internal("attribute lookup failed", err)
		}
		for _, a := range attrs {
			byID[a.ID] = a
		}
	}

	out := &ResolvedProduct{Product: *p}
	out.Variants = make([]ResolvedVariant, len(p.Variants))
	for i, v := range p.Variants {
		out.Variants[i] = projectVariant(v, byID)
	}

	// Simple products expose an offer-window price; variant-bearing
	// products price per variant.
	if !p.HasVariants() && p.Price != nil {
		eff := models.OfferPrice(*p.Price, p.SalePrice, p.OfferStart, p.OfferEnd, now)
		disc := models.DiscountPercent(*p.Price, eff)
		out.EffectivePrice = &eff
		out.DiscountPercent = &disc
	}

	return out, nil
}

func projectVariant(v models.Variant, attrs map[primitive.ObjectID]models.Attribute) ResolvedVariant {
	eff := models.EffectivePrice(v.Price, v.SalePrice)

	rv := ResolvedVariant{
		ID:              v.ID.Hex(),
		SKU:             v.SKU,
		Price:           v.Price,
		SalePrice:       v.SalePrice,
		EffectivePrice:  eff,
		DiscountPercent: models.DiscountPercent(v.Price, eff),
		Stock:           v.Stock,
		ImageURL:        v.ImageURL,
		Barcode:         v.Barcode,
		Values:          make([]ResolvedPair, len(v.Values)),
	}

	for j, pair := range v.Values {
		attr, known := attrs[pair.AttributeID]

		rp := ResolvedPair{
			Attribute: resolveAttribute(pair.AttributeID, attr, known),
			Values:    make([]ResolvedValue, len(pair.ValueIDs)),
			Stock:     pair.Stock,
			ImageURL:  pair.ImageURL,
		}

		for k, vid := range pair.ValueIDs {
			rp.Values[k] = resolveValue(vid, attr, known)
		}

		rv.Values[j] = rp
	}

	return rv
}

func resolveAttribute(id primitive.ObjectID, attr models.Attribute, known bool) ResolvedAttribute {
	if !known {
		return ResolvedAttribute{ID: id.Hex()}
	}
	return ResolvedAttribute{
		ID:       id.Hex(),
		Name:     &attr.Name,
		Code:     &attr.Code,
		Type:     &attr.Type,
		IsActive: &attr.IsActive,
	}
}

func resolveValue(id primitive.ObjectID, attr models.Attribute, known bool) ResolvedValue {
	if known {
		if val, ok := attr.ValueByID(id); ok {
			return ResolvedValue{
				ID:    id.Hex(),
				Label: &val.Label,
				Value: &val.Value,
				Meta:  val.Meta,
			}
		}
	}
	return ResolvedValue{ID: id.Hex()}
}
