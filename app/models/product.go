package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is either simple (no variants, priced and stocked directly) or
// variant-bearing (variants non-empty, mainAttributeId set, price/stock
// cleared). TotalStock is derived before every persist so stored documents
// are never stale.
type Product struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title           string              `bson:"title" json:"title"`
	Slug            string              `bson:"slug" json:"slug"`
	Description     string              `bson:"description,omitempty" json:"description,omitempty"`
	Brand           string              `bson:"brand,omitempty" json:"brand,omitempty"`
	Category        *primitive.ObjectID `bson:"category,omitempty" json:"category,omitempty"`
	MainAttributeID *primitive.ObjectID `bson:"mainAttributeId,omitempty" json:"mainAttributeId,omitempty"`
	ImageURL        string              `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Price           *float64            `bson:"price,omitempty" json:"price,omitempty"`
	SalePrice       *float64            `bson:"salePrice,omitempty" json:"salePrice,omitempty"`
	OfferStart      *time.Time          `bson:"offerStart,omitempty" json:"offerStart,omitempty"`
	OfferEnd        *time.Time          `bson:"offerEnd,omitempty" json:"offerEnd,omitempty"`
	Currency        string              `bson:"currency" json:"currency"`
	Stock           *int                `bson:"stock,omitempty" json:"stock,omitempty"`
	TotalStock      int                 `bson:"totalStock" json:"totalStock"`
	Variants        []Variant           `bson:"variants" json:"variants"`
	IsActive        bool                `bson:"isActive" json:"isActive"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// HasVariants reports whether the product is variant-bearing.
func (p *Product) HasVariants() bool { return len(p.Variants) > 0 }

// Variant is one purchasable configuration, pinned to attribute values.
// Effective price and discount are never stored; see pricing.go.
type Variant struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	SKU       string                 `bson:"sku,omitempty" json:"sku,omitempty"`
	Price     float64                `bson:"price" json:"price"`
	SalePrice *float64               `bson:"salePrice,omitempty" json:"salePrice,omitempty"`
	Stock     int                    `bson:"stock" json:"stock"`
	ImageURL  *string                `bson:"imageUrl" json:"imageUrl"`
	Barcode   string                 `bson:"barcode,omitempty" json:"barcode,omitempty"`
	Values    []VariantAttributePair `bson:"values" json:"values"`
}

// VariantAttributePair links a variant to one attribute and one or more of
// that attribute's values. ValueIDs is always a list after validation, even
// when the caller sent a single id.
type VariantAttributePair struct {
	AttributeID primitive.ObjectID   `bson:"attributeId" json:"attributeId"`
	ValueIDs    []primitive.ObjectID `bson:"attributesValueId" json:"attributesValueId"`
	Stock       int                  `bson:"stock" json:"stock"`
	ImageURL    *string              `bson:"imageUrl" json:"imageUrl"`
}

// PairFor returns the pair referencing the given attribute, if any.
func (v Variant) PairFor(attrID primitive.ObjectID) (VariantAttributePair, bool) {
	for _, p := range v.Values {
		if p.AttributeID == attrID {
			return p, true
		}
	}
	return VariantAttributePair{}, false
}
