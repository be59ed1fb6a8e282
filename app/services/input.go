package services

import (
	"encoding/json"
	"time"

	"github.com/modacart/catalog/app/models"
)

// PairInput is the wire shape of one variant attribute/value reference.
// ValueIDs accepts a single id or a list (models.IDList).
type PairInput struct {
	AttributeID string        `json:"attributeId"`
	ValueIDs    models.IDList `json:"attributesValueId"`
	Stock       *int          `json:"stock"`
	ImageURL    *string       `json:"imageUrl"`
}

// VariantInput is the wire shape of a candidate variant. Numeric fields are
// pointers so "absent" is distinguishable from zero.
type VariantInput struct {
	SKU       string      `json:"sku"`
	Price     *float64    `json:"price"`
	SalePrice *float64    `json:"salePrice"`
	Stock     *int        `json:"stock"`
	ImageURL  *string     `json:"imageUrl"`
	Barcode   string      `json:"barcode"`
	Values    []PairInput `json:"values"`
}

// CreateProductInput is the create request body. Struct-tag rules cover the
// conventional field shapes; the variant consistency checks live in the
// validator and resolver.
type CreateProductInput struct {
	Title           string         `json:"title" validate:"required,min=2,max=200"`
	Slug            string         `json:"slug"`
	Description     string         `json:"description"`
	Brand           string         `json:"brand"`
	Category        *string        `json:"category" validate:"nullable,objectid"`
	MainAttributeID *string        `json:"mainAttributeId" validate:"nullable,objectid"`
	ImageURL        string         `json:"imageUrl" validate:"nullable,url"`
	Price           *float64       `json:"price" validate:"nullable,gte=0"`
	SalePrice       *float64       `json:"salePrice" validate:"nullable,gte=0"`
	OfferStart      *time.Time     `json:"offerStart"`
	OfferEnd        *time.Time     `json:"offerEnd"`
	Currency        string         `json:"currency" validate:"required,between=3,3"`
	Stock           *int           `json:"stock" validate:"nullable,gte=0"`
	Variants        []VariantInput `json:"variants"`
	IsActive        *bool          `json:"isActive"`
}

// UpdateProductInput is the sparse update body. Only fields present in the
// JSON are applied: absence leaves the stored value unchanged, an explicit
// null clears nullable fields. Has reports presence per JSON key.
type UpdateProductInput struct {
	Title           *string        `json:"title"`
	Slug            *string        `json:"slug"`
	Description     *string        `json:"description"`
	Brand           *string        `json:"brand"`
	Category        *string        `json:"category" validate:"nullable,objectid"`
	MainAttributeID *string        `json:"mainAttributeId" validate:"nullable,objectid"`
	ImageURL        *string        `json:"imageUrl"`
	Price           *float64       `json:"price" validate:"nullable,gte=0"`
	SalePrice       *float64       `json:"salePrice" validate:"nullable,gte=0"`
	OfferStart      *time.Time     `json:"offerStart"`
	OfferEnd        *time.Time     `json:"offerEnd"`
	Currency        *string        `json:"currency" validate:"nullable,between=3,3"`
	Stock           *int           `json:"stock" validate:"nullable,gte=0"`
	Variants        []VariantInput `json:"variants"`
	IsActive        *bool          `json:"isActive"`

	present map[string]struct{}
}

func (u *UpdateProductInput) UnmarshalJSON(b []byte) error {
	type alias UpdateProductInput
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(b, &keys); err != nil {
		return err
	}

	*u = UpdateProductInput(a)
	u.present = make(map[string]struct{}, len(keys))
	for k := range keys {
		u.present[k] = struct{}{}
	}
	return nil
}

// Has reports whether the JSON body contained the given key, even when its
// value was null.
func (u *UpdateProductInput) Has(key string) bool {
	_, ok := u.present[key]
	return ok
}
