package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/modacart/catalog/app/models"
	"github.com/modacart/catalog/pkg/apierr"
	"github.com/modacart/catalog/pkg/validate"
)

// AttributeCatalog is the read-only lookup the validator and projector
// consume. Missing ids are simply absent from the result, never errors.
type AttributeCatalog interface {
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Attribute, error)
}

// ValidateVariants checks a candidate variant list against the attribute
// catalog and internal consistency rules, returning a normalized variant
// list or a validation error naming the offending field.
//
// Checks run in order, failing fast on the first violation for the shape
// checks, then collecting all missing attribute ids and all unknown value
// ids before failing, so the caller sees the complete picture of catalog
// mismatches in one round trip.
func ValidateVariants(ctx context.Context, inputs []VariantInput, catalog AttributeCatalog) ([]models.Variant, error) {
	if len(inputs) == 0 {
		return nil, apierr.Validation("variants", "at least one variant is required")
	}

	for i, in := range inputs {
		field := func(name string) string { return fmt.Sprintf("variants[%d].%s", i, name) }

		if in.Price == nil || *in.Price < 0 {
			return nil, apierr.Validation(field("price"), "price must be a number greater than or equal to 0")
		}
		if in.Stock == nil || *in.Stock < 0 {
			return nil, apierr.Validation(field("stock"), "stock must be a number greater than or equal to 0")
		}
		if len(in.Values) == 0 {
			return nil, apierr.Validation(field("values"), "at least one attribute pair is required")
		}

		for j, pair := range in.Values {
			pf := func(name string) string { return fmt.Sprintf("variants[%d].values[%d].%s", i, j, name) }

			if !validate.IsObjectID(pair.AttributeID) {
				return nil, apierr.Validation(pf("attributeId"), "must be a valid 24-character identifier")
			}
			if len(pair.ValueIDs) == 0 {
				return nil, apierr.Validation(pf("attributesValueId"), "one id or a non-empty list of ids is required")
			}
			for _, vid := range pair.ValueIDs {
				if !validate.IsObjectID(vid) {
					return nil, apierr.Validation(pf("attributesValueId"), fmt.Sprintf("%q is not a valid 24-character identifier", vid))
				}
			}
			if pair.Stock == nil || *pair.Stock < 0 {
				return nil, apierr.Validation(pf("stock"), "stock must be a number greater than or equal to 0")
			}
		}
	}

	variants := normalizeVariants(inputs)

	if err := CheckCatalogReferences(ctx, variants, catalog); err != nil {
		return nil, err
	}

	return variants, nil
}

// CheckCatalogReferences verifies that every attribute id referenced by the
// variants exists in the catalog and that every value id belongs to its
// attribute's value set. Also used to re-validate stored variants on
// updates that do not replace them, so a product cannot drift out of sync
// with the catalog across writes.
func CheckCatalogReferences(ctx context.Context, variants []models.Variant, catalog AttributeCatalog) error {
	distinct := DistinctAttributeIDs(variants)
	attrs, err := catalog.FindByIDs(ctx, distinct)
	if err != nil {
		return apierr.Internal("attribute lookup failed", err)
	}

	byID := make(map[primitive.ObjectID]models.Attribute, len(attrs))
	for _, a := range attrs {
		byID[a.ID] = a
	}

	// Report every missing attribute id, not just the first.
	var missing []string
	for _, id := range distinct {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id.Hex())
		}
	}
	if len(missing) > 0 {
		return apierr.Validation("attributeId",
			"unknown attribute id(s): "+strings.Join(missing, ", "))
	}

	// Collect every unknown value id per attribute before failing.
	unknown := make(map[primitive.ObjectID][]string)
	for _, v := range variants {
		for _, pair := range v.Values {
			attr := byID[pair.AttributeID]
			for _, vid := range pair.ValueIDs {
				if _, ok := attr.ValueByID(vid); !ok {
					unknown[pair.AttributeID] = append(unknown[pair.AttributeID], vid.Hex())
				}
			}
		}
	}
	if len(unknown) > 0 {
		fields := make(map[string]string, len(unknown))
		for attrID, ids := range unknown {
			sort.Strings(ids)
			fields[attrID.Hex()] = "unknown value id(s): " + strings.Join(dedupe(ids), ", ")
		}
		return apierr.ValidationFields(fields)
	}

	return nil
}

// normalizeVariants reduces each pair to its canonical stored shape:
// {attributeId, attributesValueId (list), stock, imageUrl (null when
// absent)}. Shape checks have already passed, so id parsing cannot fail.
func normalizeVariants(inputs []VariantInput) []models.Variant {
	variants := make([]models.Variant, len(inputs))
	for i, in := range inputs {
		pairs := make([]models.VariantAttributePair, len(in.Values))
		for j, p := range in.Values {
			attrID, _ := primitive.ObjectIDFromHex(p.AttributeID)
			valueIDs := make([]primitive.ObjectID, len(p.ValueIDs))
			for k, vid := range p.ValueIDs {
				valueIDs[k], _ = primitive.ObjectIDFromHex(vid)
			}
			pairs[j] = models.VariantAttributePair{
				AttributeID: attrID,
				ValueIDs:    valueIDs,
				Stock:       *p.Stock,
				ImageURL:    p.ImageURL,
			}
		}

		variants[i] = models.Variant{
			ID:        primitive.NewObjectID(),
			SKU:       in.SKU,
			Price:     *in.Price,
			SalePrice: in.SalePrice,
			Stock:     *in.Stock,
			ImageURL:  in.ImageURL,
			Barcode:   in.Barcode,
			Values:    pairs,
		}
	}
	return variants
}

// DistinctAttributeIDs returns the set of attribute ids referenced across
// all variants, in first-seen order.
func DistinctAttributeIDs(variants []models.Variant) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{})
	var out []primitive.ObjectID
	for _, v := range variants {
		for _, pair := range v.Values {
			if _, ok := seen[pair.AttributeID]; ok {
				continue
			}
			seen[pair.AttributeID] = struct{}{}
			out = append(out, pair.AttributeID)
		}
	}
	return out
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}
