package services

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/modacart/catalog/app/models"
	"github.com/modacart/catalog/pkg/apierr"
	"github.com/modacart/catalog/pkg/validate"
)

// ResolveMainAttribute decides the product's single distinguishing
// attribute. The main attribute drives downstream UI grouping ("choose a
// size"), so it must be unambiguous and present on every variant:
//
//   - Exactly one distinct attribute in use: that attribute wins
//     automatically. A supplied id is still shape-checked but does not
//     influence the decision.
//   - Two or more distinct attributes: the caller must supply one of the
//     ids in use, and every variant must carry a pair for it.
//
// An empty variant set never reaches this stage; the validator rejects it
// upstream.
func ResolveMainAttribute(distinct []primitive.ObjectID, supplied *string, variants []models.Variant) (primitive.ObjectID, error) {
	if supplied != nil && !validate.IsObjectID(*supplied) {
		return primitive.NilObjectID, apierr.Validation("mainAttributeId", "must be a valid 24-character identifier")
	}

	if len(distinct) == 1 {
		return distinct[0], nil
	}

	if supplied == nil {
		return primitive.NilObjectID, apierr.Validation("mainAttributeId",
			"required when variants use more than one attribute")
	}

	main, _ := primitive.ObjectIDFromHex(*supplied)

	used := false
	for _, id := range distinct {
		if id == main {
			used = true
			break
		}
	}
	if !used {
		return primitive.NilObjectID, apierr.Validation("mainAttributeId",
			"must be one of the attributes used by the variants")
	}

	for i, v := range variants {
		if _, ok := v.PairFor(main); !ok {
			return primitive.NilObjectID, apierr.Validation("mainAttributeId",
				fmt.Sprintf("variant %d has no value for the main attribute", i))
		}
	}

	return main, nil
}
