package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/modacart/catalog/app/models"
	"github.com/modacart/catalog/app/services"
	"github.com/modacart/catalog/pkg/apierr"
)

func variantUsing(attrIDs ...primitive.ObjectID) models.Variant {
	v := models.Variant{ID: primitive.NewObjectID()}
	for _, id := range attrIDs {
		v.Values = append(v.Values, models.VariantAttributePair{
			AttributeID: id,
			ValueIDs:    []primitive.ObjectID{primitive.NewObjectID()},
		})
	}
	return v
}

func TestResolveMainAttributeSingleDistinctWins(t *testing.T) {
	only := primitive.NewObjectID()
	variants := []models.Variant{variantUsing(only), variantUsing(only)}

	main, err := services.ResolveMainAttribute([]primitive.ObjectID{only}, nil, variants)

	require.NoError(t, err)
	assert.Equal(t, only, main)
}

func TestResolveMainAttributeSingleDistinctIgnoresSupplied(t *testing.T) {
	only := primitive.NewObjectID()
	other := primitive.NewObjectID().Hex()
	variants := []models.Variant{variantUsing(only)}

	// A supplied id that is not in use does not override the automatic pick.
	main, err := services.ResolveMainAttribute([]primitive.ObjectID{only}, &other, variants)

	require.NoError(t, err)
	assert.Equal(t, only, main)
}

func TestResolveMainAttributeMalformedSupplied(t *testing.T) {
	only := primitive.NewObjectID()
	bad := "nope"

	_, err := services.ResolveMainAttribute([]primitive.ObjectID{only}, &bad, []models.Variant{variantUsing(only)})

	require.Error(t, err)
	assert.True(t, apierr.IsKind(err, apierr.KindValidation))
}

func TestResolveMainAttributeAmbiguousRequiresSupplied(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	variants := []models.Variant{variantUsing(a, b)}

	_, err := services.ResolveMainAttribute([]primitive.ObjectID{a, b}, nil, variants)

	require.Error(t, err)
	ae := apierr.As(err)
	assert.Equal(t, apierr.KindValidation, ae.Kind)
	assert.Contains(t, ae.Fields, "mainAttributeId")
}

func TestResolveMainAttributeSuppliedMustBeInUse(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	outside := primitive.NewObjectID().Hex()
	variants := []models.Variant{variantUsing(a, b)}

	_, err := services.ResolveMainAttribute([]primitive.ObjectID{a, b}, &outside, variants)

	require.Error(t, err)
	assert.True(t, apierr.IsKind(err, apierr.KindValidation))
}

func TestResolveMainAttributeSuppliedMustCoverEveryVariant(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	supplied := a.Hex()

	// Second variant carries only b, so a cannot be the main attribute.
	variants := []models.Variant{variantUsing(a, b), variantUsing(b)}

	_, err := services.ResolveMainAttribute([]primitive.ObjectID{a, b}, &supplied, variants)

	require.Error(t, err)
	assert.True(t, apierr.IsKind(err, apierr.KindValidation))
}

func TestResolveMainAttributeSuppliedValid(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	supplied := b.Hex()
	variants := []models.Variant{variantUsing(a, b), variantUsing(b)}

	main, err := services.ResolveMainAttribute([]primitive.ObjectID{a, b}, &supplied, variants)

	require.NoError(t, err)
	assert.Equal(t, b, main)
}
