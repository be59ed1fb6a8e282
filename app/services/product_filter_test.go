package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/modacart/catalog/app/services"
)

func TestBuildProductFilterEmptyMatchesEverything(t *testing.T) {
	f := services.BuildProductFilter(services.ListOptions{})
	assert.Equal(t, bson.M{}, f.BSON())
}

func TestBuildProductFilterPriceRangeSpansBothPricings(t *testing.T) {
	f := services.BuildProductFilter(services.ListOptions{
		MinPrice: fptr(5),
		MaxPrice: fptr(10),
	})

	want := bson.M{"$or": []bson.M{
		{"price": bson.M{"$gte": 5.0, "$lte": 10.0}},
		{"variants.price": bson.M{"$gte": 5.0, "$lte": 10.0}},
	}}
	assert.Equal(t, want, f.BSON())
}

func TestBuildProductFilterOpenEndedPriceRange(t *testing.T) {
	f := services.BuildProductFilter(services.ListOptions{MinPrice: fptr(5)})

	want := bson.M{"$or": []bson.M{
		{"price": bson.M{"$gte": 5.0}},
		{"variants.price": bson.M{"$gte": 5.0}},
	}}
	assert.Equal(t, want, f.BSON())
}

func TestBuildProductFilterSearchSpansTitleAndDescription(t *testing.T) {
	f := services.BuildProductFilter(services.ListOptions{Search: "sock"})

	want := bson.M{"$or": []bson.M{
		{"title": bson.M{"$regex": "sock", "$options": "i"}},
		{"description": bson.M{"$regex": "sock", "$options": "i"}},
	}}
	assert.Equal(t, want, f.BSON())
}

func TestBuildProductFilterCategory(t *testing.T) {
	cat := primitive.NewObjectID()

	f := services.BuildProductFilter(services.ListOptions{Category: cat.Hex()})
	assert.Equal(t, bson.M{"category": cat}, f.BSON())

	// A malformed category id is skipped rather than matching nothing.
	f = services.BuildProductFilter(services.ListOptions{Category: "not-an-id"})
	assert.Equal(t, bson.M{}, f.BSON())
}

func TestBuildProductFilterHasVariants(t *testing.T) {
	f := services.BuildProductFilter(services.ListOptions{HasVariants: bptr(true)})
	assert.Equal(t, bson.M{"variants.0": bson.M{"$exists": true}}, f.BSON())

	f = services.BuildProductFilter(services.ListOptions{HasVariants: bptr(false)})
	assert.Equal(t, bson.M{"variants.0": bson.M{"$exists": false}}, f.BSON())
}

func TestBuildProductFilterCombinesConditions(t *testing.T) {
	f := services.BuildProductFilter(services.ListOptions{
		Brand:    "acme",
		IsActive: bptr(true),
		MinPrice: fptr(5),
	})

	want := bson.M{"$and": []bson.M{
		{"brand": "acme"},
		{"isActive": true},
		{"$or": []bson.M{
			{"price": bson.M{"$gte": 5.0}},
			{"variants.price": bson.M{"$gte": 5.0}},
		}},
	}}
	assert.Equal(t, want, f.BSON())
}

func TestListSortWhitelist(t *testing.T) {
	store := newFakeStore()
	svc := newService(store, newFakeCatalog())

	tests := []struct {
		sort string
		want string
	}{
		{"", "-createdAt"},
		{"title", "title"},
		{"-title", "-title"},
		{"totalStock", "totalStock"},
		{"-totalStock", "-totalStock"},
		{"price", "price"},
		{"createdAt", "createdAt"},
		{"sku", "-createdAt"},
		{"-slug", "-createdAt"},
		{"title; drop", "-createdAt"},
	}

	for _, tt := range tests {
		_, _, err := svc.List(context.Background(), services.ListOptions{Sort: tt.sort})
		require.NoError(t, err, "sort %q", tt.sort)
		assert.Equal(t, tt.want, store.lastSort, "sort %q", tt.sort)
	}
}
