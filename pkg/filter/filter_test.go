package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/modacart/catalog/pkg/filter"
)

func f64(v float64) *float64 { return &v }

func TestLeafNodes(t *testing.T) {
	assert.Equal(t, bson.M{"brand": "acme"}, filter.Eq{Field: "brand", Value: "acme"}.BSON())

	assert.Equal(t,
		bson.M{"title": bson.M{"$regex": "sock", "$options": "i"}},
		filter.Regex{Field: "title", Pattern: "sock"}.BSON())

	assert.Equal(t,
		bson.M{"_id": bson.M{"$in": []string{"a", "b"}}},
		filter.In{Field: "_id", Values: []string{"a", "b"}}.BSON())

	assert.Equal(t,
		bson.M{"variants": bson.M{"$exists": true}},
		filter.Exists{Field: "variants", Value: true}.BSON())
}

func TestRangeBounds(t *testing.T) {
	assert.Equal(t,
		bson.M{"price": bson.M{"$gte": 5.0, "$lte": 10.0}},
		filter.Range{Field: "price", Min: f64(5), Max: f64(10)}.BSON())

	assert.Equal(t,
		bson.M{"price": bson.M{"$gte": 5.0}},
		filter.Range{Field: "price", Min: f64(5)}.BSON())

	assert.Equal(t,
		bson.M{"price": bson.M{"$lte": 10.0}},
		filter.Range{Field: "price", Max: f64(10)}.BSON())
}

func TestConjunctionCollapse(t *testing.T) {
	// Empty matches everything, a single child compiles without a wrapper.
	assert.Equal(t, bson.M{}, filter.And{}.BSON())
	assert.Equal(t, bson.M{}, filter.Or{}.BSON())

	only := filter.Eq{Field: "brand", Value: "acme"}
	assert.Equal(t, only.BSON(), filter.And{only}.BSON())
	assert.Equal(t, only.BSON(), filter.Or{only}.BSON())
}

func TestNestedTree(t *testing.T) {
	tree := filter.And{
		filter.Eq{Field: "isActive", Value: true},
		filter.Or{
			filter.Range{Field: "price", Min: f64(5), Max: f64(10)},
			filter.Range{Field: "variants.price", Min: f64(5), Max: f64(10)},
		},
	}

	want := bson.M{"$and": []bson.M{
		{"isActive": true},
		{"$or": []bson.M{
			{"price": bson.M{"$gte": 5.0, "$lte": 10.0}},
			{"variants.price": bson.M{"$gte": 5.0, "$lte": 10.0}},
		}},
	}}

	assert.Equal(t, want, tree.BSON())
}
